// Package config loads tooltip.json, the server's configuration file.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "addr": ":8080",
//	    "path": "/ws",
//	    "metrics": true
//	  },
//	  "tooltip": {
//	    "defaultDelayMs": 400,
//	    "closeDelayMs": 200
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  },
//	  "replay": {
//	    "region": "us-east-1"
//	  }
//	}
//
// Fields left out keep their defaults. A closeDelayMs of 0 closes
// hold-to-show tooltips as soon as the pointer is released.
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Listening on", cfg.Server.Addr)
package config
