// Package replay runs scripted pointer interactions against an in-memory
// tooltip controller and reports every popover transition.
//
// A script describes a tree and a list of steps:
//
//	{
//	  "name": "save button",
//	  "tree": {"tag": "div", "children": [
//	    {"tag": "button", "attrs": {"id": "save", "data-tooltip": "Save"}}
//	  ]},
//	  "templates": {"coords": "X: {x}, Y: {y}"},
//	  "steps": [
//	    {"op": "hover", "target": "#save"},
//	    {"op": "wait", "ms": 400},
//	    {"op": "expect", "count": 1, "text": "Save"},
//	    {"op": "leave"}
//	  ]
//	}
//
// Time only moves on "wait" (by ms) and "run" (until no timer is left).
// Scripts load from a local path or from s3://bucket/key.
package replay
