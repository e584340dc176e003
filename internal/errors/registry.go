package errors

import "sort"

// Template defines a registered error type.
type Template struct {
	Category Category
	Message  string
	Detail   string
}

var registry = map[string]Template{
	// Configuration (T001-T009)
	"T001": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
		Detail:   "No tooltip.json was found. Run without a config to use the defaults, or pass --config.",
	},
	"T002": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "The configuration file could not be parsed as JSON.",
	},
	"T003": {
		Category: CategoryConfig,
		Message:  "Invalid configuration value",
		Detail:   "A configuration value is out of range.",
	},
	"T004": {
		Category: CategoryConfig,
		Message:  "Configuration could not be written",
	},

	// Templates (T010-T019)
	"T010": {
		Category: CategoryTemplate,
		Message:  "Unknown tooltip template",
		Detail:   "An element names a template with data-tooltip-template that is not registered.",
	},

	// Protocol (T020-T029)
	"T020": {
		Category: CategoryProtocol,
		Message:  "Malformed protocol frame",
		Detail:   "A client sent bytes that do not decode as a frame or event.",
	},

	// Replay scripts (T030-T039)
	"T030": {
		Category: CategoryScript,
		Message:  "Replay script not found",
	},
	"T031": {
		Category: CategoryScript,
		Message:  "Invalid replay script",
		Detail:   "The script is not valid JSON or does not describe a tree and steps.",
	},
	"T032": {
		Category: CategoryScript,
		Message:  "Replay step failed",
	},
	"T033": {
		Category: CategoryScript,
		Message:  "Replay script could not be fetched",
		Detail:   "Reading the script from object storage failed.",
	},

	// CLI (T040-T049)
	"T040": {
		Category: CategoryCLI,
		Message:  "Server failed",
	},
}

// Codes returns all registered error codes in order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Lookup returns the template for an error code.
func Lookup(code string) (Template, bool) {
	t, ok := registry[code]
	return t, ok
}
