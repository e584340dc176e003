// Package errors provides structured, actionable errors for the tooltip
// server's command-line and configuration surfaces.
//
// Each error has a code (e.g. "T001") mapped in a registry to a category,
// a short message and a longer explanation. Callers add the source that
// failed, a hint, and the underlying error:
//
//	err := errors.New("T002").
//	    WithSource("tooltip.json").
//	    WithSuggestion("Check the file for trailing commas").
//	    Wrap(jsonErr)
//
//	fmt.Print(err.Format())
//	// ERROR T002: Invalid configuration file
//	//
//	//   tooltip.json
//	//
//	//   The configuration file could not be parsed as JSON.
//	//
//	//   Hint: Check the file for trailing commas
//
// Library packages keep returning plain wrapped errors; this package is
// for messages a person reads.
package errors
