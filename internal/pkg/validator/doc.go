// Package validator provides a small validation abstraction for structs.
//
// The harness validates its own configuration with it and the in-process user
// service double validates incoming payloads with it, so both report field
// errors keyed by the JSON field name.
package validator
