// Package clock provides a tiny time abstraction.
//
// The user service double stamps created users through a Clocker so tests can
// assert on deterministic timestamps.
package clock
