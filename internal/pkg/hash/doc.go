// Package hash provides helpers for hashing and verifying secrets.
//
// The user service double stores only bcrypt hashes of the credential
// passwords it receives, the same way a real service would.
package hash
