package services

import "crypto/subtle"

// PasswordsMatch reports whether provided equals expected byte for byte.
// Inputs of different length return early; equal-length inputs are compared
// in constant time. The expected length is not treated as a secret.
func PasswordsMatch(provided, expected string) bool {
	p := []byte(provided)
	e := []byte(expected)
	if len(p) != len(e) {
		return false
	}
	return subtle.ConstantTimeCompare(p, e) == 1
}
