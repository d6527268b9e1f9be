package services

import "github.com/alexedwards/argon2id"

// hashPassword derives an argon2id hash with a fresh random salt, so
// two hashes of the same password never compare equal.
func hashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// verifyPassword reports whether password matches the stored hash.
// Malformed hashes and mismatches both report false; user-supplied
// input never causes a panic.
func verifyPassword(password, hash string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, hash)
	return err == nil && match
}
