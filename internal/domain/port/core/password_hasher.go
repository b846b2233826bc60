package core

// PasswordHasher hashes and verifies account passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidCredentials when the password does not match
	Compare(hash, password string) error
}
