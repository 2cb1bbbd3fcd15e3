package hash

// Hash produces a deterministic digest of a value and verifies it later.
type Hash interface {
	Hash(str string) ([]byte, error)
	Verify(hashed, str string) bool
}
