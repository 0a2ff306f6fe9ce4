// Package password wraps the one-way password hashing used at sign-up and
// the comparison used at sign-in. Hashing happens on the client, as the
// store only ever sees digests.
package password

import "golang.org/x/crypto/bcrypt"

// Cost is the bcrypt cost factor applied to new digests.
const Cost = 10

// Hash produces a salted bcrypt digest of the raw password. Two calls with
// the same input yield different digests; both verify.
func Hash(raw string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(raw), Cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether raw matches the digest. A malformed digest (for
// instance from a corrupted record) verifies as false, never panics.
func Verify(raw, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(raw)) == nil
}
