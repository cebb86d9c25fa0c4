package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Cost 12: balance between security and login latency.
const bcryptCost = 12

// Hash derives a salted one-way digest from a plaintext password.
// bcrypt generates a fresh salt per call and embeds it in the digest,
// so Verify needs nothing beyond the digest itself.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plain hashes to digest under the salt and cost
// parameters embedded in digest. bcrypt's comparison is constant-time.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
