package account

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// NormalizePassword is applied to every password before it is hashed or
// compared, so surrounding whitespace never decides a login.
func NormalizePassword(plain string) string {
	return strings.TrimSpace(plain)
}

// uses bcrypt to hash a normalized password; bcrypt salts every hash.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(NormalizePassword(plain)), bcrypt.DefaultCost)
	return string(bytes), err
}

// compares a bcrypt hash with the normalized plaintext.
func CheckPassword(hash, plain string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(NormalizePassword(plain)))
	return err == nil
}
