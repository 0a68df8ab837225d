package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash using the given cost.  It is used to
// produce ADMIN_PASSWORD_HASH.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword safely compares bcrypt hash and plain password.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CheckAdmin reports whether username and password match the configured
// admin account.  The username comparison is constant time and the bcrypt
// check always runs.
func CheckAdmin(wantUser, wantHash, username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(wantUser), []byte(username)) == 1
	passOK := VerifyPassword(wantHash, password)
	return userOK && passOK
}
