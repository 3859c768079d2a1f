package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword bcrypt-hashes a registration password.  Cost comes from
// BCRYPT_COST so staging can run cheap and production strong.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether plain matches the stored hash.  bcrypt's
// comparison is constant-time; a false return covers both wrong password
// and malformed hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
