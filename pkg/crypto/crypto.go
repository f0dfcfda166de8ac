package crypto

import "golang.org/x/crypto/bcrypt"

// dummyHash is a real bcrypt hash compared against when a login names an
// unknown email, so the unknown-email and wrong-password paths take the
// same time and do not leak which one happened.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnCompare runs a bcrypt comparison against the dummy hash and discards
// the result. Call it on the unknown-email login path.
func BurnCompare(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
