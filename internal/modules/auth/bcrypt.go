package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is compared against when no user matches, so an unknown email
// costs the same bcrypt work as a wrong password.
var dummyHash = func() string {
	h, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(h)
}()

// BcryptVerifier checks passwords against bcrypt hashes. A malformed hash
// counts as a mismatch.
type BcryptVerifier struct{}

func (BcryptVerifier) Compare(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
