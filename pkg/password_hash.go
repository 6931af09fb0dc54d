package pkg

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is above bcrypt.DefaultCost on purpose, hashing
// happens only on register and login
const passwordHashCost = 14

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	return BytesToString(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
