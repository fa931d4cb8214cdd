package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// HashCode hashes a confirmation code before it is stored
func HashCode(code string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckCodeHash compares a submitted code against the stored hash
func CheckCodeHash(code, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(code))
	return err == nil
}
