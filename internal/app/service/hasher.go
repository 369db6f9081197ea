package service

import "golang.org/x/crypto/bcrypt"

// PasswordHasher — внешний коллаборатор для хеширования паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher — реализация на bcrypt
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
