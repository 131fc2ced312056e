package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User is the model for the 'users' table. It only stores credentials;
// no endpoint reads or writes it yet.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password"`
}

// Password wraps a bcrypt hash.
type Password struct {
	Hash string
}

// Set replaces the hash with one for plaintextPassword.
func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	return nil
}

// Matches reports whether plaintextPassword hashes to p. Only bcrypt
// failures other than a mismatch are returned as errors.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// NewUser hashes plaintext and returns a row ready to insert.
func NewUser(username, plaintext string) (*User, error) {
	var pw Password
	if err := pw.Set(plaintext); err != nil {
		return nil, err
	}
	return &User{Username: username, PasswordHash: pw.Hash}, nil
}
