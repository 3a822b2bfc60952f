package models

// User is an account from the credential store. PasswordHash is a bcrypt hash
// and is never serialized.
type User struct {
	ID           int    `json:"id"`
	UserName     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
}

// Public returns the user without credential material.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
