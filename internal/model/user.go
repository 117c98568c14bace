package model

import "time"

// User is a dashboard account. Sign-in is by email + password (bcrypt hash
// in PasswordHash) or by GitHub OAuth mapped onto the same email address.
//
// PasswordHash never leaves the server — the json:"-" tag excludes it from
// any serialized form. It may be empty for accounts that only ever sign in
// through GitHub.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
