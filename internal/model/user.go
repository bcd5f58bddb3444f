package model

import "time"

// User mirrors the `users` table. The JSON tags define the outbound
// representation; the password hash is tagged out so handlers can
// return the struct directly without ever serializing the hash.
//
// FirstName and LastName are pointers because the columns are nullable
// and the API distinguishes "not set" (null) from an empty string.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    *string   `json:"firstName"`
	LastName     *string   `json:"lastName"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate carries a partial profile edit. Nil means "leave the
// column alone"; a non-nil pointer overwrites it.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Email == nil && u.FirstName == nil && u.LastName == nil
}
