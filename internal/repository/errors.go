// Package repository is the persistence gateway: the only code in the
// service that touches the database. It defines sentinel errors that
// handlers translate into HTTP outcomes, so SQL details never leak
// past this package.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update collides with
// the unique email constraint. Handlers translate it to HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrBookmarkNotFound is returned when a bookmark lookup matches no
// row visible to the caller.
var ErrBookmarkNotFound = errors.New("bookmark not found")
