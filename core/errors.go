package core

import "errors"

// Error kinds shared by the service layer. Handlers classify results with
// errors.Is and map each kind to a transport status code.
var (
	// ErrValidation is returned when a required field is missing or empty.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when an id or username does not resolve.
	ErrNotFound = errors.New("target not found")
	// ErrPermissionDenied is returned when the actor is not the resource owner.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrAlreadyExists is returned on a duplicate username.
	ErrAlreadyExists = errors.New("already exists")
	// ErrUnauthorized covers both unknown username and wrong password so the
	// response does not reveal which usernames exist.
	ErrUnauthorized = errors.New("invalid credentials")
)
