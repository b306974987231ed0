package models

import "errors"

// Failure kinds shared by the services. Wrap them with fmt.Errorf("%w: ...")
// and test with errors.Is.
var (
	ErrValidation     = errors.New("invalid input")
	ErrAuthentication = errors.New("unauthenticated")
	ErrAuthorization  = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
)

// Owned is implemented by every resource that belongs to exactly one user.
type Owned interface {
	OwnerUsername() string
}
