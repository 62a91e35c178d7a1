package auth

import "errors"

// Error kinds surfaced by the auth service. The HTTP boundary maps these to
// status codes; none of them is retried internally.
var (
	// ErrRegistrationDisabled is returned when self-registration is turned off.
	ErrRegistrationDisabled = errors.New("user registration disabled")
	// ErrUsernameTaken is returned when the requested username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for a failed login or a wrong current
	// password. It never discloses which part was wrong.
	ErrInvalidCredentials = errors.New("username or password is incorrect")
	// ErrSelfDelete is returned when an admin tries to delete their own
	// account through the admin path.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrNotFound is returned when the target user does not exist.
	ErrNotFound = errors.New("user with this id is not found")
)
