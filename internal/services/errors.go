package services

import (
	"errors"
	"fmt"
)

// ValidationError marks bad, missing or oversized input. Handlers answer
// these with 400 and the message verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErr(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrFamilyNotFound     = errors.New("family not found")
	ErrInviteCodeNotFound = errors.New("invalid invite code")
	ErrAlreadyInFamily    = errors.New("you are already part of a family")
	ErrAlreadyAdmin       = errors.New("user is already an admin")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrAlbumNotFound      = errors.New("album not found")
)
