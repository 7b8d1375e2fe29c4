package game

import "fmt"

// UserError is an error that is safe to show to the player
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ApplicationError is returned when the server answered with success=false
type ApplicationError struct {
	Message string
}

func (a *ApplicationError) Error() string {
	if a.Message == "" {
		return "unknown server error"
	}

	return a.Message
}

// ValidationError is returned when a response does not have the expected shape
type ValidationError struct {
	Cause error
}

func (v *ValidationError) Error() string {
	return fmt.Sprintf("invalid server response: %v", v.Cause)
}

// Unwrap returns the cause
func (v *ValidationError) Unwrap() error {
	return v.Cause
}
