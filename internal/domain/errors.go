package domain

import "fmt"

// NotFoundError is returned when the repository metadata lookup reports 404.
type NotFoundError struct {
	Owner string
	Repo  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Repository %q not found", e.Owner+"/"+e.Repo)
}

// UserNotFoundError is returned when a user lookup reports 404.
type UserNotFoundError struct {
	Login string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User %q not found", e.Login)
}

// RateLimitError is returned when GitHub refuses the request as forbidden or rate limited.
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return "API rate limit exceeded or repository is private"
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// TransientFetchError covers every other failure of a fatal lookup.
type TransientFetchError struct {
	Err error
}

func (e *TransientFetchError) Error() string {
	return "Failed to fetch repository data. Please try again."
}

func (e *TransientFetchError) Unwrap() error { return e.Err }
