package checkout

import (
	"errors"
	"fmt"
)

// FailureMessage is the only message shown to the user when checkout fails.
const FailureMessage = "Failed to process your order. Please try again."

var ErrInProgress = errors.New("checkout already in progress")

// RedirectError reports that a precondition sent the user elsewhere before
// any endpoint was called.
type RedirectError struct {
	Gate Gate
}

func (e *RedirectError) Error() string {
	return fmt.Sprintf("checkout unavailable: %s", e.Gate)
}

// FailedError wraps the cause of a failed attempt. Its message is always
// FailureMessage; the cause is kept for logs and errors.Is.
type FailedError struct {
	Stage State
	Err   error
}

func (e *FailedError) Error() string { return FailureMessage }

func (e *FailedError) Unwrap() error { return e.Err }

var errPaymentNotSuccessful = errors.New("payment not successful")
