package service

import (
	"errors"

	"github.com/mbolis/quick-form/model"
)

// NotificationError is attached to a successful submission when the notice
// could not be delivered. It never fails the submission.
type NotificationError struct {
	// TimedOut is set when the notifier did not answer in time; delivery may
	// still have happened.
	TimedOut bool
	Err      error
}

func (e *NotificationError) Error() string {
	if e.TimedOut {
		return "notification: timed out: " + e.Err.Error()
	}
	return "notification: " + e.Err.Error()
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}

// persistenceErr wraps unexpected store failures; sentinel errors and
// errors the store already wrapped pass through.
func persistenceErr(op string, err error) error {
	var pe *model.PersistenceError
	if errors.As(err, &pe) || errors.Is(err, model.ErrNotFound) || errors.Is(err, model.ErrConflict) {
		return err
	}
	return &model.PersistenceError{Op: op, Err: err}
}
