package booking

import (
	"errors"
	"fmt"
)

var (
	ErrProcessing       = errors.New("payment is being processed")
	ErrNoPreviousStep   = errors.New("already at the first step")
	ErrNoNextStep       = errors.New("already at the last step")
	ErrResetNotAllowed  = errors.New("a new booking can only be started from the confirmation step")
	ErrAlreadySubmitted = errors.New("booking already submitted")
	ErrWrongStep        = errors.New("action not available at the current step")
	ErrUnknownProduct   = errors.New("unknown product")
	ErrUnknownField     = errors.New("unknown contact field")
	ErrSubmissionFailed = errors.New("booking submission failed")
)

// StepError is returned when the current step is not satisfied and the wizard
// refuses to advance. Fields is only set for the contact step.
type StepError struct {
	Code   string
	Step   Step
	Reason string
	Fields map[string]string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d: %s", e.Code, e.Step, e.Reason)
}

func newStepError(step Step, reason string, fields map[string]string) error {
	return &StepError{
		Code:   "stepIncomplete",
		Step:   step,
		Reason: reason,
		Fields: fields,
	}
}
