// internal/models/errors.go
package models

import (
	"errors"
	"fmt"
)

var (
	// ErrRuleViolation marks an illegal action: wrong turn, inactive auction,
	// bid not strictly increasing, wrong card for the role, and similar.
	ErrRuleViolation = errors.New("rule violation")

	// ErrInsufficientFunds marks a bid, price, offer or payment above the
	// actor's money.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrPreconditionFailed marks a programmer error such as concluding an
	// auction that has not finished or ending a round that is still active.
	ErrPreconditionFailed = errors.New("precondition failed")
)

// Violationf builds an ErrRuleViolation with context.
func Violationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRuleViolation, fmt.Sprintf(format, args...))
}

// InsufficientFundsf builds an ErrInsufficientFunds with context.
func InsufficientFundsf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInsufficientFunds, fmt.Sprintf(format, args...))
}

// Preconditionf builds an ErrPreconditionFailed with context.
func Preconditionf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPreconditionFailed, fmt.Sprintf(format, args...))
}
