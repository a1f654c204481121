package registry

import (
	"fmt"
	"math/big"
)

// Validation failed for a single field, nothing was applied
type ValidationError struct {
	Field  string
	Reason string
}

func (self *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", self.Field, self.Reason)
}

// Uniqueness violated for a slug, account or category name
type ConflictError struct {
	Field string
	Value string
}

func (self *ConflictError) Error() string {
	return fmt.Sprintf("%s already registered: %s", self.Field, self.Value)
}

// Caller lacks the required role or ownership
type AccessDeniedError struct {
	Caller string
}

func (self *AccessDeniedError) Error() string {
	return fmt.Sprintf("access denied for %s", self.Caller)
}

// Attached deposit doesn't cover the listing fee
type PaymentRequiredError struct {
	Required *big.Int
	Attached *big.Int
}

func (self *PaymentRequiredError) Error() string {
	return fmt.Sprintf("listing fee required: %s attached, %s required", self.Attached, self.Required)
}

// Attempt to change a field that is fixed after creation
type ImmutableFieldError struct {
	Field string
}

func (self *ImmutableFieldError) Error() string {
	return fmt.Sprintf("field %s cannot be changed", self.Field)
}

// Unknown id, slug, account or category
type NotFoundError struct {
	Kind string
	Key  string
}

func (self *NotFoundError) Error() string {
	return fmt.Sprintf("no %s: %s", self.Kind, self.Key)
}
