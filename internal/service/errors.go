package service

import "errors"

var (
	ErrMissingRequiredAttribute = errors.New("missing required attribute")
	ErrVariantNotFound          = errors.New("variant not found")
	ErrInvalidAmount            = errors.New("invalid order amount")
	ErrEmptyOrder               = errors.New("cart is empty, nothing to order")
)

// TransactionError reports a storage failure inside an atomic unit of work.
// The unit has been rolled back when this is returned.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was raised before touching storage.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingRequiredAttribute) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyOrder)
}
