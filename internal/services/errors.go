// internal/services/errors.go
package services

import "errors"

// Failure taxonomy shared by handlers. Services wrap these sentinels with
// context via fmt.Errorf("...: %w", ...); handlers classify with errors.Is.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidTransition = errors.New("invalid order status transition")
)
