package services

import (
	"context"
	"errors"
	"fmt"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"gorm.io/gorm"
)

// Errors returned by the services. Callers test them with errors.Is.
var (
	ErrNotFound        = errors.New("not_found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrInvalidInput    = errors.New("invalid_input")

	// ErrInvoiceLocked and ErrOrderLocked are access-denied outcomes, not validation errors.
	ErrInvoiceLocked = fmt.Errorf("invoice_finalized: %w", ErrForbidden)
	ErrOrderLocked   = fmt.Errorf("order_locked: %w", ErrForbidden)
)

// guard wraps the access gate and translates its errors into service errors.
type guard struct {
	gate *gate.Gate[policy.Actor]
}

func (g guard) authorize(ctx context.Context, a policy.Actor, action gate.Action, resourceType string, resource any) error {
	err := g.gate.Authorize(ctx, a, action, resourceType, resource)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gate.ErrUnauthenticated):
		return ErrUnauthenticated
	case errors.Is(err, gate.ErrLocked):
		switch resourceType {
		case policy.ResourceInvoice:
			return ErrInvoiceLocked
		case policy.ResourceOrder:
			return ErrOrderLocked
		}
		return ErrForbidden
	default:
		return fmt.Errorf("%s %s: %w", action, resourceType, ErrForbidden)
	}
}

// notFound maps gorm's missing-row error onto ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}
