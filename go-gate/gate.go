// Package gate provides a Laravel-inspired Gate/Policy authorization registry.
// The Gate maps resource type names to policies; each Policy decides whether a
// subject may act on a resource, and may additionally report that a resource
// is locked against mutation. The package has no dependency on domain models.
//
// The package uses generics so the subject can be any comparable value, for
// instance a small struct carrying a role and a scope id.
package gate

import "context"

// Gate is the central authorization checkpoint.
// U is the subject type; its zero value means "nobody is signed in".
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a given resource type (e.g. "invoice").
// Overwrites any existing policy for that type.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize checks authorization and returns an error if denied:
//   - ErrUnauthenticated for the zero-value subject,
//   - ErrNoPolicyDefined if resourceType has no registered policy,
//   - ErrUnauthorized if the policy refuses the action,
//   - ErrLocked if the policy is a Locker and reports the resource locked.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthenticated
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	if resource != nil && !action.ReadOnly() {
		if l, ok := p.(Locker[U]); ok && l.Locked(ctx, user, action, resource) {
			return ErrLocked
		}
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanMutate reports whether user may change resource right now: the policy
// grants an update and the resource is not locked.
func (g *Gate[U]) CanMutate(ctx context.Context, user U, resourceType string, resource any) bool {
	return g.Can(ctx, user, ActionUpdate, resourceType, resource)
}
