package gate

import "context"

// Policy defines authorization rules for a resource type.
// U is the subject type (e.g. a request-scoped actor value).
type Policy[U any] interface {
	// Can returns true if user may perform action on resource.
	// For list/create, resource may be nil (context-only check).
	Can(ctx context.Context, user U, action Action, resource any) bool
}

// Locker is implemented by policies whose resources can become immutable
// depending on their own state (e.g. a finalized document). Locked is only
// asked after Can granted access, and only for non read-only actions.
type Locker[U any] interface {
	Locked(ctx context.Context, user U, action Action, resource any) bool
}

// PolicyFunc adapts a plain function to the Policy interface.
type PolicyFunc[U any] func(ctx context.Context, user U, action Action, resource any) bool

// Can calls f.
func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, resource any) bool {
	return f(ctx, user, action, resource)
}
