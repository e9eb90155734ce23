package gate

// Action describes the kind of operation an actor wants to perform.
type Action string

const (
	ActionView     Action = "view"
	ActionList     Action = "list"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionFinalize Action = "finalize"
)

// ReadOnly reports whether the action leaves state untouched.
// Lockers are only consulted for actions that are not read-only.
func (a Action) ReadOnly() bool {
	return a == ActionView || a == ActionList
}
