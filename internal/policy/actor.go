// Package policy defines who may act on invoices, orders and branches.
//
// Every core operation receives an explicit Actor; there is no ambient
// session state below the HTTP layer.
package policy

// Role distinguishes factory staff from branch (retail) staff.
type Role string

const (
	RoleFactory Role = "factory"
	RoleRetail  Role = "retail"
)

// Actor is the request-scoped identity passed into every service call.
// The zero Actor is unauthenticated.
type Actor struct {
	Role     Role
	BranchID uint
}

// Factory returns the unrestricted factory actor.
func Factory() Actor { return Actor{Role: RoleFactory} }

// Retail returns an actor bound to one branch.
func Retail(branchID uint) Actor { return Actor{Role: RoleRetail, BranchID: branchID} }

// IsFactory reports whether a is the factory role.
func (a Actor) IsFactory() bool { return a.Role == RoleFactory }

// IsRetail reports whether a is a retail actor bound to a branch.
func (a Actor) IsRetail() bool { return a.Role == RoleRetail && a.BranchID != 0 }

// Authenticated reports whether a is a usable identity.
func (a Actor) Authenticated() bool { return a.IsFactory() || a.IsRetail() }
