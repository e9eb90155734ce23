package policy

import (
	"context"

	gate "github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/go-gate"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
)

// Resource types registered on the gate.
const (
	ResourceInvoice = "invoice"
	ResourceOrder   = "order"
	ResourceBranch  = "branch"
)

// ActionPay records a payment. It is allowed on finalized invoices.
const ActionPay gate.Action = "pay"

// BranchScope stands in for a resource that does not exist yet, e.g. the
// branch an invoice or order is about to be created in.
type BranchScope uint

// inBranch reports whether a resource belongs to branch id.
func inBranch(resource any, id uint) bool {
	switch r := resource.(type) {
	case *models.Invoice:
		return r.BranchID == id
	case *models.Order:
		return r.InBranch(id)
	case *models.Branch:
		return r.ID == id
	case BranchScope:
		return uint(r) == id
	}
	return false
}

// retailScoped is the shared retail rule: lists are filtered by the caller,
// everything else must belong to the actor's branch.
func retailScoped(a Actor, action gate.Action, resource any) bool {
	if !a.IsRetail() {
		return false
	}
	if resource == nil {
		return action == gate.ActionList
	}
	return inBranch(resource, a.BranchID)
}

// InvoicePolicy: factory may do anything, retail only within its branch.
// Finalized invoices are locked for everyone except for recording payments.
type InvoicePolicy struct{}

func (InvoicePolicy) Can(_ context.Context, a Actor, action gate.Action, resource any) bool {
	if a.IsFactory() {
		return true
	}
	return retailScoped(a, action, resource)
}

func (InvoicePolicy) Locked(_ context.Context, _ Actor, action gate.Action, resource any) bool {
	inv, ok := resource.(*models.Invoice)
	return ok && inv.IsFinalized() && action != ActionPay
}

// OrderPolicy: factory may do anything at any status; retail only within its
// branch and only while the order is a draft.
type OrderPolicy struct{}

func (OrderPolicy) Can(_ context.Context, a Actor, action gate.Action, resource any) bool {
	if a.IsFactory() {
		return true
	}
	return retailScoped(a, action, resource)
}

func (OrderPolicy) Locked(_ context.Context, a Actor, _ gate.Action, resource any) bool {
	o, ok := resource.(*models.Order)
	return ok && !a.IsFactory() && !o.IsDraft()
}

// canBranch: factory manages every slot; retail may only look at its own.
func canBranch(_ context.Context, a Actor, action gate.Action, resource any) bool {
	if a.IsFactory() {
		return true
	}
	if !action.ReadOnly() || resource == nil {
		return false
	}
	return retailScoped(a, action, resource)
}

// NewAccessGate returns a gate with the invoice, order and branch policies registered.
func NewAccessGate() *gate.Gate[Actor] {
	g := gate.NewGate[Actor]()
	g.Register(ResourceInvoice, InvoicePolicy{})
	g.Register(ResourceOrder, OrderPolicy{})
	g.Register(ResourceBranch, gate.PolicyFunc[Actor](canBranch))
	return g
}
