package handlers

import (
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type InvoiceHandler struct {
	svc *services.InvoiceService
	log *zap.Logger
}

func NewInvoiceHandler(svc *services.InvoiceService, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{svc: svc, log: log}
}

type invoiceResponse struct {
	*models.Invoice
	Editable bool `json:"editable"`
}

type finalizeResponse struct {
	Invoice *models.Invoice `json:"invoice"`
	Order   *models.Order   `json:"order,omitempty"`
}

func (h *InvoiceHandler) respond(w http.ResponseWriter, r *http.Request, status int, inv *models.Invoice) {
	httpx.JSON(w, status, invoiceResponse{Invoice: inv, Editable: h.svc.CanEdit(r.Context(), actor(r), inv)})
}

// Create POST /invoices. Retail staff may omit branch_id.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	branchID := a.BranchID
	if raw := r.FormValue("branch_id"); raw != "" || !a.IsRetail() {
		v := validation.Violations{}
		branchID = validation.RequiredID("branch_id", raw, v)
		if !v.Empty() {
			writeViolations(w, v)
			return
		}
	}
	inv, err := h.svc.CreateInvoice(r.Context(), a, branchID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.respond(w, r, http.StatusCreated, inv)
}

func (h *InvoiceHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.svc.GetInvoice(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK, inv)
}

func (h *InvoiceHandler) SaveHeader(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.svc.SaveHeader(r.Context(), actor(r), id, services.HeaderInput{
		CustomerName:  r.FormValue("customer_name"),
		CustomerPhone: r.FormValue("customer_phone"),
		TitleOverride: r.FormValue("title_override"),
		Terms:         r.FormValue("terms"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK, inv)
}

func (h *InvoiceHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.AddItem(r.Context(), actor(r), id, services.ItemInput{
		ItemType:        r.FormValue("item_type"),
		Category:        r.FormValue("category"),
		GarmentSpec:     garmentForm(r),
		Quantity:        validation.Money(r.FormValue("quantity"), decimal.NewFromInt(1)),
		UnitPrice:       validation.Money(r.FormValue("unit_price"), decimal.Zero),
		DiscountAmount:  validation.Money(r.FormValue("discount_amount"), decimal.Zero),
		DiscountPercent: validation.Money(r.FormValue("discount_percent"), decimal.Zero),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *InvoiceHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "item_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteItem(r.Context(), actor(r), id, itemID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) Recalculate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, err := h.svc.Recalculate(r.Context(), actor(r), id,
		validation.Money(r.FormValue("discount_amount"), decimal.Zero),
		validation.Money(r.FormValue("discount_percent"), decimal.Zero),
	)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	h.respond(w, r, http.StatusOK, inv)
}

func (h *InvoiceHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	inv, order, err := h.svc.Finalize(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, finalizeResponse{Invoice: inv, Order: order})
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteInvoice(r.Context(), actor(r), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	amount := validation.Money(r.FormValue("amount"), decimal.Zero)
	v := validation.Violations{}
	validation.Positive("amount", amount, v)
	if !v.Empty() {
		writeViolations(w, v)
		return
	}
	p, err := h.svc.RecordPayment(r.Context(), actor(r), id, services.PaymentInput{
		PaymentDate: formDate(r, "payment_date"),
		Method:      r.FormValue("method"),
		Amount:      amount,
		Note:        r.FormValue("note"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}
