package handlers

import (
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/validation"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BranchHandler struct {
	svc *services.BranchService
	log *zap.Logger
}

func NewBranchHandler(svc *services.BranchService, log *zap.Logger) *BranchHandler {
	return &BranchHandler{svc: svc, log: log}
}

func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context(), actor(r))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *BranchHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.svc.View(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}

// Update saves the whole settings form; a missing or bad rate becomes 0.
func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.svc.Update(r.Context(), actor(r), id, services.BranchSettings{
		Name:            r.FormValue("name"),
		Passcode:        r.FormValue("passcode"),
		CurrencyCode:    r.FormValue("currency_code"),
		VATMode:         r.FormValue("vat_mode"),
		VATRate:         validation.Money(r.FormValue("vat_rate"), decimal.Zero),
		CompanyTitle:    r.FormValue("company_title"),
		CompanyName:     r.FormValue("company_name"),
		CompanyAddress:  r.FormValue("company_address"),
		InvoiceTemplate: r.FormValue("invoice_template"),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, b)
}
