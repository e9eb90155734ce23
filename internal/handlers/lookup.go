package handlers

import (
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/validation"
	"go.uber.org/zap"
)

// LookupHandler serves the form-assist endpoints: last price and customer by phone.
type LookupHandler struct {
	prices    *services.PriceBookService
	customers *services.CustomerService
	log       *zap.Logger
}

func NewLookupHandler(prices *services.PriceBookService, customers *services.CustomerService, log *zap.Logger) *LookupHandler {
	return &LookupHandler{prices: prices, customers: customers, log: log}
}

// PriceBook GET /price-book?branch_id=&category=&model_number=
// Retail staff may omit branch_id.
func (h *LookupHandler) PriceBook(w http.ResponseWriter, r *http.Request) {
	a := actor(r)
	q := r.URL.Query()
	branchID, ok := validation.ID(q.Get("branch_id"))
	if !ok {
		branchID = a.BranchID
	}
	e, err := h.prices.Lookup(r.Context(), a, branchID, q.Get("category"), q.Get("model_number"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, e)
}

// Customer GET /customers?phone=
func (h *LookupHandler) Customer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Lookup(r.Context(), actor(r), r.URL.Query().Get("phone"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, c)
}
