package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/export"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/validation"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportLimit caps the rows of one workbook.
const exportLimit = 500

type OrderHandler struct {
	svc      *services.OrderService
	log      *zap.Logger
	workbook func([]models.Order) (*excelize.File, error)
}

func NewOrderHandler(svc *services.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log, workbook: export.OrdersWorkbook}
}

type orderResponse struct {
	*models.Order
	Editable bool `json:"editable"`
}

type orderListResponse struct {
	Orders []models.Order `json:"orders"`
	Total  int64          `json:"total"`
	Page   int            `json:"page"`
	Limit  int            `json:"limit"`
}

func filterFromQuery(r *http.Request) services.OrderFilter {
	q := r.URL.Query()
	return services.OrderFilter{
		Status: q.Get("status"),
		Branch: q.Get("branch"),
		Query:  q.Get("q"),
	}
}

func orderForm(r *http.Request) (services.OrderInput, validation.Violations) {
	in := services.OrderInput{
		OrderNo:   r.FormValue("order_no"),
		Branch:    r.FormValue("branch"),
		Status:    r.FormValue("status"),
		Notes:     r.FormValue("notes"),
		OrderDate: formDate(r, "order_date"),
	}
	v := validation.Violations{}
	validation.Required("order_no", in.OrderNo, v)
	return in, v
}

// List GET /orders?status=&branch=&q=&page=
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	page := validation.Int(r.URL.Query().Get("page"), 1)
	if page < 1 {
		page = 1
	}
	limit := 50
	f := filterFromQuery(r)
	f.Limit, f.Offset = limit, (page-1)*limit

	orders, total, err := h.svc.ListOrders(r.Context(), actor(r), f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderListResponse{Orders: orders, Total: total, Page: page, Limit: limit})
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, v := orderForm(r)
	if !v.Empty() {
		writeViolations(w, v)
		return
	}
	o, err := h.svc.CreateOrder(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, orderResponse{Order: o, Editable: h.svc.CanEdit(r.Context(), actor(r), o)})
}

func (h *OrderHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	o, err := h.svc.GetOrder(r.Context(), actor(r), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: o, Editable: h.svc.CanEdit(r.Context(), actor(r), o)})
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	in, v := orderForm(r)
	if !v.Empty() {
		writeViolations(w, v)
		return
	}
	o, err := h.svc.UpdateOrder(r.Context(), actor(r), id, in)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusOK, orderResponse{Order: o, Editable: h.svc.CanEdit(r.Context(), actor(r), o)})
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOrder(r.Context(), actor(r), id); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrderHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	item, err := h.svc.AddOrderItem(r.Context(), actor(r), id, services.GarmentInput{
		Category:    r.FormValue("category"),
		GarmentSpec: garmentForm(r),
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, item)
}

func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(w, r, "item_id")
	if !ok {
		return
	}
	if err := h.svc.DeleteOrderItem(r.Context(), actor(r), id, itemID); err != nil {
		writeError(w, h.log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export GET /orders/export.xlsx with the same filters as List.
func (h *OrderHandler) Export(w http.ResponseWriter, r *http.Request) {
	f := filterFromQuery(r)
	f.Limit = exportLimit
	orders, _, err := h.svc.ListOrders(r.Context(), actor(r), f)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	wb, err := h.workbook(orders)
	if err != nil {
		writeError(w, h.log, fmt.Errorf("build orders workbook: %w", err))
		return
	}
	defer wb.Close()

	httpx.Attachment(w, export.ContentType, export.Filename(time.Now().Format(dateLayout)))
	if err := wb.Write(w); err != nil {
		h.log.Error("write orders workbook", zap.Error(err))
	}
}
