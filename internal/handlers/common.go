package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/auth"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/models"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/validation"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// writeError maps service errors onto HTTP statuses. The error text is the
// response's error code; unexpected errors are logged and hidden.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		log.Error("request failed", zap.Error(err))
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
		return
	}
	httpx.JSONError(w, status, err.Error(), nil)
}

// writeViolations answers 400 with the per-field problems.
func writeViolations(w http.ResponseWriter, v validation.Violations) {
	httpx.JSONError(w, http.StatusBadRequest, "invalid_input", v)
}

func actor(r *http.Request) policy.Actor {
	return auth.ActorFromContext(r.Context())
}

// pathID reads a positive numeric path value; a malformed one is a 404.
func pathID(w http.ResponseWriter, r *http.Request, name string) (uint, bool) {
	id, ok := validation.ID(r.PathValue(name))
	if !ok {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	}
	return id, ok
}

func garmentForm(r *http.Request) models.GarmentSpec {
	return models.GarmentSpec{
		ModelNumber:    r.FormValue("model_number"),
		Color:          r.FormValue("color"),
		ExtraNote:      r.FormValue("extra_note"),
		SheilaFabric:   r.FormValue("sheila_fabric"),
		HeightCM:       r.FormValue("height_cm"),
		WidthCM:        r.FormValue("width_cm"),
		LogoColor:      r.FormValue("logo_color"),
		AbayaFabric:    r.FormValue("abaya_fabric"),
		Size:           r.FormValue("size"),
		UpperWidthCM:   r.FormValue("upper_width_cm"),
		LowerWidthCM:   r.FormValue("lower_width_cm"),
		SleeveWidthCM:  r.FormValue("sleeve_width_cm"),
		SleeveHeightCM: r.FormValue("sleeve_height_cm"),
		Logo:           r.FormValue("logo"),
	}
}

// formDate parses a YYYY-MM-DD field; anything else is the zero time.
func formDate(r *http.Request, field string) time.Time {
	t, err := time.Parse(dateLayout, r.FormValue(field))
	if err != nil {
		return time.Time{}
	}
	return t
}
