package handlers

import (
	"net/http"

	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/auth"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/httpx"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/policy"
	"github.com/azizkreidie-wq/AKBROS-FACTORY-RETAIL-SOLUTION/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	sessions      *auth.Sessions
	branches      *services.BranchService
	adminPasscode string
	log           *zap.Logger
}

// NewAuthHandler wires the login endpoints. An empty adminPasscode disables
// factory login.
func NewAuthHandler(sessions *auth.Sessions, branches *services.BranchService, adminPasscode string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, branches: branches, adminPasscode: adminPasscode, log: log}
}

type sessionResponse struct {
	Role       policy.Role `json:"role"`
	BranchID   uint        `json:"branch_id,omitempty"`
	BranchName string      `json:"branch_name,omitempty"`
}

// FactoryLogin POST /login/factory
func (h *AuthHandler) FactoryLogin(w http.ResponseWriter, r *http.Request) {
	if !auth.PasscodeEqual(h.adminPasscode, r.FormValue("passcode")) {
		h.log.Warn("factory login rejected", zap.String("remote", r.RemoteAddr))
		httpx.JSONError(w, http.StatusUnauthorized, "wrong_passcode", nil)
		return
	}
	a := policy.Factory()
	h.sessions.Create(w, a)
	httpx.JSON(w, http.StatusOK, sessionResponse{Role: a.Role})
}

// BranchLogin POST /login/branches/{id}
func (h *AuthHandler) BranchLogin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	b, err := h.branches.ClaimSlot(r.Context(), id, r.FormValue("passcode"), r.FormValue("name"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	a := policy.Retail(b.ID)
	h.sessions.Create(w, a)
	h.log.Info("branch login", zap.Uint("branch_id", b.ID))
	httpx.JSON(w, http.StatusOK, sessionResponse{Role: a.Role, BranchID: b.ID, BranchName: b.DisplayName()})
}

// Logout POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
