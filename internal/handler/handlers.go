// Package handler provides HTTP request handlers for the user directory.
// Handlers only parse headers and bodies into typed requests and serialize
// the response envelope; authorization and tenancy live in the service.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/devrev/userdir/internal/apperrors"
	"github.com/devrev/userdir/internal/model"
	"github.com/devrev/userdir/internal/service"
)

// Request headers carrying the authenticated claims, set by an upstream
// gateway.
const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderUserRole = "X-User-Role"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	users        *service.UserService
	errorHandler *apperrors.Handler
	logger       *zap.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(users *service.UserService, errorHandler *apperrors.Handler, logger *zap.Logger) *Handlers {
	return &Handlers{
		users:        users,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// CreateUser handles POST /v1/users requests.
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body model.CreateUser
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.errorHandler.WriteError(w, r, apperrors.InvalidBody(err))
		return
	}

	user, err := h.users.Create(r.Context(), r.Header.Get(HeaderUserRole), r.Header.Get(HeaderTenantID), body)
	if err != nil {
		h.errorHandler.WriteError(w, r, err)
		return
	}

	h.errorHandler.WriteSuccess(w, "User created successfully", user)
}

// ListUsers handles GET /v1/users requests.
func (h *Handlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context(), r.Header.Get(HeaderUserRole), r.Header.Get(HeaderTenantID))
	if err != nil {
		h.errorHandler.WriteError(w, r, err)
		return
	}

	h.errorHandler.WriteSuccess(w, "Users retrieved successfully", users)
}

// UpdateUser handles PUT /v1/users/{user_id} requests.
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var patch model.UserPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.errorHandler.WriteError(w, r, apperrors.InvalidBody(err))
		return
	}

	user, err := h.users.Update(r.Context(), r.Header.Get(HeaderUserRole), r.Header.Get(HeaderTenantID), userID, patch)
	if err != nil {
		h.errorHandler.WriteError(w, r, err)
		return
	}

	h.errorHandler.WriteSuccess(w, "User updated successfully", user)
}

// DeleteUser handles DELETE /v1/users/{user_id} requests.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	err := h.users.Delete(r.Context(), r.Header.Get(HeaderUserRole), r.Header.Get(HeaderTenantID), userID)
	if err != nil {
		h.errorHandler.WriteError(w, r, err)
		return
	}

	h.errorHandler.WriteSuccess(w, "User deleted successfully", nil)
}
