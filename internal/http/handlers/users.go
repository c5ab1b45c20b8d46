package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/eventos-be/internal/auth"
	"github.com/hongminglow/eventos-be/internal/http/respond"
	"github.com/hongminglow/eventos-be/internal/models"
	"github.com/hongminglow/eventos-be/internal/models/dto"
	"github.com/hongminglow/eventos-be/internal/service"
	"github.com/hongminglow/eventos-be/internal/session"
)

// UsersHandler exposes profile update and user deletion by id.
type UsersHandler struct {
	admin   *service.UserAdmin
	cookies *session.CookieManager
	tokens  *auth.TokenInspector
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(admin *service.UserAdmin, cookies *session.CookieManager, tokens *auth.TokenInspector) *UsersHandler {
	return &UsersHandler{admin: admin, cookies: cookies, tokens: tokens}
}

// Register attaches user routes to r.
func (h *UsersHandler) Register(r chi.Router) {
	r.Put("/users/{id}", h.handleUpdate)
	r.Delete("/users/{id}", h.handleDelete)
}

func (h *UsersHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respond.AppError(w, r, err)
		return
	}

	err := h.admin.UpdateProfile(r.Context(), chi.URLParam(r, "id"), h.requester(r), models.ProfileChanges{
		Name:  req.Name,
		Phone: req.Phone,
		Role:  req.Role,
	})
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "user updated successfully")
}

func (h *UsersHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.Message(w, http.StatusOK, "user deleted successfully")
}

// requester returns the subject of the caller's token without contacting the
// provider, or "" when there is none.
func (h *UsersHandler) requester(r *http.Request) string {
	token := h.cookies.Read(r)
	if token == "" || h.tokens == nil {
		return ""
	}
	claims, err := h.tokens.Inspect(token)
	if err != nil {
		return ""
	}
	return claims.Subject
}
