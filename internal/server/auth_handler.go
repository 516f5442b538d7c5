package server

import (
	"net/http"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/server/middleware"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

// AuthHandler handles staff registration and login.
type AuthHandler struct {
	server      *Server
	userService *UserService
	jwtService  *JWTService
}

// NewAuthHandler creates an AuthHandler that writes responses through s.
func NewAuthHandler(s *Server, userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{server: s, userService: userService, jwtService: jwtService}
}

// Register handles staff registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !h.server.decodeValid(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		h.server.errorResponse(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusCreated, user)
}

// Login handles staff login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !h.server.decodeValid(w, r, &req) {
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		h.server.errorResponse(w, r, err)
		return
	}
	h.respondWithToken(w, r, http.StatusOK, user)
}

// Me returns the authenticated staff account.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	staffID, err := middleware.GetStaffID(r)
	if err != nil {
		h.server.errorResponse(w, r, err)
		return
	}
	user, err := h.userService.Get(r.Context(), staffID)
	if err != nil {
		h.server.errorResponse(w, r, err)
		return
	}
	h.server.ok(w, http.StatusOK, "user", user)
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, r *http.Request, status int, user *types.StaffUser) {
	token, err := h.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		h.server.errorResponse(w, r, err)
		return
	}
	h.server.jsonResponse(w, status, types.LoginResponse{Success: true, User: user, Token: token})
}
