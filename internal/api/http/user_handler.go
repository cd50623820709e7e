package http

import (
	"net/http"

	"homestay-backend/internal/domain"
	"homestay-backend/internal/service"

	"github.com/gorilla/mux"
)

const maxFormMemory = 32 << 20

type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type loginRequest struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type loginResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

type deviceRequest struct {
	Token string `json:"token"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, err := h.users.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, "User registered successfully", user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	user, token, err := h.users.Login(r.Context(), in.UserName, in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Login successful", loginResponse{User: user, AccessToken: token})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeList(w, users, "No users found")
}

func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Success", user)
}

// EditProfile reads a multipart form with optional email, user_name and
// picture parts.
func (h *UserHandler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}

	in := service.EditProfileInput{
		Email:    r.FormValue("email"),
		UserName: r.FormValue("user_name"),
	}
	var picture *service.Upload
	file, header, err := r.FormFile("picture")
	switch err {
	case nil:
		defer file.Close()
		picture = &service.Upload{Filename: header.Filename, Content: file}
	case http.ErrMissingFile:
	default:
		badRequest(w, "invalid picture upload")
		return
	}

	user, changed, err := h.users.EditProfile(r.Context(), userID, in, picture)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !changed {
		writeOK(w, "No changes submitted", user)
		return
	}
	writeOK(w, "Profile updated successfully", user)
}

func (h *UserHandler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in deviceRequest
	if err := decodeJSON(r, &in); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if err := h.users.RegisterDevice(r.Context(), userID, in.Token); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "Device registered", nil)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := actingUser(r, mux.Vars(r)["userId"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.users.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w, "User deleted successfully", nil)
}
