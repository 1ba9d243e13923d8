package account

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"stemchat/internal/common"
	"stemchat/internal/dbmongo"
)

// Handler wires the account endpoints onto the router.
type Handler struct {
	service AccountService
	avatars *dbmongo.AvatarStorage
}

func NewHandler(service AccountService, avatars *dbmongo.AvatarStorage) *Handler {
	return &Handler{service: service, avatars: avatars}
}

type registerRequest struct {
	Handle   string `json:"handle"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type authResponse struct {
	Token     string `json:"token"`
	AccountID uint64 `json:"account_id"`
	Handle    string `json:"handle"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account, token, err := h.service.Register(r.Context(), req.Handle, req.Email, req.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, authResponse{
		Token:     token,
		AccountID: account.AccountID,
		Handle:    account.Handle,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	account, token, err := h.service.Login(r.Context(), req.Handle, req.Password)
	if err != nil {
		common.WriteJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid handle or password"})
		return
	}

	common.WriteJSON(w, http.StatusOK, authResponse{
		Token:     token,
		AccountID: account.AccountID,
		Handle:    account.Handle,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	account, err := h.service.Profile(r.Context(), current.AccountID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, account)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), current.AccountID, req.Email, req.Bio); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "profile updated"})
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.ChangePassword(r.Context(), current.AccountID, req.CurrentPassword, req.NewPassword); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
}

// UploadAvatar accepts a multipart form with an "avatar" part, stores it in
// GridFS, and records the file id as the account's avatar_path.
func (h *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		http.Error(w, "avatar file required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	uploaded, err := h.avatars.Upload(r.Context(), header.Filename, contentType, current.AccountID, file)
	if err != nil {
		log.Printf("avatar upload failed: %v", err)
		http.Error(w, "avatar upload failed", http.StatusInternalServerError)
		return
	}

	if err := h.service.SetAvatar(r.Context(), current.AccountID, uploaded.ID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, uploaded)
}

// ServeAvatar streams an avatar image out of GridFS.
func (h *Handler) ServeAvatar(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fileID := vars["fileID"]

	reader, avatar, err := h.avatars.Download(r.Context(), fileID)
	if err != nil {
		http.Error(w, "avatar not found", http.StatusNotFound)
		return
	}

	contentType := avatar.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", avatar.Size))

	if _, err := io.Copy(w, reader); err != nil {
		log.Printf("error streaming avatar: %v", err)
	}
}
