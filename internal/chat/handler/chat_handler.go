// Package handler exposes the conversation and message endpoints.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"stemchat/internal/chat/service"
	"stemchat/internal/common"
)

type ChatHandler struct {
	chatService service.ChatService
}

func NewChatHandler(chatService service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

type startConversationRequest struct {
	ParticipantIDs []uint64 `json:"participant_ids"`
}

type sendMessageRequest struct {
	RecipientID    uint64 `json:"recipient_id"`
	ConversationID uint64 `json:"conversation_id"`
	Content        string `json:"content"`
}

func (h *ChatHandler) StartConversation(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	conv, err := h.chatService.StartConversation(r.Context(), current.AccountID, req.ParticipantIDs)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, conv)
}

func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	current, ok := common.AccountFromContext(r.Context())
	if !ok {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}

	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.chatService.SendMessage(r.Context(), current.AccountID, req.RecipientID, req.ConversationID, req.Content)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, msg)
}

func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	messages, err := h.chatService.History(r.Context(), conversationID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, messages)
}

func (h *ChatHandler) Participants(w http.ResponseWriter, r *http.Request) {
	conversationID, err := pathID(r, "conversationID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	participants, err := h.chatService.Participants(r.Context(), conversationID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, participants)
}

func (h *ChatHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "messageID")
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.chatService.MarkRead(r.Context(), messageID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "marked read"})
}

func pathID(r *http.Request, name string) (uint64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, common.ErrInvalidArgument
	}
	return id, nil
}
