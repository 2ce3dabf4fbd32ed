package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/dto"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
)

// MessageHandler обрабатывает запросы чата команды
type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

// NewMessageHandler создает новый handler для сообщений
func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{messageUseCase: messageUseCase}
}

// SendMessage обрабатывает POST /api/teams/{teamID}/messages
func (h *MessageHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	message, err := h.messageUseCase.SendMessage(r.Context(), userID, teamID, req.Content, req.Type)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToMessageDTO(message))
}

// ListMessages обрабатывает GET /api/teams/{teamID}/messages
func (h *MessageHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	sinceID := queryInt64(r, "since_id")
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 50)

	result, err := h.messageUseCase.ListMessages(r.Context(), userID, teamID, sinceID, page, limit)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	list := make([]dto.MessageDTO, 0, len(result.List))
	for _, view := range result.List {
		list = append(list, dto.ToMessageDTO(view))
	}

	respondJSON(w, http.StatusOK, dto.MessageListResponse{List: list, Total: result.Total})
}
