package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Markus2025/nottinghamdemo/internal/transport/http/dto"
	"github.com/Markus2025/nottinghamdemo/internal/usecase"
)

// TeamHandler обрабатывает запросы жизненного цикла и чтения команд
type TeamHandler struct {
	teamUseCase  *usecase.TeamUseCase
	queryUseCase *usecase.TeamQueryUseCase
}

// NewTeamHandler создает новый handler для команд
func NewTeamHandler(teamUseCase *usecase.TeamUseCase, queryUseCase *usecase.TeamQueryUseCase) *TeamHandler {
	return &TeamHandler{
		teamUseCase:  teamUseCase,
		queryUseCase: queryUseCase,
	}
}

// CreateTeam обрабатывает POST /api/teams
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	if req.PropertyID < 1 {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "property_id is required")
		return
	}

	team, err := h.teamUseCase.CreateTeam(r.Context(), userID, req.PropertyID, req.Description)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTeamDTO(team))
}

// ListTeams обрабатывает GET /api/teams
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		status = "active"
	}
	mine := r.URL.Query().Get("type") == "my"
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.queryUseCase.ListTeams(r.Context(), userID, status, mine, page, limit)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	list := make([]dto.TeamDTO, 0, len(result.List))
	for _, view := range result.List {
		list = append(list, dto.ToTeamDTO(view))
	}

	respondJSON(w, http.StatusOK, dto.TeamListResponse{List: list, Total: result.Total})
}

// GetMyTeam обрабатывает GET /api/teams/my
func (h *TeamHandler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	team, err := h.queryUseCase.GetMyTeam(r.Context(), userID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	if team == nil {
		// Пользователь не состоит ни в одной команде
		respondJSON(w, http.StatusOK, nil)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// GetTeamDetail обрабатывает GET /api/teams/{teamID}
func (h *TeamHandler) GetTeamDetail(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.queryUseCase.GetTeamDetail(r.Context(), userID, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// JoinTeam обрабатывает POST /api/teams/{teamID}/join
func (h *TeamHandler) JoinTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	team, err := h.teamUseCase.JoinTeam(r.Context(), userID, teamID)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTeamDTO(team))
}

// LeaveTeam обрабатывает DELETE /api/teams/{teamID}/leave
func (h *TeamHandler) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	if err := h.teamUseCase.LeaveTeam(r.Context(), userID, teamID); err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "left team"})
}

// UpdateMemberNote обрабатывает PUT /api/teams/{teamID}/members/{userID}/note
func (h *TeamHandler) UpdateMemberNote(w http.ResponseWriter, r *http.Request) {
	actingUserID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	teamID, ok := pathID(w, r, "teamID")
	if !ok {
		return
	}

	targetUserID, ok := pathID(w, r, "userID")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body")
		return
	}

	member, err := h.teamUseCase.UpdateMemberNote(r.Context(), actingUserID, teamID, targetUserID, req.Note)
	if err != nil {
		handleUseCaseError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToMemberDTO(*member))
}
