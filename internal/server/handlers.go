package server

import (
	"encoding/json"
	"net/http"

	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/orchestration"
)

// userHeader carries the requesting user's id. Session handling lives
// outside this service; the gateway injects the header.
const userHeader = "X-User-ID"

type orchestrateRequest struct {
	TextInput     string `json:"text_input"`
	SelectedModel string `json:"selected_model"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestUser resolves the requesting user from the id header. A nil
// return means the response has already been written.
func (s *Server) requestUser(w http.ResponseWriter, r *http.Request) *model.User {
	id := r.Header.Get(userHeader)
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Requesting user is required"})
		return nil
	}
	user, err := s.store.GetUserByID(r.Context(), id)
	if err != nil || user == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Requesting user not found"})
		return nil
	}
	return user
}

func (s *Server) handleOrchestrate(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var req orchestrateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid request body"})
		return
	}
	if req.TextInput == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Text input is required"})
		return
	}

	workspace, err := s.store.GetWorkspaceBySlug(r.Context(), slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("looking up workspace")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal error has occurred."})
		return
	}
	if workspace == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Workspace not found"})
		return
	}

	user := s.requestUser(w, r)
	if user == nil {
		return
	}

	response := s.orch.Process(r.Context(), orchestration.Request{
		Workspace:     *workspace,
		User:          *user,
		TextInput:     req.TextInput,
		SelectedModel: req.SelectedModel,
	})
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	workspace, err := s.store.GetWorkspaceBySlug(r.Context(), slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("looking up workspace")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal error has occurred."})
		return
	}
	if workspace == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Workspace not found"})
		return
	}

	user := s.requestUser(w, r)
	if user == nil {
		return
	}

	notifications, err := s.store.GetUnreadNotifications(r.Context(), workspace.ID, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("listing notifications")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "An internal error has occurred."})
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.MarkNotificationRead(r.Context(), id); err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Notification not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
