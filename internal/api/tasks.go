package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/taskomat/taskomat/internal/domain"
)

// --- POST /add_task ---

// addTaskRequest is the inbound command envelope. The command may arrive in
// the JSON body or, for simple clients, as the "text" query parameter.
type addTaskRequest struct {
	Command string `json:"command"`
}

// addTaskResponse enumerates one outcome per detected task intent, in input
// order. Callers inspect each item's status; there is no overall flag.
type addTaskResponse struct {
	AddedTasks []domain.SubmissionResult `json:"added_tasks"`
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if r.Body != nil {
		// A missing or malformed body is fine if the query carries the text.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Command == "" {
		req.Command = r.URL.Query().Get("text")
	}
	if req.Command == "" {
		writeError(w, http.StatusBadRequest, domain.KindMissingCommand, "missing command")
		return
	}

	results, err := s.pipeline.Run(r.Context(), req.Command)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCommand) {
			writeError(w, http.StatusBadRequest, domain.KindEmptyInput, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, addTaskResponse{AddedTasks: results})
}

// --- GET /projects ---

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.directory.ListProjects(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, domain.KindOf(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

// --- GET /history ---

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	batches, err := s.history.RecentBatches(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "", err.Error())
		return
	}
	if batches == nil {
		batches = []domain.CommandBatch{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"batches": batches,
	})
}
