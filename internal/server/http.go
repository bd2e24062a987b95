package server

import (
	"encoding/json"
	"errors"
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *BoardServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/members", s.handleCreateMember)
	mux.HandleFunc("GET /v1/members", s.handleListMembers)
	mux.HandleFunc("GET /v1/members/{id}", s.handleGetMember)
	mux.HandleFunc("GET /v1/members/{id}/items", s.handleMemberItems)

	mux.HandleFunc("POST /v1/boards", s.handleCreateBoard)
	mux.HandleFunc("GET /v1/boards", s.handleListBoards)
	mux.HandleFunc("GET /v1/boards/{id}", s.handleGetBoard)
	mux.HandleFunc("DELETE /v1/boards/{id}/items", s.handleClearBoardItems)
	mux.HandleFunc("POST /v1/boards/{id}/groups", s.handleCreateGroup)
	mux.HandleFunc("GET /v1/boards/{id}/groups", s.handleListGroups)
	mux.HandleFunc("PUT /v1/boards/{id}/groups/order", s.handleReorderGroups)
	mux.HandleFunc("GET /v1/boards/{id}/lanes", s.handleLanes)
	mux.HandleFunc("GET /v1/boards/{id}/timeline", s.handleTimeline)
	mux.HandleFunc("GET /v1/boards/{id}/workload", s.handleWorkload)

	mux.HandleFunc("POST /v1/items", s.handleCreateItem)
	mux.HandleFunc("GET /v1/items", s.handleListItems)
	mux.HandleFunc("GET /v1/items/{id}", s.handleGetItem)
	mux.HandleFunc("PATCH /v1/items/{id}", s.handleUpdateItem)
	mux.HandleFunc("DELETE /v1/items/{id}", s.handleDeleteItem)
	mux.HandleFunc("POST /v1/items/{id}/advance", s.handleAdvanceItem)
	mux.HandleFunc("GET /v1/items/{id}/blocked", s.handleItemBlocked)

	mux.HandleFunc("GET /v1/items/{id}/assignees", s.handleGetAssignees)
	mux.HandleFunc("POST /v1/items/{id}/assignees", s.handleAssign)
	mux.HandleFunc("DELETE /v1/items/{id}/assignees/{member}", s.handleUnassign)
	mux.HandleFunc("GET /v1/items/{id}/dependencies", s.handleGetDependencies)
	mux.HandleFunc("POST /v1/items/{id}/dependencies", s.handleAddDependency)
	mux.HandleFunc("DELETE /v1/items/{id}/dependencies", s.handleClearDependencies)
	mux.HandleFunc("DELETE /v1/items/{id}/dependencies/{dep}", s.handleRemoveDependency)

	mux.HandleFunc("GET /v1/snapshot", s.handleExportSnapshot)
	mux.HandleFunc("POST /v1/snapshot", s.handleImportSnapshot)

	mux.HandleFunc("GET /v1/health", s.handleHealth)

	return AuthMiddleware(authToken, RecoveryMiddleware(LoggingMiddleware(mux)))
}

// handleHealth handles GET /v1/health.
func (s *BoardServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// serviceError maps a service-layer error onto an HTTP error response.
func serviceError(w http.ResponseWriter, err error) {
	var ie inputError
	switch {
	case errors.As(err, &ie):
		writeError(w, http.StatusBadRequest, ie.Error())
	case errors.Is(err, errAdvanceBlocked):
		writeError(w, http.StatusConflict, err.Error())
	case isNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
