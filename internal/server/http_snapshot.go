package server

import (
	"net/http"

	"github.com/alfredjeanlab/teamboard/internal/events"
	"github.com/alfredjeanlab/teamboard/internal/snapshot"
)

// handleExportSnapshot handles GET /v1/snapshot, streaming the full board
// state as deterministic JSON.
func (s *BoardServer) handleExportSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := snapshot.Export(r.Context(), s.store, w); err != nil {
		serviceError(w, err)
	}
}

// handleImportSnapshot handles POST /v1/snapshot, replacing all board state
// with the posted snapshot.
func (s *BoardServer) handleImportSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := snapshot.Import(r.Context(), s.store, r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.publish(r.Context(), events.TopicSnapshotImported, events.SnapshotImported{
		Items:   len(snap.Items),
		Boards:  len(snap.Boards),
		Members: len(snap.Members),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"members": len(snap.Members),
		"boards":  len(snap.Boards),
		"groups":  len(snap.Groups),
		"items":   len(snap.Items),
	})
}
