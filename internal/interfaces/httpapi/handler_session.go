package httpapi

import (
	"net/http"
	"time"

	"github.com/prasetyadi/volley-club/internal/domain/session"
	"github.com/prasetyadi/volley-club/internal/usecase"
)

type sessionDTO struct {
	ID        int64     `json:"id"`
	Date      string    `json:"session_date"`
	CreatedAt time.Time `json:"created_at"`
}

type historyEntryDTO struct {
	SessionID        int64  `json:"session_id"`
	Date             string `json:"session_date"`
	Points           int    `json:"points"`
	Saves            int    `json:"saves"`
	MVP              bool   `json:"is_mvp"`
	AttendanceStatus string `json:"attendance_status"`
}

type participantDTO struct {
	PlayerID         int64  `json:"id"`
	PlayerExternalID string `json:"player_id"`
	FullName         string `json:"full_name"`
	Points           int    `json:"points"`
	Saves            int    `json:"saves"`
	MVP              bool   `json:"is_mvp"`
	AttendanceStatus string `json:"attendance_status"`
}

type createSessionRequest struct {
	Date string `json:"session_date" validate:"required"`
}

type recordStatsRequest struct {
	PlayerID         int64  `json:"player_id" validate:"required,gt=0"`
	Date             string `json:"session_date" validate:"required"`
	Points           int    `json:"points" validate:"omitempty,gte=0"`
	Saves            int    `json:"saves" validate:"omitempty,gte=0"`
	MVP              bool   `json:"is_mvp"`
	AttendanceStatus string `json:"attendance_status" validate:"omitempty,max=32"`
}

func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessions")
	defer span.End()

	sessions, err := h.sessionService.ListSessions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list sessions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]sessionDTO, 0, len(sessions))
	for _, s := range sessions {
		items = append(items, sessionToDTO(s))
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"sessions": items})
}

func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSession")
	defer span.End()

	var req createSessionRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	id, err := h.sessionService.CreateSession(ctx, req.Date)
	if err != nil {
		h.logger.WarnContext(ctx, "create session failed", "session_date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, map[string]any{
		"message":    "session created",
		"session_id": id,
	})
}

func (h *Handler) RecordSessionStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordSessionStats")
	defer span.End()

	var req recordStatsRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.sessionService.RecordStats(ctx, usecase.RecordStatsInput{
		PlayerID:         req.PlayerID,
		Date:             req.Date,
		Points:           req.Points,
		Saves:            req.Saves,
		MVP:              req.MVP,
		AttendanceStatus: req.AttendanceStatus,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record session stats failed",
			"player_id", req.PlayerID,
			"session_date", req.Date,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "session stats recorded"})
}

func (h *Handler) ListPlayerSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerSessions")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.sessionService.PlayerHistory(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "list player sessions failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]historyEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyEntryDTO{
			SessionID:        e.SessionID,
			Date:             e.Date.Format(session.DateLayout),
			Points:           e.Points,
			Saves:            e.Saves,
			MVP:              e.MVP,
			AttendanceStatus: e.AttendanceStatus,
		})
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"sessions": items})
}

func (h *Handler) ListSessionPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSessionPlayers")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	participants, err := h.sessionService.SessionPlayers(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "list session players failed", "session_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]participantDTO, 0, len(participants))
	for _, p := range participants {
		items = append(items, participantDTO{
			PlayerID:         p.PlayerID,
			PlayerExternalID: p.PlayerExternalID,
			FullName:         p.FullName,
			Points:           p.Points,
			Saves:            p.Saves,
			MVP:              p.MVP,
			AttendanceStatus: p.AttendanceStatus,
		})
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"players": items})
}

func sessionToDTO(s session.Session) sessionDTO {
	return sessionDTO{
		ID:        s.ID,
		Date:      s.Date.Format(session.DateLayout),
		CreatedAt: s.CreatedAt,
	}
}
