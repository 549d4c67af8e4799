package httpapi

import (
	"net/http"
	"time"

	"github.com/prasetyadi/volley-club/internal/domain/player"
	"github.com/prasetyadi/volley-club/internal/usecase"
)

type playerDTO struct {
	ID         int64     `json:"id"`
	PlayerID   string    `json:"player_id"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone,omitempty"`
	Instagram  string    `json:"instagram,omitempty"`
	Age        int       `json:"age,omitempty"`
	SkillLevel string    `json:"skill_level,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type playerCountersDTO struct {
	playerDTO
	SessionsAttended int `json:"sessions_attended_count"`
	MVPAwards        int `json:"mvp_awards_count"`
	TotalPoints      int `json:"total_points_scored"`
	TotalSaves       int `json:"total_saves"`
}

type playerStatsDTO struct {
	playerCountersDTO
	AvgPointsPerSession float64 `json:"avg_points_per_session"`
	AvgSavesPerSession  float64 `json:"avg_saves_per_session"`
}

type createPlayerRequest struct {
	PlayerID   string `json:"player_id" validate:"required"`
	FullName   string `json:"full_name" validate:"required"`
	Phone      string `json:"phone" validate:"omitempty,max=32"`
	Instagram  string `json:"instagram" validate:"omitempty,max=100"`
	Age        int    `json:"age" validate:"omitempty,gte=0"`
	SkillLevel string `json:"skill_level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	players, err := h.playerService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"players": items,
		"count":   len(items),
	})
}

func (h *Handler) ListPlayersWithStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersWithStats")
	defer span.End()

	players, err := h.playerService.ListWithStats(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list players with stats failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerStatsDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerStatsDTO{
			playerCountersDTO:   playerToCountersDTO(p.Player),
			AvgPointsPerSession: p.AvgPointsPerSession,
			AvgSavesPerSession:  p.AvgSavesPerSession,
		})
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"players": items})
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerService.Get(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"player": playerToCountersDTO(p)})
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	var req createPlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	id, err := h.playerService.Create(ctx, usecase.PlayerInput{
		PlayerID:   req.PlayerID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Instagram:  req.Instagram,
		Age:        req.Age,
		SkillLevel: req.SkillLevel,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create player failed", "external_player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusCreated, map[string]any{
		"message":   "player created",
		"player_id": req.PlayerID,
		"id":        id,
	})
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createPlayerRequest
	if err := decodeRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.playerService.Update(ctx, id, usecase.PlayerInput{
		PlayerID:   req.PlayerID,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Instagram:  req.Instagram,
		Age:        req.Age,
		SkillLevel: req.SkillLevel,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "player updated"})
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	id, err := pathID(r, "id")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.playerService.Delete(ctx, id); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]string{"message": "player deleted"})
}

func (h *Handler) CheckPlayerID(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CheckPlayerID")
	defer span.End()

	exists, err := h.playerService.Exists(ctx, r.PathValue("id"))
	if err != nil {
		h.logger.ErrorContext(ctx, "check player id failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]bool{"exists": exists})
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		ID:         p.ID,
		PlayerID:   p.PlayerID,
		FullName:   p.FullName,
		Phone:      p.Phone,
		Instagram:  p.Instagram,
		Age:        p.Age,
		SkillLevel: string(p.SkillLevel),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func playerToCountersDTO(p player.Player) playerCountersDTO {
	return playerCountersDTO{
		playerDTO:        playerToDTO(p),
		SessionsAttended: p.SessionsAttended,
		MVPAwards:        p.MVPAwards,
		TotalPoints:      p.TotalPoints,
		TotalSaves:       p.TotalSaves,
	}
}
