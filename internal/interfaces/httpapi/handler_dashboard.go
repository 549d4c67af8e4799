package httpapi

import "net/http"

type dashboardDTO struct {
	TotalPlayers   int                 `json:"total_players"`
	TotalSessions  int                 `json:"total_sessions"`
	TotalMVPs      int                 `json:"total_mvps"`
	TopMVPs        []playerCountersDTO `json:"top_mvps"`
	RecentPlayers  []playerDTO         `json:"recent_players"`
	RecentSessions []sessionDTO        `json:"recent_sessions"`
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	dashboard, err := h.dashboardService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	dto := dashboardDTO{
		TotalPlayers:   dashboard.TotalPlayers,
		TotalSessions:  dashboard.TotalSessions,
		TotalMVPs:      dashboard.TotalMVPs,
		TopMVPs:        make([]playerCountersDTO, 0, len(dashboard.TopMVPs)),
		RecentPlayers:  make([]playerDTO, 0, len(dashboard.RecentPlayers)),
		RecentSessions: make([]sessionDTO, 0, len(dashboard.RecentSessions)),
	}
	for _, p := range dashboard.TopMVPs {
		dto.TopMVPs = append(dto.TopMVPs, playerToCountersDTO(p))
	}
	for _, p := range dashboard.RecentPlayers {
		dto.RecentPlayers = append(dto.RecentPlayers, playerToDTO(p))
	}
	for _, s := range dashboard.RecentSessions {
		dto.RecentSessions = append(dto.RecentSessions, sessionToDTO(s))
	}

	writeJSON(ctx, w, http.StatusOK, dto)
}
