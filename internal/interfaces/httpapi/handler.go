// Package httpapi exposes the club roster and session ledger over HTTP/JSON.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/prasetyadi/volley-club/internal/platform/logging"
	"github.com/prasetyadi/volley-club/internal/usecase"
)

type Handler struct {
	playerService    *usecase.PlayerService
	sessionService   *usecase.SessionService
	dashboardService *usecase.DashboardService
	environment      string
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	sessionService *usecase.SessionService,
	dashboardService *usecase.DashboardService,
	environment string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:    playerService,
		sessionService:   sessionService,
		dashboardService: dashboardService,
		environment:      environment,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Health")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.environment,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := r.PathValue(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}
