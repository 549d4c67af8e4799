package httpapi

import (
	"net/http"

	"github.com/prasetyadi/volley-club/internal/platform/logging"
)

func NewRouter(
	handler *Handler,
	logger *logging.Logger,
	corsAllowedOrigins []string,
	staticDir string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerAPIRoutes(mux, handler)
	registerStaticRoutes(mux, staticDir)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}
