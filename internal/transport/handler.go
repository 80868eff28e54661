package transport

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nsalerno/voicebridge/internal/config"
	"github.com/nsalerno/voicebridge/internal/session"
)

// Handler upgrades WebSocket requests and binds each connection to the
// session Router.
type Handler struct {
	router   *session.Router
	logger   *slog.Logger
	limits   config.LimitsConfig
	maxMsg   int64
	upgrader websocket.Upgrader
}

// NewHandler creates the /ws endpoint handler.
func NewHandler(router *session.Router, cfg *config.RelayConfig, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	policy := newOriginPolicy(cfg.Server.AllowedOrigins)

	h := &Handler{
		router: router,
		logger: logger,
		limits: cfg.Limits,
		maxMsg: cfg.Server.MaxMessageSize,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if policy.allow(r) {
				return true
			}
			logger.Warn("blocked websocket upgrade from disallowed origin",
				"origin", r.Header.Get("Origin"),
				"remote", r.RemoteAddr,
			)
			return false
		},
	}
	return h
}

// ServeHTTP handles a WebSocket upgrade request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "WebSocket endpoint only accepts GET requests", http.StatusMethodNotAllowed)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	connID := uuid.NewString()
	lim := newLimiter(h.limits.RateBurst, h.limits.RateRefillInterval)
	peer := newPeer(connID, conn, h.maxMsg, lim, h.logger)

	h.logger.Info("client connected", "conn_id", connID, "remote", r.RemoteAddr)

	go peer.writePump()
	go peer.readPump(h.router)
}
