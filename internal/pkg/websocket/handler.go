package websocket

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/yigit/projecthub/internal/app/models"
)

// Handler upgrades authenticated HTTP requests to WebSocket clients
type Handler struct {
	hub      *Hub
	actions  *ActionHandler
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins of ["*"] or empty accepts any origin.
func NewHandler(hub *Hub, authz GroupAuthorizer, allowedOrigins []string, logger zerolog.Logger) *Handler {
	logger = logger.With().Str("component", "ws").Logger()
	return &Handler{
		hub:     hub,
		actions: NewActionHandler(hub, authz, logger),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if u, err := url.Parse(origin); err == nil {
			origin = u.Scheme + "://" + u.Host
		}
		_, ok := set[origin]
		return ok
	}
}

// HandleConnection godoc
// @Summary Open the realtime connection
// @Description Upgrades to a WebSocket. Frames are JSON {"event","data"}. Client actions: join:user, join:group, leave:group. Server events: notification:new, discussion:message, joined, error.
// @Tags realtime
// @Security BearerAuth
// @Param token query string false "Access token when the Authorization header cannot be set"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} dto.ErrorResponse
// @Router /ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	userID := c.GetInt64("userID")
	role := models.Role(c.GetString("roleType"))
	if userID <= 0 || !role.Valid() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := newClient(h.hub, conn, userID, role, h.actions, h.logger)
	if !h.hub.registerClient(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	h.logger.Debug().Int64("userID", userID).Str("remoteAddr", conn.RemoteAddr().String()).Msg("WebSocket connection established")
}
