package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"nhooyr.io/websocket"

	"roomlink/internal/auth"
	"roomlink/internal/response"
	"roomlink/internal/ws"
)

// WSHandler upgrades authenticated clients onto the live-event hub.
type WSHandler struct {
	hub            *ws.Hub
	jwtService     *auth.JWTService
	originPatterns []string
}

// NewWSHandler creates a new websocket handler. allowedOrigins is the same
// list the CORS middleware is configured with.
func NewWSHandler(hub *ws.Hub, jwtService *auth.JWTService, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		hub:            hub,
		jwtService:     jwtService,
		originPatterns: originPatterns(allowedOrigins),
	}
}

// originPatterns reduces configured origin URLs to the host patterns the
// websocket accept check matches against.
func originPatterns(origins []string) []string {
	patterns := make([]string, 0, len(origins))
	for _, origin := range origins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
			continue
		}
		patterns = append(patterns, origin)
	}
	return patterns
}

// Connect godoc
// @Summary Open a websocket for live message events
// @Tags messages
// @Param token query string true "Access token"
// @Success 101
// @Failure 401 {object} response.Envelope
// @Router /ws [get]
func (h *WSHandler) Connect(c echo.Context) error {
	// browsers cannot set Authorization on websocket upgrades, so the token
	// rides a query parameter here and nowhere else
	claims, err := h.jwtService.ValidateToken(c.QueryParam("token"))
	if err != nil {
		return response.Fail(c, http.StatusUnauthorized, "missing or invalid token")
	}

	conn, err := websocket.Accept(c.Response(), c.Request(), &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		return nil // Accept already wrote the handshake failure
	}

	client := h.hub.AddClient(claims.UserID, conn)
	defer h.hub.RemoveClient(client)

	// the hub only pushes; drain reads to notice the peer going away
	ctx := c.Request().Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return nil
		}
	}
}
