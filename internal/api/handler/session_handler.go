package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dinedesk/restaurant-system/internal/core/ports"
)

type SessionHandler struct {
	sessions ports.SessionService
}

func NewSessionHandler(sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Create opens a new anonymous session. The returned token must be sent as a
// bearer token on every other /v1 route; cart and sign-in state hang off it.
//
// @Summary      Open a session
// @Tags         sessions
// @Produce      json
// @Success      201  {object}  sessionResponse
// @Failure      500  {object}  errorResponse
// @Router       /v1/sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	issued, err := h.sessions.Issue()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		Token:     issued.Token,
		SessionID: issued.SessionID,
		ExpiresAt: issued.ExpiresAt.UTC(),
	})
}
