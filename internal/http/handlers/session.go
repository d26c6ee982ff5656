package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/daniluce/portfolio-backend/internal/http/response"
	"github.com/daniluce/portfolio-backend/internal/platform/dbctx"
	"github.com/daniluce/portfolio-backend/internal/services"
)

type SessionHandler struct {
	sessionService services.SessionService
}

func NewSessionHandler(sessionService services.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// GET /sessions
func (sh *SessionHandler) List(c *gin.Context) {
	sessions, err := sh.sessionService.ListSessions(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":  true,
		"sessions": sessions,
	})
}

// GET /sessions/:slug
// An unknown slug returns an empty photo list, not a 404.
func (sh *SessionHandler) Get(c *gin.Context) {
	detail, err := sh.sessionService.GetSession(dbctx.Context{Ctx: c.Request.Context()}, c.Param("slug"))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"data":    detail,
	})
}
