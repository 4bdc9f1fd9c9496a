package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "tempmon_session"
	ctxSessionID  = "sessionID"

	errSession = "failed to start session"
)

// sessionMiddleware ties the request to a viewer session, issuing a new
// session cookie when the request carries none or an invalid one.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		if sid, err := h.services.Sessions.Parse(token); err == nil {
			c.Set(ctxSessionID, sid)
			c.Next()
			return
		}
	}

	sid, token, err := h.services.Sessions.Issue()
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errSession, "session_issue_failed", err)
		c.Abort()
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(h.cfg.SessionTTL.Seconds()), "/", "", h.cfg.CookieSecure, true)

	c.Set(ctxSessionID, sid)
	c.Next()
}

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}
