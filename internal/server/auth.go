package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/galeri/internal/actorcontext"
	identitydomain "github.com/smallbiznis/galeri/internal/identity/domain"
)

func (s *Server) register(c *gin.Context) {
	var req identitydomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := s.identity.Register(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) login(c *gin.Context) {
	var req identitydomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := s.identity.Login(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}

	c.SetCookie(sessionCookie, resp.Token, int(s.sessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) logout(c *gin.Context) {
	token := c.GetHeader("X-Session-Token")
	if token == "" {
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			token = cookie
		}
	}
	if token != "" {
		if err := s.identity.Logout(c.Request.Context(), token); err != nil {
			abort(c, err)
			return
		}
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

func (s *Server) me(c *gin.Context) {
	actor, ok := actorcontext.ActorFromContext(c.Request.Context())
	if !ok {
		abort(c, identitydomain.ErrUnauthenticated)
		return
	}

	user, err := s.identity.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
