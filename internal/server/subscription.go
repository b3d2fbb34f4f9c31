package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	subscriptiondomain "github.com/smallbiznis/galeri/internal/subscription/domain"
	"github.com/smallbiznis/galeri/pkg/db/pagination"
)

func (s *Server) listSubscriptions(c *gin.Context) {
	var p pagination.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, err)
		return
	}

	page, err := s.reports.ListSubscriptions(c.Request.Context(), p)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (s *Server) getSubscription(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, subscriptiondomain.ErrNotFound)
		return
	}

	detail, err := s.subscriptions.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) appendDeposit(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, subscriptiondomain.ErrNotFound)
		return
	}

	var req subscriptiondomain.AppendDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	req.SubscriptionID = id

	detail, err := s.subscriptions.AppendDeposit(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}
