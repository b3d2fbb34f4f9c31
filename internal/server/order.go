package server

import (
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallbiznis/galeri/internal/order/domain"
	"github.com/smallbiznis/galeri/pkg/db/pagination"
)

func (s *Server) createOrder(c *gin.Context) {
	var req orderdomain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	detail, err := s.orders.Create(c.Request.Context(), req)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, orderdomain.ErrNotFound)
		return
	}

	detail, err := s.orders.GetByID(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) confirmDeposit(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, orderdomain.ErrNotFound)
		return
	}

	detail, err := s.orders.ConfirmDeposit(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) cancelOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		abort(c, orderdomain.ErrNotFound)
		return
	}

	detail, err := s.orders.Cancel(c.Request.Context(), id)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) listOrders(c *gin.Context) {
	var p pagination.Pagination
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, err)
		return
	}

	page, err := s.reports.ListOrders(c.Request.Context(), p)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func parseID(raw string) (snowflake.ID, error) {
	return snowflake.ParseString(raw)
}
