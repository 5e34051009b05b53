package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/clothstore/storefront/internal/catalog/domain"
)

// GET /api/products?category=&material=&color=&min_price=&max_price=&sort=
func (s *Server) listProducts(c *gin.Context) {
	criteria := domain.NewCriteria()

	for _, cat := range c.QueryArray("category") {
		criteria.ToggleCategory(cat)
	}
	for _, mat := range c.QueryArray("material") {
		criteria.ToggleMaterial(mat)
	}
	criteria.Color = c.Query("color")

	if raw := c.Query("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price"})
			return
		}
		criteria.SetPriceMin(v)
	}
	if raw := c.Query("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price"})
			return
		}
		criteria.SetPriceMax(v)
	}
	criteria.Sort = domain.ParseSortKey(c.Query("sort"))

	products, err := s.catalog.ListProducts(c.Request.Context(), criteria)
	if err != nil {
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

// GET /api/products/:id
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": p})
}

// POST /api/products
func (s *Server) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload: " + err.Error()})
		return
	}

	created, err := s.catalog.CreateProduct(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}

	actor, _ := CurrentUser(c)
	s.log.Info("product created",
		slog.String("id", created.ID),
		slog.String("name", created.Name),
		slog.String("by", actor))
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created})
}

// PUT /api/products/:id
func (s *Server) updateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload: " + err.Error()})
		return
	}

	updated, err := s.catalog.UpdateProduct(c.Request.Context(), c.Param("id"), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
}

// DELETE /api/products/:id
func (s *Server) deleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := s.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}

	actor, _ := CurrentUser(c)
	s.log.Info("product deleted", slog.String("id", id), slog.String("by", actor))
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "product " + id + " deleted"})
}

// GET /api/products/match?category=&color=
func (s *Server) matchProducts(c *gin.Context) {
	products, err := s.catalog.MatchProducts(c.Request.Context(), c.Query("category"), c.Query("color"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(products), "data": products})
}

func (s *Server) fail(c *gin.Context, err error) {
	status, msg := httpStatusFromErr(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", slog.String("path", c.FullPath()), slog.Any("err", err))
	}
	c.JSON(status, gin.H{"error": msg})
}
