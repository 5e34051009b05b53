// Package server exposes the catalog over REST for the storefront SPA and
// the admin dashboard.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clothstore/storefront/internal/catalog/app"
)

type Server struct {
	catalog *app.Service
	log     *slog.Logger

	jwtSecret string
}

func New(catalog *app.Service, jwtSecret string, log *slog.Logger) *Server {
	return &Server{
		catalog:   catalog,
		log:       log,
		jwtSecret: jwtSecret,
	}
}

// Register mounts all routes on the engine. Reads are public; mutations sit
// behind the bearer-token middleware.
func (s *Server) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/readyz", func(c *gin.Context) { c.Status(http.StatusOK) })

	api := r.Group("/api")
	{
		api.GET("/products", s.listProducts)
		api.GET("/products/match", s.matchProducts)
		api.GET("/products/:id", s.getProduct)

		admin := api.Group("", RequireAuth(s.jwtSecret))
		{
			admin.POST("/products", s.createProduct)
			admin.PUT("/products/:id", s.updateProduct)
			admin.DELETE("/products/:id", s.deleteProduct)
		}
	}
}
