package router

import (
	"path/filepath"

	"github.com/wb-go/wbf/ginext"

	"github.com/casaluna/reservations/internal/api/handlers/reservation"
)

// New builds the HTTP routing table.
func New(handler *reservation.Handler, staticDir string) *ginext.Engine {
	e := ginext.New()
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	// Landing page; everything else is JSON.
	index := filepath.Join(staticDir, "index.html")
	e.GET("/", func(c *ginext.Context) {
		c.File(index)
	})

	e.POST("/reservations", handler.Submit)
	e.GET("/reservations", handler.List)
	e.GET("/health", handler.Health)

	return e
}
