package api

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/VishalRj23/laundry-management-system/config"
	"github.com/VishalRj23/laundry-management-system/internal/mw"
	"github.com/VishalRj23/laundry-management-system/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, logger *log.Logger, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
	}))

	handler := NewHandler(s, logger)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Laundry Management API is running. Use /api for endpoints.")
	})

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// The response cache is applied to the debug search endpoint only; the
	// last-record view must never serve a stale collected flag.
	searchCache := cache.New(cfg.CacheTTL(), 2*cfg.CacheTTL())

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/give", handler.GiveClothes)
		api.GET("/last/:floor/:pageNo", handler.LastRecord)
		api.PUT("/confirm/:recordId", handler.ConfirmCollection)

		api.POST("/students/register", handler.RegisterStudent)
		api.GET("/students/search", mw.Cache(searchCache, cfg.CacheTTL()), handler.SearchStudents)
	}

	return r
}
