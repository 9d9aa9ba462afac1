// Package mockapi is a self-contained implementation of the backend HTTP
// contract, used for development and testing when mock mode is enabled. It
// speaks the same envelopes as the production API, including the two auth
// token shapes, so the client exercises its full normalization path
// against it.
package mockapi

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// Options configures the mock server.
type Options struct {
	// DatabasePath is the sqlite file, ":memory:" for ephemeral runs.
	DatabasePath string
	// JWTSecret signs access tokens; a random one is generated when empty.
	JWTSecret string
	// Seed populates a demo admin account and sample organizations.
	Seed bool
}

// Server is the mock backend.
type Server struct {
	db     *gorm.DB
	engine *gin.Engine
	logger zerolog.Logger
	secret []byte
	cron   *cron.Cron
}

// New creates the mock server, migrates its schema, and registers routes.
func New(opts Options, logger zerolog.Logger) (*Server, error) {
	dbPath := opts.DatabasePath
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormlogger.Config{
				LogLevel:                  gormlogger.Error,
				IgnoreRecordNotFoundError: true,
				SlowThreshold:             200 * time.Millisecond,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Account{}, &RefreshToken{}, &Organization{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	secret := opts.JWTSecret
	if secret == "" {
		secret, err = newOpaqueToken()
		if err != nil {
			return nil, err
		}
	}

	s := &Server{
		db:     db,
		logger: logger,
		secret: []byte(secret),
		cron:   cron.New(),
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-CSRF-Token"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	s.registerRoutes()

	// Expired refresh tokens accumulate forever otherwise
	if _, err := s.cron.AddFunc("@every 1h", s.sweepExpiredRefreshTokens); err != nil {
		return nil, fmt.Errorf("failed to schedule token sweeper: %w", err)
	}

	if opts.Seed {
		if err := s.seed(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handler exposes the HTTP handler, used by httptest in client tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the background sweeper and serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.cron.Start()
	defer s.cron.Stop()

	s.logger.Info().Str("addr", addr).Msg("Mock API listening")
	return s.engine.Run(addr)
}

func (s *Server) registerRoutes() {
	apiGroup := s.engine.Group("/api")

	apiGroup.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := apiGroup.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)
	auth.POST("/refresh", s.refresh)
	auth.POST("/logout", s.logout)
	auth.GET("/me", s.requireAuth(), s.me)

	organizations := apiGroup.Group("/organizations", s.requireAuth())
	organizations.GET("", s.listOrganizations)
	organizations.POST("", s.createOrganization)
	organizations.GET("/stats", s.organizationStats)
	organizations.GET("/filters/options", s.filterOptions)
	organizations.GET("/export-csv", s.exportCSV)
	organizations.GET("/csv-template", s.csvTemplate)
	organizations.POST("/import-csv", s.importCSV)
	organizations.POST("/bulk-delete", s.bulkDeleteOrganizations)
	organizations.GET("/:id", s.getOrganization)
	organizations.PATCH("/:id", s.updateOrganization)
	organizations.DELETE("/:id", s.deleteOrganization)

	accounts := apiGroup.Group("/users", s.requireAuth(), s.requireRole("admin"))
	accounts.GET("", s.listAccounts)
	accounts.POST("", s.createAccount)
	accounts.GET("/:id", s.getAccount)
	accounts.PUT("/:id", s.updateAccount)
	accounts.DELETE("/:id", s.deleteAccount)
	accounts.POST("/:id/activate", s.activateAccount)
	accounts.POST("/:id/deactivate", s.deactivateAccount)
}

func (s *Server) sweepExpiredRefreshTokens() {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&RefreshToken{})
	if result.Error != nil {
		s.logger.Error().Err(result.Error).Msg("Failed to sweep expired refresh tokens")
		return
	}
	if result.RowsAffected > 0 {
		s.logger.Debug().Int64("count", result.RowsAffected).Msg("Swept expired refresh tokens")
	}
}
