package httpserver

import (
	"context"
	"net/http"
	"time"

	authsvc "cafe-storefront/internal/service/auth"
	cartsvc "cafe-storefront/internal/service/cart"
	catalogsvc "cafe-storefront/internal/service/catalog"
	ordersvc "cafe-storefront/internal/service/order"
	settingssvc "cafe-storefront/internal/service/settings"

	deliveryrepo "cafe-storefront/internal/repository/delivery"
	userrepo "cafe-storefront/internal/repository/user"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Deps bundles the services the router hands out to handlers.
type Deps struct {
	Auth     *authsvc.Service
	Catalog  *catalogsvc.Service
	Cart     *cartsvc.Service
	Orders   *ordersvc.Service
	Settings *settingssvc.Service
	Users    userrepo.Repository
	Delivery deliveryrepo.Repository
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	db         *pgxpool.Pool
}

// New builds a Server with all routes wired.
func New(addr string, logger *zap.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
