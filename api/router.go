package api

import (
	"context"
	_ "embed"
	"net/http"
	"time"

	"github.com/Domenick1991/skyreserva/internal/logger"
	"github.com/Domenick1991/skyreserva/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

//go:embed openapi.yaml
var openAPISpec []byte

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

type Handlers struct {
	Flights      *FlightHandler
	Orders       *OrderHandler
	Reservations *ReservationHandler
	Passengers   *PassengerHandler
	Cards        *CardHandler
	Payments     *PaymentHandler
	Billing      *BillingHandler
}

func NewRouter(h Handlers, checks map[string]ReadinessCheck, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log), metrics.GinMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/ready", readiness(checks, log))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/openapi.yaml", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/yaml", openAPISpec)
	})
	router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.yaml"))))

	root := router.Group("")
	h.Flights.RegisterCatalog(root)
	h.Flights.Register(router.Group("/flights"))
	h.Orders.Register(router.Group("/orders"))
	h.Reservations.Register(router.Group("/reservations"))
	h.Passengers.Register(router.Group("/passengers"))
	h.Cards.Register(router.Group("/cards"))
	h.Payments.Register(router.Group("/payments"))
	h.Billing.RegisterInvoices(router.Group("/invoices"))
	h.Billing.RegisterTickets(router.Group("/tickets"))

	return router
}

func readiness(checks map[string]ReadinessCheck, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		result := make(gin.H, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.Warn("readiness check failed", zap.String("dependency", name), zap.Error(err))
				result[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			result[name] = "ok"
		}
		c.JSON(status, gin.H{"ready": status == http.StatusOK, "checks": result})
	}
}
