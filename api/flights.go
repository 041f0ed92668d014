package api

import (
	"net/http"
	"strconv"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/Domenick1991/skyreserva/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     *zap.Logger
}

func NewFlightHandler(service flights.FlightUseCase, log *zap.Logger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/search", h.search)
	router.GET("/available", h.available)
	router.GET("/:id", h.get)
}

// RegisterCatalog mounts the read-only reference data next to the flights.
func (h *FlightHandler) RegisterCatalog(router *gin.RouterGroup) {
	router.GET("/cities", h.cities)
	router.GET("/airlines", h.airlines)
	router.GET("/categories", h.categories)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) get(c *gin.Context) {
	id, ok := pathID(c, h.log)
	if !ok {
		return
	}
	flight, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) search(c *gin.Context) {
	filter, err := parseFlightFilter(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	flights, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) available(c *gin.Context) {
	flights, err := h.service.Available(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) cities(c *gin.Context) {
	cities, err := h.service.Cities(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cities)
}

func (h *FlightHandler) airlines(c *gin.Context) {
	airlines, err := h.service.Airlines(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}

func (h *FlightHandler) categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func parseFlightFilter(c *gin.Context) (domain.FlightFilter, error) {
	var (
		filter domain.FlightFilter
		err    error
	)
	if filter.OriginCityID, err = queryInt64(c, "origin"); err != nil {
		return filter, err
	}
	if filter.DestinationCityID, err = queryInt64(c, "destination"); err != nil {
		return filter, err
	}
	if filter.AirlineID, err = queryInt64(c, "airline"); err != nil {
		return filter, err
	}
	if filter.CategoryID, err = queryInt64(c, "category"); err != nil {
		return filter, err
	}
	if v := c.Query("date"); v != "" {
		if filter.Date, err = flights.ParseDate(v); err != nil {
			return filter, err
		}
	}
	if v := c.Query("direct"); v != "" {
		direct, err := strconv.ParseBool(v)
		if err != nil {
			return filter, domain.ErrInvalidInput
		}
		filter.Direct = &direct
	}
	filter.Status = domain.FlightStatus(c.Query("status"))
	if filter.FareMin, err = queryDecimal(c, "fare_min"); err != nil {
		return filter, err
	}
	if filter.FareMax, err = queryDecimal(c, "fare_max"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}
