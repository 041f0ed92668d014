package api

import (
	"strconv"

	"github.com/Domenick1991/skyreserva/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func pathID(c *gin.Context, log *zap.Logger) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, log, domain.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// queryInt64 returns 0 when the parameter is absent.
func queryInt64(c *gin.Context, key string) (int64, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidInput
	}
	return n, nil
}
