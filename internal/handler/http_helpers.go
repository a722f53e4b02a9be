package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/flexfit/internal/service"
	"github.com/flexfit/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "internal server error"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("%s: %v", message, err))
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// pathID parses a numeric path parameter and writes 400 when it is malformed.
func pathID(c *gin.Context, key string) (uint, bool) {
	id, err := parseUintParam(c, key)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// respondServiceError maps a service error onto its HTTP status. Internal
// failures are logged and reported with a generic message.
func (a *API) respondServiceError(c *gin.Context, err error) {
	switch service.KindOf(err) {
	case service.KindValidation:
		respondError(c, http.StatusBadRequest, err.Error())
	case service.KindNotFound:
		respondError(c, http.StatusNotFound, err.Error())
	case service.KindConflict:
		respondError(c, http.StatusConflict, err.Error())
	case service.KindAuth:
		respondError(c, http.StatusUnauthorized, err.Error())
	default:
		a.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, internalErrorMessage)
	}
}

// queryMeasurement reads an optional numeric query parameter.
func queryMeasurement(c *gin.Context, key string) (*float64, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := types.ParseMeasurement(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: must be a non-negative number", key)
	}
	return &value, nil
}

func queryInt(c *gin.Context, key string) (*int, error) {
	raw, ok := c.GetQuery(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: must be an integer", key)
	}
	return &value, nil
}

func measurementPtr(m *types.Measurement) *float64 {
	if m == nil {
		return nil
	}
	value := m.Float64()
	return &value
}
