package handlers

import (
	"net/http"
	"strconv"

	"sales-browser-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// MonitoringHandler はリクエストログの参照APIを提供します。
type MonitoringHandler struct {
	service *services.MonitoringService
}

// NewMonitoringHandler は新しいMonitoringHandlerを生成します。
func NewMonitoringHandler(service *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: service}
}

// GetLogs は新しい順のリクエストログを返します。limitパラメータで件数を制限できます（デフォルト100）。
func (h *MonitoringHandler) GetLogs(c *gin.Context) {
	limit := 100
	if n, err := strconv.Atoi(c.Query("limit")); err == nil && n > 0 {
		limit = n
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    h.service.RecentLogs(limit),
	})
}
