package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/maestrokit/maestro/internal/database"
)

// HandleHealthCheck returns the basic health status of the service.
func HandleHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "maestro",
	})
}

// HandleDBStatus checks and returns the database connection status.
func HandleDBStatus(c *gin.Context) {
	if err := database.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"error":  "Database ping failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "connected",
		"database": "ready",
	})
}

// HandleSystemStatus reports host resource usage alongside basic runtime info.
func HandleSystemStatus(c *gin.Context) {
	ctx := c.Request.Context()
	status := gin.H{
		"service":    "maestro",
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"timestamp":  time.Now().UTC(),
	}

	if memStats, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status["memory"] = gin.H{
			"total":        memStats.Total,
			"available":    memStats.Available,
			"used_percent": memStats.UsedPercent,
		}
	}

	if cpuPercents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(cpuPercents) > 0 {
		status["cpu"] = gin.H{
			"used_percent": cpuPercents[0],
			"cores":        runtime.NumCPU(),
		}
	}

	if diskStats, err := disk.UsageWithContext(ctx, "/"); err == nil {
		status["disk"] = gin.H{
			"total":        diskStats.Total,
			"free":         diskStats.Free,
			"used_percent": diskStats.UsedPercent,
		}
	}

	c.JSON(http.StatusOK, status)
}
