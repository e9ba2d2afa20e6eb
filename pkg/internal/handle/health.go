package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/novahub/pkg/context"
)

const healthTimeout = 2 * time.Second

// Health 聚合健康检查：数据库与对象存储. 任一组件不可用返回 503.
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	status := gin.H{"status": "ok"}
	code := http.StatusOK

	dbc := ctxPkg.GetDBClient(ctx)
	if dbc == nil || dbc.DB == nil {
		status["db"] = "uninitialized"
		code = http.StatusServiceUnavailable
	} else if sqlDB, err := dbc.DB.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["db"] = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		status["db"] = "ok"
	}

	s3c := ctxPkg.GetS3Client(ctx)
	if s3c == nil {
		status["s3"] = "uninitialized"
		code = http.StatusServiceUnavailable
	} else if err := s3c.HealthCheck(ctx); err != nil {
		status["s3"] = "unhealthy"
		code = http.StatusServiceUnavailable
	} else {
		status["s3"] = "ok"
	}

	if code != http.StatusOK {
		status["status"] = "degraded"
	}

	c.JSON(code, status)
}
