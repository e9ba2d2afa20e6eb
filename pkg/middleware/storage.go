package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/novahub/pkg/context"
	"github.com/yeisme/novahub/pkg/internal/storage"
)

// StorageMiddleware 把进程级存储句柄注入请求上下文.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithStorageManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
