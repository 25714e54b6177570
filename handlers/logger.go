package handlers

import (
	"github.com/EAniwa/legacylancers-sub004/middleware"
	"github.com/EAniwa/legacylancers-sub004/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves the request-scoped zap logger set by
// middleware.RequestLogger, falling back to the process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get(middleware.LoggerKey); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}
