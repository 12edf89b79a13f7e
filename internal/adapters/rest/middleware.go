package rest

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	"go.uber.org/zap"
)

const (
	headerActorID    = "X-Actor-ID"
	headerActorRoles = "X-Actor-Roles"

	actorContextKey = "deptrequest.actor"
)

// identity は上流のセッション基盤が付与したヘッダーから呼び出し元を復元します。
func identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var roles []string
		for _, v := range c.Request.Header.Values(headerActorRoles) {
			roles = append(roles, strings.Split(v, ",")...)
		}

		actor := deptrequest.NewActor(c.GetHeader(headerActorID), roles)
		if !actor.Authenticated() {
			writeError(c, deptrequest.ErrUnauthenticated)
			c.Abort()
			return
		}

		c.Set(actorContextKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) deptrequest.Actor {
	if v, ok := c.Get(actorContextKey); ok {
		if actor, ok := v.(deptrequest.Actor); ok {
			return actor
		}
	}
	return deptrequest.Actor{}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("HTTP request", fields...)
			return
		}
		logger.Info("HTTP request", fields...)
	}
}
