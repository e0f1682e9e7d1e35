package middlewares

import (
	"strconv"
	"time"

	"github.com/fsdevblog/banco-api/internal/transport/api/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger пишет структурированный лог по каждому запросу и снимает метрику
// длительности. В лейбл метрики уходит шаблон роута, не реальный путь.
func Logger(l *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		status := c.Writer.Status()

		routePath := c.FullPath()
		if routePath == "" {
			routePath = "unmatched"
		}
		metrics.RequestDuration.
			WithLabelValues(c.Request.Method, routePath, strconv.Itoa(status)).
			Observe(elapsed.Seconds())

		entry := l.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  status,
			"latency": elapsed.String(),
		})

		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= http500:
			entry.Error("request")
		case status >= http400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

const (
	http400 = 400
	http500 = 500
)
