package server

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/abhisek/levelup/internal/llm"
)

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
	headerTimezone = "X-Timezone"

	ctxUserID = "user_id"
	roleAdmin = "admin"
)

// requestLogger logs one line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if uid := c.GetString(ctxUserID); uid != "" {
			fields = append(fields, zap.String("user_id", uid))
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}

// requireUser takes the principal from the X-User-ID header set by the
// fronting auth layer.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader(headerUserID))
		if uid == "" {
			abortWith(c, http.StatusUnauthorized, "unauthenticated", "missing "+headerUserID+" header")
			return
		}
		c.Set(ctxUserID, uid)
		c.Request = c.Request.WithContext(llm.WithUser(c.Request.Context(), uid))
		c.Next()
	}
}

func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.EqualFold(c.GetHeader(headerUserRole), roleAdmin) {
			abortWith(c, http.StatusForbidden, "forbidden", "admin role required")
			return
		}
		c.Next()
	}
}

func userID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// userLimiter throttles generation requests per principal. Idle entries are
// dropped by sweep.
type userLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idle     time.Duration
}

func newUserLimiter(perSecond float64, burst int) *userLimiter {
	return &userLimiter{
		visitors: map[string]*visitor{},
		limit:    rate.Limit(perSecond),
		burst:    burst,
		idle:     10 * time.Minute,
	}
}

func (l *userLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

func (l *userLimiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
		}
	}
}

// middleware rejects requests over the limit with 429. A nil limiter lets
// everything through.
func (l *userLimiter) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}
		key := userID(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !l.allow(key, time.Now()) {
			abortWith(c, http.StatusTooManyRequests, "rate_limited", "too many generation requests")
			return
		}
		c.Next()
	}
}
