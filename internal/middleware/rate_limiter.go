package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/GenturixHub/Genturix-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// slidingWindow tracks request counts per client key within a fixed window.
type slidingWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newSlidingWindow() *slidingWindow {
	return &slidingWindow{entries: make(map[string]*windowEntry)}
}

// hit registers one request and reports whether the limit is exceeded.
func (w *slidingWindow) hit(key string, limit int, window time.Duration) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	entry, ok := w.entries[key]
	if !ok || now.After(entry.windowEnd) {
		entry = &windowEntry{windowEnd: now.Add(window)}
		w.entries[key] = entry
	}
	entry.count++
	return entry.count > limit, entry.windowEnd
}

func (w *slidingWindow) purge(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	purged := 0
	for key, entry := range w.entries {
		if now.After(entry.windowEnd) {
			delete(w.entries, key)
			purged++
		}
	}
	return purged
}

var (
	loginWindow = newSlidingWindow()
	apiWindow   = newSlidingWindow()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		exceeded, _ := loginWindow.hit(c.ClientIP(), 20, time.Minute)
		if exceeded {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general-purpose per-IP limiter for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		exceeded, windowEnd := apiWindow.hit(c.ClientIP(), limit, window)
		if exceeded {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired entries are purged periodically so IPs that never return don't
// accumulate in memory.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purgedLogin := loginWindow.purge(now)
			purgedAPI := apiWindow.purge(now)
			if purgedLogin > 0 || purgedAPI > 0 {
				log.Debug().
					Int("login_entries_purged", purgedLogin).
					Int("api_entries_purged", purgedAPI).
					Msg("rate limiter maps purged")
			}
		}
	}()
}
