// Package alerts replaces the old module-level repeating-alert flag with an
// explicit, injectable service. The sound backend is a dependency so the
// behavior is unit-testable without real audio.
package alerts

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sounder plays one alert tone. Implementations must be safe for repeated
// calls from a single goroutine.
type Sounder interface {
	Play()
}

// LogSounder emits each tone as a warning log entry, the backend used on
// headless deployments.
type LogSounder struct {
	Msg string
}

func (s LogSounder) Play() {
	log.Warn().Msg(s.Msg)
}

// Service repeats an alert tone at a fixed interval while running.
// Start is idempotent: a second Start while already running is a no-op, so
// overlapping alert conditions never stack multiple loops.
type Service struct {
	sounder  Sounder
	interval time.Duration

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func NewService(sounder Sounder, interval time.Duration) *Service {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &Service{sounder: sounder, interval: interval}
}

// Start begins the repeating alert. The first tone plays immediately.
func (s *Service) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	go s.loop(s.stop)
	log.Debug().Dur("interval", s.interval).Msg("alerts: started")
}

// Stop halts the alert loop. Stopping an idle service is a no-op.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	log.Debug().Msg("alerts: stopped")
}

// Running reports whether the alert loop is active.
func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Service) loop(stop chan struct{}) {
	s.sounder.Play()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.sounder.Play()
		}
	}
}
