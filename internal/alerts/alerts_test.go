package alerts

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSounder struct{ plays atomic.Int32 }

func (f *fakeSounder) Play() { f.plays.Add(1) }

func TestService_StartPlaysImmediately(t *testing.T) {
	snd := &fakeSounder{}
	svc := NewService(snd, time.Hour)
	svc.Start()
	defer svc.Stop()

	assert.Eventually(t, func() bool { return snd.plays.Load() == 1 },
		time.Second, 5*time.Millisecond)
}

func TestService_StartIsIdempotent(t *testing.T) {
	snd := &fakeSounder{}
	svc := NewService(snd, time.Hour)

	svc.Start()
	svc.Start()
	svc.Start()
	defer svc.Stop()

	assert.True(t, svc.Running())
	assert.Eventually(t, func() bool { return snd.plays.Load() == 1 },
		time.Second, 5*time.Millisecond)
	// A second loop would have produced a second immediate play.
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), snd.plays.Load())
}

func TestService_StopHaltsRepetition(t *testing.T) {
	snd := &fakeSounder{}
	svc := NewService(snd, 10*time.Millisecond)

	svc.Start()
	assert.Eventually(t, func() bool { return snd.plays.Load() >= 2 },
		time.Second, time.Millisecond)

	svc.Stop()
	assert.False(t, svc.Running())
	settled := snd.plays.Load()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, snd.plays.Load(), settled+1, "no further plays after stop")

	svc.Stop() // stopping twice is safe
}

func TestService_RestartAfterStop(t *testing.T) {
	snd := &fakeSounder{}
	svc := NewService(snd, time.Hour)

	svc.Start()
	svc.Stop()
	svc.Start()
	defer svc.Stop()

	assert.True(t, svc.Running())
	assert.Eventually(t, func() bool { return snd.plays.Load() == 2 },
		time.Second, 5*time.Millisecond)
}
