package hud

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Carmen-Shannon/solaris/common"
	"github.com/Carmen-Shannon/solaris/engine/travel"
)

// slideIn is how long the banner takes to appear; the progress bar starts filling after it.
const slideIn = 500 * time.Millisecond

// Banner shows the in-flight travel with a progress bar. It implements travel.StatusPublisher.
type Banner struct {
	mu *sync.Mutex

	status travel.Status
	active bool
	logger zerolog.Logger
}

var _ travel.StatusPublisher = &Banner{}

// NewBanner creates an inactive banner.
func NewBanner(logger zerolog.Logger) *Banner {
	return &Banner{
		mu:     &sync.Mutex{},
		logger: logger,
	}
}

func (b *Banner) PublishTravel(status travel.Status) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = status
	b.active = true
	b.logger.Debug().Str("destination", status.Destination).Dur("duration", status.Duration).Msg("banner shown")
}

func (b *Banner) ClearTravel() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = travel.Status{}
	b.active = false
	b.logger.Debug().Msg("banner hidden")
}

// Active reports whether a travel is being shown.
func (b *Banner) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// Status returns the shown travel status.
//
// Returns:
//   - travel.Status: the status
//   - bool: false if no travel is shown
func (b *Banner) Status() (travel.Status, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status, b.active
}

// Message returns the banner text, empty when inactive.
func (b *Banner) Message() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return ""
	}
	return fmt.Sprintf("Travelling to %s", b.status.Destination)
}

// Progress returns the fill of the progress bar in [0, 1]. The bar stays empty while the banner
// slides in and then fills linearly until the travel duration has passed.
//
// Parameters:
//   - now: the current time
//
// Returns:
//   - float64: the fill ratio, 0 when inactive
func (b *Banner) Progress(now time.Time) float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return 0
	}
	fill := b.status.Duration - slideIn
	elapsed := now.Sub(b.status.Started) - slideIn
	if fill <= 0 {
		if elapsed >= 0 {
			return 1
		}
		return 0
	}
	return common.Clamp(elapsed.Seconds()/fill.Seconds(), 0, 1)
}
