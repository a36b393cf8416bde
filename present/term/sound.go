package term

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Sound plays the row clear tone. A Sound that failed to open the speaker
// stays silent.
type Sound struct {
	mu      sync.Mutex
	enabled bool
}

// NewSound initializes the speaker. The returned Sound is usable even when
// err is non-nil; it just plays nothing.
func NewSound() (*Sound, error) {
	s := &Sound{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.enabled = true
	return s, nil
}

// Clear plays a tone that rises with the number of rows cleared at once.
func (s *Sound) Clear(rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled {
		return
	}

	sine, err := generators.SineTone(sampleRate, ClearTone(rows))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(80*time.Millisecond), sine))
}

// Close stops playback.
func (s *Sound) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		speaker.Clear()
		s.enabled = false
	}
}

// ClearTone is the frequency in Hz played for a clear of rows.
func ClearTone(rows int) float64 {
	return 660 + 220*float64(min(max(rows, 1), 4)-1)
}
