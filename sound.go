package sapling

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// speakerRate is the output rate of the shared mixer. Sounds decoded at a
// different rate are resampled on play.
const speakerRate = beep.SampleRate(44100)

var (
	speakerOnce  sync.Once
	speakerErr   error
	speakerMixer *beep.Mixer
)

// initSpeaker opens the audio device on first use and starts a mixer that
// every Sound plays through.
func initSpeaker() error {
	speakerOnce.Do(func() {
		if err := speaker.Init(speakerRate, speakerRate.N(100*time.Millisecond)); err != nil {
			speakerErr = fmt.Errorf("sapling: init speaker: %w", err)
			return
		}
		speakerMixer = &beep.Mixer{}
		speaker.Play(speakerMixer)
	})
	return speakerErr
}

// Sound is a decoded audio clip held in memory. Play resumes a paused clip
// from where it stopped; once a clip has ended, Play starts it over.
type Sound struct {
	buffer *beep.Buffer

	// Guarded by the speaker lock once playing.
	ctrl  *beep.Ctrl
	ended bool
}

// NewSound wraps a decoded buffer.
func NewSound(buf *beep.Buffer) *Sound {
	return &Sound{buffer: buf}
}

// Format returns the clip's sample format.
func (s *Sound) Format() beep.Format { return s.buffer.Format() }

// Duration returns the clip's length.
func (s *Sound) Duration() time.Duration {
	return s.buffer.Format().SampleRate.D(s.buffer.Len())
}

// Play starts or resumes the clip. With loop set, a fresh playback repeats
// forever.
func (s *Sound) Play(loop bool) error {
	if err := initSpeaker(); err != nil {
		return err
	}

	speaker.Lock()
	if s.ctrl != nil && !s.ended {
		s.ctrl.Paused = false
		speaker.Unlock()
		return nil
	}

	var st beep.Streamer
	seeker := s.buffer.Streamer(0, s.buffer.Len())
	st = seeker
	if loop {
		st = beep.Loop(-1, seeker)
	}
	if rate := s.buffer.Format().SampleRate; rate != speakerRate {
		st = beep.Resample(4, rate, speakerRate, st)
	}
	s.ctrl = &beep.Ctrl{Streamer: st}
	s.ended = false
	speakerMixer.Add(beep.Seq(s.ctrl, beep.Callback(func() {
		s.ended = true
	})))
	speaker.Unlock()
	return nil
}

// Pause holds the clip at its current position.
func (s *Sound) Pause() {
	if speakerMixer == nil {
		return
	}
	speaker.Lock()
	if s.ctrl != nil {
		s.ctrl.Paused = true
	}
	speaker.Unlock()
}
