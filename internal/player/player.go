package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	speakerRate     = beep.SampleRate(44100)
	resampleQuality = 4
)

// Player plays files through the system speaker.
type Player struct {
	mu       sync.Mutex
	state    State
	ctrl     *beep.Ctrl
	streamer beep.StreamSeekCloser
	format   beep.Format

	// gen identifies the current track so a late end-of-stream callback
	// from a replaced track is ignored.
	gen   atomic.Uint64
	ended atomic.Uint64

	finished chan struct{}
	playing  chan bool
}

var speakerOnce struct {
	sync.Once
	err error
}

// New creates a stopped player.
func New() *Player {
	return &Player{
		finished: make(chan struct{}, 1),
		playing:  make(chan bool, 8),
	}
}

// Verify Player implements Backend at compile time.
var _ Backend = (*Player)(nil)

func (p *Player) Play(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()

	streamer, format, err := decode(path)
	if err != nil {
		return err
	}

	speakerOnce.Do(func() {
		speakerOnce.err = speaker.Init(speakerRate, speakerRate.N(time.Second/10))
	})
	if speakerOnce.err != nil {
		streamer.Close()
		return speakerOnce.err
	}

	p.streamer = streamer
	p.format = format

	var src beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		src = beep.Resample(resampleQuality, format.SampleRate, speakerRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: src}

	gen := p.gen.Add(1)
	speaker.Play(beep.Seq(p.ctrl, beep.Callback(func() {
		// Runs on the speaker goroutine: never take p.mu here.
		if p.gen.Load() != gen {
			return
		}
		p.ended.Store(gen)
		select {
		case p.finished <- struct{}{}:
		default:
		}
		p.sendPlaying(false)
	})))

	p.state = Playing
	p.sendPlaying(true)
	return nil
}

func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	if speakerOnce.err == nil {
		speaker.Clear()
	}
}

func (p *Player) stopLocked() {
	if p.state == Stopped {
		return
	}
	p.gen.Add(1)
	speaker.Clear()

	if p.streamer != nil {
		p.streamer.Close()
		p.streamer = nil
	}
	p.ctrl = nil
	p.state = Stopped
	p.sendPlaying(false)
}

func (p *Player) Pause()  { p.setPaused(true) }
func (p *Player) Resume() { p.setPaused(false) }

func (p *Player) Toggle() {
	p.setPaused(p.State() == Playing)
}

func (p *Player) setPaused(pause bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, ok := p.state.withPause(pause)
	if !ok || p.ctrl == nil {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = pause
	speaker.Unlock()
	p.state = next
	p.sendPlaying(!pause)
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing && p.ended.Load() == p.gen.Load() {
		return Stopped
	}
	return p.state
}

func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := p.format.SampleRate.D(p.streamer.Position())
	speaker.Unlock()
	return pos
}

func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

func (p *Player) Finished() <-chan struct{} { return p.finished }

func (p *Player) PlayingChanged() <-chan bool { return p.playing }

func (p *Player) sendPlaying(v bool) {
	select {
	case p.playing <- v:
	default:
	}
}
