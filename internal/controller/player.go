package controller

import (
	"sync"
	"time"
)

// BridgePlayer mirrors the UI's video element. Commands go out over the
// bridge as broadcast messages; the element's periodic time reports feed
// Position. Between reports the position is extrapolated from the wall
// clock while playing.
type BridgePlayer struct {
	broadcaster *Broadcaster

	mu         sync.Mutex
	position   float64
	playing    bool
	duration   float64
	reportedAt time.Time
}

func NewBridgePlayer(broadcaster *Broadcaster) *BridgePlayer {
	return &BridgePlayer{
		broadcaster: broadcaster,
		reportedAt:  time.Now(),
	}
}

func (p *BridgePlayer) Play() {
	p.mu.Lock()
	if !p.playing {
		p.position = p.positionLocked()
		p.playing = true
		p.reportedAt = time.Now()
	}
	p.mu.Unlock()

	p.broadcaster.broadcast(&Output{Type: "PLAY"})
}

func (p *BridgePlayer) Pause() {
	p.mu.Lock()
	if p.playing {
		p.position = p.positionLocked()
		p.playing = false
		p.reportedAt = time.Now()
	}
	p.mu.Unlock()

	p.broadcaster.broadcast(&Output{Type: "PAUSE"})
}

func (p *BridgePlayer) Seek(seconds float64) {
	p.mu.Lock()
	p.position = seconds
	p.reportedAt = time.Now()
	p.mu.Unlock()

	p.broadcaster.broadcast(&Output{
		Type:    "SEEK",
		Payload: map[string]any{"seconds": seconds},
	})
}

func (p *BridgePlayer) Position() (float64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.positionLocked(), p.playing
}

func (p *BridgePlayer) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.duration
}

// ReportTime ingests a time report from the UI's video element.
func (p *BridgePlayer) ReportTime(currentTime float64, playing bool, duration float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.position = currentTime
	p.playing = playing
	if duration > 0 {
		p.duration = duration
	}
	p.reportedAt = time.Now()
}

func (p *BridgePlayer) positionLocked() float64 {
	if !p.playing {
		return p.position
	}

	return p.position + time.Since(p.reportedAt).Seconds()
}
