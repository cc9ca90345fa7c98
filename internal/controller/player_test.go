package controller

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cineroom/client/internal/repository/connection/inmemory"
)

func newTestBridgePlayer() *BridgePlayer {
	return NewBridgePlayer(NewBroadcaster(inmemory.NewRepo(), slog.Default()))
}

func TestBridgePlayerExtrapolatesWhilePlaying(t *testing.T) {
	p := newTestBridgePlayer()

	p.ReportTime(10, true, 300)
	time.Sleep(50 * time.Millisecond)

	position, playing := p.Position()
	assert.True(t, playing)
	assert.Greater(t, position, 10.0, "position must advance between reports")
	assert.Less(t, position, 11.0)
}

func TestBridgePlayerHoldsPositionWhilePaused(t *testing.T) {
	p := newTestBridgePlayer()

	p.ReportTime(10, false, 300)
	time.Sleep(50 * time.Millisecond)

	position, playing := p.Position()
	assert.False(t, playing)
	assert.Equal(t, 10.0, position)
}

func TestBridgePlayerPauseFreezesExtrapolation(t *testing.T) {
	p := newTestBridgePlayer()

	p.ReportTime(10, true, 300)
	p.Pause()

	position, playing := p.Position()
	assert.False(t, playing)
	assert.GreaterOrEqual(t, position, 10.0)

	frozen := position
	time.Sleep(50 * time.Millisecond)
	position, _ = p.Position()
	assert.Equal(t, frozen, position)
}

func TestBridgePlayerSeek(t *testing.T) {
	p := newTestBridgePlayer()

	p.ReportTime(10, false, 300)
	p.Seek(120)

	position, _ := p.Position()
	assert.Equal(t, 120.0, position)
	assert.Equal(t, 300.0, p.Duration())
}
