package ebiten

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/lazyengine/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dtRecorder struct {
	ecs.BaseSystem
	seen []float64
}

func (r *dtRecorder) OnUpdate(dt float64) {
	r.seen = append(r.seen, dt)
}

func TestClock(t *testing.T) {
	var c clock
	start := time.Unix(1000, 0)

	assert.InDelta(t, 1.0/float64(ebiten.DefaultTPS), c.tick(start), 1e-9)
	assert.InDelta(t, 0.25, c.tick(start.Add(250*time.Millisecond)), 1e-9)
	assert.InDelta(t, 0.0, c.tick(start.Add(250*time.Millisecond)), 1e-9)
}

func TestGameUpdateWithoutBackend(t *testing.T) {
	reg := ecs.NewRegistry()
	inst, _ := reg.Instance(reg.CreateInstance())
	rec := ecs.InstantiateSystem[dtRecorder](inst.Systems)

	game := NewGame(reg, nil)
	require.NoError(t, game.Update())
	require.NoError(t, game.Update())

	require.Len(t, rec.seen, 2)
	assert.InDelta(t, 1.0/float64(ebiten.DefaultTPS), rec.seen[0], 1e-9)
	assert.GreaterOrEqual(t, rec.seen[1], 0.0)

	w, h := game.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}
