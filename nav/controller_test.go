package nav

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrolly/config"
	"scrolly/scenes"
	"scrolly/store"
)

const testStory = `
datasets:
  - {name: annual, kind: timeseries, location: annual.csv}
  - {name: types, kind: categories, location: types.csv, columns: {group: Entity}, sentinel: World}
shared_scale: {source: annual, padding: 1}
scenes:
  - {key: pre, kind: line, dataset: annual, to_year: 1950, shared_scale: true}
  - {key: post, kind: line, dataset: annual, from_year: 1940, shared_scale: true}
  - {key: bars, kind: bar, dataset: types, grouped: true}
`

var testData = fstest.MapFS{
	"annual.csv": {Data: []byte("year,annual_co2_emissions\n1750,10\n1896,50\n1900,60\n1950,200\n1988,500\n2023,900\n")},
	"types.csv":  {Data: []byte("Entity,Type,annual_co2_emissions\nWorld,Oil,120\nWorld,Coal,150\nUSA,Oil,20\nUSA,Coal,9\n")},
}

func newController(t *testing.T) *Controller {
	t.Helper()
	story, err := config.ParseStory([]byte(testStory))
	require.NoError(t, err)
	st, err := store.Load(context.Background(), store.NewOpener(testData, nil), story.Datasets, story.SharedScale)
	require.NoError(t, err)
	registry, err := scenes.Build(story, st)
	require.NoError(t, err)
	return New(registry, st)
}

type recorder struct {
	mu        sync.Mutex
	calls     []string
	views     []scenes.View
	snapshots []Snapshot

	// entered and release, when set, hold Paint until the test lets it go.
	entered  chan struct{}
	release  chan struct{}
	clearErr error
	paintErr error
}

func (r *recorder) Clear(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "clear")
	return r.clearErr
}

func (r *recorder) Reveal(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, "reveal")
	return nil
}

func (r *recorder) Paint(_ context.Context, scene *scenes.Scene, view scenes.View) error {
	r.mu.Lock()
	r.calls = append(r.calls, "paint:"+scene.Key)
	r.views = append(r.views, view)
	r.mu.Unlock()
	if r.entered != nil {
		r.entered <- struct{}{}
		<-r.release
	}
	return r.paintErr
}

func (r *recorder) Controls(_ context.Context, s Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("controls:%d", s.Index))
	r.snapshots = append(r.snapshots, s)
	return nil
}

func (r *recorder) lastSnapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshots[len(r.snapshots)-1]
}

func TestWalkThroughThreeScenes(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	p := &recorder{}

	outcome, err := c.Start(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, 0, c.Index())
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: false}, c.Buttons())

	for i := 0; i < 2; i++ {
		outcome, err = c.Advance(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, Applied, outcome)
	}
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: true}, c.Buttons())

	calls := len(p.calls)
	outcome, err = c.Advance(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, NoOp, outcome)
	assert.Equal(t, 2, c.Index())
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: true}, c.Buttons())
	assert.Len(t, p.calls, calls, "no-op must not repaint")

	assert.Equal(t, []string{
		"clear", "paint:pre", "controls:0", "reveal",
		"clear", "paint:post", "controls:1", "reveal",
		"clear", "paint:bars", "controls:2", "reveal",
	}, p.calls)
}

func TestRetreatAtFirstSceneIsNoOp(t *testing.T) {
	c := newController(t)
	p := &recorder{}

	outcome, err := c.Retreat(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, NoOp, outcome)
	assert.Equal(t, 0, c.Index())
	assert.Empty(t, p.calls)
}

func TestRandomWalkStaysInBounds(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	p := &recorder{}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		before := c.Index()
		var outcome Outcome
		var err error
		if rng.Intn(2) == 0 {
			outcome, err = c.Advance(ctx, p)
		} else {
			outcome, err = c.Retreat(ctx, p)
		}
		require.NoError(t, err)

		after := c.Index()
		require.GreaterOrEqual(t, after, 0)
		require.LessOrEqual(t, after, 2)
		diff := after - before
		require.True(t, diff >= -1 && diff <= 1, "moved %d in one call", diff)
		if outcome == NoOp {
			require.Equal(t, before, after)
		}
		require.Equal(t, Buttons{PrevDisabled: after == 0, NextDisabled: after == 2}, c.Buttons())
		if outcome == Applied {
			s := p.lastSnapshot()
			require.Equal(t, after, s.Index)
			require.Equal(t, c.Buttons(), s.Buttons)
		}
	}
}

func TestButtonsFor(t *testing.T) {
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: false}, ButtonsFor(0, 3))
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: false}, ButtonsFor(1, 3))
	assert.Equal(t, Buttons{PrevDisabled: false, NextDisabled: true}, ButtonsFor(2, 3))
	assert.Equal(t, Buttons{PrevDisabled: true, NextDisabled: true}, ButtonsFor(0, 1))
}

func TestTransitionWhilePaintingIsDropped(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	slow := &recorder{entered: make(chan struct{}), release: make(chan struct{})}

	done := make(chan Outcome)
	go func() {
		outcome, _ := c.Advance(ctx, slow)
		done <- outcome
	}()
	<-slow.entered
	assert.True(t, c.Painting())

	other := &recorder{}
	outcome, err := c.Advance(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, Busy, outcome)
	outcome, err = c.Retreat(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, Busy, outcome)
	assert.Empty(t, other.calls)
	assert.Equal(t, 1, c.Index())

	close(slow.release)
	assert.Equal(t, Applied, <-done)
	assert.False(t, c.Painting())

	outcome, err = c.Advance(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, 2, c.Index())
}

func TestSharedScaleReachesBothLineScenes(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	p := &recorder{}

	_, err := c.Start(ctx, p)
	require.NoError(t, err)
	_, err = c.Advance(ctx, p)
	require.NoError(t, err)

	require.Len(t, p.views, 2)
	require.NotNil(t, p.views[0].Scale)
	require.NotNil(t, p.views[1].Scale)
	assert.Equal(t, *p.views[0].Scale, *p.views[1].Scale)
	lo, hi := p.views[0].Scale.Domain()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1000.0, hi)
}

func TestSelectGroupRedrawsOnlyThatGroup(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	p := &recorder{}

	outcome, err := c.SelectGroup(ctx, p, "USA")
	require.NoError(t, err)
	assert.Equal(t, NoOp, outcome, "line scenes ignore the selector")

	_, _ = c.Advance(ctx, p)
	_, _ = c.Advance(ctx, p)
	first := p.views[len(p.views)-1]
	assert.Equal(t, "World", first.Group)
	assert.Equal(t, []string{"World", "USA"}, p.lastSnapshot().Groups)

	p.calls = nil
	outcome, err = c.SelectGroup(ctx, p, "USA")
	require.NoError(t, err)
	assert.Equal(t, Applied, outcome)
	assert.Equal(t, []string{"clear", "paint:bars", "controls:2", "reveal"}, p.calls)
	assert.Equal(t, 2, c.Index())

	view := p.views[len(p.views)-1]
	assert.Equal(t, "USA", view.Group)
	for _, point := range view.Categories.Points() {
		assert.Equal(t, "USA", point.Group())
	}
	assert.Equal(t, "USA", p.lastSnapshot().Group)

	outcome, err = c.SelectGroup(ctx, p, "USA")
	require.NoError(t, err)
	assert.Equal(t, NoOp, outcome)

	_, err = c.SelectGroup(ctx, p, "Atlantis")
	assert.ErrorIs(t, err, ErrUnknownGroup)
}

func TestControlsFollowIndexWhenPaintFails(t *testing.T) {
	c := newController(t)
	p := &recorder{paintErr: errors.New("client went away")}

	outcome, err := c.Advance(context.Background(), p)
	assert.Equal(t, Applied, outcome)
	assert.ErrorContains(t, err, "client went away")
	assert.Equal(t, 1, c.Index())
	assert.Equal(t, 1, p.lastSnapshot().Index)
	assert.False(t, c.Painting())
}

func TestControlsFollowIndexWhenClearFails(t *testing.T) {
	c := newController(t)
	p := &recorder{clearErr: errors.New("stream closed")}

	outcome, err := c.Advance(context.Background(), p)
	assert.Equal(t, Applied, outcome)
	assert.ErrorContains(t, err, "stream closed")
	assert.Equal(t, []string{"clear", "controls:1"}, p.calls)
	assert.Equal(t, 1, p.lastSnapshot().Index)
	assert.False(t, c.Painting())
}

func TestSnapshotTracksCurrentScene(t *testing.T) {
	ctx := context.Background()
	c := newController(t)
	p := &recorder{}

	s, err := c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Index)
	assert.Equal(t, Buttons{PrevDisabled: true}, s.Buttons)

	_, _ = c.Advance(ctx, p)
	_, _ = c.Advance(ctx, p)
	_, _ = c.SelectGroup(ctx, p, "USA")
	s, err = c.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 2, s.Index)
	assert.Equal(t, Buttons{NextDisabled: true}, s.Buttons)
	assert.Equal(t, "USA", s.Group)
	assert.Equal(t, []string{"World", "USA"}, s.Groups)
}
