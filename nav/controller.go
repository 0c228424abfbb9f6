package nav

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"scrolly/metrics"
	"scrolly/scenes"
	"scrolly/store"
)

var ErrUnknownGroup = errors.New("unknown group")

// Painter draws onto one client's surface. Clear must remove everything the previous Paint left behind.
// Paint puts the scene's first frame up without waiting; Reveal plays whatever is timed after it.
type Painter interface {
	Clear(ctx context.Context) error
	Paint(ctx context.Context, scene *scenes.Scene, view scenes.View) error
	Controls(ctx context.Context, snapshot Snapshot) error
	Reveal(ctx context.Context) error
}

// Controller is the navigation state machine for one client. The current index only moves one step at a time
// and stays inside the registry. Transitions arriving while a paint is running are dropped.
type Controller struct {
	registry *scenes.Registry
	store    *store.Store

	mu       sync.Mutex
	index    int
	group    string
	painting bool
}

// New starts at the first scene. It needs a loaded store, so nothing can render before data is in.
func New(registry *scenes.Registry, st *store.Store) *Controller {
	return &Controller{
		registry: registry,
		store:    st,
	}
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Controller) Buttons() Buttons {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ButtonsFor(c.index, c.registry.Len())
}

// Painting reports whether a paint is in flight.
func (c *Controller) Painting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.painting
}

// Start paints the current scene without moving.
func (c *Controller) Start(ctx context.Context, p Painter) (Outcome, error) {
	return c.transition(ctx, p, "start", func() bool { return true })
}

func (c *Controller) Advance(ctx context.Context, p Painter) (Outcome, error) {
	return c.transition(ctx, p, "next", func() bool {
		if c.index >= c.registry.Len()-1 {
			return false
		}
		c.index++
		return true
	})
}

func (c *Controller) Retreat(ctx context.Context, p Painter) (Outcome, error) {
	return c.transition(ctx, p, "prev", func() bool {
		if c.index <= 0 {
			return false
		}
		c.index--
		return true
	})
}

// SelectGroup switches the group a grouped scene shows and redraws it. Outside a grouped scene it does nothing.
func (c *Controller) SelectGroup(ctx context.Context, p Painter, group string) (Outcome, error) {
	var stepErr error
	outcome, err := c.transition(ctx, p, "group", func() bool {
		scene := c.registry.Resolve(c.index)
		if !scene.Grouped {
			return false
		}
		categories, ok := c.store.Categories(scene.Dataset)
		if !ok || !slices.Contains(categories.Groups(), group) {
			stepErr = fmt.Errorf("%w %q", ErrUnknownGroup, group)
			return false
		}
		if c.effectiveGroup(scene) == group {
			return false
		}
		c.group = group
		return true
	})
	if stepErr != nil {
		return NoOp, stepErr
	}
	return outcome, err
}

// effectiveGroup is the chosen group, or the dataset default before anything was chosen.
func (c *Controller) effectiveGroup(scene *scenes.Scene) string {
	if c.group != "" {
		return c.group
	}
	if categories, ok := c.store.Categories(scene.Dataset); ok {
		return categories.DefaultGroup()
	}
	return ""
}

// transition runs step under the lock and, if it changed something, paints outside the lock.
func (c *Controller) transition(ctx context.Context, p Painter, direction string, step func() bool) (Outcome, error) {
	c.mu.Lock()
	if c.painting {
		c.mu.Unlock()
		metrics.RecordTransition(direction, Busy.String())
		slog.Debug("transition dropped, paint in progress", "direction", direction)
		return Busy, nil
	}
	if !step() {
		c.mu.Unlock()
		metrics.RecordTransition(direction, NoOp.String())
		return NoOp, nil
	}
	c.painting = true
	index, group := c.index, c.group
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.painting = false
		c.mu.Unlock()
	}()

	metrics.RecordTransition(direction, Applied.String())
	return Applied, c.paint(ctx, p, index, group)
}

func (c *Controller) paint(ctx context.Context, p Painter, index int, group string) error {
	scene := c.registry.Resolve(index)
	view, err := scene.View(c.store, group)
	if err != nil {
		return err
	}
	snapshot := c.snapshot(index, scene, view)

	start := time.Now()
	defer func() {
		metrics.RecordPaint(scene.Key, time.Since(start).Seconds())
	}()

	var drawErr error
	if err := p.Clear(ctx); err != nil {
		drawErr = fmt.Errorf("clear before %q: %w", scene.Key, err)
	} else if err := p.Paint(ctx, scene, view); err != nil {
		drawErr = fmt.Errorf("paint %q: %w", scene.Key, err)
	}
	// Controls follow the index even when drawing failed, and go out before the timed reveals.
	if err := p.Controls(ctx, snapshot); err != nil {
		return errors.Join(drawErr, fmt.Errorf("controls: %w", err))
	}
	if drawErr != nil {
		return drawErr
	}
	if err := p.Reveal(ctx); err != nil {
		return fmt.Errorf("reveal %q: %w", scene.Key, err)
	}
	return nil
}

func (c *Controller) snapshot(index int, scene *scenes.Scene, view scenes.View) Snapshot {
	return Snapshot{
		Index:   index,
		Total:   c.registry.Len(),
		Buttons: ButtonsFor(index, c.registry.Len()),
		Scene:   scene,
		Group:   view.Group,
		Groups:  view.Groups,
	}
}

// Snapshot is the state the controls should show right now, whether or not a paint is running.
func (c *Controller) Snapshot() (Snapshot, error) {
	c.mu.Lock()
	index, group := c.index, c.group
	c.mu.Unlock()

	scene := c.registry.Resolve(index)
	view, err := scene.View(c.store, group)
	if err != nil {
		return Snapshot{}, err
	}
	return c.snapshot(index, scene, view), nil
}
