package scenes

import (
	"errors"
	"fmt"

	"scrolly/config"
	"scrolly/store"
)

var ErrInvalidScene = errors.New("invalid scene")

// Registry is the ordered list of scenes. Index i always resolves to the same Scene.
type Registry struct {
	scenes []*Scene
}

// Build turns the story's scenes into a Registry, checking each against the loaded data.
// Annotation years missing from a scene's slice are reported here, before anything renders.
func Build(story *config.Story, st *store.Store) (*Registry, error) {
	r := &Registry{}
	var errs []error
	for i, def := range story.Scenes {
		scene := &Scene{
			Index:           i,
			Key:             def.Key,
			Title:           def.Title,
			Narrative:       Narrative(def.Narrative),
			Kind:            Kind(def.Kind),
			Dataset:         def.Dataset,
			FromYear:        def.FromYear,
			ToYear:          def.ToYear,
			UsesSharedScale: def.SharedScale,
			Grouped:         def.Grouped,
			Style:           def.Style,
			Annotations:     append([]config.Annotation(nil), def.Annotations...),
		}
		if err := check(scene, st); err != nil {
			errs = append(errs, fmt.Errorf("scene %q: %w: %w", scene.Key, ErrInvalidScene, err))
			continue
		}
		r.scenes = append(r.scenes, scene)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if len(r.scenes) == 0 {
		return nil, fmt.Errorf("%w: story has no scenes", ErrInvalidScene)
	}
	return r, nil
}

func check(scene *Scene, st *store.Store) error {
	switch scene.Kind {
	case Line:
		series, ok := st.TimeSeries(scene.Dataset)
		if !ok {
			return fmt.Errorf("no time series named %q", scene.Dataset)
		}
		slice := series.Between(scene.FromYear, scene.ToYear)
		if slice.Len() < 2 {
			return fmt.Errorf("%d points between %d and %d, need at least 2", slice.Len(), scene.FromYear, scene.ToYear)
		}
		if scene.UsesSharedScale {
			if _, ok := st.SharedScale(); !ok {
				return errors.New("uses the shared scale but none is configured")
			}
		}
		for _, a := range scene.Annotations {
			if _, ok := slice.Find(a.Year); !ok {
				return fmt.Errorf("annotation %q: year %d not in data", a.Title, a.Year)
			}
		}
	case Bar:
		categories, ok := st.Categories(scene.Dataset)
		if !ok {
			return fmt.Errorf("no category series named %q", scene.Dataset)
		}
		if scene.Grouped && !categories.HasGroups() {
			return errors.New("grouped but the dataset has no group column")
		}
		if len(scene.Annotations) > 0 {
			return errors.New("bar scenes don't take annotations")
		}
	default:
		return fmt.Errorf("unknown kind %q", scene.Kind)
	}
	return nil
}

// Resolve returns the scene at index. Callers keep index in range; anything else is a bug and panics.
func (r *Registry) Resolve(index int) *Scene {
	if index < 0 || index >= len(r.scenes) {
		panic(fmt.Sprintf("scenes: resolve %d out of range [0, %d)", index, len(r.scenes)))
	}
	return r.scenes[index]
}

func (r *Registry) Len() int {
	return len(r.scenes)
}

// All returns the scenes in order.
func (r *Registry) All() []*Scene {
	out := make([]*Scene, len(r.scenes))
	copy(out, r.scenes)
	return out
}
