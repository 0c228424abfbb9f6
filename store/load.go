package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"scrolly/metrics"
	"scrolly/models"
)

type loaded struct {
	timeSeries *models.TimeSeries
	categories *models.CategorySeries
}

// Load fetches and parses every source concurrently. Any failure fails the whole load, there is no partial Store.
// The caller bounds the load with ctx; running out of time is reported as a LoadError too.
func Load(ctx context.Context, opener Opener, sources []Source, scale ScaleConfig) (*Store, error) {
	if len(sources) == 0 {
		return nil, &LoadError{Source: "(none)", Reason: "no sources configured"}
	}

	results := make([]loaded, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			res, err := loadSource(gctx, opener, source)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// A deadline hitting one source surfaces as that source's error, report it as a timeout.
		var loadErr *LoadError
		if ctx.Err() != nil && errors.As(err, &loadErr) {
			loadErr.Reason = "timed out"
			loadErr.Err = ctx.Err()
		}
		return nil, err
	}

	var timeSeries []*models.TimeSeries
	var categories []*models.CategorySeries
	for _, res := range results {
		if res.timeSeries != nil {
			timeSeries = append(timeSeries, res.timeSeries)
		}
		if res.categories != nil {
			categories = append(categories, res.categories)
		}
	}
	s, err := New(scale, timeSeries, categories)
	if err != nil {
		return nil, &LoadError{Source: scale.Source, Reason: "building store", Err: err}
	}
	return s, nil
}

func loadSource(ctx context.Context, opener Opener, source Source) (res loaded, err error) {
	defer func() {
		if err != nil {
			metrics.RecordLoad(source.Name, 0, 0, err)
		}
	}()

	if source.Name == "" {
		return res, &LoadError{Source: source.Location, Reason: "source has no name"}
	}
	rc, err := opener.Open(ctx, source.Location)
	if err != nil {
		return res, &LoadError{Source: source.Name, Reason: "unreachable", Err: err}
	}
	defer func() {
		if cerr := rc.Close(); cerr != nil {
			slog.Warn("couldn't close source", "source", source.Name, "error", cerr)
		}
	}()

	var rows int
	var skipped []RowIssue
	switch source.Kind {
	case TimeSeriesKind:
		result := ParseTimeSeries(source.Name, rc, source.Columns)
		if !result.OK() {
			return res, &LoadError{Source: source.Name, Reason: "malformed", Err: result.Err}
		}
		res.timeSeries, rows, skipped = result.Value, result.Rows, result.Skipped
	case CategoriesKind:
		result := ParseCategories(source.Name, rc, source.Columns, source.Sentinel)
		if !result.OK() {
			return res, &LoadError{Source: source.Name, Reason: "malformed", Err: result.Err}
		}
		res.categories, rows, skipped = result.Value, result.Rows, result.Skipped
	default:
		return res, &LoadError{Source: source.Name, Reason: fmt.Sprintf("unknown kind %q", source.Kind)}
	}

	if err := ctx.Err(); err != nil {
		return res, &LoadError{Source: source.Name, Reason: "cancelled", Err: err}
	}

	for _, issue := range skipped {
		slog.Warn("skipped row", "source", source.Name, "line", issue.Line, "reason", issue.Reason)
	}
	slog.Info("loaded source", "source", source.Name, "rows", rows, "skipped", len(skipped))
	metrics.RecordLoad(source.Name, rows, len(skipped), nil)
	return res, nil
}
