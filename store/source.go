package store

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
)

type Kind string

const (
	TimeSeriesKind Kind = "timeseries"
	CategoriesKind Kind = "categories"
)

// Columns names the CSV header fields a source is read from.
type Columns struct {
	Year     string `yaml:"year"`
	Value    string `yaml:"value"`
	Category string `yaml:"category"`
	Group    string `yaml:"group"`
}

const (
	DefaultYearColumn     = "year"
	DefaultValueColumn    = "annual_co2_emissions"
	DefaultCategoryColumn = "Type"
)

func (c Columns) withDefaults() Columns {
	if c.Year == "" {
		c.Year = DefaultYearColumn
	}
	if c.Value == "" {
		c.Value = DefaultValueColumn
	}
	if c.Category == "" {
		c.Category = DefaultCategoryColumn
	}
	return c
}

type Source struct {
	Name string `yaml:"name"`
	Kind Kind   `yaml:"kind"`
	// Location is a path inside the data filesystem or an http(s) URL.
	Location string  `yaml:"location"`
	Columns  Columns `yaml:"columns"`
	// Sentinel is the aggregate group of a category source, e.g. "World".
	Sentinel string `yaml:"sentinel"`
}

// Opener hands back the raw bytes of a source location.
type Opener interface {
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}

type SourceOpener struct {
	fsys   fs.FS
	client *http.Client
}

// NewOpener reads relative locations from fsys and URLs with client. A nil client uses http.DefaultClient.
func NewOpener(fsys fs.FS, client *http.Client) *SourceOpener {
	if client == nil {
		client = http.DefaultClient
	}
	return &SourceOpener{
		fsys,
		client,
	}
}

func (o *SourceOpener) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return o.fetch(ctx, location)
	}
	if o.fsys == nil {
		return nil, fmt.Errorf("no data filesystem for %q", location)
	}
	return o.fsys.Open(strings.TrimPrefix(location, "/"))
}

func (o *SourceOpener) fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", url, resp.Status)
	}
	return resp.Body, nil
}
