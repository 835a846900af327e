package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	autolisterrors "github.com/autolist/autolist/internal/errors"
	"github.com/autolist/autolist/internal/logging"
)

// DefaultTimeout bounds each list fetch when the loader is built with zero.
const DefaultTimeout = 10 * time.Second

// Failure records one list that could not be loaded.
type Failure struct {
	Kind Kind
	Err  error
}

// LoadReport collects the failures of one Load. A list that failed is empty
// in the returned Catalog.
type LoadReport struct {
	Failures []Failure
	Elapsed  time.Duration
}

// OK reports whether every list loaded.
func (r *LoadReport) OK() bool {
	return r == nil || len(r.Failures) == 0
}

// Failed reports whether the list of kind failed to load.
func (r *LoadReport) Failed(kind Kind) bool {
	if r == nil {
		return false
	}
	for _, f := range r.Failures {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Summary renders a one-line warning suitable for a banner, or "" when
// nothing failed.
func (r *LoadReport) Summary() string {
	if r.OK() {
		return ""
	}
	names := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, string(f.Kind))
	}
	return "Could not load " + strings.Join(names, ", ") + ". Those fields have no choices."
}

// Loader fetches every reference list from a Source in one batch.
type Loader struct {
	timeout time.Duration
	logger  *logging.Logger
}

// NewLoader creates a loader with the given per-fetch timeout.
func NewLoader(timeout time.Duration) *Loader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{timeout: timeout}
}

// WithLogger sets the logger used for fetch warnings. The global logger is
// used otherwise.
func (l *Loader) WithLogger(logger *logging.Logger) *Loader {
	l.logger = logger
	return l
}

func (l *Loader) log() *logging.Logger {
	if l.logger != nil {
		return l.logger
	}
	return logging.Global()
}

// Load fetches all lists concurrently. It never returns an error: a list
// that fails is left empty and recorded in the report.
func (l *Loader) Load(ctx context.Context, src Source) (*Catalog, *LoadReport) {
	start := time.Now()
	cat := &Catalog{}
	report := &LoadReport{}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, kind := range Kinds() {
		wg.Add(1)
		go func(kind Kind) {
			defer wg.Done()

			fetchCtx, cancel := context.WithTimeout(ctx, l.timeout)
			defer cancel()

			fetchStart := time.Now()
			err := fetch(fetchCtx, src, kind, cat)
			if err == nil {
				l.log().Debug("catalog list loaded", "list", string(kind), "count", cat.Len(kind))
				return
			}

			cat.reset(kind)
			err = classify(fetchCtx, kind, err, time.Since(fetchStart))
			l.log().Warn("catalog list failed to load", "list", string(kind), "error", err)

			mu.Lock()
			report.Failures = append(report.Failures, Failure{Kind: kind, Err: err})
			mu.Unlock()
		}(kind)
	}
	wg.Wait()

	order := make(map[Kind]int)
	for i, k := range Kinds() {
		order[k] = i
	}
	sort.Slice(report.Failures, func(i, j int) bool {
		return order[report.Failures[i].Kind] < order[report.Failures[j].Kind]
	})
	report.Elapsed = time.Since(start)

	return cat, report
}

func classify(ctx context.Context, kind Kind, err error, elapsed time.Duration) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		err = autolisterrors.OperationTimeout("fetching "+string(kind), elapsed)
	case errors.Is(ctx.Err(), context.Canceled):
		err = autolisterrors.ContextCancelled("fetching " + string(kind))
	}
	return autolisterrors.CatalogFetchFailed(string(kind), err)
}

// reset empties the list of kind.
func (c *Catalog) reset(kind Kind) {
	switch kind {
	case KindBrands:
		c.Brands = []Brand{}
	case KindModels:
		c.Models = []Model{}
	case KindCarTypes:
		c.CarTypes = []CarType{}
	case KindConditions:
		c.Conditions = []Condition{}
	case KindTransmissions:
		c.Transmissions = []Transmission{}
	case KindFuelTypes:
		c.FuelTypes = []FuelType{}
	case KindColors:
		c.Colors = []Color{}
	}
}
