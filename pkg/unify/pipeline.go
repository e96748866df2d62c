package unify

import (
	"context"
	"sync"

	"github.com/carvoy/locmerge/pkg/catalog"
	"github.com/carvoy/locmerge/pkg/logging"
	"github.com/carvoy/locmerge/pkg/suppliers"
)

// DefaultConcurrency bounds how many supplier feeds are fetched at once.
const DefaultConcurrency = 4

// Summary reports what one pipeline run did.
type Summary struct {
	// SupplierCounts maps supplier tag to collected record count, including
	// suppliers that failed and contributed zero or partial records.
	SupplierCounts map[string]int

	// FailedSuppliers lists suppliers whose collector returned an error.
	FailedSuppliers []string

	Records   int
	Malformed int
	Groups    int
	Locations int
}

// Pipeline runs the full reconciliation: concurrent collection, per-record
// enrichment, single-threaded grouping and building, atomic publication.
type Pipeline struct {
	registry    *suppliers.Registry
	enricher    *Enricher
	outputPath  string
	concurrency int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithConcurrency bounds the number of parallel supplier fetches.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// NewPipeline creates a pipeline over the given collector registry that
// publishes to outputPath.
func NewPipeline(registry *suppliers.Registry, enricher *Enricher, outputPath string, opts ...Option) *Pipeline {
	p := &Pipeline{
		registry:    registry,
		enricher:    enricher,
		outputPath:  outputPath,
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one full batch. Collector failures reduce coverage but never
// abort the run; only serialization or publication failures are fatal.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	summary := Summary{SupplierCounts: make(map[string]int)}

	collected := p.collect(ctx, &summary)

	records := make([]Record, 0, len(collected))
	for _, raw := range collected {
		record, err := p.enricher.Enrich(raw)
		if err != nil {
			summary.Malformed++
			logging.Debug().
				Str("supplier", raw.Supplier).
				Str("native_id", raw.NativeID).
				Msg("Dropped malformed record")
			continue
		}
		records = append(records, record)
	}
	summary.Records = len(records)

	groups := GroupAll(records)
	summary.Groups = len(groups)

	locations := BuildAll(groups)
	summary.Locations = len(locations)

	if err := catalog.Save(p.outputPath, locations); err != nil {
		return summary, err
	}

	logging.Info().
		Int("records", summary.Records).
		Int("groups", summary.Groups).
		Int("locations", summary.Locations).
		Int("malformed", summary.Malformed).
		Int("failed_suppliers", len(summary.FailedSuppliers)).
		Msg("Reconciliation run complete")
	return summary, nil
}

// collect fans out over the registry with bounded concurrency. Results land
// in a slice indexed by registry position and are concatenated in that fixed
// order, so parallel fetching never changes the fold order downstream.
func (p *Pipeline) collect(ctx context.Context, summary *Summary) []suppliers.RawLocation {
	collectors := p.registry.List()
	results := make([][]suppliers.RawLocation, len(collectors))
	failures := make([]error, len(collectors))

	sem := make(chan struct{}, p.concurrency)
	var wg sync.WaitGroup

	for i, collector := range collectors {
		wg.Add(1)
		go func(i int, collector suppliers.Collector) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			locations, err := collector.Collect(ctx)
			// Keep partial results: a mid-pagination outage still
			// contributes whatever arrived before it.
			results[i] = locations
			failures[i] = err
		}(i, collector)
	}
	wg.Wait()

	var all []suppliers.RawLocation
	for i, collector := range collectors {
		name := collector.Name()
		summary.SupplierCounts[name] = len(results[i])

		if failures[i] != nil {
			summary.FailedSuppliers = append(summary.FailedSuppliers, name)
			logging.Error().
				Err(failures[i]).
				Str("supplier", name).
				Int("partial_records", len(results[i])).
				Msg("Collector failed, continuing with remaining suppliers")
		} else {
			logging.Info().
				Str("supplier", name).
				Int("locations", len(results[i])).
				Msg("Fetched supplier locations")
		}

		all = append(all, results[i]...)
	}
	return all
}
