package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/couchcryptid/quake-map-service/internal/overlay"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

// Metric label values for the two overlays.
const (
	labelEarthquakes = "earthquakes"
	labelPlates      = "plates"
)

// clock stamps finished render passes. Tests freeze it via SetClock.
var clock = clockwork.NewRealClock()

// SetClock swaps the render timestamp source. Pass nil to restore the real clock.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}

// Source fetches the two GeoJSON feeds.
type Source interface {
	Earthquakes(ctx context.Context) (domain.RawCollection, error)
	Boundaries(ctx context.Context) (domain.RawCollection, error)
}

// MarkerSink receives the styled markers of each render pass.
type MarkerSink interface {
	LoadBatch(ctx context.Context, markers []overlay.Marker) error
}

// Pipeline runs render passes: fetch, validate, style, compose.
type Pipeline struct {
	source  Source
	builder overlay.Builder
	sink    MarkerSink
	base    overlay.BaseMap
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline. A nil sink disables marker publication.
func New(source Source, builder overlay.Builder, sink MarkerSink, base overlay.BaseMap, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		source:  source,
		builder: builder,
		sink:    sink,
		base:    base,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a render pass has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no render pass has completed yet")
	}
	return nil
}

// Render performs one render pass on a fresh map. The boundary feed is only
// requested after the earthquake overlay is attached; if the earthquake feed
// fails both overlays stay empty. Feed and feature failures are logged and
// never fail the pass. The only error is context cancellation.
func (p *Pipeline) Render(ctx context.Context) (*overlay.Map, error) {
	start := time.Now()
	m := overlay.NewMap(p.base)

	if p.renderEarthquakes(ctx, m) {
		p.renderBoundaries(ctx, m)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.RenderedAt = clock.Now()
	p.metrics.RenderPasses.Inc()
	p.metrics.RenderDuration.Observe(time.Since(start).Seconds())
	p.metrics.LastRenderTime.Set(float64(m.RenderedAt.Unix()))
	p.ready.Store(true)

	quakes, _ := m.Layer(overlay.LayerEarthquakes)
	plates, _ := m.Layer(overlay.LayerPlates)
	p.logger.Info("render pass complete",
		"earthquakes", quakes.Len(),
		"boundaries", plates.Len(),
		"skipped", m.Skipped,
		"duration", time.Since(start),
	)
	return m, nil
}

// renderEarthquakes fills the earthquake overlay. Returns false when the
// feed could not be fetched.
func (p *Pipeline) renderEarthquakes(ctx context.Context, m *overlay.Map) bool {
	rc, err := p.source.Earthquakes(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("earthquake feed unavailable, overlays left empty", "error", err)
		}
		return false
	}

	features, errs := domain.ParseEarthquakes(rc.Features)
	p.skip(m, labelEarthquakes, append(rc.Rejected, errs...))

	markers, err := p.builder.AttachEarthquakes(m, features)
	if err != nil {
		p.logger.Error("attach earthquake overlay failed", "error", err)
		return false
	}
	p.metrics.FeaturesRendered.WithLabelValues(labelEarthquakes).Add(float64(len(markers)))

	p.publish(ctx, markers)
	return true
}

func (p *Pipeline) renderBoundaries(ctx context.Context, m *overlay.Map) {
	rc, err := p.source.Boundaries(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("plate boundary feed unavailable, overlay left empty", "error", err)
		}
		return
	}

	segments, errs := domain.ParseBoundaries(rc.Features)
	p.skip(m, labelPlates, append(rc.Rejected, errs...))

	if err := p.builder.AttachBoundaries(m, segments); err != nil {
		p.logger.Error("attach boundary overlay failed", "error", err)
		return
	}
	p.metrics.FeaturesRendered.WithLabelValues(labelPlates).Add(float64(len(segments)))
}

func (p *Pipeline) skip(m *overlay.Map, layer string, errs []error) {
	for _, err := range errs {
		p.logger.Warn("malformed feature, skipping", "layer", layer, "error", err)
	}
	m.Skipped += len(errs)
	p.metrics.FeaturesSkipped.WithLabelValues(layer).Add(float64(len(errs)))
}

func (p *Pipeline) publish(ctx context.Context, markers []overlay.Marker) {
	if p.sink == nil || len(markers) == 0 {
		return
	}
	if err := p.sink.LoadBatch(ctx, markers); err != nil {
		p.logger.Error("publish markers failed", "error", err, "batch_size", len(markers))
		p.metrics.PublishErrors.Inc()
		return
	}
	p.metrics.MarkersPublished.Add(float64(len(markers)))
}

// Lookup fetches the earthquake feed on its own and returns the first event
// with the given ID. A miss wraps domain.ErrNotFound; an ID present only on a
// rejected feature returns its *domain.MalformedFeatureError.
func (p *Pipeline) Lookup(ctx context.Context, id string) (domain.EarthquakeFeature, error) {
	rc, err := p.source.Earthquakes(ctx)
	if err != nil {
		p.metrics.Lookups.WithLabelValues("error").Inc()
		return domain.EarthquakeFeature{}, fmt.Errorf("lookup %s: %w", id, err)
	}

	features, rejected := domain.ParseEarthquakes(rc.Features)
	eq, err := domain.FindInBatch(features, append(rc.Rejected, rejected...), id)
	var mf *domain.MalformedFeatureError
	switch {
	case errors.As(err, &mf):
		p.metrics.Lookups.WithLabelValues("malformed").Inc()
		return domain.EarthquakeFeature{}, err
	case err != nil:
		p.metrics.Lookups.WithLabelValues("not_found").Inc()
		return domain.EarthquakeFeature{}, err
	}
	p.metrics.Lookups.WithLabelValues("found").Inc()
	return eq, nil
}

// Run performs the startup render pass and, when lookupID is set, the
// diagnostic lookup alongside it. The two share no state.
func (p *Pipeline) Run(ctx context.Context, lookupID string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := p.Render(gctx)
		return err
	})

	if lookupID != "" {
		g.Go(func() error {
			p.logDiagnostic(gctx, lookupID)
			return nil
		})
	}

	return g.Wait()
}

func (p *Pipeline) logDiagnostic(ctx context.Context, id string) {
	eq, err := p.Lookup(ctx, id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		p.logger.Warn("diagnostic earthquake not found", "id", id)
	case errors.As(err, new(*domain.MalformedFeatureError)):
		p.logger.Warn("diagnostic earthquake malformed", "id", id, "error", err)
	case err != nil:
		p.logger.Warn("diagnostic lookup failed", "id", id, "error", err)
	default:
		p.logger.Info("diagnostic earthquake",
			"id", eq.ID,
			"lon", eq.Position.Lon,
			"lat", eq.Position.Lat,
			"depth", eq.Position.Depth,
			"magnitude", eq.Magnitude,
			"place", eq.Place,
			"category", domain.ClassifyDepth(eq.Position.Depth).String(),
		)
	}
}
