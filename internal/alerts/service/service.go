// Package service orchestrates the alert engine: entity snapshots in,
// cached alert lists and stats out, notifications offered on the side.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"vigil/internal/alerts"
	"vigil/internal/alerts/metrics"
	"vigil/internal/entities"
	"vigil/internal/readstate"
	"vigil/internal/stats"
	"vigil/internal/thresholds"
	"vigil/pkg/platform/sentinel"
)

// Notifier is offered every freshly generated alert list. Implementations
// must be best-effort; Dispatch returns nothing and must never panic the
// evaluation path.
type Notifier interface {
	Dispatch(ctx context.Context, list []alerts.AlertRecord)
}

// Deps wires the service. EntityStore, AlertThresholds, and Cache are
// required; the rest may be nil and degrade gracefully.
type Deps struct {
	Entities         entities.Store
	AlertThresholds  *thresholds.Store
	StatusThresholds *thresholds.Store
	Cache            *alerts.Cache
	ReadState        readstate.Store
	Notifier         Notifier
	Logger           *slog.Logger
	Metrics          *metrics.Metrics

	// Now overrides the clock for tests. Defaults to time.Now.
	Now func() time.Time
	// Timeout bounds one generation pass. Defaults to 10s.
	Timeout time.Duration
}

// Service is the composition of the pure engine with its collaborators. Two
// independently keyed cache slots (organizations, individuals) live inside
// the shared Cache.
type Service struct {
	deps    Deps
	now     func() time.Time
	timeout time.Duration
}

// New validates and constructs the service.
func New(deps Deps) (*Service, error) {
	if deps.Entities == nil {
		return nil, fmt.Errorf("entity store is required")
	}
	if deps.AlertThresholds == nil {
		return nil, fmt.Errorf("alert threshold store is required")
	}
	if deps.Cache == nil {
		return nil, fmt.Errorf("alert cache is required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{deps: deps, now: now, timeout: timeout}, nil
}

// Alerts returns the prioritized alert list for a kind, served from cache
// when fresh. force bypasses the freshness check but still coalesces onto
// any in-flight generation.
func (s *Service) Alerts(ctx context.Context, kind entities.Kind, force bool) ([]alerts.AlertRecord, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	ctx, span := otel.Tracer("vigil/alerts").Start(ctx, "alerts.get_or_generate")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(kind)))

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ents, err := s.deps.Entities.List(ctx, kind)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("fetch %s entities: %w", kind, sentinel.ErrTimeout)
		}
		return nil, fmt.Errorf("fetch %s entities: %w", kind, err)
	}

	signature := alerts.Signature(ents)
	return s.deps.Cache.GetOrGenerate(ctx, kind, signature, force, func(ctx context.Context) ([]alerts.AlertRecord, error) {
		return s.generate(ctx, kind, ents), nil
	})
}

// generate is the single-flight body: evaluate, record metrics, offer the
// high-severity output to the notifier. It cannot fail; degraded config is
// already absorbed by the threshold store.
func (s *Service) generate(ctx context.Context, kind entities.Kind, ents []entities.Entity) []alerts.AlertRecord {
	start := time.Now()
	set := s.deps.AlertThresholds.Get(ctx)
	list := alerts.Generate(ents, set, s.now())
	s.deps.Metrics.ObserveGenerateLatency(time.Since(start))

	for _, a := range list {
		s.deps.Metrics.CountAlert(string(kind), string(a.Priority))
	}
	s.deps.Logger.InfoContext(ctx, "alerts generated",
		"kind", kind,
		"entities", len(ents),
		"alerts", len(list),
	)

	if s.deps.Notifier != nil {
		s.deps.Notifier.Dispatch(ctx, list)
	}
	return list
}

// Stats aggregates the current alert list for a kind against the operator's
// read state. The alert list and the read-state set are fetched
// concurrently; a read-state failure degrades to "nothing read" rather than
// failing the stats.
func (s *Service) Stats(ctx context.Context, kind entities.Kind, userID string) (stats.Stats, error) {
	var (
		list    []alerts.AlertRecord
		readIDs map[string]struct{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.Alerts(gctx, kind, false)
		return err
	})
	g.Go(func() error {
		if s.deps.ReadState == nil || userID == "" {
			return nil
		}
		ids, err := s.deps.ReadState.List(gctx, userID)
		if err != nil {
			s.deps.Logger.WarnContext(gctx, "read state fetch failed, counting all as unread",
				"user_id", userID,
				"error", err,
			)
			return nil
		}
		readIDs = ids
		return nil
	})
	if err := g.Wait(); err != nil {
		return stats.Stats{}, err
	}

	return stats.Aggregate(list, readIDs), nil
}

// MarkRead acknowledges one alert for an operator.
func (s *Service) MarkRead(ctx context.Context, userID, alertID string) error {
	if s.deps.ReadState == nil {
		return fmt.Errorf("read state store not configured: %w", sentinel.ErrUnavailable)
	}
	return s.deps.ReadState.MarkRead(ctx, userID, alertID)
}

// EntityStatus is the badge view of one entity: per-document classification
// plus the worst badge across documents.
type EntityStatus struct {
	EntityID   string                                    `json:"entity_id"`
	EntityName string                                    `json:"entity_name"`
	Badges     map[entities.DocumentType]alerts.Priority `json:"badges"`
	Worst      alerts.Priority                           `json:"worst"`
}

// Statuses classifies every entity of a kind against the status badge
// threshold table. Unlike Alerts this always yields a classification per
// tracked document, with low meaning "no action needed".
func (s *Service) Statuses(ctx context.Context, kind entities.Kind) ([]EntityStatus, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown entity kind %q", kind)
	}

	ents, err := s.deps.Entities.List(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch %s entities: %w", kind, err)
	}

	set := thresholds.StatusDefaults()
	if s.deps.StatusThresholds != nil {
		set = s.deps.StatusThresholds.Get(ctx)
	}
	now := s.now()

	out := make([]EntityStatus, 0, len(ents))
	for _, e := range ents {
		status := EntityStatus{
			EntityID:   e.ID,
			EntityName: e.Name,
			Badges:     make(map[entities.DocumentType]alerts.Priority),
			Worst:      alerts.PriorityLow,
		}
		for _, doc := range entities.DocumentTypesFor(kind) {
			badge := alerts.Classify(e, doc, set, now)
			status.Badges[doc] = badge
			if badge.Rank() > status.Worst.Rank() {
				status.Worst = badge
			}
		}
		out = append(out, status)
	}
	return out, nil
}

// Invalidate clears one kind's alert cache slot. Call after any write that
// could change tracked entities.
func (s *Service) Invalidate(kind entities.Kind) {
	s.deps.Cache.Invalidate(kind)
}

// InvalidateThresholds clears both threshold caches after a settings write.
// Cached alert lists were generated under the old thresholds and their
// signature only tracks entity content, so both slots are cleared too.
func (s *Service) InvalidateThresholds() {
	s.deps.AlertThresholds.Invalidate()
	if s.deps.StatusThresholds != nil {
		s.deps.StatusThresholds.Invalidate()
	}
	s.deps.Cache.InvalidateAll()
}
