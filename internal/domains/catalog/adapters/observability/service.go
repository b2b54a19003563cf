// Package observability decorates the catalog service with tracing,
// structured logging, and metrics.
package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/mercadito/shop-api/internal/domains/catalog/domain"
	"github.com/mercadito/shop-api/internal/domains/catalog/ports"
)

const tracerName = "github.com/mercadito/shop-api/internal/domains/catalog/adapters/observability"

// Service decorates a catalog port with instrumentation.
type Service struct {
	inner   ports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

// WithMeter injects the meter used to create the service counters.
func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wires a decorator around the core service.
func New(inner ports.Service, opts ...Option) ports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		logger:  defaultLogger(),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	if s.logger == nil {
		s.logger = defaultLogger()
	}
	return s
}

func (s *Service) List(ctx context.Context, filter ports.ListFilter, role string) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.List",
		trace.WithAttributes(
			attribute.String("catalog.filter.title", filter.Title),
			attribute.String("catalog.filter.category", filter.Category),
		))
	defer span.End()

	result, err := s.inner.List(ctx, filter, role)
	if err != nil {
		return nil, s.fail(ctx, span, err, "catalog list failed")
	}
	s.metrics.recordListed(ctx, len(result))
	return result, nil
}

func (s *Service) GetByUUID(ctx context.Context, uuid string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.GetByUUID",
		trace.WithAttributes(attribute.String("product.uuid", uuid)))
	defer span.End()

	result, err := s.inner.GetByUUID(ctx, uuid)
	if err != nil {
		return nil, s.fail(ctx, span, err, "catalog lookup failed", slog.String("product.uuid", uuid))
	}
	return result, nil
}

func (s *Service) Create(ctx context.Context, product *domain.Product, role string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.Create")
	defer span.End()

	s.logger.InfoContext(ctx, "creating product", slog.String("product.title", product.Title))
	result, err := s.inner.Create(ctx, product, role)
	if err != nil {
		return nil, s.fail(ctx, span, err, "product create failed", slog.String("product.title", product.Title))
	}
	s.metrics.created.Add(ctx, 1)
	s.logger.InfoContext(ctx, "product created", slog.String("product.uuid", result.UUID))
	return result, nil
}

func (s *Service) Update(ctx context.Context, uuid string, partial map[string]any, role string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.Update",
		trace.WithAttributes(attribute.String("product.uuid", uuid)))
	defer span.End()

	result, err := s.inner.Update(ctx, uuid, partial, role)
	if err != nil {
		return nil, s.fail(ctx, span, err, "product update failed", slog.String("product.uuid", uuid))
	}
	s.metrics.updated.Add(ctx, 1)
	s.logger.InfoContext(ctx, "product updated", slog.String("product.uuid", uuid))
	return result, nil
}

func (s *Service) Delete(ctx context.Context, uuid string, role string) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "Catalog.Delete",
		trace.WithAttributes(attribute.String("product.uuid", uuid)))
	defer span.End()

	result, err := s.inner.Delete(ctx, uuid, role)
	if err != nil {
		return nil, s.fail(ctx, span, err, "product delete failed", slog.String("product.uuid", uuid))
	}
	s.metrics.deleted.Add(ctx, 1)
	s.logger.InfoContext(ctx, "product deleted", slog.String("product.uuid", uuid))
	return result, nil
}

func (s *Service) fail(ctx context.Context, span trace.Span, err error, msg string, attrs ...any) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.ErrorContext(ctx, msg, append(attrs, slog.String("error", err.Error()))...)
	return err
}

type serviceMetrics struct {
	created metric.Int64Counter
	updated metric.Int64Counter
	deleted metric.Int64Counter
	listed  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		m = metricnoop.NewMeterProvider().Meter(tracerName)
	}
	created, _ := m.Int64Counter("catalog.products.created")
	updated, _ := m.Int64Counter("catalog.products.updated")
	deleted, _ := m.Int64Counter("catalog.products.deleted")
	listed, _ := m.Int64Counter("catalog.products.listed")
	return serviceMetrics{created: created, updated: updated, deleted: deleted, listed: listed}
}

func (m serviceMetrics) recordListed(ctx context.Context, count int) {
	m.listed.Add(ctx, int64(count))
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
