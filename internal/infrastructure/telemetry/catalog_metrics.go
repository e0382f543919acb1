package telemetry

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	catalogapp "github.com/SiteOrganizo/organize-your-catalog/internal/application/catalog"
)

// ErrMeterNil is returned when no meter is supplied
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

var (
	attrResult  = attribute.Key("result")
	attrOutcome = attribute.Key("outcome")
)

// ProductCounter reports the number of stored products for the inventory gauge
type ProductCounter interface {
	CountAll(ctx context.Context) (int64, error)
}

// CatalogMetrics records catalog business events as OTLP counters
type CatalogMetrics struct {
	logger *zap.Logger

	productsCreated      metric.Int64Counter
	productsDeleted      metric.Int64Counter
	imagesUploaded       metric.Int64Counter
	catalogsShared       metric.Int64Counter
	sharedCodes          metric.Int64Histogram
	descriptionsRequests metric.Int64Counter
	registration         metric.Registration
}

var _ catalogapp.Metrics = (*CatalogMetrics)(nil)

// NewCatalogMetrics creates the instruments on meter. When counter is not nil
// an observable gauge reports the total number of products on each collection.
func NewCatalogMetrics(meter metric.Meter, counter ProductCounter, logger *zap.Logger) (*CatalogMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &CatalogMetrics{logger: logger}
	var err error

	if m.productsCreated, err = meter.Int64Counter("catalog_products_created_total",
		metric.WithDescription("Products created by sellers"),
		metric.WithUnit("{products}")); err != nil {
		return nil, fmt.Errorf("failed to create counter catalog_products_created_total: %w", err)
	}
	if m.productsDeleted, err = meter.Int64Counter("catalog_products_deleted_total",
		metric.WithDescription("Products deleted by sellers"),
		metric.WithUnit("{products}")); err != nil {
		return nil, fmt.Errorf("failed to create counter catalog_products_deleted_total: %w", err)
	}
	if m.imagesUploaded, err = meter.Int64Counter("catalog_images_uploaded_total",
		metric.WithDescription("Product images processed by upload requests"),
		metric.WithUnit("{images}")); err != nil {
		return nil, fmt.Errorf("failed to create counter catalog_images_uploaded_total: %w", err)
	}
	if m.catalogsShared, err = meter.Int64Counter("catalog_shared_total",
		metric.WithDescription("Catalog links generated"),
		metric.WithUnit("{links}")); err != nil {
		return nil, fmt.Errorf("failed to create counter catalog_shared_total: %w", err)
	}
	if m.sharedCodes, err = meter.Int64Histogram("catalog_shared_codes",
		metric.WithDescription("Number of product codes in a generated catalog link"),
		metric.WithUnit("{codes}"),
		metric.WithExplicitBucketBoundaries(1, 2, 5, 10, 20, 50)); err != nil {
		return nil, fmt.Errorf("failed to create histogram catalog_shared_codes: %w", err)
	}
	if m.descriptionsRequests, err = meter.Int64Counter("catalog_ai_descriptions_total",
		metric.WithDescription("AI description generation attempts"),
		metric.WithUnit("{requests}")); err != nil {
		return nil, fmt.Errorf("failed to create counter catalog_ai_descriptions_total: %w", err)
	}

	if counter != nil {
		gauge, err := meter.Int64ObservableGauge("catalog_products",
			metric.WithDescription("Products currently stored"),
			metric.WithUnit("{products}"))
		if err != nil {
			return nil, fmt.Errorf("failed to create gauge catalog_products: %w", err)
		}
		m.registration, err = meter.RegisterCallback(func(ctx context.Context, o metric.Observer) error {
			total, err := counter.CountAll(ctx)
			if err != nil {
				m.logger.Warn("Failed to count products for metrics", zap.Error(err))
				return nil
			}
			o.ObserveInt64(gauge, total)
			return nil
		}, gauge)
		if err != nil {
			return nil, fmt.Errorf("failed to register product gauge callback: %w", err)
		}
	}

	return m, nil
}

func (m *CatalogMetrics) ProductCreated(ctx context.Context) {
	m.productsCreated.Add(ctx, 1)
}

func (m *CatalogMetrics) ProductDeleted(ctx context.Context) {
	m.productsDeleted.Add(ctx, 1)
}

func (m *CatalogMetrics) ImagesUploaded(ctx context.Context, uploaded, failed int) {
	if uploaded > 0 {
		m.imagesUploaded.Add(ctx, int64(uploaded), metric.WithAttributes(attrResult.String("success")))
	}
	if failed > 0 {
		m.imagesUploaded.Add(ctx, int64(failed), metric.WithAttributes(attrResult.String("failed")))
	}
}

func (m *CatalogMetrics) CatalogShared(ctx context.Context, codes int) {
	m.catalogsShared.Add(ctx, 1)
	m.sharedCodes.Record(ctx, int64(codes))
}

func (m *CatalogMetrics) DescriptionGenerated(ctx context.Context, success bool) {
	outcome := "success"
	if !success {
		outcome = "failed"
	}
	m.descriptionsRequests.Add(ctx, 1, metric.WithAttributes(attrOutcome.String(outcome)))
}

// Stop unregisters the product gauge callback
func (m *CatalogMetrics) Stop() {
	if m.registration == nil {
		return
	}
	if err := m.registration.Unregister(); err != nil {
		m.logger.Warn("Failed to unregister product gauge", zap.Error(err))
	}
}
