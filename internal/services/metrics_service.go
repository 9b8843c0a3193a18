package services

import (
	"context"

	"gorm.io/gorm"

	"betmetric/internal/engine"
	"betmetric/internal/metrics"
)

// metricsService computes portfolio-wide metrics.
type metricsService struct {
	analyzer *analyzer
}

// NewMetricsService creates a new MetricsServicer.
func NewMetricsService(db *gorm.DB) MetricsServicer {
	return &metricsService{analyzer: newAnalyzer(db)}
}

// GetSummaryMetrics runs a full read pass and summarizes the portfolio. The
// result is also published to the Prometheus gauges.
func (s *metricsService) GetSummaryMetrics(ctx context.Context) (*engine.PortfolioSummary, error) {
	analysis, err := s.analyzer.analyze(ctx)
	if err != nil {
		return nil, err
	}
	summary := engine.Summarize(analysis)
	metrics.ObservePortfolio(summary)
	return &summary, nil
}
