package report

import (
	"context"
	"strings"
	"time"

	"github.com/cropledger/backend/internal/domain/report"
	"github.com/cropledger/backend/internal/infrastructure/logger"
	"github.com/cropledger/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Report names used in spans, metrics and logs
const (
	ReportRecords   = "records"
	ReportPeriod    = "period"
	ReportFactories = "factories"
	ReportFarms     = "farms"
	ReportCash      = "cash"
)

// ReportService builds report views. Each call loads a fresh snapshot, so
// results never depend on an earlier call.
type ReportService struct {
	source  SnapshotSource
	metrics *telemetry.EngineMetrics
}

// NewReportService creates a new ReportService. metrics may be nil.
func NewReportService(source SnapshotSource, metrics *telemetry.EngineMetrics) *ReportService {
	return &ReportService{
		source:  source,
		metrics: metrics,
	}
}

// BuildRecordReport lists supply records with their settlements
func (s *ReportService) BuildRecordReport(ctx context.Context, q RecordQuery) (report.RecordReport, error) {
	dr, err := q.DateRange()
	if err != nil {
		return report.RecordReport{}, err
	}
	profit, err := parseProfit(q.Profit)
	if err != nil {
		return report.RecordReport{}, err
	}
	f := report.RecordFilter{
		Range:        dr,
		Counterparty: strings.TrimSpace(q.Counterparty),
		TruckNumber:  strings.TrimSpace(q.Truck),
		Profit:       profit,
	}
	return build(ctx, s, ReportRecords, func(snap report.Snapshot) (report.RecordReport, int) {
		rep := report.BuildRecordReport(snap, f)
		return rep, len(rep.Rows)
	})
}

// BuildPeriodReport groups supply by day, farm, factory and truck
func (s *ReportService) BuildPeriodReport(ctx context.Context, q PeriodQuery) (report.PeriodReport, error) {
	dr, err := q.DateRange()
	if err != nil {
		return report.PeriodReport{}, err
	}
	profit, err := parseProfit(q.Profit)
	if err != nil {
		return report.PeriodReport{}, err
	}
	f := report.PeriodFilter{
		Range:       dr,
		FarmName:    strings.TrimSpace(q.Farm),
		FactoryName: strings.TrimSpace(q.Factory),
		Profit:      profit,
	}
	return build(ctx, s, ReportPeriod, func(snap report.Snapshot) (report.PeriodReport, int) {
		rep := report.BuildPeriodReport(snap, f)
		return rep, len(rep.Rows)
	})
}

// BuildFactoryReport nets factory revenue against cash received
func (s *ReportService) BuildFactoryReport(ctx context.Context, q PartyQuery) (report.FactoryReport, error) {
	dr, err := q.DateRange()
	if err != nil {
		return report.FactoryReport{}, err
	}
	f := report.PartyFilter{Range: dr, Name: strings.TrimSpace(q.Name)}
	return build(ctx, s, ReportFactories, func(snap report.Snapshot) (report.FactoryReport, int) {
		rep := report.BuildFactoryReport(snap, f)
		return rep, len(rep.Rows)
	})
}

// BuildFarmReport nets farm cost against cash disbursed
func (s *ReportService) BuildFarmReport(ctx context.Context, q PartyQuery) (report.FarmReport, error) {
	dr, err := q.DateRange()
	if err != nil {
		return report.FarmReport{}, err
	}
	f := report.PartyFilter{Range: dr, Name: strings.TrimSpace(q.Name)}
	return build(ctx, s, ReportFarms, func(snap report.Snapshot) (report.FarmReport, int) {
		rep := report.BuildFarmReport(snap, f)
		return rep, len(rep.Rows)
	})
}

// BuildCashReport summarises both cash tables per day
func (s *ReportService) BuildCashReport(ctx context.Context, q RangeQuery) (report.CashPeriodReport, error) {
	dr, err := q.DateRange()
	if err != nil {
		return report.CashPeriodReport{}, err
	}
	return build(ctx, s, ReportCash, func(snap report.Snapshot) (report.CashPeriodReport, int) {
		rep := report.BuildCashPeriodReport(snap, dr)
		return rep, len(rep.Days)
	})
}

// build loads a snapshot and runs fn inside a span, recording duration and row count
func build[T any](ctx context.Context, s *ReportService, name string, fn func(report.Snapshot) (T, int)) (T, error) {
	var zero T
	ctx, span := telemetry.StartServiceSpan(ctx, "report", name,
		telemetry.WithAttribute(telemetry.SpanAttrReport, name))
	defer span.End()

	start := time.Now()
	snap, err := s.source.Load(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		logger.L(ctx).Error("Report snapshot load failed", zap.String("report", name), zap.Error(err))
		return zero, err
	}
	rep, rows := fn(snap)
	elapsed := time.Since(start)

	telemetry.SetAttributes(span, telemetry.SpanAttrRowCount, rows)
	s.metrics.ReportBuilt(ctx, name, elapsed)
	logger.L(ctx).Debug("Report built",
		zap.String("report", name),
		zap.Int("rows", rows),
		zap.Duration("elapsed", elapsed),
	)
	return rep, nil
}
