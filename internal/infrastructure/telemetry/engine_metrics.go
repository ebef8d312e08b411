package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// EngineMeterName is the instrumentation scope of the settlement engine metrics
const EngineMeterName = "cropledger/engine"

// EngineMetrics counts what the settlement engine computes. A nil
// *EngineMetrics records nothing, so callers never need to check.
type EngineMetrics struct {
	settlementsComputed *Counter
	ledgersBuilt        *Counter
	ledgerEntries       *Histogram
	reportsBuilt        *Counter
	reportDuration      *Histogram
	anomaliesFlagged    *Counter
	autoFixesApplied    *Counter
}

// NewEngineMetrics creates the engine instruments on meter
func NewEngineMetrics(meter metric.Meter) (*EngineMetrics, error) {
	m := &EngineMetrics{}
	var err error

	if m.settlementsComputed, err = NewCounter(meter,
		"settlements_computed_total", "Settlements derived from supply records", "{settlement}"); err != nil {
		return nil, err
	}
	if m.ledgersBuilt, err = NewCounter(meter,
		"ledgers_built_total", "Merged cash ledgers built", "{ledger}"); err != nil {
		return nil, err
	}
	if m.ledgerEntries, err = NewHistogram(meter, HistogramOpts{
		Name:        "ledger_entries",
		Description: "Lines per merged ledger",
		Unit:        "{entry}",
		Boundaries:  []float64{0, 10, 50, 100, 500, 1000, 5000},
	}); err != nil {
		return nil, err
	}
	if m.reportsBuilt, err = NewCounter(meter,
		"reports_built_total", "Reports aggregated, by report", "{report}"); err != nil {
		return nil, err
	}
	if m.reportDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "report_build_duration_seconds",
		Description: "Time to load a snapshot and aggregate a report",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.anomaliesFlagged, err = NewCounter(meter,
		"anomalies_flagged_total", "Anomaly flags raised by scans, by kind", "{flag}"); err != nil {
		return nil, err
	}
	if m.autoFixesApplied, err = NewCounter(meter,
		"anomaly_auto_fixes_total", "Records corrected by auto-fix", "{record}"); err != nil {
		return nil, err
	}
	return m, nil
}

// SettlementComputed records one settlement with its profit classification
func (m *EngineMetrics) SettlementComputed(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.settlementsComputed.Inc(ctx, AttrProfitStatus.String(status))
}

// LedgerBuilt records one ledger. scoped is false for the all-parties ledger.
func (m *EngineMetrics) LedgerBuilt(ctx context.Context, scoped bool, entries int) {
	if m == nil {
		return
	}
	scope := AttrLedgerScope.String("all")
	if scoped {
		scope = AttrLedgerScope.String("counterparty")
	}
	m.ledgersBuilt.Inc(ctx, scope)
	m.ledgerEntries.Record(ctx, float64(entries), scope)
}

// ReportBuilt records one report aggregation and how long it took
func (m *EngineMetrics) ReportBuilt(ctx context.Context, report string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.reportsBuilt.Inc(ctx, AttrReport.String(report))
	m.reportDuration.RecordDuration(ctx, elapsed, AttrReport.String(report))
}

// AnomaliesFlagged records n flags of one kind and priority
func (m *EngineMetrics) AnomaliesFlagged(ctx context.Context, kind, priority string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.anomaliesFlagged.Add(ctx, int64(n), AttrAnomalyKind.String(kind), AttrAnomalyPrio.String(priority))
}

// AutoFixesApplied records n corrected records
func (m *EngineMetrics) AutoFixesApplied(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.autoFixesApplied.Add(ctx, int64(n))
}
