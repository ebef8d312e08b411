package anomaly

import (
	"context"
	"strings"

	"github.com/cropledger/backend/internal/domain/anomaly"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/logger"
	"github.com/cropledger/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordEditor is the mutation path shared by manual edits and auto-fix
type RecordEditor interface {
	SetFactoryWeight(ctx context.Context, id uuid.UUID, weight decimal.Decimal) (*haulage.SupplyRecord, error)
	AssignTruck(ctx context.Context, id, truckID uuid.UUID) (*haulage.SupplyRecord, error)
	AssignFarm(ctx context.Context, id, farmID uuid.UUID) (*haulage.SupplyRecord, error)
	AssignFactory(ctx context.Context, id, factoryID uuid.UUID) (*haulage.SupplyRecord, error)
}

// Parties resolves and creates trucks, farms and factories
type Parties interface {
	Directory(ctx context.Context) (haulage.Directory, error)
	EnsureTruck(ctx context.Context, number string) (*haulage.Truck, error)
	EnsureFarm(ctx context.Context, name string) (*haulage.Farm, error)
	EnsureFactory(ctx context.Context, name string) (*haulage.Factory, error)
}

// ScanResult is the outcome of one scan over every supply record
type ScanResult struct {
	Scanned int
	Flags   []anomaly.Flag
	Summary map[anomaly.Kind]int
}

// AnomalyService scans supply records for data-quality problems and
// applies fixes through the record editor
type AnomalyService struct {
	records haulage.SupplyRecordRepository
	parties Parties
	editor  RecordEditor
	metrics *telemetry.EngineMetrics
}

// NewAnomalyService creates a new AnomalyService. metrics may be nil.
func NewAnomalyService(
	records haulage.SupplyRecordRepository,
	parties Parties,
	editor RecordEditor,
	metrics *telemetry.EngineMetrics,
) *AnomalyService {
	return &AnomalyService{
		records: records,
		parties: parties,
		editor:  editor,
		metrics: metrics,
	}
}

// Scan flags every supply record. It never modifies data.
func (s *AnomalyService) Scan(ctx context.Context) (ScanResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anomaly", "scan")
	defer span.End()

	records, err := s.records.FindAll(ctx, shared.Filter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return ScanResult{}, err
	}
	dir, err := s.parties.Directory(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return ScanResult{}, err
	}

	flags := anomaly.Scan(records, dir)
	res := ScanResult{
		Scanned: len(records),
		Flags:   flags,
		Summary: anomaly.Summary(flags),
	}

	type bucket struct {
		kind     anomaly.Kind
		priority anomaly.Priority
	}
	counts := make(map[bucket]int)
	for _, f := range flags {
		counts[bucket{f.Kind, f.Priority}]++
	}
	for b, n := range counts {
		s.metrics.AnomaliesFlagged(ctx, b.kind.String(), string(b.priority), n)
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrRowCount, len(records), telemetry.SpanAttrFlagCount, len(flags))
	logger.L(ctx).Info("Anomaly scan completed",
		zap.Int("records", len(records)),
		zap.Int("flags", len(flags)),
	)
	return res, nil
}

// ApplyAutoFix copies the farm weight into the factory weight of every record
// whose factory weight is zero while its farm weight is positive and whose
// farm and factory both resolve. It returns the number of records changed.
// A failure stops the run; records fixed before it stay fixed.
func (s *AnomalyService) ApplyAutoFix(ctx context.Context) (int, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "anomaly", "auto_fix")
	defer span.End()

	records, err := s.records.FindAll(ctx, shared.Filter{})
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}
	dir, err := s.parties.Directory(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return 0, err
	}

	fixed := 0
	for _, fix := range anomaly.PlanAutoFix(records, dir) {
		if _, err := s.editor.SetFactoryWeight(ctx, fix.RecordID, fix.FactoryWeight); err != nil {
			telemetry.RecordError(span, err)
			logger.L(ctx).Error("Auto-fix failed",
				zap.String("record_id", fix.RecordID.String()),
				zap.Int("fixed", fixed),
				zap.Error(err),
			)
			s.metrics.AutoFixesApplied(ctx, fixed)
			return fixed, err
		}
		fixed++
	}

	s.metrics.AutoFixesApplied(ctx, fixed)
	telemetry.SetAttributes(span, telemetry.SpanAttrFixCount, fixed)
	logger.L(ctx).Info("Auto-fix completed", zap.Int("fixed", fixed))
	return fixed, nil
}

// ResolveFactoryWeight sets a corrected factory weight
func (s *AnomalyService) ResolveFactoryWeight(ctx context.Context, id uuid.UUID, req FactoryWeightRequest) (*haulage.SupplyRecord, error) {
	return s.editor.SetFactoryWeight(ctx, id, req.Weight)
}

// ResolveTruck points a record at an existing truck, or at a truck found or
// created by number
func (s *AnomalyService) ResolveTruck(ctx context.Context, id uuid.UUID, req PartyChoice) (*haulage.SupplyRecord, error) {
	truckID, err := req.resolve("truck", func(number string) (uuid.UUID, error) {
		t, err := s.parties.EnsureTruck(ctx, number)
		if err != nil {
			return uuid.Nil, err
		}
		return t.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.editor.AssignTruck(ctx, id, truckID)
}

// ResolveFarm points a record at an existing farm, or at a farm found or
// created by name
func (s *AnomalyService) ResolveFarm(ctx context.Context, id uuid.UUID, req PartyChoice) (*haulage.SupplyRecord, error) {
	farmID, err := req.resolve("farm", func(name string) (uuid.UUID, error) {
		f, err := s.parties.EnsureFarm(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return f.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.editor.AssignFarm(ctx, id, farmID)
}

// ResolveFactory points a record at an existing factory, or at a factory
// found or created by name
func (s *AnomalyService) ResolveFactory(ctx context.Context, id uuid.UUID, req PartyChoice) (*haulage.SupplyRecord, error) {
	factoryID, err := req.resolve("factory", func(name string) (uuid.UUID, error) {
		f, err := s.parties.EnsureFactory(ctx, name)
		if err != nil {
			return uuid.Nil, err
		}
		return f.ID, nil
	})
	if err != nil {
		return nil, err
	}
	return s.editor.AssignFactory(ctx, id, factoryID)
}

// FactoryWeightRequest carries a corrected factory weight
type FactoryWeightRequest struct {
	Weight decimal.Decimal `json:"weight"`
}

// PartyChoice selects an existing party by ID or names one to find or create
type PartyChoice struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name" binding:"max=200"`
}

func (c PartyChoice) resolve(party string, ensure func(string) (uuid.UUID, error)) (uuid.UUID, error) {
	if c.ID != nil {
		return *c.ID, nil
	}
	if strings.TrimSpace(c.Name) == "" {
		return uuid.Nil, shared.NewValidationError("name", "either an id or a "+party+" name is required")
	}
	return ensure(c.Name)
}
