package haulage

import (
	"context"
	"errors"

	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/logger"
	"github.com/cropledger/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RecordView is a supply record with its party names resolved and its
// settlement computed. Names of missing or dangling references are empty.
type RecordView struct {
	Record      *haulage.SupplyRecord
	TruckNumber string
	FarmName    string
	FactoryName string
	Settlement  haulage.SettlementResult
}

func newRecordView(r *haulage.SupplyRecord, dir haulage.Directory) RecordView {
	v := RecordView{Record: r, Settlement: haulage.ComputeSettlement(r)}
	v.TruckNumber, _ = dir.TruckNumber(r.TruckID)
	v.FarmName, _ = dir.FarmName(r.FarmID)
	v.FactoryName, _ = dir.FactoryName(r.FactoryID)
	return v
}

// SupplyService handles supply record mutations and settlements
type SupplyService struct {
	records  haulage.SupplyRecordRepository
	partners *PartnerService
	metrics  *telemetry.EngineMetrics
}

// NewSupplyService creates a new SupplyService. metrics may be nil.
func NewSupplyService(records haulage.SupplyRecordRepository, partners *PartnerService, metrics *telemetry.EngineMetrics) *SupplyService {
	return &SupplyService{
		records:  records,
		partners: partners,
		metrics:  metrics,
	}
}

// Create stores a new supply record with its settlement
func (s *SupplyService) Create(ctx context.Context, req SupplyRecordRequest) (RecordView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supply", "create")
	defer span.End()

	details, err := s.details(ctx, req)
	if err != nil {
		return RecordView{}, err
	}
	record, err := haulage.NewSupplyRecord(details)
	if err != nil {
		return RecordView{}, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return RecordView{}, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrRecordID, record.ID.String())

	logger.L(ctx).Info("Supply record created",
		zap.String("record_id", record.ID.String()),
		zap.Time("entry_date", record.EntryDate),
	)
	return s.view(ctx, record)
}

// Update replaces every editable field of a supply record
func (s *SupplyService) Update(ctx context.Context, id uuid.UUID, req SupplyRecordRequest) (RecordView, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supply", "update",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return RecordView{}, err
	}
	details, err := s.details(ctx, req)
	if err != nil {
		return RecordView{}, err
	}
	if err := record.Update(details); err != nil {
		return RecordView{}, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		telemetry.RecordError(span, err)
		return RecordView{}, err
	}

	logger.L(ctx).Info("Supply record updated", zap.String("record_id", id.String()))
	return s.view(ctx, record)
}

// Delete removes a supply record together with its settlement
func (s *SupplyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Supply record deleted", zap.String("record_id", id.String()))
	return nil
}

// Get returns one supply record
func (s *SupplyService) Get(ctx context.Context, id uuid.UUID) (RecordView, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return RecordView{}, err
	}
	return s.view(ctx, record)
}

// List returns a page of supply records, newest first
func (s *SupplyService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[RecordView], error) {
	records, err := s.records.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[RecordView]{}, err
	}
	total, err := s.records.Count(ctx, filter)
	if err != nil {
		return shared.Paginated[RecordView]{}, err
	}
	dir, err := s.partners.Directory(ctx)
	if err != nil {
		return shared.Paginated[RecordView]{}, err
	}

	views := make([]RecordView, len(records))
	for i := range records {
		views[i] = newRecordView(&records[i], dir)
	}
	return shared.NewPaginated(views, total, filter.Page, filter.PageSize), nil
}

// ComputeSettlement derives the money picture of one supply record
func (s *SupplyService) ComputeSettlement(ctx context.Context, id uuid.UUID) (haulage.SettlementResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "supply", "compute_settlement",
		telemetry.WithAttribute(telemetry.SpanAttrRecordID, id.String()))
	defer span.End()

	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return haulage.SettlementResult{}, err
	}
	res := haulage.ComputeSettlement(record)
	s.metrics.SettlementComputed(ctx, res.ProfitStatus.String())
	return res, nil
}

// SetFactoryWeight corrects the factory gross weight of a record
func (s *SupplyService) SetFactoryWeight(ctx context.Context, id uuid.UUID, weight decimal.Decimal) (*haulage.SupplyRecord, error) {
	return s.mutate(ctx, id, "factory weight set", func(r *haulage.SupplyRecord) error {
		return r.SetFactoryWeight(weight)
	})
}

// RecordReceived sets the amount received against the record's settlement
func (s *SupplyService) RecordReceived(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*haulage.SupplyRecord, error) {
	return s.mutate(ctx, id, "received amount recorded", func(r *haulage.SupplyRecord) error {
		return r.RecordReceived(amount)
	})
}

// AssignTruck points a record at an existing truck
func (s *SupplyService) AssignTruck(ctx context.Context, id, truckID uuid.UUID) (*haulage.SupplyRecord, error) {
	if _, err := s.partners.trucks.FindByID(ctx, truckID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "truck assigned", func(r *haulage.SupplyRecord) error {
		r.AssignTruck(truckID)
		return nil
	})
}

// AssignFarm points a record at an existing farm
func (s *SupplyService) AssignFarm(ctx context.Context, id, farmID uuid.UUID) (*haulage.SupplyRecord, error) {
	if _, err := s.partners.farms.FindByID(ctx, farmID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "farm assigned", func(r *haulage.SupplyRecord) error {
		r.AssignFarm(farmID)
		return nil
	})
}

// AssignFactory points a record at an existing factory
func (s *SupplyService) AssignFactory(ctx context.Context, id, factoryID uuid.UUID) (*haulage.SupplyRecord, error) {
	if _, err := s.partners.factories.FindByID(ctx, factoryID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, "factory assigned", func(r *haulage.SupplyRecord) error {
		r.AssignFactory(factoryID)
		return nil
	})
}

// mutate loads a record, applies fn and saves it. Nothing is saved when fn fails.
func (s *SupplyService) mutate(ctx context.Context, id uuid.UUID, action string, fn func(*haulage.SupplyRecord) error) (*haulage.SupplyRecord, error) {
	record, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(record); err != nil {
		return nil, err
	}
	if err := s.records.Save(ctx, record); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Supply record "+action, zap.String("record_id", id.String()))
	return record, nil
}

func (s *SupplyService) view(ctx context.Context, record *haulage.SupplyRecord) (RecordView, error) {
	dir, err := s.partners.Directory(ctx)
	if err != nil {
		return RecordView{}, err
	}
	return newRecordView(record, dir), nil
}

// details converts a request, resolving party names to references
func (s *SupplyService) details(ctx context.Context, req SupplyRecordRequest) (haulage.SupplyDetails, error) {
	date, err := shared.ParseDate("entry_date", req.EntryDate)
	if err != nil {
		return haulage.SupplyDetails{}, err
	}
	if date.IsZero() {
		return haulage.SupplyDetails{}, shared.NewValidationError("entry_date", "entry date is required")
	}

	d := haulage.SupplyDetails{
		EntryDate:   date,
		Farm:        req.Farm.toDomain(),
		Factory:     req.Factory.toDomain(),
		FreightCost: req.FreightCost,
		Notes:       req.Notes,
	}
	if d.TruckID, err = s.resolveTruck(ctx, req.TruckID, req.TruckNumber); err != nil {
		return d, err
	}
	if d.FarmID, err = s.resolveFarm(ctx, req.FarmID, req.FarmName); err != nil {
		return d, err
	}
	if d.FactoryID, err = s.resolveFactory(ctx, req.FactoryID, req.FactoryName); err != nil {
		return d, err
	}
	return d, nil
}

func (s *SupplyService) resolveTruck(ctx context.Context, id *uuid.UUID, number string) (*uuid.UUID, error) {
	if id != nil {
		if _, err := s.partners.trucks.FindByID(ctx, *id); err != nil {
			return nil, unknownReference("truck_id", err)
		}
		return id, nil
	}
	if isBlank(number) {
		return nil, nil
	}
	truck, err := s.partners.EnsureTruck(ctx, number)
	if err != nil {
		return nil, err
	}
	return &truck.ID, nil
}

func (s *SupplyService) resolveFarm(ctx context.Context, id *uuid.UUID, name string) (*uuid.UUID, error) {
	if id != nil {
		if _, err := s.partners.farms.FindByID(ctx, *id); err != nil {
			return nil, unknownReference("farm_id", err)
		}
		return id, nil
	}
	if isBlank(name) {
		return nil, nil
	}
	farm, err := s.partners.EnsureFarm(ctx, name)
	if err != nil {
		return nil, err
	}
	return &farm.ID, nil
}

func (s *SupplyService) resolveFactory(ctx context.Context, id *uuid.UUID, name string) (*uuid.UUID, error) {
	if id != nil {
		if _, err := s.partners.factories.FindByID(ctx, *id); err != nil {
			return nil, unknownReference("factory_id", err)
		}
		return id, nil
	}
	if isBlank(name) {
		return nil, nil
	}
	factory, err := s.partners.EnsureFactory(ctx, name)
	if err != nil {
		return nil, err
	}
	return &factory.ID, nil
}

// unknownReference turns a not-found lookup into a validation error on field
func unknownReference(field string, err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewValidationError(field, "referenced "+field[:len(field)-3]+" does not exist")
	}
	return err
}
