package report

import (
	"context"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/haulage"
	"github.com/cropledger/backend/internal/domain/report"
	"github.com/cropledger/backend/internal/domain/shared"
)

// SnapshotSource supplies the data every report is derived from
type SnapshotSource interface {
	Load(ctx context.Context) (report.Snapshot, error)
}

// SnapshotLoader reads a full snapshot from the repositories
type SnapshotLoader struct {
	records       haulage.SupplyRecordRepository
	trucks        haulage.TruckRepository
	farms         haulage.FarmRepository
	factories     haulage.FactoryRepository
	contractors   haulage.ContractorRepository
	receipts      cashflow.CashReceiptRepository
	disbursements cashflow.CashDisbursementRepository
}

// NewSnapshotLoader creates a new SnapshotLoader
func NewSnapshotLoader(
	records haulage.SupplyRecordRepository,
	trucks haulage.TruckRepository,
	farms haulage.FarmRepository,
	factories haulage.FactoryRepository,
	contractors haulage.ContractorRepository,
	receipts cashflow.CashReceiptRepository,
	disbursements cashflow.CashDisbursementRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		records:       records,
		trucks:        trucks,
		farms:         farms,
		factories:     factories,
		contractors:   contractors,
		receipts:      receipts,
		disbursements: disbursements,
	}
}

// Load reads every table without paging or date bounds
func (l *SnapshotLoader) Load(ctx context.Context) (report.Snapshot, error) {
	var (
		s   report.Snapshot
		err error
		all = shared.Filter{}
	)
	if s.Records, err = l.records.FindAll(ctx, all); err != nil {
		return report.Snapshot{}, err
	}
	trucks, err := l.trucks.FindAll(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	farms, err := l.farms.FindAll(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	factories, err := l.factories.FindAll(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	s.Directory = haulage.NewDirectory(trucks, farms, factories)
	if s.Contractors, err = l.contractors.FindAll(ctx); err != nil {
		return report.Snapshot{}, err
	}
	if s.Receipts, err = l.receipts.FindAll(ctx, all); err != nil {
		return report.Snapshot{}, err
	}
	if s.Disbursements, err = l.disbursements.FindAll(ctx, all); err != nil {
		return report.Snapshot{}, err
	}
	return s, nil
}

var _ SnapshotSource = (*SnapshotLoader)(nil)
