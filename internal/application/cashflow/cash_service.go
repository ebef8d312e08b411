package cashflow

import (
	"context"
	"strings"

	"github.com/cropledger/backend/internal/domain/cashflow"
	"github.com/cropledger/backend/internal/domain/shared"
	"github.com/cropledger/backend/internal/infrastructure/logger"
	"github.com/cropledger/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CashService manages cash receipts and disbursements and builds ledgers
type CashService struct {
	receipts      cashflow.CashReceiptRepository
	disbursements cashflow.CashDisbursementRepository
	metrics       *telemetry.EngineMetrics
}

// NewCashService creates a new CashService. metrics may be nil.
func NewCashService(
	receipts cashflow.CashReceiptRepository,
	disbursements cashflow.CashDisbursementRepository,
	metrics *telemetry.EngineMetrics,
) *CashService {
	return &CashService{
		receipts:      receipts,
		disbursements: disbursements,
		metrics:       metrics,
	}
}

// ===================== Receipts =====================

// CreateReceipt records money taken in
func (s *CashService) CreateReceipt(ctx context.Context, req ReceiptRequest) (*cashflow.CashReceipt, error) {
	date, err := shared.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	receipt, err := cashflow.NewCashReceipt(req.SourceName, req.ReceivedAmount, req.PaidBackAmount, date)
	if err != nil {
		return nil, err
	}
	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Cash receipt created",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("source_name", receipt.SourceName),
	)
	return receipt, nil
}

// UpdateReceipt replaces a receipt's fields
func (s *CashService) UpdateReceipt(ctx context.Context, id uuid.UUID, req ReceiptRequest) (*cashflow.CashReceipt, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	date, err := shared.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	if err := receipt.Update(req.SourceName, req.ReceivedAmount, req.PaidBackAmount, date); err != nil {
		return nil, err
	}
	if err := s.receipts.Save(ctx, receipt); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Cash receipt updated", zap.String("receipt_id", id.String()))
	return receipt, nil
}

// DeleteReceipt removes a receipt
func (s *CashService) DeleteReceipt(ctx context.Context, id uuid.UUID) error {
	if err := s.receipts.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Cash receipt deleted", zap.String("receipt_id", id.String()))
	return nil
}

// ListReceipts returns receipts in the filter's date range
func (s *CashService) ListReceipts(ctx context.Context, filter shared.Filter) ([]cashflow.CashReceipt, error) {
	return s.receipts.FindAll(ctx, filter)
}

// ===================== Disbursements =====================

// CreateDisbursement records a credit/debit movement
func (s *CashService) CreateDisbursement(ctx context.Context, req DisbursementRequest) (*cashflow.CashDisbursement, error) {
	date, err := shared.ParseDate("transaction_date", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	d, err := cashflow.NewCashDisbursement(req.EntityName, date, req.Credit, req.Debit, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.disbursements.Save(ctx, d); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Cash disbursement created",
		zap.String("disbursement_id", d.ID.String()),
		zap.String("entity_name", d.EntityName),
	)
	return d, nil
}

// UpdateDisbursement replaces a disbursement's fields
func (s *CashService) UpdateDisbursement(ctx context.Context, id uuid.UUID, req DisbursementRequest) (*cashflow.CashDisbursement, error) {
	d, err := s.disbursements.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	date, err := shared.ParseDate("transaction_date", req.TransactionDate)
	if err != nil {
		return nil, err
	}
	if err := d.Update(req.EntityName, date, req.Credit, req.Debit, req.Notes); err != nil {
		return nil, err
	}
	if err := s.disbursements.Save(ctx, d); err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Cash disbursement updated", zap.String("disbursement_id", id.String()))
	return d, nil
}

// DeleteDisbursement removes a disbursement
func (s *CashService) DeleteDisbursement(ctx context.Context, id uuid.UUID) error {
	if err := s.disbursements.Delete(ctx, id); err != nil {
		return err
	}
	logger.L(ctx).Info("Cash disbursement deleted", zap.String("disbursement_id", id.String()))
	return nil
}

// ListDisbursements returns disbursements in the filter's date range
func (s *CashService) ListDisbursements(ctx context.Context, filter shared.Filter) ([]cashflow.CashDisbursement, error) {
	return s.disbursements.FindAll(ctx, filter)
}

// ===================== Ledger =====================

// BuildLedger merges both cash tables for one counterparty, or for everyone
// when counterparty is blank. Every call reloads the full tables.
func (s *CashService) BuildLedger(ctx context.Context, counterparty string) (cashflow.LedgerView, error) {
	counterparty = strings.TrimSpace(counterparty)
	ctx, span := telemetry.StartServiceSpan(ctx, "ledger", "build",
		telemetry.WithAttribute(telemetry.SpanAttrCounterparty, counterparty))
	defer span.End()

	receipts, disbursements, err := s.loadAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return cashflow.LedgerView{}, err
	}
	view := cashflow.BuildLedger(counterparty, receipts, disbursements)

	telemetry.SetAttributes(span, telemetry.SpanAttrRowCount, len(view.Entries))
	s.metrics.LedgerBuilt(ctx, counterparty != "", len(view.Entries))
	return view, nil
}

// Counterparties lists every name found in either cash table
func (s *CashService) Counterparties(ctx context.Context) ([]string, error) {
	receipts, disbursements, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	return cashflow.Counterparties(receipts, disbursements), nil
}

func (s *CashService) loadAll(ctx context.Context) ([]cashflow.CashReceipt, []cashflow.CashDisbursement, error) {
	all := shared.Filter{}
	receipts, err := s.receipts.FindAll(ctx, all)
	if err != nil {
		return nil, nil, err
	}
	disbursements, err := s.disbursements.FindAll(ctx, all)
	if err != nil {
		return nil, nil, err
	}
	return receipts, disbursements, nil
}
