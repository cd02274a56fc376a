package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quarryworks/quarry_books_app/internal/apperrors"
	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// regenBatchSize bounds how many derived entries are persisted per database
// transaction during batch regeneration.
const regenBatchSize = 100

// autogenService derives posted journal entries from operational transactions.
// Each source kind has its own builder; dispatch is by typed enum, never by
// free-text comparison.
type autogenService struct {
	BaseService
	journalSvc   portssvc.JournalSvcFacade
	journalRepo  portsrepo.JournalRepositoryFacade
	accountRepo  portsrepo.AccountReader
	sourceRepo   portsrepo.SourceReader
	settingsRepo portsrepo.QuarrySettingsRepository
	mappingRepo  portsrepo.AccountMappingRepository
	autoPrefix   string
}

// NewAutoGenService creates a new auto-generation service.
func NewAutoGenService(
	journalSvc portssvc.JournalSvcFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	sourceRepo portsrepo.SourceReader,
	settingsRepo portsrepo.QuarrySettingsRepository,
	mappingRepo portsrepo.AccountMappingRepository,
	autoPrefix string,
) portssvc.AutoGenSvcFacade {
	return &autogenService{
		journalSvc:   journalSvc,
		journalRepo:  journalRepo,
		accountRepo:  accountRepo,
		sourceRepo:   sourceRepo,
		settingsRepo: settingsRepo,
		mappingRepo:  mappingRepo,
		autoPrefix:   autoPrefix,
	}
}

var _ portssvc.AutoGenSvcFacade = (*autogenService)(nil)

// genContext carries the per-quarry data every builder needs, loaded once per
// call (or once per batch run) so builders never touch storage themselves.
type genContext struct {
	quarryID    string
	chart       map[string]domain.LedgerAccount // keyed by account code
	settings    domain.QuarrySettings
	revenueCode func(productName string) string
	expenseCode func(category string) string
}

// loadGenContext assembles the chart map, fee settings and mapping lookups
// for a quarry. Missing settings mean no levies are configured.
func (s *autogenService) loadGenContext(ctx context.Context, quarryID string) (*genContext, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, quarryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	chart := make(map[string]domain.LedgerAccount, len(accounts))
	for _, a := range accounts {
		chart[a.Code] = a
	}

	gc := &genContext{quarryID: quarryID, chart: chart}

	settings, err := s.settingsRepo.GetSettings(ctx, quarryID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load quarry settings: %w", err)
	}
	if settings != nil {
		gc.settings = *settings
	}

	// Mapping misses fall back to the standard revenue / general expense
	// accounts so an unmapped product is still bookable.
	gc.revenueCode = func(productName string) string {
		code, err := s.mappingRepo.RevenueCodeForProduct(ctx, quarryID, productName)
		if err != nil {
			return domain.CodeSalesRevenue
		}
		return code
	}
	gc.expenseCode = func(category string) string {
		code, err := s.mappingRepo.ExpenseCodeForCategory(ctx, quarryID, category)
		if err != nil {
			return domain.CodeGeneralExpenses
		}
		return code
	}

	return gc, nil
}

// accountByCode resolves a chart account or fails with a validation error.
// A missing required account skips that transaction, never aborting a batch.
func (gc *genContext) accountByCode(code string) (domain.LedgerAccount, error) {
	account, ok := gc.chart[code]
	if !ok {
		return domain.LedgerAccount{}, fmt.Errorf("%w: account code %s is not in the chart", apperrors.ErrValidation, code)
	}
	return account, nil
}

// newAutoEntry builds the common header of a derived entry. Reference,
// totals and posting state are filled in at persistence time.
func newAutoEntry(quarryID string, kind domain.SourceKind, sourceID string, date time.Time, description, actorID string) domain.JournalEntry {
	now := time.Now().UTC()
	k := kind
	id := sourceID
	return domain.JournalEntry{
		EntryID:     uuid.NewString(),
		QuarryID:    quarryID,
		EntryDate:   dayOf(date),
		Description: description,
		EntryType:   domain.Auto,
		SourceType:  &k,
		SourceID:    &id,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}
}

func debitLine(account domain.LedgerAccount, amount decimal.Decimal, memo string) domain.JournalLine {
	return domain.JournalLine{LineID: uuid.NewString(), AccountID: account.AccountID, Debit: amount, Credit: decimal.Zero, Memo: memo}
}

func creditLine(account domain.LedgerAccount, amount decimal.Decimal, memo string) domain.JournalLine {
	return domain.JournalLine{LineID: uuid.NewString(), AccountID: account.AccountID, Debit: decimal.Zero, Credit: amount, Memo: memo}
}

// buildSaleEntry derives the entry for a sale: cash or receivable against
// revenue, plus accrual pairs for commission, loaders fee and land rate (or
// rejects fee for reject product lines) when configured.
func (s *autogenService) buildSaleEntry(gc *genContext, sale domain.Sale, actorID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	gross := sale.GrossAmount()
	if !gross.IsPositive() {
		return nil, nil, nil
	}

	revenueAccount, err := gc.accountByCode(gc.revenueCode(sale.ProductName))
	if err != nil {
		return nil, nil, err
	}

	var receiptAccount domain.LedgerAccount
	if sale.Status == domain.SalePaid {
		receiptAccount, err = gc.accountByCode(domain.CodeCash)
	} else {
		receiptAccount, err = gc.accountByCode(domain.CodeAccountsReceivable)
	}
	if err != nil {
		return nil, nil, err
	}

	lines := []domain.JournalLine{
		debitLine(receiptAccount, gross, fmt.Sprintf("Sale to %s", sale.VehicleReg)),
		creditLine(revenueAccount, gross, fmt.Sprintf("%s x %s", sale.ProductName, sale.Quantity.String())),
	}

	// The three levies all accrue against the same payables account.
	if sale.CommissionPerUnit.IsPositive() {
		amount := sale.Quantity.Mul(sale.CommissionPerUnit)
		expense, err := gc.accountByCode(domain.CodeCommissionExpense)
		if err != nil {
			return nil, nil, err
		}
		payable, err := gc.accountByCode(domain.CodeAccruedPayables)
		if err != nil {
			return nil, nil, err
		}
		memo := "Broker commission"
		if sale.BrokerName != "" {
			memo = fmt.Sprintf("Commission for %s", sale.BrokerName)
		}
		lines = append(lines, debitLine(expense, amount, memo), creditLine(payable, amount, memo))
	}

	if gc.settings.LoadersFeeRate.IsPositive() {
		amount := sale.Quantity.Mul(gc.settings.LoadersFeeRate)
		expense, err := gc.accountByCode(domain.CodeLoadersFeeExpense)
		if err != nil {
			return nil, nil, err
		}
		payable, err := gc.accountByCode(domain.CodeAccruedPayables)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, debitLine(expense, amount, "Loaders fee"), creditLine(payable, amount, "Loaders fee"))
	}

	landRate := gc.settings.LandRatePerUnit
	landMemo := "Land rate"
	if sale.IsReject {
		landRate = gc.settings.RejectsFeePerUnit
		landMemo = "Rejects fee"
	}
	if landRate.IsPositive() {
		amount := sale.Quantity.Mul(landRate)
		expense, err := gc.accountByCode(domain.CodeLandRateExpense)
		if err != nil {
			return nil, nil, err
		}
		payable, err := gc.accountByCode(domain.CodeAccruedPayables)
		if err != nil {
			return nil, nil, err
		}
		lines = append(lines, debitLine(expense, amount, landMemo), creditLine(payable, amount, landMemo))
	}

	description := fmt.Sprintf("Sale - %s - %s x %s", sale.VehicleReg, sale.ProductName, sale.Quantity.String())
	entry := newAutoEntry(gc.quarryID, domain.SourceSale, sale.SaleID, sale.SaleDate, description, actorID)
	return &entry, lines, nil
}

// buildExpenseEntry derives the entry for an expense: category-mapped expense
// account against cash.
func (s *autogenService) buildExpenseEntry(gc *genContext, expense domain.Expense, actorID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if !expense.Amount.IsPositive() {
		return nil, nil, nil
	}

	expenseAccount, err := gc.accountByCode(gc.expenseCode(expense.Category))
	if err != nil {
		return nil, nil, err
	}
	cash, err := gc.accountByCode(domain.CodeCash)
	if err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("Expense - %s", expense.Category)
	if expense.Description != "" {
		description = fmt.Sprintf("Expense - %s - %s", expense.Category, expense.Description)
	}

	lines := []domain.JournalLine{
		debitLine(expenseAccount, expense.Amount, expense.Category),
		creditLine(cash, expense.Amount, expense.Category),
	}
	entry := newAutoEntry(gc.quarryID, domain.SourceExpense, expense.ExpenseID, expense.ExpenseDate, description, actorID)
	return &entry, lines, nil
}

// buildBankingEntry derives the entry for a cash-to-bank deposit.
func (s *autogenService) buildBankingEntry(gc *genContext, deposit domain.BankingDeposit, actorID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if !deposit.AmountBanked.IsPositive() {
		return nil, nil, nil
	}

	bank, err := gc.accountByCode(domain.CodeBank)
	if err != nil {
		return nil, nil, err
	}
	cash, err := gc.accountByCode(domain.CodeCash)
	if err != nil {
		return nil, nil, err
	}

	description := "Bank deposit"
	if deposit.Reference != "" {
		description = fmt.Sprintf("Bank deposit - %s", deposit.Reference)
	}

	lines := []domain.JournalLine{
		debitLine(bank, deposit.AmountBanked, deposit.Reference),
		creditLine(cash, deposit.AmountBanked, deposit.Reference),
	}
	entry := newAutoEntry(gc.quarryID, domain.SourceBanking, deposit.BankingID, deposit.DepositDate, description, actorID)
	return &entry, lines, nil
}

// buildPrepaymentEntry derives the entry for a customer prepayment: cash
// against the customer-deposits liability.
func (s *autogenService) buildPrepaymentEntry(gc *genContext, prepayment domain.Prepayment, actorID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if !prepayment.TotalAmountPaid.IsPositive() {
		return nil, nil, nil
	}

	cash, err := gc.accountByCode(domain.CodeCash)
	if err != nil {
		return nil, nil, err
	}
	deposits, err := gc.accountByCode(domain.CodeCustomerDeposits)
	if err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("Prepayment from %s", prepayment.CustomerName)
	if prepayment.VehicleReg != "" {
		description = fmt.Sprintf("Prepayment from %s (%s)", prepayment.CustomerName, prepayment.VehicleReg)
	}

	lines := []domain.JournalLine{
		debitLine(cash, prepayment.TotalAmountPaid, prepayment.CustomerName),
		creditLine(deposits, prepayment.TotalAmountPaid, prepayment.CustomerName),
	}
	entry := newAutoEntry(gc.quarryID, domain.SourcePrepayment, prepayment.PrepaymentID, prepayment.PaymentDate, description, actorID)
	return &entry, lines, nil
}

// buildCollectionEntry derives the late-payment entry for a sale paid after
// its sale date: cash against receivables for the gross amount. Returns no
// entry when the sale does not qualify.
func (s *autogenService) buildCollectionEntry(gc *genContext, sale domain.Sale, actorID string) (*domain.JournalEntry, []domain.JournalLine, error) {
	if !sale.IsLateCollection() {
		return nil, nil, nil
	}
	gross := sale.GrossAmount()
	if !gross.IsPositive() {
		return nil, nil, nil
	}

	cash, err := gc.accountByCode(domain.CodeCash)
	if err != nil {
		return nil, nil, err
	}
	receivables, err := gc.accountByCode(domain.CodeAccountsReceivable)
	if err != nil {
		return nil, nil, err
	}

	description := fmt.Sprintf("Payment received - %s - %s", sale.VehicleReg, sale.ProductName)
	lines := []domain.JournalLine{
		debitLine(cash, gross, fmt.Sprintf("Collection from %s", sale.VehicleReg)),
		creditLine(receivables, gross, fmt.Sprintf("Collection from %s", sale.VehicleReg)),
	}
	entry := newAutoEntry(gc.quarryID, domain.SourceCollection, sale.SaleID, *sale.PaymentReceivedDate, description, actorID)
	return &entry, lines, nil
}

// generateOne is the single-shot path shared by the per-kind entry points:
// idempotency check, build, persist posted.
func (s *autogenService) generateOne(
	ctx context.Context,
	quarryID string,
	kind domain.SourceKind,
	sourceID string,
	build func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error),
) (*domain.JournalEntry, error) {
	existing, err := s.journalSvc.FindEntryBySource(ctx, quarryID, kind, sourceID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	gc, err := s.loadGenContext(ctx, quarryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load generation context", slog.String("quarry_id", quarryID))
		return nil, err
	}

	entry, lines, err := build(gc)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}

	saved, err := s.journalSvc.CreateAutoEntry(ctx, *entry, lines)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Derived journal entry created",
		slog.String("source_type", string(kind)),
		slog.String("source_id", sourceID),
		slog.String("reference", saved.Reference))
	return saved, nil
}

// GenerateForSale derives the entry for a sale.
func (s *autogenService) GenerateForSale(ctx context.Context, sale domain.Sale, actorID string) (*domain.JournalEntry, error) {
	return s.generateOne(ctx, sale.QuarryID, domain.SourceSale, sale.SaleID,
		func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
			return s.buildSaleEntry(gc, sale, actorID)
		})
}

// GenerateForExpense derives the entry for an expense.
func (s *autogenService) GenerateForExpense(ctx context.Context, expense domain.Expense, actorID string) (*domain.JournalEntry, error) {
	return s.generateOne(ctx, expense.QuarryID, domain.SourceExpense, expense.ExpenseID,
		func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
			return s.buildExpenseEntry(gc, expense, actorID)
		})
}

// GenerateForBanking derives the entry for a bank deposit.
func (s *autogenService) GenerateForBanking(ctx context.Context, deposit domain.BankingDeposit, actorID string) (*domain.JournalEntry, error) {
	return s.generateOne(ctx, deposit.QuarryID, domain.SourceBanking, deposit.BankingID,
		func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
			return s.buildBankingEntry(gc, deposit, actorID)
		})
}

// GenerateForPrepayment derives the entry for a customer prepayment.
func (s *autogenService) GenerateForPrepayment(ctx context.Context, prepayment domain.Prepayment, actorID string) (*domain.JournalEntry, error) {
	return s.generateOne(ctx, prepayment.QuarryID, domain.SourcePrepayment, prepayment.PrepaymentID,
		func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
			return s.buildPrepaymentEntry(gc, prepayment, actorID)
		})
}

// GenerateForCollection derives the late-payment entry for a sale.
func (s *autogenService) GenerateForCollection(ctx context.Context, sale domain.Sale, actorID string) (*domain.JournalEntry, error) {
	return s.generateOne(ctx, sale.QuarryID, domain.SourceCollection, sale.SaleID,
		func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
			return s.buildCollectionEntry(gc, sale, actorID)
		})
}

// regenRun accumulates derived entries during a batch regeneration and
// flushes them in fixed-size atomic batches.
type regenRun struct {
	svc     *autogenService
	gc      *genContext
	actorID string
	seen    map[domain.SourceKey]struct{}
	pending []domain.JournalEntry
	lines   map[string][]domain.JournalLine
	summary domain.RegenerationSummary
}

// add finalises one built entry: mints its reference, validates balance,
// marks it posted and queues it for the next flush.
func (r *regenRun) add(ctx context.Context, entry *domain.JournalEntry, lines []domain.JournalLine) error {
	totalDebit, totalCredit := accounting.LineTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return fmt.Errorf("%w: derived entry for %s %s is unbalanced",
			apperrors.ErrUnbalanced, *entry.SourceType, *entry.SourceID)
	}

	fiscalYear := entry.EntryDate.Year()
	seq, err := r.svc.journalRepo.NextReferenceNumber(ctx, entry.QuarryID, r.svc.autoPrefix, fiscalYear)
	if err != nil {
		return fmt.Errorf("failed to allocate reference number: %w", err)
	}

	now := time.Now().UTC()
	entry.Reference = formatReference(r.svc.autoPrefix, fiscalYear, seq)
	entry.FiscalYear = fiscalYear
	entry.FiscalPeriod = int(entry.EntryDate.Month())
	entry.IsPosted = true
	entry.PostedBy = r.actorID
	entry.PostedAt = &now
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.IsActive = true
	for i := range lines {
		lines[i].EntryID = entry.EntryID
		lines[i].LineNumber = i + 1
	}

	r.pending = append(r.pending, *entry)
	r.lines[entry.EntryID] = lines
	if len(r.pending) >= regenBatchSize {
		return r.flush(ctx)
	}
	return nil
}

// flush persists the queued entries in one database transaction.
func (r *regenRun) flush(ctx context.Context) error {
	if len(r.pending) == 0 {
		return nil
	}
	if err := r.svc.journalRepo.SaveEntries(ctx, r.pending, r.lines); err != nil {
		return fmt.Errorf("failed to persist regeneration batch: %w", err)
	}
	r.pending = r.pending[:0]
	r.lines = make(map[string][]domain.JournalLine)
	return nil
}

// process runs one source transaction through its builder, honouring the
// idempotency set and the skip-on-failure rule. It reports whether a new
// entry was queued.
func (r *regenRun) process(
	ctx context.Context,
	kind domain.SourceKind,
	sourceID string,
	build func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error),
) (bool, error) {
	key := domain.SourceKey{Kind: kind, ID: sourceID}
	if _, dup := r.seen[key]; dup {
		r.summary.Skipped++
		return false, nil
	}

	entry, lines, err := build(r.gc)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrUnbalanced) {
			r.svc.LogWarn(ctx, "Skipping transaction during regeneration",
				slog.String("source_type", string(kind)),
				slog.String("source_id", sourceID),
				slog.String("reason", err.Error()))
			r.summary.Failed++
			return false, nil
		}
		return false, err
	}
	if entry == nil {
		r.summary.Skipped++
		return false, nil
	}

	if err := r.add(ctx, entry, lines); err != nil {
		if errors.Is(err, apperrors.ErrUnbalanced) {
			r.svc.LogWarn(ctx, "Skipping unbalanced derived entry",
				slog.String("source_type", string(kind)), slog.String("source_id", sourceID))
			r.summary.Failed++
			return false, nil
		}
		return false, err
	}

	r.seen[key] = struct{}{}
	return true, nil
}

// RegenerateAll re-derives entries for every source transaction dated within
// the range. The chart and the existing source keys are loaded once up
// front; already-generated transactions, and duplicates earlier in the same
// run, are skipped. Entries persist in atomic batches; a failure to build
// one transaction's entry skips that transaction only.
func (s *autogenService) RegenerateAll(ctx context.Context, quarryID string, from, to time.Time, actorID string) (*domain.RegenerationSummary, error) {
	gc, err := s.loadGenContext(ctx, quarryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load generation context", slog.String("quarry_id", quarryID))
		return nil, err
	}

	existingKeys, err := s.journalRepo.ListSourceKeys(ctx, quarryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load existing source keys", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to load existing source keys: %w", err)
	}
	seen := make(map[domain.SourceKey]struct{}, len(existingKeys))
	for _, key := range existingKeys {
		seen[key] = struct{}{}
	}

	run := &regenRun{
		svc:     s,
		gc:      gc,
		actorID: actorID,
		seen:    seen,
		lines:   make(map[string][]domain.JournalLine),
	}

	sales, err := s.sourceRepo.ListSales(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	for _, sale := range sales {
		sale := sale
		created, err := run.process(ctx, domain.SourceSale, sale.SaleID,
			func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
				return s.buildSaleEntry(gc, sale, actorID)
			})
		if err != nil {
			return nil, err
		}
		if created {
			run.summary.SalesProcessed++
		}
	}

	expenses, err := s.sourceRepo.ListExpenses(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	for _, expense := range expenses {
		expense := expense
		created, err := run.process(ctx, domain.SourceExpense, expense.ExpenseID,
			func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
				return s.buildExpenseEntry(gc, expense, actorID)
			})
		if err != nil {
			return nil, err
		}
		if created {
			run.summary.ExpensesProcessed++
		}
	}

	bankings, err := s.sourceRepo.ListBankings(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list bankings: %w", err)
	}
	for _, deposit := range bankings {
		deposit := deposit
		created, err := run.process(ctx, domain.SourceBanking, deposit.BankingID,
			func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
				return s.buildBankingEntry(gc, deposit, actorID)
			})
		if err != nil {
			return nil, err
		}
		if created {
			run.summary.BankingsProcessed++
		}
	}

	prepayments, err := s.sourceRepo.ListPrepayments(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list prepayments: %w", err)
	}
	for _, prepayment := range prepayments {
		prepayment := prepayment
		created, err := run.process(ctx, domain.SourcePrepayment, prepayment.PrepaymentID,
			func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
				return s.buildPrepaymentEntry(gc, prepayment, actorID)
			})
		if err != nil {
			return nil, err
		}
		if created {
			run.summary.PrepaymentsProcessed++
		}
	}

	// Collections come from sales whose payment landed inside the range,
	// including sales dated before it.
	paidSales, err := s.sourceRepo.ListSalesPaidBetween(ctx, quarryID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list paid sales: %w", err)
	}
	for _, sale := range paidSales {
		sale := sale
		created, err := run.process(ctx, domain.SourceCollection, sale.SaleID,
			func(gc *genContext) (*domain.JournalEntry, []domain.JournalLine, error) {
				return s.buildCollectionEntry(gc, sale, actorID)
			})
		if err != nil {
			return nil, err
		}
		if created {
			run.summary.CollectionsProcessed++
		}
	}

	if err := run.flush(ctx); err != nil {
		s.LogError(ctx, err, "Failed to flush final regeneration batch", slog.String("quarry_id", quarryID))
		return nil, err
	}

	s.LogInfo(ctx, "Batch regeneration finished",
		slog.String("quarry_id", quarryID),
		slog.Int("processed", run.summary.TotalProcessed()),
		slog.Int("skipped", run.summary.Skipped),
		slog.Int("failed", run.summary.Failed))
	return &run.summary, nil
}
