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
	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// accountService manages the chart of accounts for a quarry.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// GetChartOfAccounts retrieves the active chart for a quarry.
func (s *accountService) GetChartOfAccounts(ctx context.Context, quarryID string) ([]domain.LedgerAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, quarryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list chart of accounts", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to retrieve chart of accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountByID retrieves a single active account.
func (s *accountService) GetAccountByID(ctx context.Context, quarryID, accountID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, quarryID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByCode retrieves a single active account by code.
func (s *accountService) GetAccountByCode(ctx context.Context, quarryID, code string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, quarryID, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by code", slog.String("code", code))
		}
		return nil, err
	}
	return account, nil
}

// CreateAccount adds a non-system account to the chart. The normal-balance
// polarity is derived from the category, never supplied by the caller.
func (s *accountService) CreateAccount(ctx context.Context, quarryID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.LedgerAccount, error) {
	category := domain.AccountCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown account category %q", apperrors.ErrValidation, req.Category)
	}
	if !isNumericCode(req.Code) {
		return nil, fmt.Errorf("%w: account code %q must contain only digits", apperrors.ErrValidation, req.Code)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, quarryID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s already in use", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to check for existing account: %w", err)
	}

	now := time.Now().UTC()
	account := domain.LedgerAccount{
		AccountID:     uuid.NewString(),
		QuarryID:      quarryID,
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Category:      category,
		IsDebitNormal: category.IsDebitNormal(),
		IsSystem:      false,
		DisplayOrder:  req.DisplayOrder,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount changes name, description or display order. System accounts
// accept name and description changes only.
func (s *accountService) UpdateAccount(ctx context.Context, quarryID, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.LedgerAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, quarryID, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsSystem && req.DisplayOrder != nil {
		return nil, fmt.Errorf("%w: system account display order cannot be changed", apperrors.ErrForbidden)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.DisplayOrder != nil {
		account.DisplayOrder = *req.DisplayOrder
		updated = true
	}

	if !updated {
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeactivateAccount soft-deletes an account. System accounts and accounts
// with any journal history are protected.
func (s *accountService) DeactivateAccount(ctx context.Context, quarryID, accountID, updaterUserID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, quarryID, accountID)
	if err != nil {
		return err
	}

	if account.IsSystem {
		return fmt.Errorf("%w: system accounts cannot be deleted", apperrors.ErrForbidden)
	}

	hasLines, err := s.accountRepo.HasJournalLines(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal lines for account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to check account usage: %w", err)
	}
	if hasLines {
		return fmt.Errorf("%w: account %s has journal lines", apperrors.ErrConflict, account.Code)
	}

	if err := s.accountRepo.DeactivateAccount(ctx, quarryID, accountID, updaterUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// SeedChartOfAccounts installs the standard chart for a new quarry. Called by
// tenant provisioning; idempotence is the caller's concern.
func (s *accountService) SeedChartOfAccounts(ctx context.Context, quarryID, creatorUserID string) ([]domain.LedgerAccount, error) {
	now := time.Now().UTC()
	accounts := make([]domain.LedgerAccount, len(standardChart))
	for i, tmpl := range standardChart {
		accounts[i] = domain.LedgerAccount{
			AccountID:     uuid.NewString(),
			QuarryID:      quarryID,
			Code:          tmpl.Code,
			Name:          tmpl.Name,
			Category:      tmpl.Category,
			IsDebitNormal: tmpl.Category.IsDebitNormal(),
			IsSystem:      true,
			DisplayOrder:  tmpl.DisplayOrder,
			IsActive:      true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to seed chart of accounts", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	s.LogInfo(ctx, "Chart of accounts seeded", slog.String("quarry_id", quarryID), slog.Int("account_count", len(accounts)))
	return accounts, nil
}

// isNumericCode reports whether code is a non-empty string of ASCII digits.
// Codes sort and classify numerically across the chart and the balance sheet.
func isNumericCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
