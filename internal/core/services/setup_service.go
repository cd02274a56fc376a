package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quarryworks/quarry_books_app/internal/core/domain"
	portsrepo "github.com/quarryworks/quarry_books_app/internal/core/ports/repositories"
	portssvc "github.com/quarryworks/quarry_books_app/internal/core/ports/services"
	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// setupService provisions a new quarry: standard chart, fiscal periods, fee
// settings and account code mappings.
type setupService struct {
	BaseService
	accountSvc   portssvc.AccountSvcFacade
	periodSvc    portssvc.PeriodSvcFacade
	settingsRepo portsrepo.QuarrySettingsRepository
	mappingRepo  portsrepo.AccountMappingRepository
}

// NewSetupService creates a new setup service.
func NewSetupService(
	accountSvc portssvc.AccountSvcFacade,
	periodSvc portssvc.PeriodSvcFacade,
	settingsRepo portsrepo.QuarrySettingsRepository,
	mappingRepo portsrepo.AccountMappingRepository,
) portssvc.SetupSvcFacade {
	return &setupService{
		accountSvc:   accountSvc,
		periodSvc:    periodSvc,
		settingsRepo: settingsRepo,
		mappingRepo:  mappingRepo,
	}
}

var _ portssvc.SetupSvcFacade = (*setupService)(nil)

// ProvisionQuarry seeds everything a quarry needs before generation can run.
func (s *setupService) ProvisionQuarry(ctx context.Context, quarryID string, req dto.ProvisionQuarryRequest, creatorUserID string) (*dto.ProvisionQuarryResponse, error) {
	accounts, err := s.accountSvc.SeedChartOfAccounts(ctx, quarryID, creatorUserID)
	if err != nil {
		return nil, err
	}

	periods, err := s.periodSvc.ProvisionFiscalYear(ctx, quarryID, req.FiscalYear, creatorUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	settings := domain.QuarrySettings{
		QuarryID:          quarryID,
		LoadersFeeRate:    req.LoadersFeeRate,
		LandRatePerUnit:   req.LandRatePerUnit,
		RejectsFeePerUnit: req.RejectsFeePerUnit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save quarry settings", slog.String("quarry_id", quarryID))
		return nil, fmt.Errorf("failed to save quarry settings: %w", err)
	}

	if len(req.ProductRevenueMappings) > 0 || len(req.ExpenseCategoryMappings) > 0 {
		if err := s.mappingRepo.SaveMappings(ctx, quarryID, req.ProductRevenueMappings, req.ExpenseCategoryMappings); err != nil {
			s.LogError(ctx, err, "Failed to save account mappings", slog.String("quarry_id", quarryID))
			return nil, fmt.Errorf("failed to save account mappings: %w", err)
		}
	}

	s.LogInfo(ctx, "Quarry provisioned",
		slog.String("quarry_id", quarryID),
		slog.Int("accounts", len(accounts)),
		slog.Int("periods", len(periods)))

	return &dto.ProvisionQuarryResponse{
		AccountsSeeded: len(accounts),
		PeriodsSeeded:  len(periods),
		Accounts:       dto.ToAccountResponses(accounts),
		Periods:        dto.ToPeriodResponses(periods),
	}, nil
}
