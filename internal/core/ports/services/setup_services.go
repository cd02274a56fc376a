package services

import (
	"context"

	"github.com/quarryworks/quarry_books_app/internal/dto"
)

// SetupSvcFacade is the tenant-provisioning surface: it installs the standard
// chart, the fiscal year's periods, fee settings and account code mappings
// for a new quarry.
type SetupSvcFacade interface {
	// ProvisionQuarry seeds everything a quarry needs before generation can run.
	ProvisionQuarry(ctx context.Context, quarryID string, req dto.ProvisionQuarryRequest, creatorUserID string) (*dto.ProvisionQuarryResponse, error)
}
