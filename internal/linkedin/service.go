package linkedin

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"jobpost-backend/internal/organizations"
	"jobpost-backend/internal/shared/metrics"
	"jobpost-backend/internal/shared/telemetry"
)

var (
	ErrURLRequired    = errors.New("linkedin url is required")
	ErrUserIDRequired = errors.New("user id is required")
)

// Importer fills a user's organization from a LinkedIn company page.
type Importer struct {
	Fetcher Fetcher
	Orgs    *organizations.Service
}

// Import scrapes the company behind linkedinURL and upserts it as the
// user's organization.
func (i *Importer) Import(ctx context.Context, linkedinURL, userID string) (organizations.Organization, error) {
	linkedinURL = strings.TrimSpace(linkedinURL)
	userID = strings.TrimSpace(userID)
	if linkedinURL == "" {
		return organizations.Organization{}, ErrURLRequired
	}
	if userID == "" {
		return organizations.Organization{}, ErrUserIDRequired
	}
	companyID, err := ExtractCompanyID(linkedinURL)
	if err != nil {
		return organizations.Organization{}, err
	}

	company, err := i.Fetcher.FetchCompany(ctx, companyID)
	if err != nil {
		metrics.IncLinkedInImport(false)
		telemetry.Warn("linkedin.fetch_failed", map[string]any{"company_id": companyID, "error": err})
		return organizations.Organization{}, err
	}

	org, err := i.Orgs.Save(ctx, userID, ToPatch(company, linkedinURL))
	if err != nil {
		metrics.IncLinkedInImport(false)
		return organizations.Organization{}, errors.Wrap(err, "store imported organization")
	}
	metrics.IncLinkedInImport(true)
	telemetry.Info("linkedin.imported", map[string]any{"company_id": companyID, "organization_id": org.ID})
	return org, nil
}
