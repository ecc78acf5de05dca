package organizations

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type PGRepo struct {
	DB *sql.DB
}

const orgColumns = `id, user_id, name, description, industry, location, company_size, website, email, logo_url, linkedin_url, linkedin_data, last_updated, created_at`

func (r *PGRepo) Get(ctx context.Context, userID string) (Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE user_id = $1 LIMIT 1`
	org, err := scanOrganization(r.DB.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Organization{}, ErrNotFound
		}
		return Organization{}, errors.Wrap(err, "select organization")
	}
	return org, nil
}

// Upsert inserts or replaces the row for org.UserID. The stored id and
// created_at of an existing row are kept.
func (r *PGRepo) Upsert(ctx context.Context, org Organization) (Organization, error) {
	query := `
INSERT INTO organizations (id, user_id, name, description, industry, location, company_size, website, email, logo_url, linkedin_url, linkedin_data, last_updated, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)
ON CONFLICT (user_id) DO UPDATE SET
  name = EXCLUDED.name,
  description = EXCLUDED.description,
  industry = EXCLUDED.industry,
  location = EXCLUDED.location,
  company_size = EXCLUDED.company_size,
  website = EXCLUDED.website,
  email = EXCLUDED.email,
  logo_url = EXCLUDED.logo_url,
  linkedin_url = EXCLUDED.linkedin_url,
  linkedin_data = EXCLUDED.linkedin_data,
  last_updated = EXCLUDED.last_updated
RETURNING ` + orgColumns
	row := r.DB.QueryRowContext(ctx, query,
		org.ID,
		org.UserID,
		org.Name,
		nullableString(org.Description),
		nullableString(org.Industry),
		nullableString(org.Location),
		nullableString(org.CompanySize),
		nullableString(org.Website),
		nullableString(org.Email),
		nullableString(org.LogoURL),
		nullableString(org.LinkedInURL),
		nullableJSON(org.LinkedInData),
		org.LastUpdated,
	)
	stored, err := scanOrganization(row)
	if err != nil {
		return Organization{}, errors.Wrap(err, "upsert organization")
	}
	return stored, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM organizations WHERE user_id = $1`, userID)
	return errors.Wrap(err, "delete organization")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrganization(row rowScanner) (Organization, error) {
	var org Organization
	var description, industry, location, size sql.NullString
	var website, email, logoURL, linkedinURL sql.NullString
	var linkedinData []byte
	err := row.Scan(
		&org.ID,
		&org.UserID,
		&org.Name,
		&description,
		&industry,
		&location,
		&size,
		&website,
		&email,
		&logoURL,
		&linkedinURL,
		&linkedinData,
		&org.LastUpdated,
		&org.CreatedAt,
	)
	if err != nil {
		return Organization{}, err
	}
	org.Description = description.String
	org.Industry = industry.String
	org.Location = location.String
	org.CompanySize = size.String
	org.Website = website.String
	org.Email = email.String
	org.LogoURL = logoURL.String
	org.LinkedInURL = linkedinURL.String
	if len(linkedinData) > 0 {
		org.LinkedInData = linkedinData
	}
	return org, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableJSON(value []byte) any {
	if len(value) == 0 {
		return nil
	}
	return string(value)
}
