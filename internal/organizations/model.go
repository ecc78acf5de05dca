package organizations

import (
	"encoding/json"
	"strings"
	"time"

	"jobpost-backend/internal/jobposts"
)

// Organization is the company profile a user keeps for enriching prompts.
// JSON keys follow the stored column names.
type Organization struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Industry     string          `json:"industry"`
	Location     string          `json:"location"`
	CompanySize  string          `json:"company_size"`
	Website      string          `json:"website"`
	Email        string          `json:"email"`
	LogoURL      string          `json:"logo_url"`
	LinkedInURL  string          `json:"linkedin_url"`
	LinkedInData json.RawMessage `json:"linkedin_data,omitempty"`
	LastUpdated  time.Time       `json:"last_updated"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Context returns the fields used to enrich a generation prompt.
func (o Organization) Context() *jobposts.OrganizationContext {
	return &jobposts.OrganizationContext{
		Name:        o.Name,
		Industry:    o.Industry,
		Location:    o.Location,
		CompanySize: o.CompanySize,
		Website:     o.Website,
		Email:       o.Email,
		Description: o.Description,
	}
}

// Patch is a partial update. Nil fields keep the stored value; a present
// empty string clears it.
type Patch struct {
	Name         *string         `json:"name"`
	Description  *string         `json:"description"`
	Industry     *string         `json:"industry"`
	Location     *string         `json:"location"`
	CompanySize  *string         `json:"company_size"`
	Website      *string         `json:"website"`
	Email        *string         `json:"email"`
	LogoURL      *string         `json:"logo_url"`
	LinkedInURL  *string         `json:"linkedin_url"`
	LinkedInData json.RawMessage `json:"linkedin_data"`
}

// UnmarshalJSON also accepts companySize.
func (p *Patch) UnmarshalJSON(data []byte) error {
	type plain Patch
	var raw struct {
		plain
		CamelSize *string `json:"companySize"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = Patch(raw.plain)
	if p.CompanySize == nil {
		p.CompanySize = raw.CamelSize
	}
	return nil
}

// Apply returns o with every present patch field written over it.
func (p Patch) Apply(o Organization) Organization {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&o.Name, p.Name)
	set(&o.Description, p.Description)
	set(&o.Industry, p.Industry)
	set(&o.Location, p.Location)
	set(&o.CompanySize, p.CompanySize)
	set(&o.Website, p.Website)
	set(&o.Email, p.Email)
	set(&o.LogoURL, p.LogoURL)
	set(&o.LinkedInURL, p.LinkedInURL)
	if len(p.LinkedInData) > 0 {
		if string(p.LinkedInData) == "null" {
			o.LinkedInData = nil
		} else {
			o.LinkedInData = append(json.RawMessage(nil), p.LinkedInData...)
		}
	}
	return o
}

// StringPtr is a helper for building patches.
func StringPtr(s string) *string {
	return &s
}
