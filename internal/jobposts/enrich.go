package jobposts

import (
	"encoding/json"
	"strings"
)

// OrganizationContext is the optional company profile woven into a prompt.
// Empty or whitespace-only fields count as absent.
type OrganizationContext struct {
	Name        string `json:"name,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	CompanySize string `json:"company_size,omitempty"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Description string `json:"description,omitempty"`
}

// UnmarshalJSON accepts both the stored record key company_size and the
// camelCase companySize.
func (o *OrganizationContext) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name           string `json:"name"`
		Industry       string `json:"industry"`
		Location       string `json:"location"`
		CompanySize    string `json:"company_size"`
		CompanySizeAlt string `json:"companySize"`
		Website        string `json:"website"`
		Email          string `json:"email"`
		Description    string `json:"description"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	size := raw.CompanySize
	if strings.TrimSpace(size) == "" {
		size = raw.CompanySizeAlt
	}
	*o = OrganizationContext{
		Name:        raw.Name,
		Industry:    raw.Industry,
		Location:    raw.Location,
		CompanySize: size,
		Website:     raw.Website,
		Email:       raw.Email,
		Description: raw.Description,
	}
	return nil
}

// Lines renders the present fields as "Label: value" in fixed order.
func (o *OrganizationContext) Lines() []string {
	if o == nil {
		return nil
	}
	fields := []struct{ label, value string }{
		{"Company Name", o.Name},
		{"Industry", o.Industry},
		{"Location", o.Location},
		{"Company Size", o.CompanySize},
		{"Website", o.Website},
		{"Contact Email", o.Email},
		{"About the Company", o.Description},
	}
	var lines []string
	for _, f := range fields {
		if v := strings.TrimSpace(f.value); v != "" {
			lines = append(lines, f.label+": "+v)
		}
	}
	return lines
}

// Enrich prefixes prompt with the organization lines and a blank line. The
// prompt is returned unchanged when no field is present.
func Enrich(prompt string, org *OrganizationContext) string {
	lines := org.Lines()
	if len(lines) == 0 {
		return prompt
	}
	return strings.Join(lines, "\n") + "\n\n" + prompt
}
