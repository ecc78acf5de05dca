package linkedin

import (
	"fmt"
	"strings"

	"jobpost-backend/internal/organizations"
)

// ToPatch maps a scraped company onto organization fields. Fields the
// provider left empty are not touched; the source URL and raw payload are
// always stored.
func ToPatch(company Company, linkedinURL string) organizations.Patch {
	f := company.Fields
	return organizations.Patch{
		Name:         nonEmpty(first(f, "company_name", "name")),
		Description:  nonEmpty(first(f, "about", "description")),
		Industry:     nonEmpty(first(f, "industry", "industries")),
		Location:     nonEmpty(first(f, "location", "headquarters")),
		CompanySize:  nonEmpty(first(f, "company_size_on_linkedin", "company_size")),
		Website:      nonEmpty(first(f, "website")),
		LogoURL:      nonEmpty(first(f, "profile_photo", "logo", "logo_url")),
		LinkedInURL:  organizations.StringPtr(strings.TrimSpace(linkedinURL)),
		LinkedInData: company.Raw,
	}
}

// first returns the first key holding a usable value. Arrays yield their
// first element.
func first(fields map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := stringValue(fields[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	case bool:
		return ""
	case []any:
		if len(t) == 0 {
			return ""
		}
		return stringValue(t[0])
	default:
		return ""
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
