package linkedin

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidURL is returned when no company slug can be read from a URL.
var ErrInvalidURL = errors.New("no company id in linkedin url")

var companySlug = regexp.MustCompile(`(?i)linkedin\.com/company/([^/?#\s]+)`)

// ExtractCompanyID returns the company slug of a linkedin.com/company URL.
// A trailing slash, query string or fragment is ignored.
func ExtractCompanyID(rawURL string) (string, error) {
	u := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	m := companySlug.FindStringSubmatch(u)
	if len(m) < 2 || m[1] == "" {
		return "", ErrInvalidURL
	}
	return m[1], nil
}
