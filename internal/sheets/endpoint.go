// internal/sheets/endpoint.go
package sheets

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	commonerrors "estate-match-backend/internal/common/errors"
)

const (
	// allowedHost is the single spreadsheet provider the feed may come
	// from. No subdomains, no alternate domains.
	allowedHost = "docs.google.com"

	exportURLTemplate = "https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json"
)

// sheetIDPattern matches against the URL path component only, never the
// raw URL string, so an id smuggled into the query or fragment is ignored.
var sheetIDPattern = regexp.MustCompile(`^/spreadsheets/d/([a-zA-Z0-9_-]+)`)

// ResolveFeedEndpoint validates a spreadsheet sharing URL and converts it
// to the machine-readable gviz export endpoint. The same validation runs
// at config-save time and again at fetch time; a stored URL is never
// implicitly trusted.
func ResolveFeedEndpoint(sharingURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(sharingURL))
	if err != nil {
		return "", commonerrors.NewInvalidSourceURLError(fmt.Sprintf("not a valid URL: %v", err))
	}

	if !parsed.IsAbs() {
		return "", commonerrors.NewInvalidSourceURLError("URL must be absolute")
	}

	if parsed.Scheme != "https" {
		return "", commonerrors.NewInvalidSourceURLError("only HTTPS URLs are allowed")
	}

	if parsed.Hostname() != allowedHost {
		return "", commonerrors.NewInvalidSourceURLError("only Google Sheets URLs are allowed")
	}

	match := sheetIDPattern.FindStringSubmatch(parsed.EscapedPath())
	if match == nil {
		return "", commonerrors.NewInvalidSourceURLError("URL must be a Google Sheets spreadsheet URL")
	}

	return fmt.Sprintf(exportURLTemplate, match[1]), nil
}
