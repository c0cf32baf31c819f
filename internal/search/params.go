package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Site identifiers the scraper service knows how to handle.
var ValidSites = []string{"linkedin", "indeed", "zip_recruiter", "glassdoor", "google", "bayt", "naukri"}

// DefaultSiteNames is the site_name value used when the caller supplies none.
const DefaultSiteNames = "linkedin,indeed,zip_recruiter,glassdoor,google,bayt"

var ValidJobTypes = []string{"fulltime", "parttime", "internship", "contract"}

var ValidDescriptionFormats = []string{"markdown", "html"}

// ValidationError marks a client-input failure. Handlers map it to a 400
// with the message as-is, so messages always name the offending values and
// the valid set.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Query is the raw user-supplied search request before validation. List
// fields arrive as comma-separated strings; nil pointers mean the filter
// was not supplied.
type Query struct {
	SiteNames                string
	SearchTerm               string
	GoogleSearchTerm         string
	Location                 string
	Distance                 int
	JobType                  string
	Proxies                  string
	IsRemote                 *bool
	ResultsWanted            int
	EasyApply                *bool
	DescriptionFormat        string
	Offset                   int
	HoursOld                 *int
	Verbose                  int
	LinkedinFetchDescription bool
	LinkedinCompanyIDs       string
	CountryIndeed            string
	EnforceAnnualSalary      *bool
	CACert                   string
}

// SplitList splits a comma-separated value into trimmed tokens. An empty
// input yields nil so an absent filter stays distinguishable from an
// empty-string one.
func SplitList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// ParseSiteNames lowercases, trims and deduplicates the requested site
// tokens, failing if any token is unknown or the list comes out empty.
func ParseSiteNames(raw string) ([]string, error) {
	tokens := SplitList(raw)
	if len(tokens) == 0 {
		return nil, validationErrorf("site_name must not be empty. Valid sites are: %s", strings.Join(ValidSites, ", "))
	}

	valid := make(map[string]bool, len(ValidSites))
	for _, s := range ValidSites {
		valid[s] = true
	}

	seen := make(map[string]bool, len(tokens))
	var sites []string
	var invalid []string

	for _, t := range tokens {
		site := strings.ToLower(strings.TrimSpace(t))
		if !valid[site] {
			invalid = append(invalid, site)
			continue
		}
		if seen[site] {
			continue
		}
		seen[site] = true
		sites = append(sites, site)
	}

	if len(invalid) > 0 {
		return nil, validationErrorf("invalid site names: %s. Valid sites are: %s",
			strings.Join(invalid, ", "), strings.Join(ValidSites, ", "))
	}

	return sites, nil
}

// ParseJobTypes validates each job-type token against the closed set.
func ParseJobTypes(raw string) ([]string, error) {
	tokens := SplitList(raw)
	if len(tokens) == 0 {
		return nil, nil
	}

	valid := make(map[string]bool, len(ValidJobTypes))
	for _, t := range ValidJobTypes {
		valid[t] = true
	}

	seen := make(map[string]bool, len(tokens))
	var types []string
	var invalid []string

	for _, t := range tokens {
		jt := strings.ToLower(strings.TrimSpace(t))
		if !valid[jt] {
			invalid = append(invalid, jt)
			continue
		}
		if seen[jt] {
			continue
		}
		seen[jt] = true
		types = append(types, jt)
	}

	if len(invalid) > 0 {
		return nil, validationErrorf("invalid job types: %s. Valid types are: %s",
			strings.Join(invalid, ", "), strings.Join(ValidJobTypes, ", "))
	}

	return types, nil
}

// ParseCompanyIDs converts a comma-separated LinkedIn company id list to
// integers.
func ParseCompanyIDs(raw string) ([]int, error) {
	tokens := SplitList(raw)
	if len(tokens) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(tokens))
	for _, t := range tokens {
		id, err := strconv.Atoi(t)
		if err != nil {
			return nil, validationErrorf("invalid linkedin company id: %q is not an integer", t)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// Validate range-checks the scalar query fields that declare bounds.
func (q *Query) Validate() error {
	if q.Verbose < 0 || q.Verbose > 2 {
		return validationErrorf("verbose must be between 0 and 2, got %d", q.Verbose)
	}

	if q.DescriptionFormat != "" {
		ok := false
		for _, f := range ValidDescriptionFormats {
			if q.DescriptionFormat == f {
				ok = true
				break
			}
		}
		if !ok {
			return validationErrorf("invalid description format: %s. Valid formats are: %s",
				q.DescriptionFormat, strings.Join(ValidDescriptionFormats, ", "))
		}
	}

	return nil
}
