package scraperapi_test

import (
	"testing"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
)

func TestScrapeParams_AbsentFieldsOmitted(t *testing.T) {
	params := scraperapi.ScrapeParams{
		SiteNames:     []string{"linkedin", "indeed"},
		Distance:      50,
		ResultsWanted: 100,
		Verbose:       2,
	}

	q := params.Values()

	if got := q.Get("site_name"); got != "linkedin,indeed" {
		t.Errorf("site_name = %q, want \"linkedin,indeed\"", got)
	}

	for _, key := range []string{"search_term", "location", "job_type", "is_remote", "hours_old", "linkedin_company_ids", "ca_cert", "proxies", "easy_apply"} {
		if q.Has(key) {
			t.Errorf("absent field %q was encoded as %q", key, q.Get(key))
		}
	}

	if got := q.Get("distance"); got != "50" {
		t.Errorf("distance = %q, want \"50\"", got)
	}
}

func TestScrapeParams_PresentFieldsEncoded(t *testing.T) {
	term := "go developer"
	loc := "Austin, TX"
	jt := "fulltime"
	remote := false
	hours := 24

	params := scraperapi.ScrapeParams{
		SiteNames:          []string{"indeed"},
		SearchTerm:         &term,
		Location:           &loc,
		JobType:            &jt,
		IsRemote:           &remote,
		HoursOld:           &hours,
		LinkedinCompanyIDs: []int{1441, 1442},
		DescriptionFormat:  "markdown",
	}

	q := params.Values()

	if got := q.Get("search_term"); got != term {
		t.Errorf("search_term = %q, want %q", got, term)
	}
	if got := q.Get("location"); got != loc {
		t.Errorf("location = %q, want %q", got, loc)
	}
	// explicit false is a supplied filter and must survive encoding
	if got := q.Get("is_remote"); got != "false" {
		t.Errorf("is_remote = %q, want \"false\"", got)
	}
	if got := q.Get("hours_old"); got != "24" {
		t.Errorf("hours_old = %q, want \"24\"", got)
	}
	if got := q.Get("linkedin_company_ids"); got != "1441,1442" {
		t.Errorf("linkedin_company_ids = %q, want \"1441,1442\"", got)
	}
}
