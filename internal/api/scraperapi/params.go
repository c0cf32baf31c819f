package scraperapi

import (
	"net/url"
	"strconv"
	"strings"
)

// ScrapeParams is the merged parameter set for one scrape call: the
// combination's single-valued fields plus the query's shared scalar
// filters. Nil pointers mean the filter was not supplied and are omitted
// from the encoded request.
type ScrapeParams struct {
	SiteNames                []string
	SearchTerm               *string
	GoogleSearchTerm         *string
	Location                 *string
	Distance                 int
	JobType                  *string
	Proxies                  []string
	IsRemote                 *bool
	ResultsWanted            int
	EasyApply                *bool
	DescriptionFormat        string
	Offset                   int
	HoursOld                 *int
	Verbose                  int
	LinkedinFetchDescription bool
	LinkedinCompanyIDs       []int
	CountryIndeed            *string
	EnforceAnnualSalary      *bool
	CACert                   *string
}

func (p ScrapeParams) Values() url.Values {
	q := url.Values{}

	if len(p.SiteNames) > 0 {
		q.Set("site_name", strings.Join(p.SiteNames, ","))
	}

	if p.SearchTerm != nil {
		q.Set("search_term", *p.SearchTerm)
	}

	if p.GoogleSearchTerm != nil {
		q.Set("google_search_term", *p.GoogleSearchTerm)
	}

	if p.Location != nil {
		q.Set("location", *p.Location)
	}

	q.Set("distance", strconv.Itoa(p.Distance))

	if p.JobType != nil {
		q.Set("job_type", *p.JobType)
	}

	if len(p.Proxies) > 0 {
		q.Set("proxies", strings.Join(p.Proxies, ","))
	}

	if p.IsRemote != nil {
		q.Set("is_remote", strconv.FormatBool(*p.IsRemote))
	}

	q.Set("results_wanted", strconv.Itoa(p.ResultsWanted))

	if p.EasyApply != nil {
		q.Set("easy_apply", strconv.FormatBool(*p.EasyApply))
	}

	if p.DescriptionFormat != "" {
		q.Set("description_format", p.DescriptionFormat)
	}

	q.Set("offset", strconv.Itoa(p.Offset))

	if p.HoursOld != nil {
		q.Set("hours_old", strconv.Itoa(*p.HoursOld))
	}

	q.Set("verbose", strconv.Itoa(p.Verbose))

	if p.LinkedinFetchDescription {
		q.Set("linkedin_fetch_description", "true")
	}

	if len(p.LinkedinCompanyIDs) > 0 {
		ids := make([]string, len(p.LinkedinCompanyIDs))
		for i, id := range p.LinkedinCompanyIDs {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("linkedin_company_ids", strings.Join(ids, ","))
	}

	if p.CountryIndeed != nil {
		q.Set("country_indeed", *p.CountryIndeed)
	}

	if p.EnforceAnnualSalary != nil {
		q.Set("enforce_annual_salary", strconv.FormatBool(*p.EnforceAnnualSalary))
	}

	if p.CACert != nil {
		q.Set("ca_cert", *p.CACert)
	}

	return q
}
