package server

import (
	"github.com/asadintwala/jobspy-scraper-api/internal/search"
)

// SearchRequest carries the raw /jobs query parameters. Defaults are
// applied before binding; gin leaves fields untouched when the parameter
// is absent.
type SearchRequest struct {
	SiteName                 string `form:"site_name"`
	SearchTerm               string `form:"search_term"`
	GoogleSearchTerm         string `form:"google_search_term"`
	Location                 string `form:"location"`
	Distance                 int    `form:"distance"`
	JobType                  string `form:"job_type"`
	Proxies                  string `form:"proxies"`
	IsRemote                 *bool  `form:"is_remote"`
	ResultsWanted            int    `form:"results_wanted"`
	EasyApply                *bool  `form:"easy_apply"`
	DescriptionFormat        string `form:"description_format"`
	Offset                   int    `form:"offset"`
	HoursOld                 *int   `form:"hours_old"`
	Verbose                  int    `form:"verbose"`
	LinkedinFetchDescription bool   `form:"linkedin_fetch_description"`
	LinkedinCompanyIDs       string `form:"linkedin_company_ids"`
	CountryIndeed            string `form:"country_indeed"`
	EnforceAnnualSalary      *bool  `form:"enforce_annual_salary"`
	CACert                   string `form:"ca_cert"`
}

func defaultSearchRequest() SearchRequest {
	return SearchRequest{
		SiteName:          search.DefaultSiteNames,
		Distance:          50,
		ResultsWanted:     100,
		DescriptionFormat: "markdown",
		Verbose:           2,
	}
}

func (r *SearchRequest) toQuery() *search.Query {
	return &search.Query{
		SiteNames:                r.SiteName,
		SearchTerm:               r.SearchTerm,
		GoogleSearchTerm:         r.GoogleSearchTerm,
		Location:                 r.Location,
		Distance:                 r.Distance,
		JobType:                  r.JobType,
		Proxies:                  r.Proxies,
		IsRemote:                 r.IsRemote,
		ResultsWanted:            r.ResultsWanted,
		EasyApply:                r.EasyApply,
		DescriptionFormat:        r.DescriptionFormat,
		Offset:                   r.Offset,
		HoursOld:                 r.HoursOld,
		Verbose:                  r.Verbose,
		LinkedinFetchDescription: r.LinkedinFetchDescription,
		LinkedinCompanyIDs:       r.LinkedinCompanyIDs,
		CountryIndeed:            r.CountryIndeed,
		EnforceAnnualSalary:      r.EnforceAnnualSalary,
		CACert:                   r.CACert,
	}
}

type LogsRequest struct {
	Skip  int `form:"skip"`
	Limit int `form:"limit"`
}
