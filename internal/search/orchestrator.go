package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
	"github.com/asadintwala/jobspy-scraper-api/internal/models"

	"go.uber.org/zap"
)

// Scraper is the external scraping collaborator: one call per merged
// combination parameter set, returning raw records. Failures are not
// retried here; the client owns its own retry policy.
type Scraper interface {
	ScrapeJobs(ctx context.Context, params scraperapi.ScrapeParams) ([]scraperapi.RawRecord, error)
}

type Service struct {
	scraper Scraper
	logger  *zap.Logger
}

func NewService(scraper Scraper, logger *zap.Logger) *Service {
	return &Service{
		scraper: scraper,
		logger:  logger,
	}
}

// Search validates the query, expands the filter cartesian product and
// runs one scrape per combination, sequentially and in combination order.
// Any combination failure aborts the whole search; there are no partial
// results. TotalResults counts raw records as returned by the scraper,
// before normalization (which never drops or adds records).
func (s *Service) Search(ctx context.Context, q *Query) (*models.SearchResponse, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	sites, err := ParseSiteNames(q.SiteNames)
	if err != nil {
		return nil, err
	}

	searchTerms := SplitList(q.SearchTerm)
	locations := SplitList(q.Location)

	jobTypes, err := ParseJobTypes(q.JobType)
	if err != nil {
		return nil, err
	}

	companyIDs, err := ParseCompanyIDs(q.LinkedinCompanyIDs)
	if err != nil {
		return nil, err
	}

	proxies := SplitList(q.Proxies)

	combos := ExpandCombinations(searchTerms, locations, jobTypes)

	s.logger.Debug("search expanded",
		zap.Int("combinations", len(combos)),
		zap.Strings("sites", sites),
	)

	var (
		total int
		jobs  []models.Job
	)

	for i, combo := range combos {
		params := s.buildParams(q, combo, sites, proxies, companyIDs)

		// Merged params are re-validated per combination, not hoisted.
		if err := validateScrapeParams(params); err != nil {
			return nil, err
		}

		records, err := s.scraper.ScrapeJobs(ctx, params)
		if err != nil {
			s.logger.Error("combination scrape failed",
				zap.Int("combination", i),
				zap.Stringp("search_term", combo.SearchTerm),
				zap.Stringp("location", combo.Location),
				zap.Stringp("job_type", combo.JobType),
				zap.Error(err),
			)
			return nil, fmt.Errorf("search combination %d: %w", i, err)
		}

		total += len(records)

		for _, rec := range records {
			jobs = append(jobs, Normalize(rec))
		}
	}

	if jobs == nil {
		jobs = []models.Job{}
	}

	s.logger.Info("search completed",
		zap.Int("combinations", len(combos)),
		zap.Int("total_results", total),
	)

	return &models.SearchResponse{
		TotalResults: total,
		Jobs:         jobs,
	}, nil
}

// buildParams merges one combination's single-valued fields with the
// query's shared scalar filters, leaving absent fields nil.
func (s *Service) buildParams(q *Query, combo Combination, sites, proxies []string, companyIDs []int) scraperapi.ScrapeParams {
	params := scraperapi.ScrapeParams{
		SiteNames:                sites,
		SearchTerm:               combo.SearchTerm,
		Location:                 combo.Location,
		JobType:                  combo.JobType,
		Distance:                 q.Distance,
		Proxies:                  proxies,
		IsRemote:                 q.IsRemote,
		ResultsWanted:            q.ResultsWanted,
		EasyApply:                q.EasyApply,
		DescriptionFormat:        q.DescriptionFormat,
		Offset:                   q.Offset,
		HoursOld:                 q.HoursOld,
		Verbose:                  q.Verbose,
		LinkedinFetchDescription: q.LinkedinFetchDescription,
		LinkedinCompanyIDs:       companyIDs,
	}

	if q.GoogleSearchTerm != "" {
		v := q.GoogleSearchTerm
		params.GoogleSearchTerm = &v
	}

	if q.CountryIndeed != "" {
		v := q.CountryIndeed
		params.CountryIndeed = &v
	}

	params.EnforceAnnualSalary = q.EnforceAnnualSalary

	if q.CACert != "" {
		v := q.CACert
		params.CACert = &v
	}

	return params
}

// validateScrapeParams re-checks one merged parameter set right before its
// scrape call.
func validateScrapeParams(p scraperapi.ScrapeParams) error {
	if len(p.SiteNames) == 0 {
		return validationErrorf("site_name must not be empty. Valid sites are: %s", strings.Join(ValidSites, ", "))
	}

	valid := make(map[string]bool, len(ValidSites))
	for _, s := range ValidSites {
		valid[s] = true
	}
	for _, site := range p.SiteNames {
		if !valid[site] {
			return validationErrorf("invalid site names: %s. Valid sites are: %s",
				site, strings.Join(ValidSites, ", "))
		}
	}

	if p.JobType != nil {
		ok := false
		for _, t := range ValidJobTypes {
			if *p.JobType == t {
				ok = true
				break
			}
		}
		if !ok {
			return validationErrorf("invalid job types: %s. Valid types are: %s",
				*p.JobType, strings.Join(ValidJobTypes, ", "))
		}
	}

	if p.Verbose < 0 || p.Verbose > 2 {
		return validationErrorf("verbose must be between 0 and 2, got %d", p.Verbose)
	}

	return nil
}
