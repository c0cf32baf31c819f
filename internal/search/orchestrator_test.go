package search_test

import (
	"context"
	"errors"
	"testing"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
	"github.com/asadintwala/jobspy-scraper-api/internal/search"

	"go.uber.org/zap"
)

type fakeScraper struct {
	calls   []scraperapi.ScrapeParams
	results [][]scraperapi.RawRecord
	errs    []error
}

func (f *fakeScraper) ScrapeJobs(ctx context.Context, params scraperapi.ScrapeParams) ([]scraperapi.RawRecord, error) {
	i := len(f.calls)
	f.calls = append(f.calls, params)

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.results) {
		return f.results[i], nil
	}
	return nil, nil
}

func record(title string) scraperapi.RawRecord {
	return scraperapi.RawRecord{"title": title, "company": "Acme"}
}

func TestSearch_TotalResultsSumsAcrossCombinations(t *testing.T) {
	scraper := &fakeScraper{
		results: [][]scraperapi.RawRecord{
			{record("a"), record("b")},
			{record("c")},
		},
	}
	svc := search.NewService(scraper, zap.NewNop())

	resp, err := svc.Search(context.Background(), &search.Query{
		SiteNames:  "indeed",
		SearchTerm: "go,python",
	})
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}

	if len(scraper.calls) != 2 {
		t.Fatalf("scraper called %d times, want 2", len(scraper.calls))
	}
	if resp.TotalResults != 3 {
		t.Errorf("TotalResults = %d, want 3", resp.TotalResults)
	}
	if len(resp.Jobs) != 3 {
		t.Errorf("len(Jobs) = %d, want 3", len(resp.Jobs))
	}
	if resp.Jobs[0].JobTitle != "a" || resp.Jobs[2].JobTitle != "c" {
		t.Errorf("jobs out of combination order: %+v", resp.Jobs)
	}
}

func TestSearch_CombinationCallOrder(t *testing.T) {
	scraper := &fakeScraper{}
	svc := search.NewService(scraper, zap.NewNop())

	_, err := svc.Search(context.Background(), &search.Query{
		SiteNames:  "linkedin",
		SearchTerm: "go,python",
		Location:   "NYC,SF",
		JobType:    "fulltime,contract",
	})
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}

	if len(scraper.calls) != 8 {
		t.Fatalf("scraper called %d times, want 8", len(scraper.calls))
	}

	// search_term outer, location middle, job_type innermost
	first := scraper.calls[0]
	if *first.SearchTerm != "go" || *first.Location != "NYC" || *first.JobType != "fulltime" {
		t.Errorf("first call = (%v, %v, %v), want (go, NYC, fulltime)",
			*first.SearchTerm, *first.Location, *first.JobType)
	}

	second := scraper.calls[1]
	if *second.SearchTerm != "go" || *second.Location != "NYC" || *second.JobType != "contract" {
		t.Errorf("second call = (%v, %v, %v), want (go, NYC, contract)",
			*second.SearchTerm, *second.Location, *second.JobType)
	}

	last := scraper.calls[7]
	if *last.SearchTerm != "python" || *last.Location != "SF" || *last.JobType != "contract" {
		t.Errorf("last call = (%v, %v, %v), want (python, SF, contract)",
			*last.SearchTerm, *last.Location, *last.JobType)
	}
}

func TestSearch_InvalidSiteIssuesNoScrapeCall(t *testing.T) {
	scraper := &fakeScraper{}
	svc := search.NewService(scraper, zap.NewNop())

	_, err := svc.Search(context.Background(), &search.Query{SiteNames: "xyz"})
	if err == nil {
		t.Fatal("Search expected error, got nil")
	}

	var vErr *search.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("error %v is not a ValidationError", err)
	}

	if len(scraper.calls) != 0 {
		t.Errorf("scraper called %d times, want 0", len(scraper.calls))
	}
}

func TestSearch_CombinationFailureAbortsWholeRequest(t *testing.T) {
	scrapeErr := errors.New("upstream down")
	scraper := &fakeScraper{
		results: [][]scraperapi.RawRecord{{record("a")}},
		errs:    []error{nil, scrapeErr},
	}
	svc := search.NewService(scraper, zap.NewNop())

	_, err := svc.Search(context.Background(), &search.Query{
		SiteNames:  "indeed",
		SearchTerm: "go,python,rust",
	})
	if err == nil {
		t.Fatal("Search expected error, got nil")
	}
	if !errors.Is(err, scrapeErr) {
		t.Errorf("error %v does not wrap the scrape error", err)
	}

	// remaining combinations are not attempted after the failure
	if len(scraper.calls) != 2 {
		t.Errorf("scraper called %d times, want 2", len(scraper.calls))
	}
}

func TestSearch_SharedFiltersOnEveryCombination(t *testing.T) {
	remote := true
	scraper := &fakeScraper{}
	svc := search.NewService(scraper, zap.NewNop())

	_, err := svc.Search(context.Background(), &search.Query{
		SiteNames:          "indeed,glassdoor",
		SearchTerm:         "go,python",
		Distance:           25,
		ResultsWanted:      10,
		IsRemote:           &remote,
		LinkedinCompanyIDs: "1441,1442",
	})
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}

	for i, call := range scraper.calls {
		if len(call.SiteNames) != 2 {
			t.Errorf("call %d site set = %v, want 2 sites", i, call.SiteNames)
		}
		if call.Distance != 25 || call.ResultsWanted != 10 {
			t.Errorf("call %d scalar filters = (%d, %d), want (25, 10)", i, call.Distance, call.ResultsWanted)
		}
		if call.IsRemote == nil || !*call.IsRemote {
			t.Errorf("call %d IsRemote not carried", i)
		}
		if len(call.LinkedinCompanyIDs) != 2 {
			t.Errorf("call %d company ids = %v, want 2 ids", i, call.LinkedinCompanyIDs)
		}
	}
}

func TestSearch_EmptyResultsYieldEmptyJobsList(t *testing.T) {
	scraper := &fakeScraper{}
	svc := search.NewService(scraper, zap.NewNop())

	resp, err := svc.Search(context.Background(), &search.Query{SiteNames: "indeed"})
	if err != nil {
		t.Fatalf("Search returned unexpected error: %v", err)
	}

	if resp.TotalResults != 0 {
		t.Errorf("TotalResults = %d, want 0", resp.TotalResults)
	}
	if resp.Jobs == nil {
		t.Error("Jobs is nil, want empty slice")
	}
}
