package search_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
	"github.com/asadintwala/jobspy-scraper-api/internal/search"
)

func TestNormalize_FullRecord(t *testing.T) {
	rec := scraperapi.RawRecord{
		"site":             "indeed",
		"title":            "Go Developer",
		"company":          "Acme",
		"location":         "Austin, TX",
		"date_posted":      "2024-05-01",
		"job_type":         "fulltime",
		"min_amount":       120000.0,
		"max_amount":       150000.0,
		"currency":         "EUR",
		"is_remote":        true,
		"description":      "Write Go services.",
		"experience_range": "3-5 years",
	}

	job := search.Normalize(rec)

	if job.SourceWebsite != "indeed" {
		t.Errorf("SourceWebsite = %q, want \"indeed\"", job.SourceWebsite)
	}
	if job.JobTitle != "Go Developer" {
		t.Errorf("JobTitle = %q, want \"Go Developer\"", job.JobTitle)
	}
	if job.Company != "Acme" {
		t.Errorf("Company = %q, want \"Acme\"", job.Company)
	}
	if job.Location != "Austin, TX" {
		t.Errorf("Location = %q, want \"Austin, TX\"", job.Location)
	}
	if job.Salary == nil || *job.Salary != 120000.0 {
		t.Errorf("Salary = %v, want 120000 (min preferred over max)", job.Salary)
	}
	if job.Currency != "EUR" {
		t.Errorf("Currency = %q, want \"EUR\"", job.Currency)
	}
	if !job.IsRemote {
		t.Error("IsRemote = false, want true")
	}
}

func TestNormalize_CompanyPlaceholder(t *testing.T) {
	cases := []scraperapi.RawRecord{
		{},
		{"company": nil},
		{"company": ""},
		{"company": math.NaN()},
	}

	for _, rec := range cases {
		job := search.Normalize(rec)
		if job.Company != search.CompanyPlaceholder {
			t.Errorf("Normalize(%v).Company = %q, want placeholder %q", rec, job.Company, search.CompanyPlaceholder)
		}
	}
}

func TestNormalize_LocationResolution(t *testing.T) {
	cases := []struct {
		name string
		rec  scraperapi.RawRecord
		want string
	}{
		{"explicit location wins", scraperapi.RawRecord{"location": "Austin, TX", "city": "Dallas", "state": "TX"}, "Austin, TX"},
		{"city and state joined", scraperapi.RawRecord{"city": "Austin", "state": "TX"}, "Austin, TX"},
		{"city only", scraperapi.RawRecord{"city": "Austin"}, "Austin"},
		{"state only", scraperapi.RawRecord{"state": "TX"}, "TX"},
		{"nothing", scraperapi.RawRecord{}, ""},
		{"empty location falls back", scraperapi.RawRecord{"location": "", "city": "Austin", "state": "TX"}, "Austin, TX"},
	}

	for _, c := range cases {
		job := search.Normalize(c.rec)
		if job.Location != c.want {
			t.Errorf("%s: Location = %q, want %q", c.name, job.Location, c.want)
		}
	}
}

func TestNormalize_SalaryFallback(t *testing.T) {
	onlyMax := search.Normalize(scraperapi.RawRecord{"max_amount": 90000.0})
	if onlyMax.Salary == nil || *onlyMax.Salary != 90000.0 {
		t.Errorf("Salary = %v, want 90000 from max_amount", onlyMax.Salary)
	}

	neither := search.Normalize(scraperapi.RawRecord{})
	if neither.Salary != nil {
		t.Errorf("Salary = %v, want nil", *neither.Salary)
	}

	nanMin := search.Normalize(scraperapi.RawRecord{"min_amount": math.NaN(), "max_amount": 80000.0})
	if nanMin.Salary == nil || *nanMin.Salary != 80000.0 {
		t.Errorf("Salary = %v, want 80000 (NaN min treated as absent)", nanMin.Salary)
	}
}

func TestNormalize_NoNaNEscapes(t *testing.T) {
	rec := scraperapi.RawRecord{
		"site":       math.NaN(),
		"title":      math.NaN(),
		"company":    math.NaN(),
		"min_amount": math.NaN(),
		"max_amount": math.NaN(),
		"currency":   math.NaN(),
	}

	job := search.Normalize(rec)

	if job.Salary != nil && math.IsNaN(*job.Salary) {
		t.Error("Salary carries NaN")
	}
	if job.SourceWebsite != "" || job.JobTitle != "" {
		t.Errorf("NaN text fields should normalize to empty, got %q/%q", job.SourceWebsite, job.JobTitle)
	}
	if job.Currency != "USD" {
		t.Errorf("Currency = %q, want default \"USD\"", job.Currency)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	job := search.Normalize(scraperapi.RawRecord{})

	if job.Currency != "USD" {
		t.Errorf("Currency = %q, want \"USD\"", job.Currency)
	}
	if job.IsRemote {
		t.Error("IsRemote defaults to true, want false")
	}
	if job.DatePosted != "" {
		t.Errorf("DatePosted = %q, want \"\"", job.DatePosted)
	}
	if job.JobType != nil || job.JobDescription != nil || job.ExperienceRange != nil {
		t.Error("absent optional fields should stay nil")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	rec := scraperapi.RawRecord{
		"site":       "linkedin",
		"title":      "SRE",
		"city":       "Boston",
		"state":      "MA",
		"min_amount": 100000.0,
	}

	first := search.Normalize(rec)
	second := search.Normalize(rec)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize is not idempotent: %+v vs %+v", first, second)
	}
}
