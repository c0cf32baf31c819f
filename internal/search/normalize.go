package search

import (
	"strings"

	"github.com/asadintwala/jobspy-scraper-api/internal/api/scraperapi"
	"github.com/asadintwala/jobspy-scraper-api/internal/models"
)

// CompanyPlaceholder is substituted when a raw record carries no company
// name. Company is the one canonical field with a non-empty guarantee.
const CompanyPlaceholder = "Unknown"

const defaultCurrency = "USD"

// Normalize maps one raw scraper record into the canonical job schema.
// Pure and idempotent; the RawRecord accessors already coerce NaN and null
// values to absent, so no NaN can reach the output.
func Normalize(rec scraperapi.RawRecord) models.Job {
	job := models.Job{
		Currency: defaultCurrency,
	}

	if site, ok := rec.String("site"); ok {
		job.SourceWebsite = site
	}

	if title, ok := rec.String("title"); ok {
		job.JobTitle = title
	}

	if company, ok := rec.String("company"); ok && company != "" {
		job.Company = company
	} else {
		job.Company = CompanyPlaceholder
	}

	job.Location = resolveLocation(rec)

	if posted, ok := rec.String("date_posted"); ok {
		job.DatePosted = posted
	}

	if jt, ok := rec.String("job_type"); ok {
		job.JobType = &jt
	}

	if amount, ok := rec.Float("min_amount"); ok {
		job.Salary = &amount
	} else if amount, ok := rec.Float("max_amount"); ok {
		job.Salary = &amount
	}

	if currency, ok := rec.String("currency"); ok && currency != "" {
		job.Currency = currency
	}

	if remote, ok := rec.Bool("is_remote"); ok {
		job.IsRemote = remote
	}

	if desc, ok := rec.String("description"); ok {
		job.JobDescription = &desc
	}

	if exp, ok := rec.String("experience_range"); ok {
		job.ExperienceRange = &exp
	}

	return job
}

// resolveLocation prefers a pre-joined location field; otherwise joins the
// non-empty subset of city and state.
func resolveLocation(rec scraperapi.RawRecord) string {
	if loc, ok := rec.String("location"); ok && loc != "" {
		return loc
	}

	var parts []string
	if city, ok := rec.String("city"); ok && city != "" {
		parts = append(parts, city)
	}
	if state, ok := rec.String("state"); ok && state != "" {
		parts = append(parts, state)
	}

	return strings.Join(parts, ", ")
}
