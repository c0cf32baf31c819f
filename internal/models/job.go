package models

// Job is the canonical job representation returned to API callers,
// regardless of which site the record came from.
type Job struct {
	SourceWebsite   string   `json:"source_website"`
	JobTitle        string   `json:"job_title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	DatePosted      string   `json:"date_posted"`
	JobType         *string  `json:"job_type"`
	Salary          *float64 `json:"salary"`
	Currency        string   `json:"currency"`
	IsRemote        bool     `json:"is_remote"`
	JobDescription  *string  `json:"job_description"`
	ExperienceRange *string  `json:"experience_range"`
}

// SearchResponse aggregates jobs from every searched combination.
// Jobs keeps combination-iteration order: search_term outer, location
// middle, job_type innermost.
type SearchResponse struct {
	TotalResults int   `json:"total_results"`
	Jobs         []Job `json:"jobs"`
}
