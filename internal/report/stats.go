package report

import (
	"jobsift/internal/models"
)

// UnknownEmploymentType buckets records without a usable employment_type.
const UnknownEmploymentType = "Unknown"

type Summary struct {
	TotalJobs       int            `json:"total_jobs"`
	Companies       int            `json:"companies"`
	Locations       int            `json:"locations"`
	EmploymentTypes map[string]int `json:"employment_types"`
	RemoteJobs      int            `json:"remote_jobs"`
	AvgSalary       *float64       `json:"avg_salary"`
}

// Summarize computes the aggregate summary in a single pass. An empty input
// yields a neutral summary, never a failure. AvgSalary is the mean of
// per-record salary midpoints over records where both bounds coerce to a
// number; it stays nil when no record qualifies.
func Summarize(records []models.Record) Summary {
	summary := Summary{
		TotalJobs:       len(records),
		EmploymentTypes: make(map[string]int),
	}

	companies := make(map[string]struct{})
	locations := make(map[string]struct{})
	var salarySum float64
	var salaryCount int

	for _, rec := range records {
		if company, ok := rec.StringField("company"); ok {
			companies[company] = struct{}{}
		}
		if location, ok := rec.StringField("location"); ok {
			locations[location] = struct{}{}
		}

		empType, ok := rec.StringField("employment_type")
		if !ok {
			empType = UnknownEmploymentType
		}
		summary.EmploymentTypes[empType]++

		if rec.BoolField("is_remote") {
			summary.RemoteJobs++
		}

		min, minOK := rec.FloatField("salary_min")
		max, maxOK := rec.FloatField("salary_max")
		if minOK && maxOK {
			salarySum += (min + max) / 2
			salaryCount++
		}
	}

	summary.Companies = len(companies)
	summary.Locations = len(locations)

	if salaryCount > 0 {
		avg := salarySum / float64(salaryCount)
		summary.AvgSalary = &avg
	}

	return summary
}
