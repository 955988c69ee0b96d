// Package report applies client-side criteria to harvested records and
// computes aggregate statistics over them.
package report

import (
	"strings"

	"jobsift/internal/models"
)

// Criteria are conjunctive predicates. The zero value matches everything.
// Predicates degrade permissively: a record whose field is missing or does
// not coerce is never excluded by that predicate.
type Criteria struct {
	MinSalary     float64
	Location      string
	RemoteOnly    bool
	Company       string
	TitleKeywords []string
}

func (c Criteria) isZero() bool {
	return c.MinSalary <= 0 && c.Location == "" && !c.RemoteOnly &&
		c.Company == "" && len(c.TitleKeywords) == 0
}

// Filter returns the order-preserving subsequence of records satisfying all
// supplied criteria.
func Filter(records []models.Record, c Criteria) []models.Record {
	if c.isZero() {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec models.Record, c Criteria) bool {
	if c.MinSalary > 0 {
		if salary, ok := rec.FloatField("salary_min"); ok && salary < c.MinSalary {
			return false
		}
	}

	if c.Location != "" {
		if loc, ok := rec.StringField("location"); ok && !containsFold(loc, c.Location) {
			return false
		}
	}

	if c.RemoteOnly {
		if _, present := rec["is_remote"]; present && !rec.BoolField("is_remote") {
			return false
		}
	}

	if c.Company != "" {
		if company, ok := rec.StringField("company"); ok && !containsFold(company, c.Company) {
			return false
		}
	}

	if len(c.TitleKeywords) > 0 {
		if title, ok := rec.StringField("title"); ok && !containsAnyFold(title, c.TitleKeywords) {
			return false
		}
	}

	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsAnyFold(s string, keywords []string) bool {
	for _, kw := range keywords {
		if containsFold(s, kw) {
			return true
		}
	}
	return false
}
