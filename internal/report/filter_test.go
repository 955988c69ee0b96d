package report_test

import (
	"reflect"
	"testing"

	"jobsift/internal/models"
	"jobsift/internal/report"
)

func titles(records []models.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		title, _ := r["title"].(string)
		out = append(out, title)
	}
	return out
}

func TestFilter_NoCriteriaIsIdentity(t *testing.T) {
	records := []models.Record{
		{"title": "one"},
		{"title": "two"},
		{"title": "three"},
	}

	got := report.Filter(records, report.Criteria{})

	if !reflect.DeepEqual(got, records) {
		t.Errorf("Filter with zero criteria changed the input: %v", titles(got))
	}
}

func TestFilter_MinSalaryParseFailuresDoNotExclude(t *testing.T) {
	records := []models.Record{
		{"title": "low", "salary_min": 40000.0},
		{"title": "high", "salary_min": 60000.0},
		{"title": "junk", "salary_min": "invalid"},
		{"title": "absent"},
	}

	got := report.Filter(records, report.Criteria{MinSalary: 50000})

	want := []string{"high", "junk", "absent"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilter_MinSalaryParsesNumericStrings(t *testing.T) {
	records := []models.Record{
		{"title": "stringy-low", "salary_min": "40000"},
		{"title": "stringy-high", "salary_min": "65000"},
	}

	got := report.Filter(records, report.Criteria{MinSalary: 50000})

	want := []string{"stringy-high"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilter_LocationSubstringCaseInsensitive(t *testing.T) {
	records := []models.Record{
		{"title": "ny", "location": "New York, NY"},
		{"title": "sf", "location": "San Francisco, CA"},
		{"title": "nowhere"},
	}

	got := report.Filter(records, report.Criteria{Location: "new york"})

	want := []string{"ny", "nowhere"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilter_RemoteOnly(t *testing.T) {
	records := []models.Record{
		{"title": "remote", "is_remote": true},
		{"title": "onsite", "is_remote": false},
		{"title": "unstated"},
	}

	got := report.Filter(records, report.Criteria{RemoteOnly: true})

	want := []string{"remote", "unstated"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilter_CompanySubstring(t *testing.T) {
	records := []models.Record{
		{"title": "a", "company": "Acme Robotics"},
		{"title": "b", "company": "Globex"},
	}

	got := report.Filter(records, report.Criteria{Company: "acme"})

	want := []string{"a"}
	if !reflect.DeepEqual(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilter_TitleKeywordsAnyMatch(t *testing.T) {
	records := []models.Record{
		{"title": "Senior Go Engineer"},
		{"title": "Data Analyst"},
		{"name": "no title field"},
	}

	got := report.Filter(records, report.Criteria{TitleKeywords: []string{"go", "rust"}})

	if len(got) != 2 {
		t.Fatalf("got %d records, want 2: %v", len(got), titles(got))
	}
	if got[0]["title"] != "Senior Go Engineer" {
		t.Errorf("unexpected first record: %v", got[0])
	}
}

func TestFilter_ConjunctiveAndOrderPreserving(t *testing.T) {
	records := []models.Record{
		{"title": "Go Engineer", "is_remote": true, "salary_min": 90000.0},
		{"title": "Go Engineer", "is_remote": false, "salary_min": 90000.0},
		{"title": "Go Engineer", "is_remote": true, "salary_min": 10000.0},
		{"title": "Accountant", "is_remote": true, "salary_min": 90000.0},
	}

	got := report.Filter(records, report.Criteria{
		MinSalary:     50000,
		RemoteOnly:    true,
		TitleKeywords: []string{"engineer"},
	})

	if len(got) != 1 || !reflect.DeepEqual(got[0], records[0]) {
		t.Errorf("got %v, want only the first record", titles(got))
	}
}
