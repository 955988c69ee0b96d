package models

import "testing"

func TestMerge_OverlayWinsWithoutMutating(t *testing.T) {
	base := Record{"title": "short", "company": "Acme"}
	overlay := Record{"title": "long", "description": "text"}

	merged := Merge(base, overlay)

	if merged["title"] != "long" {
		t.Errorf("title = %v, want overlay value", merged["title"])
	}
	if merged["company"] != "Acme" || merged["description"] != "text" {
		t.Errorf("merged = %v, want union of both sides", merged)
	}
	if base["title"] != "short" {
		t.Error("Merge mutated base")
	}
	if len(overlay) != 2 {
		t.Error("Merge mutated overlay")
	}
}

func TestClone_IsShallowCopy(t *testing.T) {
	rec := Record{"a": "x"}
	clone := rec.Clone()
	clone["a"] = "y"

	if rec["a"] != "x" {
		t.Error("writing to clone changed the original")
	}
}

func TestAsFloat(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
		ok   bool
	}{
		{"float", 42.5, 42.5, true},
		{"int", 42, 42, true},
		{"numeric string", "60000", 60000, true},
		{"padded string", " 60000 ", 60000, true},
		{"garbage string", "competitive", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AsFloat(tt.in)
			if got != tt.want || ok != tt.ok {
				t.Errorf("AsFloat(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestBoolField_Truthiness(t *testing.T) {
	rec := Record{
		"b_true":  true,
		"b_false": false,
		"s_true":  "true",
		"s_other": "yes",
		"n_one":   1.0,
		"n_zero":  0.0,
	}

	truthy := []string{"b_true", "s_true", "n_one"}
	falsy := []string{"b_false", "s_other", "n_zero", "missing"}

	for _, key := range truthy {
		if !rec.BoolField(key) {
			t.Errorf("BoolField(%q) = false, want true", key)
		}
	}
	for _, key := range falsy {
		if rec.BoolField(key) {
			t.Errorf("BoolField(%q) = true, want false", key)
		}
	}
}

func TestStringField_EmptyIsMissing(t *testing.T) {
	rec := Record{"company": "", "location": "Berlin", "count": 3.0}

	if _, ok := rec.StringField("company"); ok {
		t.Error("empty string reported as present")
	}
	if _, ok := rec.StringField("count"); ok {
		t.Error("non-string reported as present")
	}
	if v, ok := rec.StringField("location"); !ok || v != "Berlin" {
		t.Errorf("StringField(location) = (%q, %v)", v, ok)
	}
}
