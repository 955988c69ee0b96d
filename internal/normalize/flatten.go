// Package normalize stamps records as they leave the pipeline and flattens
// them for tabular export.
package normalize

import (
	"fmt"
	"time"

	"jobsift/internal/models"
)

// ScrapedAtField is set exactly once per record, at collection time.
const ScrapedAtField = "scraped_at"

// DefaultSeparator joins nested keys in flattened records.
const DefaultSeparator = "_"

// Stamp returns a shallow copy of rec with the retrieval timestamp set.
// The input record is never mutated.
func Stamp(rec models.Record, now time.Time) models.Record {
	out := rec.Clone()
	out[ScrapedAtField] = now.Format(time.RFC3339)
	return out
}

// Flatten projects rec into a FlatRecord using the default separator.
func Flatten(rec models.Record) models.FlatRecord {
	return FlattenWith(rec, DefaultSeparator)
}

// FlattenWith walks rec recursively: nested map keys are joined with their
// parent key, slice values are rendered as text, scalars pass through.
// Source data is tree shaped, so recursion is bounded by actual depth.
func FlattenWith(rec models.Record, sep string) models.FlatRecord {
	out := make(models.FlatRecord, len(rec))
	flattenInto(out, map[string]any(rec), "", sep)
	return out
}

func flattenInto(out models.FlatRecord, in map[string]any, prefix, sep string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + sep + k
		}
		switch child := v.(type) {
		case map[string]any:
			flattenInto(out, child, key, sep)
		case models.Record:
			flattenInto(out, map[string]any(child), key, sep)
		case []any:
			out[key] = fmt.Sprint(child)
		default:
			out[key] = v
		}
	}
}
