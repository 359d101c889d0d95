package cleanup

import (
	"context"

	"github.com/olgasafonova/mediawiki-delete-category/tracing"
)

// Preview is a read-only view of what an automatic run would do
type Preview struct {
	Category   string       `json:"category"`
	Unused     []string     `json:"unused"`
	Referenced []SkipRecord `json:"referenced"`
}

// BuildPreview enumerates category and resolves the referrers of every
// member without prompting or deleting anything. Unused members are the ones
// an automatic run would delete; referenced ones are kept unless forced.
func BuildPreview(ctx context.Context, q Querier, category string) (Preview, error) {
	ctx, span := tracing.StartSpan(ctx, "cleanup.preview")
	defer span.End()
	tracing.AddWikiAttributes(span, "query:categorymembers", category)

	preview := Preview{
		Category:   category,
		Unused:     []string{},
		Referenced: []SkipRecord{},
	}

	candidates, err := Candidates(ctx, q, category)
	if err != nil {
		tracing.RecordError(span, err)
		return preview, err
	}

	for _, title := range candidates {
		referrers, err := Referrers(ctx, q, title)
		if err != nil {
			tracing.RecordError(span, err)
			return preview, err
		}
		if len(referrers) == 0 {
			preview.Unused = append(preview.Unused, title)
			continue
		}
		preview.Referenced = append(preview.Referenced, SkipRecord{Title: title, Referrers: referrers})
	}
	return preview, nil
}
