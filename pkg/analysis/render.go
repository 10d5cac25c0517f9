package analysis

import (
	"regexp"

	"github.com/jwebster45206/chronicle/pkg/era"
)

var (
	tagOpen  = regexp.MustCompile(`<nlweb:([^>]+)>`)
	tagClose = regexp.MustCompile(`</nlweb:[^>]*>`)
	tagSpan  = regexp.MustCompile(`<nlweb:[^>]+>(.*?)</nlweb:[^>]*>`)
)

// RenderHTML swaps nlweb tags for highlight spans.
func RenderHTML(enriched string) string {
	out := tagOpen.ReplaceAllString(enriched, `<span class="nlweb-enhanced">`)
	return tagClose.ReplaceAllString(out, `</span>`)
}

// RenderWith replaces each tagged span with style(inner), then drops any
// tags left over from nested or unbalanced markup.
func RenderWith(enriched string, style func(string) string) string {
	out := tagSpan.ReplaceAllStringFunc(enriched, func(span string) string {
		return style(tagSpan.FindStringSubmatch(span)[1])
	})
	out = tagOpen.ReplaceAllString(out, "")
	return tagClose.ReplaceAllString(out, "")
}

// RegionContext builds the analysis context for a region in a catalog.
func RegionContext(cat *era.Catalog, eraID, regionID string) (era.Region, Context, error) {
	region, err := cat.Region(eraID, regionID)
	if err != nil {
		return era.Region{}, Context{}, err
	}
	siblings, err := cat.Siblings(eraID, regionID)
	if err != nil {
		return era.Region{}, Context{}, err
	}
	w, err := cat.World(eraID)
	if err != nil {
		return era.Region{}, Context{}, err
	}
	return region, Context{
		EraName:      w.Name,
		RegionName:   region.Name,
		SiblingNames: siblings,
	}, nil
}
