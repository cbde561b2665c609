package pattern

import (
	"cmp"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/tasanda/ceu"
)

// Accepted price range, inclusive.
const (
	minPrice = 0
	maxPrice = 10000
)

type pricePattern struct {
	re         *regexp.Regexp
	confidence float64
}

var pricePatterns = []pricePattern{
	{regexp.MustCompile(`(?i)(?:price|cost|fee)[:\s]*\$?([\d,]+\.?\d*)`), 0.9},
	{regexp.MustCompile(`(?i)\$([\d,]+\.?\d*)`), 0.85},
	{regexp.MustCompile(`(?i)([\d,]+\.?\d*)\s*(?:USD|dollars?)`), 0.85},

	{regexp.MustCompile(`(?i)(?:sale|special|discount)\s*(?:price)?[:\s]*\$?([\d,]+\.?\d*)`), 0.9},
	{regexp.MustCompile(`(?i)(?:now|only|just)\s*\$?([\d,]+\.?\d*)`), 0.8},

	{regexp.MustCompile(`(?i)(?:regular|original|was)\s*(?:price)?[:\s]*\$?([\d,]+\.?\d*)`), 0.9},
}

type priceCandidate struct {
	value      float64
	text       string
	confidence float64
}

// extractPrice ranks every in-range match by confidence, then by lower
// value. The top candidate is the price; the first later candidate above
// it is the original price.
func extractPrice(text string, r *ceu.CEUExtraction) {
	var found []priceCandidate
	for _, p := range pricePatterns {
		for _, m := range p.re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
			if err != nil || v < minPrice || v > maxPrice {
				continue
			}
			found = append(found, priceCandidate{value: v, text: m[0], confidence: p.confidence})
		}
	}
	if len(found) == 0 {
		return
	}

	slices.SortStableFunc(found, func(a, b priceCandidate) int {
		if c := cmp.Compare(b.confidence, a.confidence); c != 0 {
			return c
		}
		return cmp.Compare(a.value, b.value)
	})

	top := found[0]
	r.Price = &top.value
	r.PriceString = top.text
	r.PriceConfidence = top.confidence
	for _, c := range found[1:] {
		if c.value > top.value {
			original := c.value
			r.OriginalPrice = &original
			break
		}
	}
	r.ExtractionMethods = append(r.ExtractionMethods, method("price", "pattern", top.confidence))
}
