// Package scraper extracts named statistics fields from vendor HTML pages.
// The pages have no contract: fields are located by layered fallback
// strategies over loosely structured, label-adjacent-to-value markup, and a
// missing field is an empty string, never an error.
package scraper

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// strategy locates one field's raw value in a parsed document, returning ""
// when the field cannot be found. Strategies are pure and independently
// testable; each field owns an ordered list tried until one produces a value.
type strategy func(doc *goquery.Document) string

// maxLabelLength filters out container nodes whose accumulated text happens
// to start with a label.
const maxLabelLength = 60

// firstMatch tries each strategy in order and returns the first non-empty
// result.
func firstMatch(doc *goquery.Document, strategies ...strategy) string {
	for _, s := range strategies {
		if v := s(doc); v != "" {
			return v
		}
	}
	return ""
}

// tableLookup scans table-cell nodes for one whose trimmed text matches the
// label and takes the adjacent cell's text. When no direct sibling exists it
// falls back to indexing into the parent row's cell list.
func tableLookup(label *regexp.Regexp) strategy {
	return func(doc *goquery.Document) string {
		var result string
		doc.Find("td, th").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := cleanText(sel.Text())
			if text == "" || len(text) > maxLabelLength || !label.MatchString(text) {
				return true
			}

			if next := sel.Next(); next.Length() > 0 {
				if v := cleanText(next.Text()); v != "" && v != text {
					result = v
					return false
				}
			}

			cells := sel.Parent().ChildrenFiltered("td, th")
			idx := cells.IndexOfSelection(sel)
			if idx >= 0 && idx+1 < cells.Length() {
				if v := cleanText(cells.Eq(idx + 1).Text()); v != "" && v != text {
					result = v
					return false
				}
			}
			return true
		})
		return result
	}
}

// proximityLookup handles less tabular modern markup: it scans generic
// container/text nodes for the label, then inspects same-row cells, up to
// five subsequent siblings, and finally the parent's next sibling. The nth
// acceptable candidate is returned (n is 1-based); purely alphabetic
// candidates are rejected since they are usually adjacent label text rather
// than a value.
func proximityLookup(label *regexp.Regexp, nth int) strategy {
	if nth < 1 {
		nth = 1
	}
	return func(doc *goquery.Document) string {
		var result string
		doc.Find("td, th, div, span, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := cleanText(sel.Text())
			if text == "" || len(text) > maxLabelLength || !label.MatchString(text) {
				return true
			}

			seen := 0
			accept := func(v string) bool {
				if v == "" || v == text || isAlphabetic(v) {
					return false
				}
				seen++
				if seen < nth {
					return false
				}
				result = v
				return true
			}

			// Same-row cells first.
			if row := sel.Closest("tr"); row.Length() > 0 {
				found := false
				row.ChildrenFiltered("td, th").EachWithBreak(func(_ int, cell *goquery.Selection) bool {
					if cell.IsSelection(sel) {
						return true
					}
					if accept(cleanText(cell.Text())) {
						found = true
						return false
					}
					return true
				})
				if found {
					return false
				}
			}

			// Then up to five subsequent siblings.
			siblings := sel.NextAll()
			for i := 0; i < siblings.Length() && i < 5; i++ {
				if accept(cleanText(siblings.Eq(i).Text())) {
					return false
				}
			}

			// Finally the parent's next sibling.
			if accept(cleanText(sel.Parent().Next().Text())) {
				return false
			}
			return true
		})
		return result
	}
}

// regexFallback matches a label-anchored pattern against the document's full
// visible text and returns the first capture group.
func regexFallback(pattern *regexp.Regexp) strategy {
	return func(doc *goquery.Document) string {
		m := pattern.FindStringSubmatch(cleanText(doc.Text()))
		if len(m) < 2 {
			return ""
		}
		return strings.TrimSpace(m[1])
	}
}

// labelValueRegex builds the full-text fallback pattern for a field: the
// label followed by a currency/number/unit token.
func labelValueRegex(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + label + `\s*:?\s*((?:₹|\$)?\s*-?[\d,]+(?:\.\d+)?\s*(?:%|Cr\.?|B|M|K)?)`)
}

// cleanText collapses runs of whitespace and trims the result.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// trimCurrency strips a single leading currency symbol. The parser does no
// further coercion; everything else is the normalization layer's job.
func trimCurrency(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "₹")
	s = strings.TrimPrefix(s, "$")
	return strings.TrimSpace(s)
}

// isAlphabetic reports whether the string contains no digit at all.
func isAlphabetic(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
