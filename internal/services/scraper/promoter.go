package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Promoter holding is the most layout-volatile field on the primary vendor's
// page: it lives in the shareholding section, which has been restructured
// repeatedly. Five strategies are tried from most to least specific.

var (
	// percentRe matches a standalone percentage value.
	percentRe = regexp.MustCompile(`(\d{1,3}(?:\.\d+)?)\s*%`)

	// promoterLabelRe matches the row/button label, including the expandable
	// "Promoters +" variant.
	promoterLabelRe = regexp.MustCompile(`(?i)^promoters?\s*\+?$`)

	// promoterTextRe anchors a percentage on nearby promoter wording in free
	// text. The gap cap keeps it from bridging into another holder category.
	promoterTextRe = regexp.MustCompile(`(?i)promoters?[^%\d]{0,80}?(\d{1,3}(?:\.\d+)?)\s*%`)

	// otherHolderCategories disqualify a section from being the promoter one.
	otherHolderCategories = []string{"fii", "dii", "public", "government", "institution"}
)

// extractPromoterHolding returns the promoter holding as its raw page text
// (percent sign included), or "" when no strategy finds it.
func extractPromoterHolding(doc *goquery.Document) string {
	for _, s := range []strategy{
		promoterSectionPercentage,
		promoterLabelSibling,
		promoterProximity,
		shareholdingHeadingScan,
		promoterFullTextScan,
	} {
		if v := s(doc); v != "" {
			return v
		}
	}
	return ""
}

// promoterSectionPercentage looks for a dedicated percentage-display element
// whose enclosing section mentions promoters and no other holder category.
func promoterSectionPercentage(doc *goquery.Document) string {
	var result string
	doc.Find(".percentage, [class*=percent]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		context := strings.ToLower(cleanText(sel.Parent().Text()))
		if !strings.Contains(context, "promoter") {
			return true
		}
		for _, category := range otherHolderCategories {
			if strings.Contains(context, category) {
				return true
			}
		}
		if m := percentRe.FindString(cleanText(sel.Text())); m != "" {
			result = m
			return false
		}
		return true
	})
	return result
}

// promoterLabelSibling finds the exact "Promoters" label node and takes the
// first percentage among its siblings. Covers the tabular shareholding layout
// and the collapsible row variant.
func promoterLabelSibling(doc *goquery.Document) string {
	var result string
	doc.Find("td, th, span, div, button").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !promoterLabelRe.MatchString(cleanText(sel.Text())) {
			return true
		}

		siblings := sel.Parent().Children()
		siblings.EachWithBreak(func(_ int, sib *goquery.Selection) bool {
			if sib.IsSelection(sel) {
				return true
			}
			if m := percentRe.FindString(cleanText(sib.Text())); m != "" {
				result = m
				return false
			}
			return true
		})
		return result == ""
	})
	return result
}

// promoterProximity relaxes the label match to any short node mentioning
// promoters and scans the next few siblings for a percentage.
func promoterProximity(doc *goquery.Document) string {
	var result string
	doc.Find("td, th, li, p, div, span").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := cleanText(sel.Text())
		if text == "" || len(text) > maxLabelLength ||
			!strings.Contains(strings.ToLower(text), "promoter") {
			return true
		}

		// The label node may carry the value itself.
		if m := percentRe.FindString(text); m != "" {
			result = m
			return false
		}

		siblings := sel.NextAll()
		for i := 0; i < siblings.Length() && i < 5; i++ {
			if m := percentRe.FindString(cleanText(siblings.Eq(i).Text())); m != "" {
				result = m
				return false
			}
		}
		return true
	})
	return result
}

// shareholdingHeadingScan anchors on a "Shareholding Pattern" heading and
// applies the promoter text regex to that section's text only.
func shareholdingHeadingScan(doc *goquery.Document) string {
	var result string
	doc.Find("h1, h2, h3, h4").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(cleanText(sel.Text())), "shareholding") {
			return true
		}
		section := cleanText(sel.Parent().Text())
		if m := promoterTextRe.FindStringSubmatch(section); len(m) > 1 {
			result = m[1] + "%"
			return false
		}
		return true
	})
	return result
}

// promoterFullTextScan is the last resort: the promoter text regex over the
// whole document.
func promoterFullTextScan(doc *goquery.Document) string {
	if m := promoterTextRe.FindStringSubmatch(cleanText(doc.Text())); len(m) > 1 {
		return m[1] + "%"
	}
	return ""
}
