package parsing

import (
	"regexp"
	"strings"
	"time"
)

var dateRegexes = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
	regexp.MustCompile(`(?i)\b((?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+\d{1,2},?\s+\d{4})\b`),
}

var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006", "1/2/2006", "01-02-2006",
	"02/01/2006", "2/1/2006", "02-01-2006",
	"01/02/06", "1/2/06",
	"January 2, 2006", "January 2 2006",
	"Jan 2, 2006", "Jan 2 2006",
}

// Grand totals conventionally appear after subtotals, so the last match wins.
var totalRegex = regexp.MustCompile(`(?i)(?:total|amount\s+due|balance)\s*[:\s]*\$?([\d,]+\.\d{2})`)

// Reconcile fills the document date and declared total from the raw lines.
// When no explicit total is present, or it reads as zero, the total falls
// back to the sum of the extracted line totals.
func Reconcile(doc *Document, lines []string) {
	doc.Date = ExtractDate(lines)

	if total, ok := ExtractDeclaredTotal(lines); ok && total > 0 {
		doc.DeclaredTotal = total
	} else if len(doc.Items) > 0 {
		doc.DeclaredTotal = ItemsTotal(doc.Items)
	}
}

// ExtractDate scans top to bottom, first matching date wins.
func ExtractDate(lines []string) *time.Time {
	for _, line := range lines {
		for _, re := range dateRegexes {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			if t, ok := parseDate(m[1]); ok {
				return &t
			}
		}
	}
	return nil
}

func parseDate(raw string) (time.Time, bool) {
	raw = normalizeMonth(strings.TrimSpace(raw))
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// normalizeMonth expands abbreviated month names so a single pair of layouts
// covers "Mar 5, 2024" and "March 5, 2024".
func normalizeMonth(raw string) string {
	raw = strings.ReplaceAll(raw, ".", "")
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return raw
	}
	month := strings.ToLower(fields[0])
	fields[0] = strings.ToUpper(month[:1]) + month[1:]
	return strings.Join(fields, " ")
}

// ExtractDeclaredTotal returns the last "Total/Amount Due/Balance" amount in
// the document.
func ExtractDeclaredTotal(lines []string) (float64, bool) {
	var (
		total float64
		found bool
	)
	for _, line := range lines {
		matches := totalRegex.FindAllStringSubmatch(line, -1)
		for _, m := range matches {
			total = parseAmount(m[1])
			found = true
		}
	}
	return total, found
}
