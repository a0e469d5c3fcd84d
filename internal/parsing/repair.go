package parsing

import (
	"strings"
	"unicode"
)

const (
	repairLookahead = 2
	repairMaxTokens = 12
)

var repairStopWords = []string{
	"total", "subtotal", "item code", "item name", "amount due", "balance",
}

// RepairText splits raw OCR output into trimmed non-empty lines and re-joins
// rows the vision engine broke mid-row. A merge happens only when it adds
// numeric tokens to the current line, stays under a sanity bound, and the
// candidate is neither a header/footer keyword nor the start of a fresh row.
// Failures degrade to "row not repaired", never to an error.
func RepairText(raw string) []string {
	var lines []string
	for _, l := range strings.Split(raw, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}

	var out []string
	i := 0
	for i < len(lines) {
		current := lines[i]
		j := i + 1
		for j < len(lines) && j <= i+repairLookahead {
			next := lines[j]
			if isStopLine(next) || looksLikeRowStart(next) {
				break
			}
			merged := current + " " + next
			if numericTokenCount(merged) <= numericTokenCount(current) ||
				len(strings.Fields(merged)) > repairMaxTokens {
				break
			}
			current = merged
			j++
		}
		out = append(out, current)
		i = j
	}
	return out
}

func isStopLine(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range repairStopWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// A fresh row starts with a word and already carries its own numbers;
// fragments are either pure text or pure numbers.
func looksLikeRowStart(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	first := []rune(fields[0])
	return unicode.IsLetter(first[0]) && numericTokenCount(line) >= 1
}

func numericTokenCount(line string) int {
	count := 0
	for _, tok := range strings.Fields(line) {
		if isNumericToken(tok) {
			count++
		}
	}
	return count
}

func isNumericToken(tok string) bool {
	tok = strings.Trim(tok, "$,")
	if tok == "" {
		return false
	}
	digits := 0
	for _, r := range tok {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}
