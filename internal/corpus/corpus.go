// Package corpus turns raw text corpora into character-frequency
// distributions for script clustering.
package corpus

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"phonosim/internal/script"
)

// maxLine bounds a single corpus line; longer lines are a read error.
const maxLine = 1 << 20

// Counted reports whether r takes part in a distribution. Punctuation,
// symbols, whitespace and decimal digits are excluded.
func Counted(r rune) bool {
	if r == unicode.ReplacementChar {
		return false
	}
	return !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) && !unicode.IsDigit(r) && !unicode.IsControl(r)
}

// Stats is what one scan produced.
type Stats struct {
	Dist  script.Distribution
	Lines int // corpus size used by clustering
}

// Scan reads r line by line and counts the characters of the first
// tab-separated column. Text is NFC-normalized and case-folded first.
func Scan(r io.Reader) (Stats, error) {
	fold := cases.Fold()
	dist := make(script.Distribution)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	lines := 0
	for sc.Scan() {
		lines++
		text := sc.Text()
		if i := strings.IndexByte(text, '\t'); i >= 0 {
			text = text[:i]
		}
		text = fold.String(norm.NFC.String(text))
		for _, ch := range text {
			if Counted(ch) {
				dist[ch]++
			}
		}
	}
	if err := sc.Err(); err != nil {
		return Stats{}, fmt.Errorf("scan corpus: %w", err)
	}
	return Stats{Dist: dist, Lines: lines}, nil
}
