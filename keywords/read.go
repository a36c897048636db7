package keywords

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Read parses keywords from a reader.  Each line is either one
// keyword (or phrase) as is, or a comma-separated list of phrases in
// double quotes.  The two forms can be mixed.  Blank lines and lines
// starting with '#' are ignored.
//
//	win
//	"free stuff", "free access"
//	"winners"
func Read(r io.Reader) ([]string, error) {
	var (
		words = make([]string, 0, 32)
		s     = bufio.NewScanner(r)
		line  = 0
	)
	for s.Scan() {
		line++
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !strings.HasPrefix(text, `"`) {
			words = append(words, text)
			continue
		}
		cr := csv.NewReader(strings.NewReader(text))
		cr.TrimLeadingSpace = true
		fields, err := cr.Read()
		if err != nil {
			return nil, fmt.Errorf("keywords line %d: %w", line, err)
		}
		for _, f := range fields {
			if f = strings.TrimSpace(f); f != "" {
				words = append(words, f)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
