// Package coverage reads Cobertura-style coverage reports and checks them
// against the configured minimum line coverage.
package coverage

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// ReportFileName is the coverage report expected at the project root.
const ReportFileName = "coverage.xml"

// ErrEmptyReport is returned when a report contains no countable lines.
var ErrEmptyReport = errors.New("coverage report contains no lines under class/method elements")

// Counts holds line counters accumulated from a report.
type Counts struct {
	Covered   int
	Uncovered int
}

// Total returns the number of counted lines.
func (c Counts) Total() int {
	return c.Covered + c.Uncovered
}

// Percent returns covered lines as a percentage of all counted lines.
// A report without lines has no percentage and yields ErrEmptyReport.
func (c Counts) Percent() (float64, error) {
	total := c.Total()
	if total == 0 {
		return 0, ErrEmptyReport
	}
	return 100.0 * float64(c.Covered) / float64(total), nil
}

// openElement tracks one element on the decoder stack.
type openElement struct {
	name string
	// pairs is how many (class, method) ancestor pairs this element added
	pairs int
}

// Parse counts line hits in a coverage report.
//
// A line element is counted once for every (class, method) pair among its
// ancestors in which the class encloses the method. For a regular report
// (class > methods > method > lines > line) that is exactly once; lines
// outside any method are not counted.
// A line whose hits attribute is "0" or missing is uncovered; any other value
// is covered.
func Parse(r io.Reader) (Counts, error) {
	var counts Counts

	decoder := xml.NewDecoder(r)
	var stack []openElement
	openClasses := 0
	// pairs is the number of (class, method) ancestor pairs of the current position
	pairs := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Counts{}, fmt.Errorf("failed to parse coverage report: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := openElement{name: t.Name.Local}
			switch el.name {
			case "class":
				openClasses++
			case "method":
				el.pairs = openClasses
				pairs += el.pairs
			case "line":
				if pairs > 0 {
					if lineCovered(t) {
						counts.Covered += pairs
					} else {
						counts.Uncovered += pairs
					}
				}
			}
			stack = append(stack, el)

		case xml.EndElement:
			// the decoder rejects mismatched tags, so the stack is never empty here
			el := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if el.name == "class" {
				openClasses--
			}
			pairs -= el.pairs
		}
	}

	return counts, nil
}

func lineCovered(el xml.StartElement) bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == "hits" {
			return attr.Value != "0"
		}
	}
	return false
}

// ParseFile counts line hits in the report at path.
func ParseFile(path string) (Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return Counts{}, err
	}
	defer f.Close()

	return Parse(f)
}
