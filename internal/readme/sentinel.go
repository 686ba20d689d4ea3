// Package readme edits the generated regions of a profile README.
//
// A generated region is framed by a pair of HTML comments, the sentinel markers:
//
//	<!-- OPEN_SOURCE_START -->
//	...generated markdown...
//	<!-- OPEN_SOURCE_END -->
//
// Only the text between the markers is ever rewritten. The marker lines themselves
// are preserved verbatim.
package readme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultSection is the region holding languages and contributions.
const DefaultSection = "OPEN_SOURCE"

const stampLayout = "Jan 02, 2006"

var (
	sentinelPattern = regexp.MustCompile(`<!--\s*([A-Za-z0-9_]+?)_(START|END)\s*-->`)
	stampPattern    = regexp.MustCompile(`Last updated: .+?-->`)
)

// Marker returns the start and end sentinel comments for a section name.
func Marker(name string) (start, end string) {
	return fmt.Sprintf("<!-- %s_START -->", name), fmt.Sprintf("<!-- %s_END -->", name)
}

// SentinelError describes one broken sentinel pair.
type SentinelError struct {
	Line   int
	Name   string
	Reason string
}

func (e *SentinelError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, e.Name, e.Reason)
}

// ErrSectionNotFound is returned when a README has no region for the requested section.
var ErrSectionNotFound = errors.New("section not found")

type openMarker struct {
	name string
	line int
}

// Validate checks that every start marker in content is closed by the end marker of the same
// name before any other start marker, and that no end marker appears on its own.
func Validate(content string) error {
	var errs []error
	var open *openMarker

	for _, m := range sentinelPattern.FindAllStringSubmatchIndex(content, -1) {
		name := content[m[2]:m[3]]
		kind := content[m[4]:m[5]]
		line := strings.Count(content[:m[0]], "\n") + 1

		switch kind {
		case "START":
			if open != nil {
				errs = append(errs, &SentinelError{Line: open.line, Name: open.name, Reason: fmt.Sprintf("not closed before %s_START", name)})
			}
			open = &openMarker{name: name, line: line}
		case "END":
			switch {
			case open == nil:
				errs = append(errs, &SentinelError{Line: line, Name: name, Reason: "end marker without start"})
			case open.name != name:
				errs = append(errs, &SentinelError{Line: line, Name: name, Reason: fmt.Sprintf("does not match open %s_START on line %d", open.name, open.line)})
				open = nil
			default:
				open = nil
			}
		}
	}
	if open != nil {
		errs = append(errs, &SentinelError{Line: open.line, Name: open.name, Reason: "start marker never closed"})
	}
	return errors.Join(errs...)
}

// ReplaceSection replaces the text between every start/end pair of the named section with
// body and returns the number of regions replaced. Markers are matched with the same spacing
// tolerance as Validate and written back exactly as found. When no complete pair exists the
// content is returned unchanged.
func ReplaceSection(content, section, body string) (string, int) {
	name := regexp.QuoteMeta(section)
	startPattern := regexp.MustCompile(`<!--\s*` + name + `_START\s*-->`)
	endPattern := regexp.MustCompile(`<!--\s*` + name + `_END\s*-->`)

	var b strings.Builder
	replaced := 0
	pos := 0
	for {
		s := startPattern.FindStringIndex(content[pos:])
		if s == nil {
			break
		}
		startAt, startEnd := pos+s[0], pos+s[1]
		e := endPattern.FindStringIndex(content[startEnd:])
		if e == nil {
			break
		}
		endAt, endEnd := startEnd+e[0], startEnd+e[1]

		b.WriteString(content[pos:startAt])
		b.WriteString(content[startAt:startEnd])
		b.WriteByte('\n')
		b.WriteString(body)
		b.WriteByte('\n')
		b.WriteString(content[endAt:endEnd])
		pos = endEnd
		replaced++
	}
	if replaced == 0 {
		return content, 0
	}
	b.WriteString(content[pos:])
	return b.String(), replaced
}

// StampUpdated rewrites every "Last updated: ... -->" comment with the date of now in UTC.
func StampUpdated(content string, now time.Time) string {
	stamp := fmt.Sprintf("Last updated: %s -->", now.UTC().Format(stampLayout))
	return stampPattern.ReplaceAllLiteralString(content, stamp)
}
