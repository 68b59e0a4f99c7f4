// Package render turns itinerary documents into downloadable text and PDF.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/pkg/errors"
)

// Format is an itinerary output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts json (the default), text or pdf
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", errors.NewValidationError(fmt.Sprintf("unsupported summary format: %s", s))
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/json; charset=utf-8"
	}
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9]+`)

// Filename builds a download name from the plan title, e.g. "cebu-getaway.pdf"
func Filename(title string, f Format) string {
	base := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if base == "" {
		base = "trip-itinerary"
	}
	ext := string(f)
	if f == FormatText {
		ext = "txt"
	}
	return base + "." + ext
}

// Text renders the document as plain text
func Text(doc planner.Document) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(doc.Title))
	b.WriteString("\n")
	if doc.Subtitle != "" {
		b.WriteString(doc.Subtitle)
		b.WriteString("\n")
	}
	b.WriteString(generatedLine(doc))
	b.WriteString("\n")

	for _, section := range doc.Sections {
		b.WriteString("\n")
		b.WriteString(section.Heading)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("-", len([]rune(section.Heading))))
		b.WriteString("\n")
		for _, line := range section.Lines {
			fmt.Fprintf(&b, "%s: %s\n", line.Label, line.Value)
		}
	}

	if doc.TotalCost != nil {
		fmt.Fprintf(&b, "\nTotal for %d travelers: %s\n", doc.TotalCost.Travelers, doc.TotalCost.Display)
	}

	if len(doc.Footer) > 0 {
		b.WriteString("\n")
		for _, line := range doc.Footer {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func generatedLine(doc planner.Document) string {
	line := "Generated on " + doc.GeneratedAt.Format("January 2, 2006 3:04 PM")
	if doc.GeneratedBy != "" {
		line += " by " + doc.GeneratedBy
	}
	return line
}
