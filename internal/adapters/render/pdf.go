package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kiervincent5/travel-planner/internal/core/planner"
	"github.com/kiervincent5/travel-planner/pkg/errors"
	"github.com/phpdave11/gofpdf"
)

const labelWidth = 45

// core fonts are cp1252; characters outside it are spelled out first
var pdfReplacer = strings.NewReplacer("→", "->")

// PDF renders the document as an A4 itinerary
func PDF(doc planner.Document) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(pdfReplacer.Replace(s)) }

	pdf.SetTitle(text(doc.Title+" - "+doc.Subtitle), false)
	pdf.SetCreator("Travel Planner", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, text(doc.Title))
	pdf.Ln(10)
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 14)
		pdf.Cell(0, 8, text(doc.Subtitle))
		pdf.Ln(8)
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, text(generatedLine(doc)))
	pdf.Ln(10)

	for _, section := range doc.Sections {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, text(section.Heading))
		pdf.Ln(9)

		for _, line := range section.Lines {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(labelWidth, 6, text(line.Label+":"), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 6, text(line.Value), "", "L", false)
		}
		pdf.Ln(4)
	}

	if doc.TotalCost != nil {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, text(fmt.Sprintf("Total for %d travelers: %s", doc.TotalCost.Travelers, doc.TotalCost.Display)))
		pdf.Ln(12)
	}

	pdf.SetFont("Helvetica", "I", 9)
	for _, line := range doc.Footer {
		pdf.MultiCell(0, 5, text(line), "", "C", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeUnknown, "failed to render itinerary PDF", err)
	}
	return buf.Bytes(), nil
}
