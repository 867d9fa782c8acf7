// Package report renders the family document inventory as a PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/emrekaraca/family-portal/internal/models"
	"github.com/go-pdf/fpdf"
)

// BuildDocumentReport renders a PDF listing every document the family holds,
// stamped with the requesting user and generation time.
func BuildDocumentReport(family *models.Family, documents []models.Document, requester *models.User) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Family Documents Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Family: %s", family.Name), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated for %s on %s", requester.Name,
		time.Now().Format("Jan 2, 2006 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(documents) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, 8, "No documents uploaded yet.", "", 1, "C", false, 0, "")
	} else {
		writeTable(pdf, documents)
	}

	pdf.SetY(-15)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d document(s)", len(documents)), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *fpdf.Fpdf, documents []models.Document) {
	widths := []float64{60, 32, 28, 20, 30, 20}
	headers := []string{"Name", "Category", "Type", "Size", "Uploaded By", "Date"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, doc := range documents {
		uploader := ""
		if doc.UploadedBy != nil {
			uploader = doc.UploadedBy.Name
		}
		cells := []string{
			truncate(doc.Name, 40),
			categoryLabel(doc.Category),
			truncate(doc.FileType, 18),
			formatSize(doc.FileSize),
			truncate(uploader, 20),
			doc.CreatedAt.Format("2006-01-02"),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func categoryLabel(category string) string {
	words := strings.Split(category, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func formatSize(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/float64(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", size)
	}
}

// truncate shortens on rune boundaries so multi-byte names never get split
// mid-character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
