package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

const pdfFontFamily = "Helvetica"

// PDFRenderer draws onto an A4 portrait PDF in millimetres.
type PDFRenderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func NewPDFRenderer() *PDFRenderer {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont(pdfFontFamily, "", VideoIDFontSize)
	pdf.AddPage()
	return &PDFRenderer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func (p *PDFRenderer) SetFontSize(size float64) {
	p.pdf.SetFontSize(size)
}

func (p *PDFRenderer) SetTextColor(r, g, b int) {
	p.pdf.SetTextColor(r, g, b)
}

func (p *PDFRenderer) WriteText(text string, x, y float64) {
	p.pdf.Text(x, y, p.tr(text))
}

// WrapText greedily fills lines up to maxWidth at the current font size.
// Explicit newlines are kept, and words wider than a line are split.
func (p *PDFRenderer) WrapText(text string, maxWidth float64) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}

		current := ""
		for _, word := range words {
			candidate := word
			if current != "" {
				candidate = current + " " + word
			}
			if p.width(candidate) <= maxWidth {
				current = candidate
				continue
			}
			if current != "" {
				lines = append(lines, current)
			}
			current = word
			for p.width(current) > maxWidth {
				head, rest := p.splitWord(current, maxWidth)
				lines = append(lines, head)
				current = rest
			}
		}
		lines = append(lines, current)
	}
	return lines
}

// splitWord returns the longest prefix of word that fits maxWidth (at least
// one rune) and the remainder.
func (p *PDFRenderer) splitWord(word string, maxWidth float64) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && p.width(string(runes[:n+1])) <= maxWidth {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}

func (p *PDFRenderer) width(s string) float64 {
	return p.pdf.GetStringWidth(p.tr(s))
}

func (p *PDFRenderer) AddPage() {
	p.pdf.AddPage()
}

func (p *PDFRenderer) Save(path string) error {
	return p.pdf.OutputFileAndClose(path)
}

// Output streams the document to w instead of a file.
func (p *PDFRenderer) Output(w io.Writer) error {
	return p.pdf.Output(w)
}

func (p *PDFRenderer) PageCount() int {
	return p.pdf.PageCount()
}
