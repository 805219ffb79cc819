package export

import (
	"fmt"
	"path/filepath"
)

type cursor struct {
	r    Renderer
	y    float64
	page int
}

func (c *cursor) newPage() {
	c.r.AddPage()
	c.y = TopMargin
	c.page++
}

func (c *cursor) breakIfPast() {
	if c.y > PageThreshold {
		c.newPage()
	}
}

// movesNote reports whether a note starting at y with span mm of continuation
// lines goes to a fresh page. Notes too tall for any page stay put and are
// split.
func movesNote(y, span float64) bool {
	return y > PageThreshold || (y+span > PageThreshold && TopMargin+span <= PageThreshold)
}

func wrapNote(r Renderer, content string) []string {
	lines := r.WrapText(content, WrapWidth)
	if len(lines) == 0 {
		lines = []string{content}
	}
	return lines
}

func lineSpan(lines []string) float64 {
	return float64(len(lines)-1) * LineHeight
}

// Paginate draws doc onto r and returns the placement decisions. The result
// depends only on doc and on r's wrapping, so equal inputs give equal layouts.
//
// The page is checked before every heading and note. A note whose wrapped
// lines would run past the threshold moves to a fresh page when it fits
// there; notes taller than a page are split between lines. A heading moves
// with its first note so it never ends a page.
func Paginate(r Renderer, doc Document) Layout {
	c := &cursor{r: r, y: TopMargin, page: 1}

	r.SetFontSize(TitleFontSize)
	r.WriteText(DocumentHeading, MarginX, c.y)
	c.y += TitleAdvance

	if doc.Title != "" {
		r.SetFontSize(VideoTitleFontSize)
		r.WriteText(doc.Title, MarginX, c.y)
		c.y += VideoTitleAdvance
	}

	r.SetFontSize(VideoIDFontSize)
	r.WriteText(fmt.Sprintf("Video ID: %s", doc.VideoID), MarginX, c.y)
	c.y += VideoIDAdvance

	var layout Layout
	for _, g := range GroupByCategory(doc.Notes) {
		r.SetFontSize(NoteFontSize)
		wrapped := make([][]string, len(g.Notes))
		for i, n := range g.Notes {
			wrapped[i] = wrapNote(r, n.Content)
		}

		if c.y > PageThreshold || (c.y > TopMargin && movesNote(c.y+HeadingAdvance, lineSpan(wrapped[0]))) {
			c.newPage()
		}

		r.SetFontSize(HeadingFontSize)
		r.SetTextColor(HeadingColor[0], HeadingColor[1], HeadingColor[2])
		r.WriteText(g.Category, MarginX, c.y)
		gp := GroupPlacement{Category: g.Category, Page: c.page, Y: c.y}
		c.y += HeadingAdvance
		r.SetTextColor(0, 0, 0)

		r.SetFontSize(NoteFontSize)
		for i, n := range g.Notes {
			lines := wrapped[i]
			if movesNote(c.y, lineSpan(lines)) {
				c.newPage()
			}

			np := NotePlacement{NoteID: n.ID, Page: c.page, Y: c.y, Lines: len(lines)}
			r.WriteText("["+n.FormattedTime+"]", MarginX, c.y)
			for j, line := range lines {
				if j > 0 {
					c.breakIfPast()
				}
				r.WriteText(line, ContentX, c.y)
				c.y += LineHeight
			}
			c.y += NoteSpacing
			np.EndPage = c.page
			gp.Notes = append(gp.Notes, np)
		}

		c.y += GroupGap
		layout.Groups = append(layout.Groups, gp)
	}

	layout.Pages = c.page
	return layout
}

// Export paginates doc onto r and saves it in dir. It returns the written
// path along with the layout.
func Export(r Renderer, doc Document, dir string) (string, Layout, error) {
	if err := ValidateOutputDir(dir); err != nil {
		return "", Layout{}, err
	}

	layout := Paginate(r, doc)
	path := filepath.Join(dir, FileName(doc.Title))
	if err := r.Save(path); err != nil {
		return "", layout, fmt.Errorf("failed to save export: %w", err)
	}
	return path, layout, nil
}
