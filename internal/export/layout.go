// Package export lays out a video's notes as a paginated document.
package export

import "github.com/vidnotes/vidnotes-agent/internal/notes"

// Page geometry in millimetres on an A4 portrait page.
const (
	MarginX       = 20.0
	ContentX      = 35.0
	TopMargin     = 20.0
	PageThreshold = 270.0
	WrapWidth     = 170.0

	TitleFontSize      = 20.0
	VideoTitleFontSize = 16.0
	VideoIDFontSize    = 12.0
	HeadingFontSize    = 14.0
	NoteFontSize       = 10.0

	TitleAdvance      = 15.0
	VideoTitleAdvance = 15.0
	VideoIDAdvance    = 10.0
	HeadingAdvance    = 10.0
	NoteSpacing       = 10.0
	LineHeight        = 7.0
	GroupGap          = 5.0
)

const DocumentHeading = "Video Notes"

// HeadingColor is the RGB color of category headings.
var HeadingColor = [3]int{0, 0, 150}

// Renderer is the set of drawing primitives the paginator needs.
type Renderer interface {
	SetFontSize(size float64)
	SetTextColor(r, g, b int)
	WriteText(text string, x, y float64)
	WrapText(text string, maxWidth float64) []string
	AddPage()
	Save(path string) error
}

type Document struct {
	Title   string
	VideoID string
	Notes   []notes.Note
}

// Group is the notes of one category, in encounter order.
type Group struct {
	Category string
	Notes    []notes.Note
}

// Layout records where the paginator placed each heading and note.
// Pages are numbered from 1.
type Layout struct {
	Pages  int
	Groups []GroupPlacement
}

type GroupPlacement struct {
	Category string
	Page     int
	Y        float64
	Notes    []NotePlacement
}

type NotePlacement struct {
	NoteID  string
	Page    int
	Y       float64
	Lines   int
	EndPage int
}

// GroupByCategory partitions notes by category, ordering groups by the first
// note seen in each and keeping note order within a group.
func GroupByCategory(ns []notes.Note) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, n := range ns {
		i, ok := index[n.Category]
		if !ok {
			i = len(groups)
			index[n.Category] = i
			groups = append(groups, Group{Category: n.Category})
		}
		groups[i].Notes = append(groups[i].Notes, n)
	}
	return groups
}
