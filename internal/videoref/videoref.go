// Package videoref resolves user-supplied YouTube URLs or bare ids to an
// 11-character video id.
package videoref

import (
	"errors"
	"regexp"
	"strings"
)

const IDLength = 11

var ErrInvalidReference = errors.New("invalid video reference")

// Matches watch, embed, v/, e/, nested channel paths and youtu.be short links.
var urlPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`)

var barePattern = regexp.MustCompile(`^[^"&?/\s]{11}$`)

// Parse extracts the video id from ref. Input that is not a recognised URL is
// accepted verbatim when it is exactly IDLength characters long and holds no
// whitespace or URL delimiters.
func Parse(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrInvalidReference
	}

	if m := urlPattern.FindStringSubmatch(ref); m != nil {
		return m[1], nil
	}

	if barePattern.MatchString(ref) {
		return ref, nil
	}
	return "", ErrInvalidReference
}

// ThumbnailURL returns the max resolution thumbnail for a video id.
func ThumbnailURL(id string) string {
	return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
}
