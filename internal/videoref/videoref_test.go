package videoref

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		ref  string
		want string
	}{
		{name: "short link", ref: "https://youtu.be/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare id", ref: "dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "bare id with spaces", ref: "  dQw4w9WgXcQ\n", want: "dQw4w9WgXcQ"},
		{name: "watch url", ref: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "watch url extra params", ref: "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", want: "dQw4w9WgXcQ"},
		{name: "embed url", ref: "https://www.youtube.com/embed/dQw4w9WgXcQ", want: "dQw4w9WgXcQ"},
		{name: "v url", ref: "youtube.com/v/dQw4w9WgXcQ?version=3", want: "dQw4w9WgXcQ"},
		{name: "short link with timestamp", ref: "https://youtu.be/dQw4w9WgXcQ?t=10", want: "dQw4w9WgXcQ"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.ref)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tc.ref, err)
			}
			if got != tc.want {
				t.Fatalf("Parse(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

func TestParse_Rejects(t *testing.T) {
	rejected := []string{
		"not-a-video-id",
		"abc",
		"hello world",
		"youtu.be/ab",
		"",
		"   ",
		"https://example.com/watch?x=1",
		"https://youtu.be/short",
	}

	for _, ref := range rejected {
		if got, err := Parse(ref); !errors.Is(err, ErrInvalidReference) {
			t.Errorf("Parse(%q) = %q, %v; want ErrInvalidReference", ref, got, err)
		}
	}
}

func TestThumbnailURL(t *testing.T) {
	want := "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg"
	if got := ThumbnailURL("dQw4w9WgXcQ"); got != want {
		t.Fatalf("ThumbnailURL() = %q, want %q", got, want)
	}
}
