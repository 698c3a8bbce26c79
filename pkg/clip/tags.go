package clip

import (
	"os"
	"strings"

	"github.com/dhowden/tag"
)

// Tags holds the embedded metadata a clip may carry. TTS output usually has
// none, so every field is optional.
type Tags struct {
	Title  string
	Artist string
	Album  string
}

// ReadTags returns any embedded metadata for the clip. Missing or
// unparseable tags yield the zero value rather than an error.
func ReadTags(path string) Tags {
	f, err := os.Open(path)
	if err != nil {
		return Tags{}
	}
	defer f.Close()

	meta, err := tag.ReadFrom(f)
	if err != nil {
		return Tags{}
	}

	return Tags{
		Title:  strings.TrimSpace(meta.Title()),
		Artist: strings.TrimSpace(meta.Artist()),
		Album:  strings.TrimSpace(meta.Album()),
	}
}
