package youtube

import (
	"regexp"
	"strings"
)

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:youtube\.com/(?:watch\?v=|embed/|shorts/|live/)|youtu\.be/)([^&?#/\s]+)`),
	regexp.MustCompile(`youtube\.com/watch\?[^#\s]*?v=([^&?#/\s]+)`),
}

var bareVideoID = regexp.MustCompile(`^[\w-]{11}$`)

// ExtractVideoID resolves a watch URL, youtu.be short link, embed/shorts URL
// or bare 11-character ID to the canonical video ID. Trailing query
// parameters after the ID are dropped. Unparseable input returns ok=false;
// that is an expected case, not an error.
func ExtractVideoID(input string) (string, bool) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", false
	}

	if bareVideoID.MatchString(input) {
		return input, true
	}

	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(input); len(m) > 1 {
			return m[1], true
		}
	}

	return "", false
}
