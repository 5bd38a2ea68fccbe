package youtube

import (
	"encoding/xml"
	"html"
	"regexp"
	"strings"
)

// Subtitle payload normalization for the downloader fallback. Each format
// is reduced to plain caption text; a generic cleanup pass then drops
// whatever cue residue the format-specific step missed.

var (
	vttHeaderLine  = regexp.MustCompile(`(?i)^WEBVTT\b`)
	vttMetaLine    = regexp.MustCompile(`^(Kind|Language|NOTE)\b`)
	vttTimingLine  = regexp.MustCompile(`^\s*\d{2}:\d{2}:\d{2}\.\d{3}\s*-->`)
	srtIndexLine   = regexp.MustCompile(`^\s*\d+\s*$`)
	srtTimingLine  = regexp.MustCompile(`^\s*\d{2}:\d{2}:\d{2},\d{3}\s*-->`)
	cueMarkupTag   = regexp.MustCompile(`<[^>]+>`)
	clockPrefix    = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
	pureNumberLine = regexp.MustCompile(`^\d+$`)
)

// detectSubtitleFormat sniffs the payload since caption URLs rarely declare
// an extension.
func detectSubtitleFormat(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(strings.ToUpper(trimmed), "WEBVTT"):
		return "vtt"
	case strings.HasPrefix(trimmed, "<"):
		return "xml"
	case srtIndexLine.MatchString(firstLine(trimmed)):
		return "srt"
	default:
		return "plain"
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// NormalizeSubtitles turns a raw subtitle payload of any supported format
// into flattened caption text. Also used on manually supplied transcripts,
// which often arrive as pasted VTT/SRT exports.
func NormalizeSubtitles(raw string) string {
	switch detectSubtitleFormat(raw) {
	case "vtt":
		raw = stripVTT(raw)
	case "srt":
		raw = stripSRT(raw)
	case "xml":
		if text, err := xmlTextContent(raw); err == nil {
			raw = text
		} else {
			raw = strings.ReplaceAll(raw, "-->", "")
		}
	}
	return cleanupSubtitleLines(raw)
}

func stripVTT(raw string) string {
	var kept []string
	prev := ""
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		switch {
		case vttHeaderLine.MatchString(trimmed),
			vttMetaLine.MatchString(trimmed),
			vttTimingLine.MatchString(trimmed),
			trimmed == "":
			continue
		}
		text := strings.TrimSpace(cueMarkupTag.ReplaceAllString(trimmed, ""))
		if text == "" || text == prev {
			// Auto-generated captions repeat rolling lines across cues.
			continue
		}
		prev = text
		kept = append(kept, text)
	}
	return strings.Join(kept, "\n")
}

func stripSRT(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || srtIndexLine.MatchString(trimmed) || srtTimingLine.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, "\n")
}

// xmlTextContent joins the character data of every element in an XML
// subtitle document, whatever its root element.
func xmlTextContent(raw string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(raw))
	var parts []string
	for {
		tok, err := dec.Token()
		if tok == nil {
			break
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			text := strings.TrimSpace(html.UnescapeString(string(cd)))
			if text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " "), nil
}

// cleanupSubtitleLines removes residual arrows, pure-numeric lines and
// timing-pattern lines, then flattens to one space-joined string.
func cleanupSubtitleLines(raw string) string {
	var kept []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" ||
			strings.Contains(line, "-->") ||
			pureNumberLine.MatchString(line) ||
			clockPrefix.MatchString(line) ||
			strings.HasPrefix(strings.ToUpper(line), "WEBVTT") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}
