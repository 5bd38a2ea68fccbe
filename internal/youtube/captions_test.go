package youtube

import "testing"

const watchPageFixture = `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc","languageCode":"en","name":{"simpleText":"English"}},{"baseUrl":"https://www.youtube.com/api/timedtext?v=abc&lang=es","languageCode":"es","name":{"simpleText":"Spanish (auto-generated)"}}]}}};</script></html>`

func TestParseCaptionTracks(t *testing.T) {
	tracks := parseCaptionTracks([]byte(watchPageFixture))
	if len(tracks) != 2 {
		t.Fatalf("Expected 2 tracks, got %d", len(tracks))
	}

	if tracks[0].LanguageCode != "en" || tracks[0].LanguageName != "English" {
		t.Errorf("Unexpected first track: %+v", tracks[0])
	}
	if tracks[0].AutoGenerated {
		t.Error("Expected manual English track")
	}

	if tracks[1].LanguageCode != "es" {
		t.Errorf("Expected second track language es, got %q", tracks[1].LanguageCode)
	}
	if !tracks[1].AutoGenerated {
		t.Error("Expected auto-generated flag from track name")
	}
}

func TestParseCaptionTracks_NoCaptionsBlock(t *testing.T) {
	tracks := parseCaptionTracks([]byte(`<html><body>Sign in to confirm you're not a bot</body></html>`))
	if tracks != nil {
		t.Errorf("Expected no tracks, got %+v", tracks)
	}
}

func TestDefaultCaptionTracks(t *testing.T) {
	tracks := DefaultCaptionTracks()
	if len(tracks) != 1 {
		t.Fatalf("Expected exactly 1 default track, got %d", len(tracks))
	}
	if tracks[0].LanguageCode != "en" || !tracks[0].AutoGenerated {
		t.Errorf("Expected auto-generated English default, got %+v", tracks[0])
	}
}

func TestParseChapters(t *testing.T) {
	page := `{"macroMarkersListItemRenderer":{"timeDescription":{"simpleText":"0:00"},"title":{"simpleText":"Intro"}}},{"macroMarkersListItemRenderer":{"timeDescription":{"simpleText":"3:25"},"title":{"simpleText":"Variables"}}}`

	chapters := parseChapters([]byte(page))
	if len(chapters) != 2 {
		t.Fatalf("Expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Timestamp != "0:00" || chapters[0].Title != "Intro" {
		t.Errorf("Unexpected first chapter: %+v", chapters[0])
	}
	if chapters[1].Timestamp != "3:25" || chapters[1].Title != "Variables" {
		t.Errorf("Unexpected second chapter: %+v", chapters[1])
	}
}

func TestParseChapters_NoMarkers(t *testing.T) {
	if chapters := parseChapters([]byte(`<html></html>`)); len(chapters) != 0 {
		t.Errorf("Expected no chapters, got %+v", chapters)
	}
}
