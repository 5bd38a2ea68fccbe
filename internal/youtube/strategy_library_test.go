package youtube

import (
	"reflect"
	"testing"
)

func TestLanguageCandidates(t *testing.T) {
	tests := []struct {
		name     string
		language string
		want     []languageCandidate
	}{
		{
			name:     "english request gets the full variant list",
			language: "en",
			want: []languageCandidate{
				{[]string{"en", "en-US", "en-GB"}, "en"},
				{nil, ""},
			},
		},
		{
			name:     "other language tried first, then english variants, then anything",
			language: "es",
			want: []languageCandidate{
				{[]string{"es"}, "es"},
				{[]string{"en", "en-US", "en-GB"}, "en"},
				{nil, ""},
			},
		},
		{
			name:     "empty language falls back to english variants",
			language: "",
			want: []languageCandidate{
				{[]string{"en", "en-US", "en-GB"}, "en"},
				{nil, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := languageCandidates(tt.language)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Expected candidates %v, got %v", tt.want, got)
			}
		})
	}
}
