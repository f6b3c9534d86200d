// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// tracksReport returns a minimal mkvinfo report containing one track per
// element of tracks. Each track is a list of "Key: value" attributes.
func tracksReport(tracks ...[]string) string {
	lines := []string{"+ EBML head", "+ Segment: size 100", "|+ Segment tracks"}
	for _, attrs := range tracks {
		lines = append(lines, "| + A track")
		for _, a := range attrs {
			lines = append(lines, "|  + "+a)
		}
	}
	return strings.Join(lines, "\n")
}

func mustParse(t *testing.T, text string) *reportNode {
	t.Helper()
	root, err := parseReport(text)
	if err != nil {
		t.Fatalf("parseReport: %v", err)
	}
	return root
}

func TestLanguageName(t *testing.T) {
	casetests := []struct {
		code string
		ok   bool
		want string
	}{
		{code: "", ok: false, want: "English"},
		{code: "", ok: true, want: "English"},
		{code: "eng", ok: true, want: "English"},
		{code: "und", ok: true, want: "English"},
		{code: "zxx", ok: true, want: "English"},
		{code: "spa", ok: true, want: "Spanish"},
		{code: "scc", ok: true, want: "Serbian"},
		{code: "srp", ok: true, want: "Serbian"},
		{code: "slo", ok: true, want: "Slovenian"},
		{code: "slv", ok: true, want: "Slovenian"},
		{code: "rum", ok: true, want: "Rumanian"},
		{code: "rom", ok: true, want: "Romanian"},
		{code: "ukr", ok: true, want: "Ukrainian"},
	}

	for _, tt := range casetests {
		got, err := languageName(tt.code, tt.ok)
		if err != nil {
			t.Fatalf("%q: Got error %q want no error", tt.code, err)
		}
		if got != tt.want {
			t.Errorf("%q: Got %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestLanguageTableIsTotal(t *testing.T) {
	if len(languages) != 43 {
		t.Errorf("Got %d languages, want 43", len(languages))
	}
	for code, want := range languages {
		got, err := languageName(code, true)
		if err != nil || got != want {
			t.Errorf("%q: Got %q (%v), want %q", code, got, err, want)
		}
	}
}

func TestLanguageNameUnknown(t *testing.T) {
	for _, code := range []string{"xyz", "ENG", "Spa", "en"} {
		_, err := languageName(code, true)
		var lerr *UnknownLanguageError
		if !errors.As(err, &lerr) {
			t.Fatalf("%q: Got error %v, want UnknownLanguageError", code, err)
		}
		if lerr.Code != code {
			t.Errorf("Got code %q, want %q", lerr.Code, code)
		}
	}
}

func TestClassify(t *testing.T) {
	casetests := []struct {
		name   string
		tracks [][]string
		want   []string
	}{
		{
			name:   "video and french audio",
			tracks: [][]string{{"Track type: video"}, {"Track type: audio", "Language: fre"}},
			want:   []string{"Movie", "French"},
		},
		{
			name:   "dts audio",
			tracks: [][]string{{"Track type: audio", "Codec ID: A_DTS", "Language: spa"}},
			want:   []string{"Spanish DTS"},
		},
		{
			name:   "non dts audio",
			tracks: [][]string{{"Track type: audio", "Codec ID: A_AC3", "Language: spa"}},
			want:   []string{"Spanish"},
		},
		{
			name:   "audio without language",
			tracks: [][]string{{"Track type: audio", "Codec ID: A_DTS"}},
			want:   []string{"English DTS"},
		},
		{
			name:   "subtitles ignore codec",
			tracks: [][]string{{"Track type: subtitles", "Codec ID: A_DTS", "Language: ger"}},
			want:   []string{"German"},
		},
		{
			name: "document order",
			tracks: [][]string{
				{"Track type: subtitles", "Language: und"},
				{"Track type: video", "Language: ger"},
				{"Track type: audio", "Language: slv"},
				{"Track type: subtitles", "Language: por"},
			},
			want: []string{"English", "Movie", "Slovenian", "Portugese"},
		},
		{
			name: "no tracks",
		},
	}

	for _, tt := range casetests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tracksReport(tt.tracks...))
			got, err := classify(root, "Movie")
			if err != nil {
				t.Fatalf("Got error %q want no error", err)
			}
			if got.title != "Movie" {
				t.Errorf("title: Got %q, want %q", got.title, "Movie")
			}
			if !reflect.DeepEqual(got.tracks, tt.want) {
				t.Errorf("tracks: Got %v, want %v", got.tracks, tt.want)
			}
		})
	}
}

func TestClassifyErrors(t *testing.T) {
	casetests := []struct {
		name     string
		tracks   [][]string
		wantType error
		wantMsg  string
	}{
		{
			name:     "unknown track type",
			tracks:   [][]string{{"Track type: video"}, {"Track type: karaoke"}},
			wantType: &UnknownTrackTypeError{},
			wantMsg:  `track 2: unknown track type "karaoke"`,
		},
		{
			name:     "missing track type",
			tracks:   [][]string{{"Language: eng"}},
			wantType: &UnknownTrackTypeError{},
			wantMsg:  `track 1: unknown track type ""`,
		},
		{
			name:     "unknown audio language",
			tracks:   [][]string{{"Track type: audio", "Language: xyz"}},
			wantType: &UnknownLanguageError{},
			wantMsg:  `track 1: unknown language code "xyz"`,
		},
		{
			name:     "unknown subtitle language",
			tracks:   [][]string{{"Track type: subtitles", "Language: klingon"}},
			wantType: &UnknownLanguageError{},
			wantMsg:  `track 1: unknown language code "klingon"`,
		},
	}

	for _, tt := range casetests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tracksReport(tt.tracks...))
			_, err := classify(root, "Movie")
			if err == nil {
				t.Fatalf("Got no error, want error")
			}
			switch tt.wantType.(type) {
			case *UnknownTrackTypeError:
				var e *UnknownTrackTypeError
				if !errors.As(err, &e) {
					t.Errorf("Got %T, want UnknownTrackTypeError", errors.Unwrap(err))
				}
			case *UnknownLanguageError:
				var e *UnknownLanguageError
				if !errors.As(err, &e) {
					t.Errorf("Got %T, want UnknownLanguageError", errors.Unwrap(err))
				}
			default:
				t.Fatalf("bad test case: %T", tt.wantType)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Got message %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClassifyReport(t *testing.T) {
	root := mustParse(t, sampleReport)
	got, err := classify(root, "Some Movie")
	if err != nil {
		t.Fatalf("Got error %q want no error", err)
	}
	want := naming{title: "Some Movie", tracks: []string{"Some Movie", "Spanish DTS", "French"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Got %+v, want %+v", got, want)
	}
}
