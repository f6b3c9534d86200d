// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"fmt"
)

// Track Types, as printed by mkvinfo.
const (
	typeVideo     = "video"
	typeAudio     = "audio"
	typeSubtitles = "subtitles"
)

// Audio tracks with this codec get dtsSuffix appended to their name.
const (
	dtsCodecID = "A_DTS"
	dtsSuffix  = "DTS"
)

// Language used when a track carries no language at all.
const defaultLanguage = "English"

// trackPath locates the track entries in a parsed mkvinfo report.
var trackPath = []string{"segment", "segment_tracks", "a_track"}

// languages maps Matroska (ISO 639-2) language codes to display names.
// Tracks with no language element are handled by defaultLanguage.
var languages = map[string]string{
	"":    "English",
	"eng": "English",
	"und": "English",
	"zxx": "English",
	"spa": "Spanish",
	"swe": "Swedish",
	"dut": "Dutch",
	"fre": "French",
	"ger": "German",
	"fin": "Finnish",
	"dan": "Danish",
	"nor": "Norwegian",
	"tur": "Turkish",
	"ara": "Arabic",
	"bul": "Bulgaric",
	"chi": "Chinese",
	"cze": "Czech",
	"gre": "Greek",
	"hrv": "Croatia",
	"hun": "Hungaric",
	"ind": "Indian",
	"rum": "Rumanian",
	"rom": "Romanian",
	"slv": "Slovenian",
	"slo": "Slovenian",
	"por": "Portugese",
	"ita": "Italian",
	"rus": "Russian",
	"mac": "Macedonian",
	"pol": "Polish",
	"scc": "Serbian",
	"srp": "Serbian",
	"vie": "Vietnamese",
	"est": "Estonian",
	"heb": "Hebrew",
	"mlt": "Maltese",
	"kor": "Korean",
	"tha": "Thai",
	"ice": "Icelandic",
	"scr": "Moldavian",
	"lit": "Lithuanian",
	"lav": "Latvian",
	"ukr": "Ukrainian",
}

// UnknownTrackTypeError is returned for tracks that are not video, audio or
// subtitles.
type UnknownTrackTypeError struct {
	Type string
}

func (e *UnknownTrackTypeError) Error() string {
	return fmt.Sprintf("unknown track type %q", e.Type)
}

// UnknownLanguageError is returned for language codes missing from the
// language table.
type UnknownLanguageError struct {
	Code string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language code %q", e.Code)
}

// naming holds the new title and the per-track names, in track order.
type naming struct {
	title  string
	tracks []string
}

// languageName returns the display name for a track language. The lookup is
// case sensitive.
func languageName(code string, ok bool) (string, error) {
	if !ok {
		return defaultLanguage, nil
	}
	name, found := languages[code]
	if !found {
		return "", &UnknownLanguageError{Code: code}
	}
	return name, nil
}

// trackName derives the name of a single track entry.
func trackName(track *reportNode, title string) (string, error) {
	tt, _ := track.Attr("track_type")

	switch tt {
	case typeVideo:
		return title, nil

	case typeSubtitles:
		return languageName(track.Attr("language"))

	case typeAudio:
		name, err := languageName(track.Attr("language"))
		if err != nil {
			return "", err
		}
		if codec, _ := track.Attr("codec_id"); codec == dtsCodecID {
			name += " " + dtsSuffix
		}
		return name, nil
	}
	return "", &UnknownTrackTypeError{Type: tt}
}

// classify walks the tracks of a parsed report and returns the title and
// names for every track, in the order tracks appear in the report. The first
// problematic track aborts the whole operation.
func classify(root *reportNode, title string) (naming, error) {
	ret := naming{title: title}
	for idx, track := range root.Path(trackPath...) {
		name, err := trackName(track, title)
		if err != nil {
			return naming{}, fmt.Errorf("track %d: %w", idx+1, err)
		}
		ret.tracks = append(ret.tracks, name)
	}
	return ret, nil
}
