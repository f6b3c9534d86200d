// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"os"
	"time"

	"github.com/remko/go-mkvparse"
)

// Matroska TrackType element values.
// See https://www.matroska.org/technical/elements.html
var trackTypeNames = map[int64]string{
	1:  typeVideo,
	2:  typeAudio,
	17: typeSubtitles,
}

// trackinfo holds the current metadata of a track, read from the file.
type trackinfo struct {
	name      string
	tracktype string
	language  string
	codecID   string
}

// mkvMetadata holds the current title and track metadata of a file.
type mkvMetadata struct {
	title  string
	tracks []trackinfo
}

// mkvParser implements mkvparse.Handler, collecting the segment title and
// track entries.
type mkvParser struct {
	meta    mkvMetadata
	track   trackinfo
	inTrack bool
}

func (p *mkvParser) HandleMasterBegin(id mkvparse.ElementID, info mkvparse.ElementInfo) (bool, error) {
	if id == mkvparse.TrackEntryElement {
		p.inTrack = true
		// Matroska default language.
		p.track = trackinfo{language: "eng"}
	}
	return true, nil
}

func (p *mkvParser) HandleMasterEnd(id mkvparse.ElementID, info mkvparse.ElementInfo) error {
	if id == mkvparse.TrackEntryElement {
		p.meta.tracks = append(p.meta.tracks, p.track)
		p.inTrack = false
	}
	return nil
}

func (p *mkvParser) HandleString(id mkvparse.ElementID, value string, info mkvparse.ElementInfo) error {
	if id == mkvparse.TitleElement && !p.inTrack {
		p.meta.title = value
		return nil
	}
	if !p.inTrack {
		return nil
	}
	switch id {
	case mkvparse.NameElement:
		p.track.name = value
	case mkvparse.LanguageElement:
		p.track.language = value
	case mkvparse.CodecIDElement:
		p.track.codecID = value
	}
	return nil
}

func (p *mkvParser) HandleInteger(id mkvparse.ElementID, value int64, info mkvparse.ElementInfo) error {
	if p.inTrack && id == mkvparse.TrackTypeElement {
		p.track.tracktype = trackTypeNames[value]
		if p.track.tracktype == "" {
			p.track.tracktype = "unknown"
		}
	}
	return nil
}

func (p *mkvParser) HandleFloat(id mkvparse.ElementID, value float64, info mkvparse.ElementInfo) error {
	return nil
}

func (p *mkvParser) HandleDate(id mkvparse.ElementID, value time.Time, info mkvparse.ElementInfo) error {
	return nil
}

func (p *mkvParser) HandleBinary(id mkvparse.ElementID, value []byte, info mkvparse.ElementInfo) error {
	return nil
}

// readMetadata reads the current title and track metadata directly from the
// Matroska file. Only the Info and Tracks sections are parsed.
func readMetadata(fname string) (mkvMetadata, error) {
	f, err := os.Open(fname)
	if err != nil {
		return mkvMetadata{}, err
	}
	defer f.Close()

	handler := mkvParser{}
	if err = mkvparse.ParseSections(f, &handler, mkvparse.InfoElement, mkvparse.TracksElement); err != nil {
		return mkvMetadata{}, err
	}
	return handler.meta, nil
}
