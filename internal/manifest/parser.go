package manifest

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// Manifest line markers. The segment indicator here is #EXT-X-BITRATE:
// used purely as a "next line is a URI" marker; it carries no duration
// metadata in this system.
const (
	headerLine         = "#EXTM3U"
	mediaDirective     = "#EXT-X-MEDIA:"
	streamInfDirective = "#EXT-X-STREAM-INF:"
	mapDirective       = "#EXT-X-MAP:"
	segmentDirective   = "#EXT-X-BITRATE:"
)

// parserState tags the position of the line scanner inside a manifest.
type parserState int

const (
	// stateReady: header not seen yet; every line is ignored until it is.
	stateReady parserState = iota
	// stateHeaderFound: directives are recognized.
	stateHeaderFound
	// stateGetStreamURL: the upcoming line is a rendition or segment URI.
	stateGetStreamURL
)

// Parser turns raw manifest text into structured rendition and segment
// lists. It performs no I/O and keeps no state between calls; malformed
// entries are dropped and the scan continues to end of text.
type Parser struct {
	log *slog.Logger
}

// NewParser returns a Parser that reports dropped-entry warnings to log.
// A nil log discards them.
func NewParser(log *slog.Logger) *Parser {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Parser{log: log}
}

// ParseMaster scans a master manifest and returns the audio renditions
// (media directives with TYPE=AUDIO and a URI) and video renditions
// (variant-stream directives with an integer bandwidth, a resolution,
// and a following URI line), each in manifest order.
func (p *Parser) ParseMaster(text string) ([]AudioRendition, []VideoRendition) {
	var (
		audio   []AudioRendition
		video   []VideoRendition
		state   = stateReady
		pending VideoRendition
	)

	for _, line := range splitLines(text) {
		switch state {
		case stateReady:
			if strings.TrimSpace(line) == headerLine {
				state = stateHeaderFound
			}

		case stateHeaderFound:
			switch {
			case strings.HasPrefix(line, mediaDirective):
				if r, ok := p.parseMediaRendition(line[len(mediaDirective):]); ok {
					audio = append(audio, r)
				}
			case strings.HasPrefix(line, streamInfDirective):
				if r, ok := p.parseVariantStream(line[len(streamInfDirective):]); ok {
					pending = r
					state = stateGetStreamURL
				}
			}

		case stateGetStreamURL:
			uri := strings.TrimSpace(line)
			if uri == "" {
				continue
			}
			pending.URI = uri
			video = append(video, pending)
			state = stateHeaderFound
		}
	}

	return audio, video
}

// ParseMedia scans a media manifest and returns its segment names in
// manifest order. An initialization-map directive contributes its URI as
// the first entry; each segment-indicator directive marks the following
// line as a segment name, taken verbatim.
func (p *Parser) ParseMedia(text string) []string {
	var (
		segments []string
		state    = stateReady
	)

	for _, line := range splitLines(text) {
		switch state {
		case stateReady:
			if strings.TrimSpace(line) == headerLine {
				state = stateHeaderFound
			}

		case stateHeaderFound:
			switch {
			case strings.HasPrefix(line, mapDirective):
				attrs := parseAttributes(line[len(mapDirective):])
				if uri, ok := attrs["URI"]; ok {
					segments = append(segments, uri)
				}
			case strings.HasPrefix(line, segmentDirective):
				state = stateGetStreamURL
			}

		case stateGetStreamURL:
			segments = append(segments, line)
			state = stateHeaderFound
		}
	}

	return segments
}

// parseMediaRendition keeps only TYPE=AUDIO entries that carry a URI.
// Other media types are out of scope and silently ignored.
func (p *Parser) parseMediaRendition(attrList string) (AudioRendition, bool) {
	attrs := parseAttributes(attrList)
	if attrs["TYPE"] != "AUDIO" {
		return AudioRendition{}, false
	}
	uri, ok := attrs["URI"]
	if !ok {
		return AudioRendition{}, false
	}
	return AudioRendition{
		GroupID:     attrs["GROUP-ID"],
		Description: attrs["NAME"],
		URI:         uri,
	}, true
}

// parseVariantStream builds a VideoRendition from a variant-stream
// attribute list, minus its URI which arrives on a later line. Entries
// with no bandwidth or no resolution are dropped; a non-integer
// bandwidth is dropped with a warning.
func (p *Parser) parseVariantStream(attrList string) (VideoRendition, bool) {
	attrs := parseAttributes(attrList)

	raw, ok := attrs["AVERAGE-BANDWIDTH"]
	if !ok {
		raw, ok = attrs["BANDWIDTH"]
	}
	if !ok {
		return VideoRendition{}, false
	}

	bandwidth, err := strconv.Atoi(raw)
	if err != nil {
		p.log.Warn("dropping variant stream with non-integer bandwidth",
			slog.String("bandwidth", raw))
		return VideoRendition{}, false
	}

	resolution, ok := attrs["RESOLUTION"]
	if !ok {
		return VideoRendition{}, false
	}

	return VideoRendition{
		Bandwidth:  bandwidth,
		Resolution: resolution,
		VideoRange: attrs["VIDEO-RANGE"],
		AudioGroup: attrs["AUDIO"],
	}, true
}

// splitLines splits manifest text into lines, tolerating CRLF endings.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
