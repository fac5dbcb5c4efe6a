package manifest

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

const masterSample = `#EXTM3U
#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID="aac",NAME="English",URI="audio/en.m3u8"
#EXT-X-MEDIA:TYPE=SUBTITLES,GROUP-ID="subs",NAME="English",URI="subs/en.m3u8"
#EXT-X-STREAM-INF:BANDWIDTH=1000000,RESOLUTION=1280x720,AUDIO="aac"
video/720p.m3u8
#EXT-X-STREAM-INF:AVERAGE-BANDWIDTH=4000000,BANDWIDTH=5000000,RESOLUTION=1920x1080,VIDEO-RANGE=SDR
video/1080p.m3u8
`

func TestParseMaster_sample(t *testing.T) {
	p := NewParser(nil)
	audio, video := p.ParseMaster(masterSample)

	if len(audio) != 1 {
		t.Fatalf("audio renditions = %d, want 1 (subtitles ignored)", len(audio))
	}
	if audio[0].GroupID != "aac" || audio[0].Description != "English" || audio[0].URI != "audio/en.m3u8" {
		t.Errorf("audio[0] = %+v", audio[0])
	}

	if len(video) != 2 {
		t.Fatalf("video renditions = %d, want 2", len(video))
	}
	if video[0].Bandwidth != 1000000 || video[0].Resolution != "1280x720" || video[0].AudioGroup != "aac" || video[0].URI != "video/720p.m3u8" {
		t.Errorf("video[0] = %+v", video[0])
	}
	if video[1].Bandwidth != 4000000 {
		t.Errorf("video[1].Bandwidth = %d, want AVERAGE-BANDWIDTH preferred", video[1].Bandwidth)
	}
	if video[1].VideoRange != "SDR" || video[1].URI != "video/1080p.m3u8" {
		t.Errorf("video[1] = %+v", video[1])
	}
}

func TestParseMaster_lines_before_header_ignored(t *testing.T) {
	text := "#EXT-X-MEDIA:TYPE=AUDIO,URI=\"early.m3u8\"\njunk\n#EXTM3U\n" +
		"#EXT-X-MEDIA:TYPE=AUDIO,URI=\"late.m3u8\"\n"
	audio, _ := NewParser(nil).ParseMaster(text)
	if len(audio) != 1 || audio[0].URI != "late.m3u8" {
		t.Errorf("audio = %+v, want only the post-header rendition", audio)
	}
}

func TestParseMaster_no_header_no_renditions(t *testing.T) {
	audio, video := NewParser(nil).ParseMaster("#EXT-X-STREAM-INF:BANDWIDTH=1,RESOLUTION=1x1\nv.m3u8\n")
	if len(audio) != 0 || len(video) != 0 {
		t.Errorf("got %d audio, %d video, want none without header", len(audio), len(video))
	}
}

func TestParseMaster_media_without_uri_dropped(t *testing.T) {
	text := "#EXTM3U\n#EXT-X-MEDIA:TYPE=AUDIO,GROUP-ID=\"aac\"\n"
	audio, _ := NewParser(nil).ParseMaster(text)
	if len(audio) != 0 {
		t.Errorf("audio = %+v, want entry without URI dropped", audio)
	}
}

func TestParseMaster_variant_missing_mandatory_dropped(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no bandwidth", "#EXT-X-STREAM-INF:RESOLUTION=1280x720"},
		{"no resolution", "#EXT-X-STREAM-INF:BANDWIDTH=1000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			text := "#EXTM3U\n" + tc.line + "\nbad.m3u8\n" +
				"#EXT-X-STREAM-INF:BANDWIDTH=2000,RESOLUTION=640x360\ngood.m3u8\n"
			_, video := NewParser(nil).ParseMaster(text)
			if len(video) != 1 || video[0].URI != "good.m3u8" {
				t.Errorf("video = %+v, want only the valid sibling", video)
			}
		})
	}
}

func TestParseMaster_non_integer_bandwidth_warns_and_continues(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	text := "#EXTM3U\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=abc,RESOLUTION=1280x720\nbad.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=2000,RESOLUTION=640x360\ngood.m3u8\n"
	_, video := NewParser(log).ParseMaster(text)

	if len(video) != 1 || video[0].URI != "good.m3u8" {
		t.Fatalf("video = %+v, want parse to continue past bad entry", video)
	}
	if !strings.Contains(buf.String(), "non-integer bandwidth") {
		t.Errorf("log = %q, want non-integer bandwidth warning", buf.String())
	}
}

func TestParseMaster_blank_lines_before_stream_url_skipped(t *testing.T) {
	text := "#EXTM3U\n#EXT-X-STREAM-INF:BANDWIDTH=1000,RESOLUTION=1280x720\n\n   \nvideo.m3u8\n"
	_, video := NewParser(nil).ParseMaster(text)
	if len(video) != 1 || video[0].URI != "video.m3u8" {
		t.Errorf("video = %+v, want blank lines skipped before URI", video)
	}
}

func TestParseMedia_segments_in_order(t *testing.T) {
	text := "#EXTM3U\n" +
		"#EXT-X-BITRATE:1000\nseg0.ts\n" +
		"#EXT-X-BITRATE:1000\nseg1.ts\n" +
		"#EXT-X-BITRATE:1200\nseg2.ts\n"
	segs := NewParser(nil).ParseMedia(text)
	want := []string{"seg0.ts", "seg1.ts", "seg2.ts"}
	if len(segs) != len(want) {
		t.Fatalf("segments = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segments[%d] = %q, want %q", i, segs[i], want[i])
		}
	}
}

func TestParseMedia_map_uri_first(t *testing.T) {
	text := "#EXTM3U\n" +
		"#EXT-X-MAP:URI=\"init.mp4\"\n" +
		"#EXT-X-BITRATE:1000\nseg0.m4s\n"
	segs := NewParser(nil).ParseMedia(text)
	if len(segs) != 2 || segs[0] != "init.mp4" || segs[1] != "seg0.m4s" {
		t.Errorf("segments = %v, want init segment first", segs)
	}
}

func TestParseMedia_idempotent(t *testing.T) {
	text := "#EXTM3U\n#EXT-X-BITRATE:1\na.ts\n#EXT-X-BITRATE:1\nb.ts\n"
	p := NewParser(nil)
	first := p.ParseMedia(text)
	second := p.ParseMedia(text)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("segments[%d]: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestParseMedia_trailing_indicator_without_url(t *testing.T) {
	segs := NewParser(nil).ParseMedia("#EXTM3U\n#EXT-X-BITRATE:1000")
	if len(segs) != 0 {
		t.Errorf("segments = %v, want none for incomplete entry", segs)
	}
}

func TestParseMedia_blank_line_after_indicator_taken_verbatim(t *testing.T) {
	text := "#EXTM3U\n" +
		"#EXT-X-BITRATE:1000\n\n" +
		"#EXT-X-BITRATE:1000\n  \n" +
		"#EXT-X-BITRATE:1000\nseg0.ts\n"
	segs := NewParser(nil).ParseMedia(text)
	want := []string{"", "  ", "seg0.ts"}
	if len(segs) != len(want) {
		t.Fatalf("segments = %q, want %q", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segments[%d] = %q, want %q", i, segs[i], want[i])
		}
	}
}

func TestParseMedia_crlf_lines(t *testing.T) {
	segs := NewParser(nil).ParseMedia("#EXTM3U\r\n#EXT-X-BITRATE:1\r\nseg0.ts\r\n")
	if len(segs) != 1 || segs[0] != "seg0.ts" {
		t.Errorf("segments = %v, want CR stripped", segs)
	}
}
