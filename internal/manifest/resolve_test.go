package manifest

import "testing"

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name string
		base string
		ref  string
		want string
	}{
		{"sibling", "https://cdn.example.com/vod/master.m3u8", "seg0.ts", "https://cdn.example.com/vod/seg0.ts"},
		{"subdir", "https://cdn.example.com/vod/master.m3u8", "audio/en.m3u8", "https://cdn.example.com/vod/audio/en.m3u8"},
		{"rooted", "https://cdn.example.com/vod/master.m3u8", "/other/seg.ts", "https://cdn.example.com/other/seg.ts"},
		{"absolute", "https://cdn.example.com/vod/master.m3u8", "https://mirror.example.com/seg.ts", "https://mirror.example.com/seg.ts"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveURL(tc.base, tc.ref)
			if err != nil {
				t.Fatalf("ResolveURL: %v", err)
			}
			if got != tc.want {
				t.Errorf("ResolveURL(%q, %q) = %q, want %q", tc.base, tc.ref, got, tc.want)
			}
		})
	}
}

func TestResolveURL_bad_base(t *testing.T) {
	if _, err := ResolveURL("://not-a-url", "seg.ts"); err == nil {
		t.Error("expected error for unparseable base URL")
	}
}
