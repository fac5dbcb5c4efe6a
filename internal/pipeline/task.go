package pipeline

import (
	"fmt"

	"hls-fetcher/internal/manifest"
)

// Kind names one of the two output streams a segment belongs to.
type Kind string

const (
	KindAudio Kind = "audio"
	KindVideo Kind = "video"
)

// kinds lists every Kind in output order.
var kinds = []Kind{KindAudio, KindVideo}

// Task is one segment to fetch. The order in which tasks are produced
// from a media manifest is the byte order of the final output; it must
// be preserved regardless of when each fetch completes.
type Task struct {
	// Kind of output stream this segment belongs to.
	Kind Kind

	// Name is the literal manifest-relative URI, reused as the
	// destination file name under the working directory.
	Name string

	// URL is the absolute fetch location.
	URL string
}

// BuildTasks resolves ordered segment names from a media manifest at
// manifestURL into fetchable tasks, preserving manifest order.
func BuildTasks(kind Kind, manifestURL string, names []string) ([]Task, error) {
	tasks := make([]Task, 0, len(names))
	for _, name := range names {
		u, err := manifest.ResolveURL(manifestURL, name)
		if err != nil {
			return nil, fmt.Errorf("resolve %s segment %q: %w", kind, name, err)
		}
		tasks = append(tasks, Task{Kind: kind, Name: name, URL: u})
	}
	return tasks, nil
}
