package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"hls-fetcher/internal/manifest"
	"hls-fetcher/internal/platform/metrics"
	"hls-fetcher/internal/progress"
)

// Discovery failures. These abort the run before any segment work.
var (
	ErrNoAudioRenditions = errors.New("no audio renditions found")
	ErrNoVideoRenditions = errors.New("no video renditions found")
	ErrNoMatchingVideo   = errors.New("no video rendition matches the selected audio group")
)

// Selector picks one rendition of each kind from the discovered lists.
// The CLI implements it with interactive prompts; tests use fixed picks.
type Selector interface {
	SelectAudio(renditions []manifest.AudioRendition) (int, error)
	SelectVideo(renditions []manifest.VideoRendition) (int, error)
}

// Client is the transport surface the pipeline needs: file fetches for
// segments, text fetches for manifests.
type Client interface {
	Fetcher
	FetchText(ctx context.Context, url string) (string, error)
}

// Runner wires the full flow: master manifest to rendition lists, operator
// selection, media manifests to an ordered task list, sequential segment
// fetches with progress reporting, and final assembly.
type Runner struct {
	Client   Client
	Parser   *manifest.Parser
	Selector Selector
	Counter  *progress.Counter
	Log      *slog.Logger
	Metrics  *metrics.Metrics

	// ProgressInterval and ProgressSink configure the reporter; zero
	// values fall back to progress package defaults.
	ProgressInterval time.Duration
	ProgressSink     progress.Sink
}

// Run resolves the media set at manifestURL into <outDir>/audio.<ext> and
// <outDir>/video.<ext>. Already-fetched segments under <outDir>/work are
// skipped, so re-running after a failure resumes where it stopped.
func (r *Runner) Run(ctx context.Context, manifestURL, outDir string) error {
	log := r.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	text, err := r.Client.FetchText(ctx, manifestURL)
	if err != nil {
		return fmt.Errorf("fetch master manifest: %w", err)
	}
	audio, video := r.Parser.ParseMaster(text)
	if r.Metrics != nil {
		r.Metrics.IncManifestsParsed()
	}
	if len(audio) == 0 {
		return ErrNoAudioRenditions
	}
	if len(video) == 0 {
		return ErrNoVideoRenditions
	}
	log.Info("renditions discovered",
		slog.Int("audio", len(audio)),
		slog.Int("video", len(video)),
	)

	chosenAudio, chosenVideo, err := r.selectRenditions(audio, video)
	if err != nil {
		return err
	}

	audioURL, err := manifest.ResolveURL(manifestURL, chosenAudio.URI)
	if err != nil {
		return err
	}
	videoURL, err := manifest.ResolveURL(manifestURL, chosenVideo.URI)
	if err != nil {
		return err
	}

	// The two media manifests are the one place concurrency buys latency;
	// both are awaited before the combined task list is built.
	var audioNames, videoNames []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, err := r.Client.FetchText(gctx, audioURL)
		if err != nil {
			return fmt.Errorf("fetch audio manifest: %w", err)
		}
		audioNames = r.Parser.ParseMedia(text)
		return nil
	})
	g.Go(func() error {
		text, err := r.Client.FetchText(gctx, videoURL)
		if err != nil {
			return fmt.Errorf("fetch video manifest: %w", err)
		}
		videoNames = r.Parser.ParseMedia(text)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if r.Metrics != nil {
		r.Metrics.IncManifestsParsed()
		r.Metrics.IncManifestsParsed()
	}

	audioTasks, err := BuildTasks(KindAudio, audioURL, audioNames)
	if err != nil {
		return err
	}
	videoTasks, err := BuildTasks(KindVideo, videoURL, videoNames)
	if err != nil {
		return err
	}
	tasks := append(audioTasks, videoTasks...)
	if r.Metrics != nil {
		r.Metrics.SetSegmentsTotal(len(tasks))
	}
	log.Info("segment list built",
		slog.Int("audio_segments", len(audioTasks)),
		slog.Int("video_segments", len(videoTasks)),
	)

	layout := Layout{Root: outDir}
	if err := layout.EnsureWorkDirs(); err != nil {
		return err
	}

	r.Counter.SetTotal(int64(len(tasks)))
	reporter := progress.NewReporter(r.Counter, int64(len(tasks)), r.ProgressInterval, r.sink())
	reporter.Start()
	defer reporter.Stop()

	orch := NewOrchestrator(r.Client, r.Counter, log)
	if err := orch.Run(ctx, tasks, layout); err != nil {
		return err
	}

	return Assemble(tasks, layout, log)
}

// selectRenditions asks the Selector for one audio rendition, narrows the
// video list to renditions compatible with the chosen audio group, then
// asks for one video rendition.
func (r *Runner) selectRenditions(audio []manifest.AudioRendition, video []manifest.VideoRendition) (manifest.AudioRendition, manifest.VideoRendition, error) {
	var none manifest.VideoRendition

	ai, err := r.Selector.SelectAudio(audio)
	if err != nil {
		return manifest.AudioRendition{}, none, err
	}
	if ai < 0 || ai >= len(audio) {
		return manifest.AudioRendition{}, none, fmt.Errorf("audio selection %d out of range", ai)
	}
	chosenAudio := audio[ai]

	candidates := matchingVideos(video, chosenAudio.GroupID)
	if len(candidates) == 0 {
		return chosenAudio, none, ErrNoMatchingVideo
	}

	vi, err := r.Selector.SelectVideo(candidates)
	if err != nil {
		return chosenAudio, none, err
	}
	if vi < 0 || vi >= len(candidates) {
		return chosenAudio, none, fmt.Errorf("video selection %d out of range", vi)
	}
	return chosenAudio, candidates[vi], nil
}

// matchingVideos keeps video renditions compatible with the given audio
// group: renditions that name the group, plus renditions bound to no
// group at all.
func matchingVideos(video []manifest.VideoRendition, groupID string) []manifest.VideoRendition {
	out := make([]manifest.VideoRendition, 0, len(video))
	for _, v := range video {
		if v.AudioGroup == "" || v.AudioGroup == groupID {
			out = append(out, v)
		}
	}
	return out
}

// sink returns the configured progress sink, defaulting to stdout.
func (r *Runner) sink() progress.Sink {
	if r.ProgressSink != nil {
		return r.ProgressSink
	}
	return progress.WriterSink{W: os.Stdout}
}
