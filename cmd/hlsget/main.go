package main

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"hls-fetcher/internal/fetch"
	"hls-fetcher/internal/manifest"
	"hls-fetcher/internal/pipeline"
	"hls-fetcher/internal/platform/config"
	"hls-fetcher/internal/platform/logger"
	"hls-fetcher/internal/platform/metrics"
	"hls-fetcher/internal/platform/status"
	"hls-fetcher/internal/progress"

	"github.com/spf13/cobra"
)

const statusShutdownTimeout = 5 * time.Second

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hlsget <manifest-url> <output-dir>",
		Short: "Download one audio and one video rendition from an HLS master manifest",
		Long: "hlsget resolves an HLS media set from a master manifest URL: it lists the\n" +
			"available audio and video renditions, lets you pick one of each, fetches\n" +
			"every segment, and assembles them into <output-dir>/audio.<ext> and\n" +
			"<output-dir>/video.<ext>. Re-running with the same arguments resumes an\n" +
			"interrupted download.",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         run,
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	_ = config.Load()

	manifestURL, outDir := args[0], args[1]

	log := logger.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_FORMAT", "text"))

	if err := validateManifestURL(manifestURL); err != nil {
		log.Error("invalid manifest URL", slog.String("error", err.Error()))
		return err
	}

	headers, err := fetch.LoadHeaders(config.GetEnv("HTTP_HEADERS_FILE", ""))
	if err != nil {
		log.Error("loading request headers failed", slog.String("error", err.Error()))
		return err
	}

	met := metrics.New()
	client := fetch.New(
		config.GetEnvDuration("HTTP_TIMEOUT_SECONDS", time.Second, fetch.DefaultTimeout),
		headers,
		log,
		met,
	)

	counter := &progress.Counter{}
	if addr := config.GetEnv("STATUS_ADDR", ""); addr != "" {
		srv := status.New(addr, log, met, counter)
		srv.Start()
		defer srv.Shutdown(statusShutdownTimeout)
	}

	runner := &pipeline.Runner{
		Client:           client,
		Parser:           manifest.NewParser(log),
		Selector:         newPromptSelector(os.Stdin, os.Stderr),
		Counter:          counter,
		Log:              log,
		Metrics:          met,
		ProgressInterval: time.Duration(config.GetEnvInt("PROGRESS_INTERVAL_MS", 250)) * time.Millisecond,
	}

	if err := runner.Run(cmd.Context(), manifestURL, outDir); err != nil {
		log.Error("download failed", slog.String("error", err.Error()))
		return err
	}

	log.Info("media set assembled", slog.String("output_dir", outDir))
	return nil
}

// validateManifestURL rejects unusable URLs before any network work.
func validateManifestURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return fmt.Errorf("invalid manifest URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid manifest URL %q: scheme must be http or https", raw)
	}
	return nil
}
