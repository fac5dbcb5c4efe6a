package pipeline

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
)

// copyChunkSize is the buffer size for segment-to-output copies.
const copyChunkSize = 64 * 1024

// defaultExt is used when segment names carry no extension.
const defaultExt = ".ts"

// Assemble concatenates the fetched segment files of each kind, in task
// list order, into one output file per kind, then removes the working
// directory tree. The output bytes for a kind equal the ordered
// concatenation of that kind's segment bytes exactly, independent of
// directory-listing or fetch-completion order.
func Assemble(tasks []Task, layout Layout, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	for _, kind := range kinds {
		outPath, err := assembleKind(tasks, layout, kind)
		if err != nil {
			return err
		}
		log.Info("output assembled",
			slog.String("kind", string(kind)),
			slog.String("path", outPath),
		)
	}

	return layout.RemoveWork()
}

// assembleKind writes the output file for one kind and returns its path.
// The destination is flushed and closed on every exit path.
func assembleKind(tasks []Task, layout Layout, kind Kind) (outPath string, err error) {
	outPath = layout.OutputPath(kind, outputExt(tasks, kind))

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output %s: %w", outPath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output %s: %w", outPath, cerr)
		}
	}()

	w := bufio.NewWriterSize(out, copyChunkSize)
	buf := make([]byte, copyChunkSize)

	for _, t := range tasks {
		if t.Kind != kind {
			continue
		}
		if err := appendSegment(w, layout.SegmentPath(t), buf); err != nil {
			return outPath, err
		}
	}

	if err := w.Flush(); err != nil {
		return outPath, fmt.Errorf("flush output %s: %w", outPath, err)
	}
	return outPath, nil
}

// appendSegment streams one segment file's full contents into w.
func appendSegment(w io.Writer, segPath string, buf []byte) error {
	f, err := os.Open(segPath)
	if err != nil {
		return fmt.Errorf("open segment %s: %w", segPath, err)
	}
	defer f.Close()

	if _, err := io.CopyBuffer(w, f, buf); err != nil {
		return fmt.Errorf("append segment %s: %w", segPath, err)
	}
	return nil
}

// outputExt derives the output extension for a kind from its first
// segment name, falling back to defaultExt.
func outputExt(tasks []Task, kind Kind) string {
	for _, t := range tasks {
		if t.Kind != kind {
			continue
		}
		if ext := path.Ext(t.Name); ext != "" {
			return ext
		}
		break
	}
	return defaultExt
}
