package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hls-fetcher/internal/manifest"
)

// promptSelector implements pipeline.Selector with 1-based interactive
// prompts. Listings and prompts go to out (stderr) so stdout stays clean
// for progress output.
type promptSelector struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPromptSelector(in io.Reader, out io.Writer) *promptSelector {
	return &promptSelector{scanner: bufio.NewScanner(in), out: out}
}

func (p *promptSelector) SelectAudio(renditions []manifest.AudioRendition) (int, error) {
	fmt.Fprintln(p.out, "audio renditions:")
	for i, r := range renditions {
		label := r.Description
		if label == "" {
			label = r.URI
		}
		if r.GroupID != "" {
			label += " [" + r.GroupID + "]"
		}
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, label)
	}
	return p.pick(len(renditions))
}

func (p *promptSelector) SelectVideo(renditions []manifest.VideoRendition) (int, error) {
	fmt.Fprintln(p.out, "video renditions:")
	for i, r := range renditions {
		fmt.Fprintf(p.out, "  %d) %s @ %d bps", i+1, r.Resolution, r.Bandwidth)
		if r.VideoRange != "" {
			fmt.Fprintf(p.out, " (%s)", r.VideoRange)
		}
		fmt.Fprintln(p.out)
	}
	return p.pick(len(renditions))
}

// pick reads choices until it gets one in [1, n], returning it 0-based.
func (p *promptSelector) pick(n int) (int, error) {
	for {
		fmt.Fprintf(p.out, "select [1-%d]: ", n)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, errors.New("input closed before a selection was made")
		}
		choice, err := strconv.Atoi(strings.TrimSpace(p.scanner.Text()))
		if err != nil || choice < 1 || choice > n {
			fmt.Fprintln(p.out, "invalid selection")
			continue
		}
		return choice - 1, nil
	}
}
