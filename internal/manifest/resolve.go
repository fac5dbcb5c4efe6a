package manifest

import (
	"fmt"
	"net/url"
)

// ResolveURL resolves a manifest-relative reference against the URL of
// the manifest it came from. Absolute references are returned as-is.
func ResolveURL(base, ref string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parse reference %q: %w", ref, err)
	}
	return b.ResolveReference(r).String(), nil
}
