package manifest

// AudioRendition is one selectable audio variant from a master manifest.
// List position is the selection index; there is no explicit identity.
type AudioRendition struct {
	// GroupID is the rendition group key (GROUP-ID attribute), if any.
	GroupID string

	// Description is a human label (NAME attribute), if any.
	Description string

	// URI locates the rendition's media manifest, relative or absolute.
	URI string
}

// VideoRendition is one selectable video variant from a master manifest.
// Entries without a parseable bandwidth or a resolution are never
// materialized; the parser drops them during the scan.
type VideoRendition struct {
	// Bandwidth in bits per second. AVERAGE-BANDWIDTH is preferred over
	// BANDWIDTH when both are present.
	Bandwidth int

	// Resolution is the raw resolution token, e.g. "1280x720".
	Resolution string

	// VideoRange is an optional dynamic-range marker (SDR, PQ, ...).
	VideoRange string

	// AudioGroup links to an AudioRendition's GroupID, if set.
	AudioGroup string

	// URI locates the rendition's media manifest.
	URI string
}

// Attributes is a parsed KEY=VALUE attribute list from a manifest
// directive line. Unknown keys are retained; duplicate keys keep the
// last occurrence.
type Attributes map[string]string
