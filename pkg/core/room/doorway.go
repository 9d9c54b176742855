package room

// CopyRegion is the block of template tiles a renderer copies over an
// unused doorway to wall it off. Origin is template-local.
type CopyRegion struct {
	Origin Point `json:"origin" yaml:"origin"`
	Width  int   `json:"width" yaml:"width"`
	Height int   `json:"height" yaml:"height"`
}

// Doorway is a socket on a template edge.
//
// Connected is set once the doorway is paired with a doorway of another
// instance. Unavailable is set when the doorway is either connected or has
// been ruled out during the current layout attempt; the search never picks
// an unavailable doorway again.
type Doorway struct {
	Position    Point       `json:"position" yaml:"position"`
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	CopyRegion  CopyRegion  `json:"copy_region" yaml:"copy_region"`
	Connected   bool        `json:"connected" yaml:"connected"`
	Unavailable bool        `json:"unavailable" yaml:"unavailable"`
}

// Open reports whether the doorway is still a placement candidate.
func (d Doorway) Open() bool { return !d.Connected && !d.Unavailable }

// CopyDoorways returns an independent copy of ds. Mutating the result does
// not affect ds.
func CopyDoorways(ds []Doorway) []Doorway {
	if ds == nil {
		return nil
	}
	out := make([]Doorway, len(ds))
	copy(out, ds)
	return out
}
