package cache

// Keyer derives cache keys for solve results.
type Keyer interface {
	// SolveKey returns the key for the canonical vertex text of a polygon
	// solved with opts.
	SolveKey(vertices []byte, opts SolveKeyOpts) string
}

// SolveKeyOpts holds the options that change a solve result.
// Worker count and progress settings never change the answer and stay out
// of the key.
type SolveKeyOpts struct {
	Variant string `json:"variant"`
	Policy  string `json:"policy"`
}

// DefaultKeyer hashes the polygon and options into "solve:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolveKey implements Keyer.
func (DefaultKeyer) SolveKey(vertices []byte, opts SolveKeyOpts) string {
	return hashKey("solve", Hash(vertices), opts)
}
