package cache

import "slices"

// SceneKeyOpts are the inputs that shape a scene besides the history.
type SceneKeyOpts struct {
	Snapshot    int       `json:"snapshot"`
	Root        string    `json:"root"`
	Tree        bool      `json:"tree"`
	Collapsed   []string  `json:"collapsed"`
	Layout      string    `json:"layout"`
	Orientation string    `json:"orientation"`
	Link        string    `json:"link"`
	StepPercent float64   `json:"step_percent"`
	Flavor      string    `json:"flavor"`
	Width       float64   `json:"width"`
	Height      float64   `json:"height"`
	Margin      []float64 `json:"margin"`
	MaxDepth    int       `json:"max_depth"`
	MaxNodes    int       `json:"max_nodes"`
	Zoom        float64   `json:"zoom"`
	Title       string    `json:"title"`
}

// ArtifactKeyOpts select one rendered output of a scene.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Static bool    `json:"static,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey identifies the scene built from a history with the given options.
	SceneKey(historyHash string, opts SceneKeyOpts) string

	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey implements [Keyer]. Collapsed paths are order-insensitive.
func (DefaultKeyer) SceneKey(historyHash string, opts SceneKeyOpts) string {
	opts.Collapsed = slices.Clone(opts.Collapsed)
	slices.Sort(opts.Collapsed)
	return hashKey("scene", historyHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(sceneKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", sceneKey, opts)
}
