package sink

import (
	"encoding/json"

	"github.com/matzehuels/atomtree/pkg/render/scene"
)

// RenderJSON exports the scene as a pretty-printed JSON document.
// It returns an error only if marshaling fails.
func RenderJSON(sc *scene.Scene) ([]byte, error) {
	data, err := json.MarshalIndent(sc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
