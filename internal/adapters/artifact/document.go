// Package artifact decodes the native scaler and classifier artifacts.
//
// A native artifact is a single JSON or YAML document with a "kind"
// discriminator. Both encodings go through yaml.v3, which accepts JSON as
// YAML flow syntax.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/mikey/pd-screen/internal/core"
	"gopkg.in/yaml.v3"
)

// header is the part every native artifact shares
type header struct {
	Kind         string   `yaml:"kind"`
	FeatureNames []string `yaml:"feature_names"`
}

type document struct {
	header
	node *yaml.Node
}

// readDocument reads and parses an artifact file. A path that does not
// reference an existing regular file maps to core.ErrArtifactMissing; every
// other failure maps to core.ErrArtifactLoad.
func readDocument(path string) (*document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", core.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrArtifactLoad, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", core.ErrArtifactMissing, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", core.ErrArtifactLoad, path, err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %s: %v", core.ErrArtifactLoad, path, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: %s does not contain an artifact document", core.ErrArtifactLoad, path)
	}
	body := root.Content[0]

	var h header
	if err := body.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: failed to decode header of %s: %v", core.ErrArtifactLoad, path, err)
	}
	h.Kind = strings.ToLower(strings.TrimSpace(h.Kind))
	if h.Kind == "" {
		return nil, fmt.Errorf("%w: %s has no kind", core.ErrArtifactLoad, path)
	}
	if err := checkFeatureNames(h.FeatureNames); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrArtifactLoad, path, err)
	}

	return &document{header: h, node: body}, nil
}

// decode unmarshals the document body into a kind-specific struct
func (d *document) decode(v interface{ validate() error }) error {
	if err := d.node.Decode(v); err != nil {
		return fmt.Errorf("%w: failed to decode %s: %v", core.ErrArtifactLoad, d.Kind, err)
	}
	if err := v.validate(); err != nil {
		return fmt.Errorf("%w: invalid %s: %v", core.ErrArtifactLoad, d.Kind, err)
	}
	return nil
}

// checkFeatureNames enforces the fitted order when an artifact declares it
func checkFeatureNames(names []string) error {
	if len(names) == 0 {
		return nil
	}
	want := core.FeatureNames()
	if len(names) != len(want) {
		return fmt.Errorf("artifact declares %d features, expected %d", len(names), len(want))
	}
	for i := range want {
		if strings.TrimSpace(names[i]) != want[i] {
			return fmt.Errorf("feature %d is %q, expected %q", i, names[i], want[i])
		}
	}
	return nil
}

func checkVector(name string, v []float64) error {
	if len(v) != core.FeatureCount {
		return fmt.Errorf("%s has %d values, expected %d", name, len(v), core.FeatureCount)
	}
	return checkFinite(name, v...)
}

func checkFinite(name string, vs ...float64) error {
	for i, x := range vs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d] is not finite", name, i)
		}
	}
	return nil
}

func checkRow(row []float64) error {
	if len(row) != core.FeatureCount {
		return fmt.Errorf("expected %d values, got %d", core.FeatureCount, len(row))
	}
	return nil
}
