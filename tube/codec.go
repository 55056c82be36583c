package tube

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/npillmayer/tubegeom/curve"
	"gopkg.in/yaml.v3"
)

// TypeName is the value of the "type" field of a serialized tube.
const TypeName = "TubeGeometry"

var (
	// ErrPathNotSerializable indicates a tube whose path is not built on a
	// serializable curve.
	ErrPathNotSerializable = errors.New("tube path is not serializable")
	// ErrNotATube indicates a record of a type other than TypeName.
	ErrNotATube = errors.New("record is not a tube")
)

type metadata struct {
	Version   float64 `json:"version" yaml:"version"`
	Type      string  `json:"type" yaml:"type"`
	Generator string  `json:"generator" yaml:"generator"`
}

func currentMetadata() metadata {
	return metadata{Version: 1.0, Type: "Geometry", Generator: "tubegeom"}
}

// record is the serialized form of a tube. MaxRadius is omitted when it
// has its default value.
type record struct {
	Metadata        metadata        `json:"metadata"`
	Type            string          `json:"type"`
	Path            json.RawMessage `json:"path"`
	TubularSegments int             `json:"tubularSegments"`
	Radius          []float64       `json:"radius"`
	RadialSegments  int             `json:"radialSegments"`
	Closed          bool            `json:"closed"`
	MaxRadius       float64         `json:"maxRadius,omitempty"`
}

type yamlRecord struct {
	Metadata        metadata  `yaml:"metadata"`
	Type            string    `yaml:"type"`
	Path            yaml.Node `yaml:"path"`
	TubularSegments int       `yaml:"tubularSegments"`
	Radius          []float64 `yaml:"radius,flow"`
	RadialSegments  int       `yaml:"radialSegments"`
	Closed          bool      `yaml:"closed"`
	MaxRadius       float64   `yaml:"maxRadius,omitempty"`
}

// storedMaxRadius maps the default clamp to 0, which is omitted.
func (p Params) storedMaxRadius() float64 {
	if r, ok := p.maxRadius(); ok && r == DefaultParams().MaxRadius {
		return 0
	}
	return p.MaxRadius
}

// loadedMaxRadius is the inverse of storedMaxRadius.
func loadedMaxRadius(r float64) float64 {
	if r == 0 {
		return DefaultParams().MaxRadius
	}
	return r
}

// MarshalJSON encodes the construction parameters of t, including its path.
func (t *Tube) MarshalJSON() ([]byte, error) {
	cp, err := t.curvePath()
	if err != nil {
		return nil, err
	}
	pathData, err := curve.MarshalPath(cp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathNotSerializable, err)
	}
	return json.Marshal(record{
		Metadata:        currentMetadata(),
		Type:            TypeName,
		Path:            pathData,
		TubularSegments: t.params.TubularSegments,
		Radius:          t.params.Radius,
		RadialSegments:  t.params.RadialSegments,
		Closed:          t.params.Closed,
		MaxRadius:       t.params.storedMaxRadius(),
	})
}

// FromJSON rebuilds a tube from its JSON encoding. The path's type must be
// registered with reg; a nil reg selects curve.DefaultRegistry.
func FromJSON(data []byte, reg *curve.Registry) (*Tube, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Type != TypeName {
		return nil, fmt.Errorf("%w: type is %q", ErrNotATube, rec.Type)
	}
	if len(rec.Path) == 0 {
		return nil, fmt.Errorf("%w: no path", ErrNilPath)
	}
	path, err := curve.UnmarshalPath(rec.Path, reg)
	if err != nil {
		return nil, err
	}
	return NewWithParams(path, Params{
		TubularSegments: rec.TubularSegments,
		Radius:          rec.Radius,
		RadialSegments:  rec.RadialSegments,
		Closed:          rec.Closed,
		MaxRadius:       loadedMaxRadius(rec.MaxRadius),
	})
}

// MarshalYAML encodes the construction parameters of t, including its path.
func (t *Tube) MarshalYAML() (interface{}, error) {
	cp, err := t.curvePath()
	if err != nil {
		return nil, err
	}
	node, err := curve.EncodePathYAML(cp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPathNotSerializable, err)
	}
	return yamlRecord{
		Metadata:        currentMetadata(),
		Type:            TypeName,
		Path:            *node,
		TubularSegments: t.params.TubularSegments,
		Radius:          t.params.Radius,
		RadialSegments:  t.params.RadialSegments,
		Closed:          t.params.Closed,
		MaxRadius:       t.params.storedMaxRadius(),
	}, nil
}

// FromYAML rebuilds a tube from its YAML encoding. The path's type must be
// registered with reg; a nil reg selects curve.DefaultRegistry.
func FromYAML(data []byte, reg *curve.Registry) (*Tube, error) {
	var rec yamlRecord
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec.Type != TypeName {
		return nil, fmt.Errorf("%w: type is %q", ErrNotATube, rec.Type)
	}
	if rec.Path.Kind == 0 {
		return nil, fmt.Errorf("%w: no path", ErrNilPath)
	}
	path, err := curve.DecodePathYAML(&rec.Path, reg)
	if err != nil {
		return nil, err
	}
	return NewWithParams(path, Params{
		TubularSegments: rec.TubularSegments,
		Radius:          rec.Radius,
		RadialSegments:  rec.RadialSegments,
		Closed:          rec.Closed,
		MaxRadius:       loadedMaxRadius(rec.MaxRadius),
	})
}

func (t *Tube) curvePath() (*curve.Path, error) {
	cp, ok := t.path.(*curve.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a curve path", ErrPathNotSerializable, t.path)
	}
	return cp, nil
}
