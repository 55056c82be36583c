package curve

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Keys added to a curve's own fields in its serialized form.
const (
	keyType      = "type"
	keyDivisions = "arcLengthDivisions"
)

type pathHeader struct {
	Type      string `json:"type" yaml:"type"`
	Divisions int    `json:"arcLengthDivisions" yaml:"arcLengthDivisions"`
}

// MarshalPath encodes a path as a flat JSON object: the curve's fields plus
// "type" and "arcLengthDivisions". The curve must implement Typed.
func MarshalPath(p *Path) ([]byte, error) {
	typed, err := typedCurve(p)
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(typed)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("curve %s does not encode as an object: %w", typed.Type(), err)
	}
	if fields[keyType], err = json.Marshal(typed.Type()); err != nil {
		return nil, err
	}
	if fields[keyDivisions], err = json.Marshal(p.divisions); err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// UnmarshalPath decodes a path encoded by MarshalPath. The curve type must be
// known to reg; a nil reg selects DefaultRegistry.
func UnmarshalPath(data []byte, reg *Registry) (*Path, error) {
	var h pathHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	c, err := newCurve(h.Type, reg)
	if err != nil {
		return nil, err
	}
	if err = json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", h.Type, err)
	}
	return finishPath(c, h)
}

// EncodePathYAML encodes a path as a YAML mapping, with the same keys as
// MarshalPath. "type" comes first.
func EncodePathYAML(p *Path) (*yaml.Node, error) {
	typed, err := typedCurve(p)
	if err != nil {
		return nil, err
	}
	var node yaml.Node
	if err = node.Encode(typed); err != nil {
		return nil, err
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("curve %s does not encode as a mapping", typed.Type())
	}
	head := []*yaml.Node{
		scalar("!!str", keyType), scalar("!!str", typed.Type()),
		scalar("!!str", keyDivisions), scalar("!!int", strconv.Itoa(p.divisions)),
	}
	node.Content = append(head, node.Content...)
	return &node, nil
}

// DecodePathYAML decodes a path from a YAML mapping written by EncodePathYAML.
// A nil reg selects DefaultRegistry.
func DecodePathYAML(node *yaml.Node, reg *Registry) (*Path, error) {
	if node == nil {
		return nil, ErrNilCurve
	}
	var h pathHeader
	if err := node.Decode(&h); err != nil {
		return nil, err
	}
	c, err := newCurve(h.Type, reg)
	if err != nil {
		return nil, err
	}
	if err = node.Decode(c); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", h.Type, err)
	}
	return finishPath(c, h)
}

func typedCurve(p *Path) (Typed, error) {
	if p == nil || p.curve == nil {
		return nil, ErrNilCurve
	}
	typed, ok := p.curve.(Typed)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotSerializable, p.curve)
	}
	return typed, nil
}

func newCurve(name string, reg *Registry) (Curve, error) {
	if reg == nil {
		reg = DefaultRegistry
	}
	if name == "" {
		return nil, fmt.Errorf("%w: missing type", ErrUnknownCurveType)
	}
	return reg.New(name)
}

func finishPath(c Curve, h pathHeader) (*Path, error) {
	if err := validate(c); err != nil {
		return nil, fmt.Errorf("decoded %s is invalid: %w", h.Type, err)
	}
	tracer().Debugf("decoded path of type %s", h.Type)
	return NewPathWithDivisions(c, h.Divisions), nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
