package tubegeom

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes a pair as a 2-element array [x, y].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X(), p.Y()})
}

// UnmarshalJSON decodes a pair from a 2-element array.
func (p *Pair) UnmarshalJSON(data []byte) error {
	var xy []float64
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("pair needs 2 coordinates, got %d", len(xy))
	}
	*p = P(xy[0], xy[1])
	return nil
}

// MarshalYAML encodes a pair as a flow sequence [x, y].
func (p Pair) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, c := range []float64{p.X(), p.Y()} {
		var n yaml.Node
		if err := n.Encode(c); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &n)
	}
	return node, nil
}

// UnmarshalYAML decodes a pair from a 2-element sequence.
func (p *Pair) UnmarshalYAML(value *yaml.Node) error {
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("pair needs 2 coordinates, got %d (line %d)", len(xy), value.Line)
	}
	*p = P(xy[0], xy[1])
	return nil
}
