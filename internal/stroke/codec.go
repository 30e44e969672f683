package stroke

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/example/drawdle/internal/geom"
)

type wireStroke struct {
	ID     int          `json:"id,omitempty"`
	Points []geom.Point `json:"points"`
	Color  string       `json:"color"`
	Size   float64      `json:"size"`
	Tool   string       `json:"tool,omitempty"`
	Active *bool        `json:"active,omitempty"`
}

// Encode serializes strokes as a JSON array.
func Encode(strokes []Stroke) ([]byte, error) {
	wire := make([]wireStroke, 0, len(strokes))
	for _, s := range strokes {
		active := s.Active
		wire = append(wire, wireStroke{
			ID:     s.ID,
			Points: s.Points,
			Color:  Hex(s.Color),
			Size:   s.Size,
			Tool:   s.Tool.String(),
			Active: &active,
		})
	}
	b, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("encode strokes: %w", err)
	}
	return b, nil
}

// Decode parses a JSON stroke array. Only points, color and size are
// required: a missing tool means brush and a missing active flag means
// visible. Empty input is an empty drawing.
func Decode(data []byte) ([]Stroke, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var wire []wireStroke
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode strokes: %w", err)
	}
	out := make([]Stroke, 0, len(wire))
	for _, w := range wire {
		if len(w.Points) == 0 {
			continue
		}
		tool := ToolBrush
		if w.Tool != "" {
			if t, err := ParseTool(w.Tool); err == nil && t.Draws() {
				tool = t
			}
		}
		s := Stroke{
			ID:     w.ID,
			Points: w.Points,
			Color:  HexOrBlack(w.Color),
			Size:   w.Size,
			Tool:   tool,
			Active: w.Active == nil || *w.Active,
		}
		if s.Size <= 0 {
			s.Size = 1
		}
		if tool == ToolLine && len(s.Points) != 2 {
			s.Points = []geom.Point{s.Points[0], s.Points[len(s.Points)-1]}
		}
		out = append(out, s)
	}
	return out, nil
}
