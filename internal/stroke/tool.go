package stroke

import (
	"fmt"
	"strings"
)

// Tool selects how pointer input is interpreted.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolLine
	ToolPan
	ToolPicker
)

var toolNames = map[Tool]string{
	ToolBrush:  "brush",
	ToolEraser: "eraser",
	ToolLine:   "line",
	ToolPan:    "pan",
	ToolPicker: "picker",
}

func (t Tool) String() string {
	if s, ok := toolNames[t]; ok {
		return s
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// Draws reports whether the tool produces strokes.
func (t Tool) Draws() bool {
	return t == ToolBrush || t == ToolEraser || t == ToolLine
}

// Tools lists every tool in display order.
func Tools() []Tool {
	return []Tool{ToolBrush, ToolEraser, ToolLine, ToolPan, ToolPicker}
}

// ParseTool returns the tool named s. "color-picker" is accepted as an
// alias of picker.
func ParseTool(s string) (Tool, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "color-picker" || name == "colorpicker" {
		return ToolPicker, nil
	}
	for t, n := range toolNames {
		if n == name {
			return t, nil
		}
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", s)
}
