package domain

import (
	"fmt"

	"github.com/goccy/go-json"
)

// GradientStop is a single color stop within a gradient
type GradientStop struct {
	Color  string  `json:"color"`
	Offset float64 `json:"offset"`
}

// Gradient describes a linear gradient fill for a card color slot
type Gradient struct {
	Rotation float64        `json:"rotation,omitempty"`
	Stops    []GradientStop `json:"stops"`
}

// ColorValue is either a flat color string or a gradient descriptor.  It flows
// unchanged from stored configuration through to SVG gradient definition emission.
// The zero value means "no color set".
type ColorValue struct {
	Flat     string
	Gradient *Gradient
}

// FlatColor returns a ColorValue holding a plain color string
func FlatColor(c string) ColorValue {
	return ColorValue{Flat: c}
}

// IsZero reports whether no color has been set
func (c ColorValue) IsZero() bool {
	return c.Flat == "" && c.Gradient == nil
}

// IsGradient reports whether the value holds a gradient descriptor
func (c ColorValue) IsGradient() bool {
	return c.Gradient != nil
}

// UnmarshalJSON accepts either a bare color string or a gradient object
func (c *ColorValue) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("empty color value")
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		c.Flat = s
		c.Gradient = nil
		return nil
	}
	var g Gradient
	if err := json.Unmarshal(data, &g); err != nil {
		return err
	}
	c.Flat = ""
	c.Gradient = &g
	return nil
}

// MarshalJSON emits the flat string form when set, else the gradient object
func (c ColorValue) MarshalJSON() ([]byte, error) {
	if c.Gradient != nil {
		return json.Marshal(c.Gradient)
	}
	return json.Marshal(c.Flat)
}

// Palette is the 4-slot color tuple used by every card
type Palette struct {
	Title      ColorValue
	Background ColorValue
	Text       ColorValue
	Circle     ColorValue
}
