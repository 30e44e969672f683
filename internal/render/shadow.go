package render

import (
	"image"
	"image/color"
)

// ShadowOptions configures the paper's drop shadow.
type ShadowOptions struct {
	Radius int
	Offset image.Point
	Color  color.NRGBA
}

// DefaultShadowOptions returns a soft shadow that reads well on the default
// backdrop.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius: 12,
		Offset: image.Pt(4, 6),
		Color:  color.NRGBA{A: 110},
	}
}

// Shadow is the box blurred drop shadow of a rectangle with the rectangle
// itself cut out, so drawing it never tints the rectangle's content.
//
// A box blur of a rectangle separates into the product of two one
// dimensional coverages, so any pixel is computed directly and only the
// pixels that are drawn cost anything. The size of the rectangle does not
// matter.
type Shadow struct {
	rect   image.Rectangle // cut out
	cast   image.Rectangle // rect moved by the offset
	radius int
	color  color.NRGBA
}

// NewShadow describes the shadow of rect.
func NewShadow(rect image.Rectangle, opts ShadowOptions) Shadow {
	if rect.Empty() || opts.Color.A == 0 {
		return Shadow{}
	}
	return Shadow{
		rect:   rect,
		cast:   rect.Add(opts.Offset),
		radius: max(opts.Radius, 0),
		color:  opts.Color,
	}
}

// Empty reports whether there is nothing to draw.
func (s Shadow) Empty() bool {
	return s.rect.Empty()
}

// Bounds is the area the blur reaches.
func (s Shadow) Bounds() image.Rectangle {
	if s.Empty() {
		return image.Rectangle{}
	}
	return s.cast.Inset(-s.radius)
}

// coverage counts the integers of [p-radius, p+radius] inside [lo, hi).
func coverage(p, lo, hi, radius int) int {
	return max(0, min(p+radius+1, hi)-max(p-radius, lo))
}

// Alpha returns the shadow opacity at (x, y), zero inside the rectangle.
func (s Shadow) Alpha(x, y int) uint8 {
	if s.Empty() || image.Pt(x, y).In(s.rect) {
		return 0
	}
	cx := coverage(x, s.cast.Min.X, s.cast.Max.X, s.radius)
	cy := coverage(y, s.cast.Min.Y, s.cast.Max.Y, s.radius)
	if cx == 0 || cy == 0 {
		return 0
	}
	n := 2*s.radius + 1
	return uint8(cx * cy * int(s.color.A) / (n * n))
}

// Regions splits the part of Bounds inside clip, minus the rectangle, into
// at most four strips. Their area is bounded by the perimeter of clip times
// the blur reach.
func (s Shadow) Regions(clip image.Rectangle) []image.Rectangle {
	b := s.Bounds().Intersect(clip)
	if b.Empty() {
		return nil
	}
	if !s.rect.Overlaps(b) {
		return []image.Rectangle{b}
	}
	p := s.rect.Intersect(b)
	var out []image.Rectangle
	for _, r := range [4]image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, p.Min.Y),
		image.Rect(b.Min.X, p.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, p.Min.Y, p.Min.X, p.Max.Y),
		image.Rect(p.Max.X, p.Min.Y, b.Max.X, p.Max.Y),
	} {
		if !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

// Tile renders region as a premultiplied image whose origin is region.Min.
func (s Shadow) Tile(region image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, region.Dx(), region.Dy()))
	c := s.color
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row := dst.Pix[(y-region.Min.Y)*dst.Stride:]
		for x := region.Min.X; x < region.Max.X; x++ {
			a := uint32(s.Alpha(x, y))
			if a == 0 {
				continue
			}
			i := (x - region.Min.X) * 4
			row[i+0] = uint8(uint32(c.R) * a / 0xff)
			row[i+1] = uint8(uint32(c.G) * a / 0xff)
			row[i+2] = uint8(uint32(c.B) * a / 0xff)
			row[i+3] = uint8(a)
		}
	}
	return dst
}
