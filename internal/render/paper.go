package render

import (
	"image"
	"math"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/stroke"
)

// RenderPaper draws strokes onto a frame exactly the size of the paper at
// zoom 1, the way the drawing is exported.
func RenderPaper(strokes []stroke.Stroke, paperW, paperH float64, opts ...Option) (*image.RGBA, error) {
	w := int(math.Ceil(paperW))
	h := int(math.Ceil(paperH))
	v := geom.NewView(paperW, paperH)
	v.Resize(paperW, paperH)
	r := New(append(opts, WithShadow(ShadowOptions{}))...)
	r.Resize(w, h)
	if err := r.Draw(v, strokes); err != nil {
		return nil, err
	}
	return r.Image(), nil
}
