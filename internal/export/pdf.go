// Package export writes drawings as vector documents.
package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/example/drawdle/internal/stroke"
)

// PDF writes a single page the size of the paper, in points, with strokes
// traced through the same smoothing the renderer uses. Canvas units map one
// to one onto points.
func PDF(w io.Writer, strokes []stroke.Stroke, paperW, paperH float64, paper color.NRGBA) error {
	if !(paperW > 0) || !(paperH > 0) {
		return fmt.Errorf("invalid paper size %vx%v", paperW, paperH)
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: paperW, Ht: paperH},
	})
	pdf.SetCreator("drawdle", true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pdf.SetFillColor(int(paper.R), int(paper.G), int(paper.B))
	pdf.Rect(0, 0, paperW, paperH, "F")

	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	for _, s := range strokes {
		if !s.Active {
			continue
		}
		drawStroke(pdf, s)
	}
	pdf.SetAlpha(1, "Normal")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawStroke(pdf *gofpdf.Fpdf, s stroke.Stroke) {
	p := stroke.Trace(s, nil)
	c := s.Color
	pdf.SetAlpha(float64(c.A)/255, "Normal")
	if p.Dot {
		pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
		pdf.Circle(p.Start.X, p.Start.Y, s.Size/2, "F")
		return
	}
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(s.Size)
	pdf.MoveTo(p.Start.X, p.Start.Y)
	for _, seg := range p.Segments {
		pdf.CurveBezierCubicTo(seg.C1.X, seg.C1.Y, seg.C2.X, seg.C2.Y, seg.To.X, seg.To.Y)
	}
	pdf.DrawPath("D")
}
