package export

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/example/drawdle/internal/geom"
	"github.com/example/drawdle/internal/stroke"
)

func TestPDF(t *testing.T) {
	strokes := []stroke.Stroke{
		{ID: 1, Tool: stroke.ToolBrush, Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}}, Color: color.NRGBA{A: 255}, Size: 2, Active: true},
		{ID: 2, Tool: stroke.ToolLine, Points: []geom.Point{{X: 0, Y: 0}, {X: 700, Y: 400}}, Color: color.NRGBA{R: 255, A: 128}, Size: 4, Active: true},
		{ID: 3, Tool: stroke.ToolBrush, Points: []geom.Point{{X: 5, Y: 5}}, Color: color.NRGBA{A: 255}, Size: 6, Active: true},
		{ID: 4, Tool: stroke.ToolBrush, Points: []geom.Point{{X: 5, Y: 5}}, Color: color.NRGBA{A: 255}, Size: 6},
	}
	var buf bytes.Buffer
	if err := PDF(&buf, strokes, 720, 480, color.NRGBA{255, 255, 255, 255}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}
	if !bytes.Contains(buf.Bytes(), []byte("720.00")) || !bytes.Contains(buf.Bytes(), []byte("480.00")) {
		t.Fatal("page should match the paper size")
	}
}

func TestPDFRejectsEmptyPaper(t *testing.T) {
	if err := PDF(&bytes.Buffer{}, nil, 0, 480, color.NRGBA{}); err == nil {
		t.Fatal("expected error")
	}
}
