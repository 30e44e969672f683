package gesture

import (
	"testing"

	"github.com/example/drawdle/internal/geom"
)

func TestSinglePointerDraw(t *testing.T) {
	r := New()
	if in := r.Down(1, geom.Pt(10, 10), StartDraw); in.Kind != ToolDown || in.Pos != geom.Pt(10, 10) {
		t.Fatalf("down = %+v", in)
	}
	if in := r.Move(1, geom.Pt(12, 10)); in.Kind != ToolMove || in.Pos != geom.Pt(12, 10) {
		t.Fatalf("move = %+v", in)
	}
	if in := r.Up(1); in.Kind != ToolUp {
		t.Fatalf("up = %+v", in)
	}
	if r.Drawing() || r.Count() != 0 {
		t.Fatal("recognizer should be idle")
	}
}

func TestGrabPans(t *testing.T) {
	r := New()
	if in := r.Down(1, geom.Pt(0, 0), StartGrab); in.Kind != None || !r.Grabbing() {
		t.Fatalf("grab down = %+v", in)
	}
	in := r.Move(1, geom.Pt(5, -3))
	if in.Kind != Pan || in.Delta != geom.Pt(5, -3) {
		t.Fatalf("grab move = %+v", in)
	}
	if in := r.Up(1); in.Kind != None || r.Grabbing() {
		t.Fatalf("grab up = %+v", in)
	}
}

func TestTapHasNoDrag(t *testing.T) {
	r := New()
	if in := r.Down(1, geom.Pt(3, 4), StartTap); in.Kind != ToolDown {
		t.Fatalf("tap = %+v", in)
	}
	if in := r.Move(1, geom.Pt(9, 9)); in.Kind != None {
		t.Fatalf("move after tap = %+v", in)
	}
	if in := r.Up(1); in.Kind != None {
		t.Fatalf("up after tap = %+v", in)
	}
}

func TestPinchZoomDirection(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartGrab)
	r.Down(2, geom.Pt(100, 0), StartGrab)

	if in := r.Move(2, geom.Pt(110, 0)); in.Kind != Pinch || in.Ratio != 1 {
		t.Fatalf("first sample should only seed the distance: %+v", in)
	}
	in := r.Move(2, geom.Pt(120, 0))
	if in.Ratio != ZoomStep {
		t.Fatalf("spreading ratio %v", in.Ratio)
	}
	if in.Delta != geom.Pt(5, 0) {
		t.Fatalf("pinch pan should be the mean delta, got %v", in.Delta)
	}
	if in := r.Move(1, geom.Pt(30, 0)); in.Ratio != 1/ZoomStep {
		t.Fatalf("closing ratio %v", in.Ratio)
	}
}

func TestPinchNoJumpAfterRegrab(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartDraw)
	r.Down(2, geom.Pt(100, 0), StartDraw)
	r.Move(2, geom.Pt(100, 0))
	r.Move(2, geom.Pt(200, 0))
	r.Up(2)
	r.Down(3, geom.Pt(10, 0), StartDraw)
	if in := r.Move(3, geom.Pt(11, 0)); in.Ratio != 1 {
		t.Fatalf("first sample after returning to two pointers zoomed by %v", in.Ratio)
	}
	if in := r.Move(3, geom.Pt(13, 0)); in.Ratio != ZoomStep {
		t.Fatalf("second sample ratio %v", in.Ratio)
	}
}

func TestThirdPointerIgnored(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartDraw)
	r.Down(2, geom.Pt(50, 0), StartDraw)
	r.Down(3, geom.Pt(500, 500), StartDraw)
	if in := r.Move(3, geom.Pt(900, 900)); in.Kind != None {
		t.Fatalf("third pointer produced %+v", in)
	}
	if r.Count() != 3 {
		t.Fatalf("count %d", r.Count())
	}
}

func TestZeroDistanceSkipsZoom(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartGrab)
	r.Down(2, geom.Pt(10, 0), StartGrab)
	r.Move(2, geom.Pt(20, 0))
	if in := r.Move(2, geom.Pt(0, 0)); in.Ratio != 1 {
		t.Fatalf("zero distance ratio %v", in.Ratio)
	}
}

func TestDrawFinalizesOnlyWhenAllLifted(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartDraw)
	r.Down(2, geom.Pt(10, 0), StartDraw)
	if in := r.Up(1); in.Kind != None {
		t.Fatalf("lifting one of two pointers = %+v", in)
	}
	if in := r.Up(2); in.Kind != ToolUp {
		t.Fatalf("lifting last pointer = %+v", in)
	}
	if in := r.Up(42); in.Kind != None {
		t.Fatalf("unknown pointer = %+v", in)
	}
}

func TestResetEndsDrawing(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartDraw)
	if in := r.Reset(); in.Kind != ToolUp || r.Count() != 0 {
		t.Fatalf("reset = %+v", in)
	}
}

func TestDrawNotContinuedBySecondPointer(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(100, 100), StartDraw)
	r.Down(2, geom.Pt(500, 300), StartDraw)
	r.Move(2, geom.Pt(510, 310))
	if in := r.Up(1); in.Kind != None {
		t.Fatalf("first pointer up while another is down = %+v", in)
	}
	if in := r.Move(2, geom.Pt(530, 330)); in.Kind != None {
		t.Fatalf("remaining pointer extended the stroke: %+v", in)
	}
	if in := r.Up(2); in.Kind != ToolUp {
		t.Fatalf("last up = %+v", in)
	}
}

func TestNewPinchPairReseedsDistance(t *testing.T) {
	r := New()
	r.Down(1, geom.Pt(0, 0), StartGrab)
	r.Down(2, geom.Pt(100, 0), StartGrab)
	r.Down(3, geom.Pt(0, 500), StartGrab)
	r.Move(2, geom.Pt(105, 0))
	r.Move(2, geom.Pt(110, 0))

	// pointer 3 pairs with pointer 2 now, at a much larger distance
	r.Up(1)
	if in := r.Move(3, geom.Pt(0, 499)); in.Kind != Pinch || in.Ratio != 1 {
		t.Fatalf("first sample of the new pair should only seed the distance: %+v", in)
	}
	if in := r.Move(3, geom.Pt(0, 490)); in.Ratio >= 1 {
		t.Fatalf("closing the new pair should shrink, got ratio %v", in.Ratio)
	}
}
