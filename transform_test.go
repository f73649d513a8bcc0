package symxform

import (
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestIdentity(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	id := Identity()
	if !id.IsIdentity() {
		t.Errorf("Expected Identity() to report IsIdentity()")
	}
	p := V(1, 2, 3)
	if got := id.TransformPoint(p); !got.Equal(p) {
		t.Errorf("Expected identity to fix points, got %v", got)
	}
}

func TestPrePostTranslationSplit(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := Identity()
	if err := tr.SetRotation(EMAN, EulerParams{"az": 30, "alt": 40, "phi": 50}); err != nil {
		t.Fatalf("SetRotation failed: %v", err)
	}
	tr.SetPretrans(V(1, 2, 3))
	if got := tr.GetPretrans(); !got.Equal(V(1, 2, 3)) {
		t.Errorf("Expected pre-translation to round trip, got %v", got)
	}
	tr.SetPosttrans(V(5, -1, 2))
	if got := tr.GetPosttrans(); !got.Equal(V(5, -1, 2)) {
		t.Errorf("Expected post-translation to round trip, got %v", got)
	}
	// Setting post-translation must not disturb the already-set pre-translation.
	if got := tr.GetPretrans(); !got.Equal(V(1, 2, 3)) {
		t.Errorf("Expected pre-translation to survive a post-translation change, got %v", got)
	}
}

func TestScaleGetSetApply(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := Identity()
	if got := tr.GetScale(); math.Abs(got-1) > Epsilon {
		t.Errorf("Expected identity scale 1, got %g", got)
	}
	if err := tr.SetScale(2); err != nil {
		t.Fatalf("SetScale failed: %v", err)
	}
	if got := tr.GetScale(); math.Abs(got-2) > Epsilon {
		t.Errorf("Expected scale 2 after SetScale, got %g", got)
	}
	tr.ApplyScale(0.5)
	if got := tr.GetScale(); math.Abs(got-1) > Epsilon {
		t.Errorf("Expected scale 1 after ApplyScale(0.5), got %g", got)
	}
}

func TestSetScaleDegenerate(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	var zero Transform
	if err := zero.SetScale(2); err == nil {
		t.Errorf("Expected SetScale on a degenerate transform to fail")
	}
}

func TestInverseCompose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := Identity()
	if err := tr.SetRotation(EMAN, EulerParams{"az": 30, "alt": 40, "phi": 50}); err != nil {
		t.Fatalf("SetRotation failed: %v", err)
	}
	tr.SetPretrans(V(1, 0, 0))
	inv, err := tr.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	result := inv.Compose(tr)
	if !result.IsIdentity() {
		t.Errorf("Expected inverse composed with transform to be identity, got %v", result)
	}
}

func TestComposeAppliesRightThenLeft(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := Identity()
	a.SetPretrans(V(1, 0, 0))
	b := Identity()
	b.SetPretrans(V(0, 1, 0))
	c := Compose(a, b)
	p := c.TransformPoint(Origin)
	q := a.TransformPoint(b.TransformPoint(Origin))
	if !p.Equal(q) {
		t.Errorf("Expected Compose(a,b) applied to origin == a(b(origin)), got %v vs %v", p, q)
	}
}

func TestTranspose(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	tr := Identity()
	if err := tr.SetRotation(EMAN, EulerParams{"az": 30, "alt": 40, "phi": 50}); err != nil {
		t.Fatalf("SetRotation failed: %v", err)
	}
	inv, err := tr.Inverse()
	if err != nil {
		t.Fatalf("Inverse failed: %v", err)
	}
	rotOnly := tr
	rotOnly.Transpose()
	p := V(0.3, -0.2, 0.8)
	if got, want := rotOnly.Rotate(p), inv.Rotate(p); !got.Equal(want) {
		t.Errorf("Expected transpose of a pure rotation to equal its inverse, got %v want %v", got, want)
	}
}
