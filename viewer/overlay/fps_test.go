package overlay

import "testing"

func TestFpsNoRefreshBelowInterval(t *testing.T) {
	surface := newStubSurface(800, 600)
	fps := NewFpsOverlay(surface)

	fps.Draw(0.1)
	fps.Draw(0.1)

	if fps.Value() != "" {
		t.Fatalf("Value = %q before the first refresh, want empty", fps.Value())
	}
	if len(surface.texts) != 0 {
		t.Fatal("drew a readout before the first refresh")
	}
}

func TestFpsRefreshAtInterval(t *testing.T) {
	surface := newStubSurface(800, 600)
	fps := NewFpsOverlay(surface)

	// Four 100ms frames: 0.4s accumulated, 4 frames, 10 FPS.
	for i := 0; i < 4; i++ {
		fps.Draw(0.1)
	}

	if fps.Value() != "10 FPS" {
		t.Fatalf("Value = %q, want %q", fps.Value(), "10 FPS")
	}
	if len(surface.texts) != 1 || surface.texts[0] != "10 FPS" {
		t.Fatalf("texts = %v, want one refresh", surface.texts)
	}
}

func TestFpsRedrawsCachedValueBetweenRefreshes(t *testing.T) {
	surface := newStubSurface(800, 600)
	fps := NewFpsOverlay(surface)

	for i := 0; i < 4; i++ {
		fps.Draw(0.1)
	}
	// Below threshold again: the cached text is re-drawn because the surface
	// is repainting, but the value does not change.
	fps.Draw(0.1)

	if len(surface.texts) != 2 {
		t.Fatalf("texts = %d, want cached redraw", len(surface.texts))
	}
	if surface.texts[1] != "10 FPS" {
		t.Fatalf("cached redraw = %q, want %q", surface.texts[1], "10 FPS")
	}
}

func TestFpsDefersRefreshWhenSurfaceNotRepainting(t *testing.T) {
	surface := newStubSurface(800, 600)
	fps := NewFpsOverlay(surface)

	surface.wants = false
	for i := 0; i < 4; i++ {
		fps.Draw(0.1)
	}

	if surface.redrawRequests == 0 {
		t.Fatal("no repaint requested for a due refresh")
	}
	if fps.Value() != "" {
		t.Fatalf("Value = %q, want refresh deferred", fps.Value())
	}

	// The repaint request lands: the deferred refresh happens with the
	// preserved accumulator (0.5s, 5 frames = 10 FPS).
	surface.wants = true
	fps.Draw(0.1)
	if fps.Value() != "10 FPS" {
		t.Fatalf("Value = %q after deferred refresh, want %q", fps.Value(), "10 FPS")
	}
}

func TestFpsRequiresSurface(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil surface")
		}
	}()
	NewFpsOverlay(nil)
}
