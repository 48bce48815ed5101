package avatar

import (
	"io"
	"log/slog"
	"testing"
)

type camera struct{ target *Body }

func (c *camera) Follow(b *Body) { c.target = b }

func bodies() []*Body {
	return []*Body{{Name: "Tall"}, {Name: "Small"}, {Name: "Wide"}}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSwitchWrapsAndMovesCamera(t *testing.T) {
	cam := &camera{}
	bs := bodies()
	s, err := NewSwitcher(bs, false, cam, quietLogger())
	if err != nil {
		t.Fatalf("NewSwitcher failed: %v", err)
	}
	if cam.target != bs[0] || !bs[0].Movable || bs[1].Movable {
		t.Fatalf("Expected first body active at start")
	}

	for _, want := range []int{1, 2, 0} {
		s.KeyPressed()
		if s.Index() != want {
			t.Fatalf("Expected index %d, got %d", want, s.Index())
		}
		if cam.target != bs[want] {
			t.Errorf("Expected camera on %s, got %s", bs[want].Name, cam.target.Name)
		}
		for i, b := range bs {
			if (i == want) != (b.Movable && b.CanJump) {
				t.Errorf("Body %s: movable=%v jump=%v", b.Name, b.Movable, b.CanJump)
			}
		}
	}
}

func TestTriggerMode(t *testing.T) {
	s, _ := NewSwitcher(bodies(), true, nil, quietLogger())
	s.KeyPressed()
	if s.Index() != 0 {
		t.Errorf("Expected key ignored in trigger mode")
	}
	s.Enter(false)
	if s.Index() != 0 {
		t.Errorf("Expected non-player trigger ignored")
	}
	s.Enter(true)
	if s.Active().Name != "Small" {
		t.Errorf("Expected Small active, got %s", s.Active().Name)
	}
}

func TestKeyModeIgnoresTrigger(t *testing.T) {
	s, _ := NewSwitcher(bodies(), false, nil, quietLogger())
	s.Enter(true)
	if s.Index() != 0 {
		t.Errorf("Expected trigger ignored in key mode")
	}
}

func TestNoBodies(t *testing.T) {
	if _, err := NewSwitcher(nil, false, nil, nil); err == nil {
		t.Errorf("Expected error with no bodies")
	}
}
