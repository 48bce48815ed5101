// Package avatar lets the player hop between several bodies. Only the active
// body moves and jumps; the camera follows it.
package avatar

import (
	"errors"
	"log/slog"
)

// Body is one controllable character on the field.
type Body struct {
	Name string
	// Movable and CanJump are the controls switched with the body.
	Movable bool
	CanJump bool
}

// Follower is the camera collaborator.
type Follower interface {
	Follow(b *Body)
}

// Switcher owns the body list and the index of the active body.
type Switcher struct {
	bodies     []*Body
	current    int
	useTrigger bool
	camera     Follower
	logger     *slog.Logger
}

// NewSwitcher activates the first body. With useTrigger set, bodies switch
// when the player enters a switch pad; otherwise on the switch key.
func NewSwitcher(bodies []*Body, useTrigger bool, camera Follower, logger *slog.Logger) (*Switcher, error) {
	if len(bodies) == 0 {
		return nil, errors.New("avatar switcher needs at least one body")
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &Switcher{bodies: bodies, useTrigger: useTrigger, camera: camera, logger: logger}
	for i := range bodies {
		if i != 0 {
			s.setEnabled(i, false)
		}
	}
	s.activate(0)
	return s, nil
}

// Enter is the switch pad trigger.
func (s *Switcher) Enter(isPlayer bool) {
	if s.useTrigger && isPlayer {
		s.Switch()
	}
}

// KeyPressed is the switch key edge.
func (s *Switcher) KeyPressed() {
	if !s.useTrigger {
		s.Switch()
	}
}

// Switch deactivates the current body and activates the next one, wrapping
// around after the last.
func (s *Switcher) Switch() {
	s.setEnabled(s.current, false)
	s.logger.Debug("deactivated body", "body", s.bodies[s.current].Name)
	s.current = (s.current + 1) % len(s.bodies)
	s.activate(s.current)
}

func (s *Switcher) activate(i int) {
	s.setEnabled(i, true)
	b := s.bodies[i]
	if s.camera != nil {
		s.camera.Follow(b)
		s.logger.Debug("camera target set", "body", b.Name)
	}
	s.logger.Debug("activated body", "body", b.Name)
}

func (s *Switcher) setEnabled(i int, on bool) {
	s.bodies[i].Movable = on
	s.bodies[i].CanJump = on
}

// Active returns the body under control.
func (s *Switcher) Active() *Body { return s.bodies[s.current] }

// Index returns the active body's position in the list.
func (s *Switcher) Index() int { return s.current }

// UsesTrigger reports whether switching happens on pads rather than the key.
func (s *Switcher) UsesTrigger() bool { return s.useTrigger }

// Bodies returns the body list.
func (s *Switcher) Bodies() []*Body { return s.bodies }
