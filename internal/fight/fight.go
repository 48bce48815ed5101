package fight

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/tatianab/satchel/internal/charselect"
)

// Character is one roster entry, in the same order as the select grid.
type Character struct {
	Name  string
	Glyph string
}

// Controls names the keys a fighter answers to.
type Controls struct {
	Scheme string
	Left   string
	Right  string
	Jump   string
}

var (
	ArrowKeys = Controls{Scheme: "arrows", Left: "left", Right: "right", Jump: "enter"}
	WASD      = Controls{Scheme: "wasd", Left: "a", Right: "d", Jump: "space"}
)

// Fighter is a spawned character with its controls.
type Fighter struct {
	Index     int
	Character Character
	Controls  Controls
}

// Match is the pair of fighters for the fight scene.
type Match struct {
	P1, P2 Fighter
	// Fallback is set when no selection was available.
	Fallback bool
	// RandomP2 is set when P2 was picked for a single player.
	RandomP2 bool
}

// Setup builds the match from the stored selection. Without a selection it
// falls back to the first two roster entries.
func Setup(sel *charselect.Selection, roster []Character, rng *rand.Rand, logger *slog.Logger) (Match, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(roster) == 0 {
		return Match{}, errors.New("empty roster")
	}

	if sel == nil {
		logger.Warn("no character selection found, spawning default characters")
		if len(roster) < 2 {
			return Match{}, fmt.Errorf("need at least 2 characters for the default match, have %d", len(roster))
		}
		return Match{
			P1:       fighter(roster, 0, ArrowKeys),
			P2:       fighter(roster, 1, WASD),
			Fallback: true,
		}, nil
	}

	p1, p2 := sel.P1, sel.P2
	if p1 < 0 || p1 >= len(roster) {
		return Match{}, fmt.Errorf("player 1 index %d out of range", p1)
	}
	m := Match{}
	if p2 < 0 {
		p2 = randomExcluding(rng, len(roster), p1)
		m.RandomP2 = true
	}
	if p2 >= len(roster) {
		return Match{}, fmt.Errorf("player 2 index %d out of range", p2)
	}
	m.P1 = fighter(roster, p1, ArrowKeys)
	m.P2 = fighter(roster, p2, WASD)
	return m, nil
}

func fighter(roster []Character, i int, c Controls) Fighter {
	return Fighter{Index: i, Character: roster[i], Controls: c}
}

// randomExcluding picks an index in [0, n) other than excluded. With a single
// entry there is nothing else to pick.
func randomExcluding(rng *rand.Rand, n, excluded int) int {
	if n <= 1 {
		return excluded
	}
	var i int
	if rng == nil {
		i = rand.IntN(n - 1)
	} else {
		i = rng.IntN(n - 1)
	}
	if i >= excluded {
		i++
	}
	return i
}
