package tui

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/satchel/internal/charselect"
	"github.com/tatianab/satchel/internal/fight"
	"github.com/tatianab/satchel/internal/game"
	"github.com/tatianab/satchel/internal/models"
	"github.com/tatianab/satchel/internal/sched"
)

// Frame is the host tick that drives the scheduler.
const Frame = 50 * time.Millisecond

const (
	maxLogLines = 200
	// cueFrames is how long a cue stays on the status line.
	cueFrames = 20
)

type frameMsg time.Time

type promptMode int

const (
	promptNone promptMode = iota
	promptSave
	promptLoad
)

// cueBoard stands in for audio: the last cue is shown on the status line.
type cueBoard struct {
	last  string
	age   int
	plays int
}

func (c *cueBoard) PlayCue(name string) {
	c.last = name
	c.age = 0
	c.plays++
}

func (c *cueBoard) tick() {
	if c.last == "" {
		return
	}
	c.age++
	if c.age > cueFrames {
		c.last = ""
	}
}

// Option configures an App.
type Option func(*App)

// WithSaveDir sets where save slots are written.
func WithSaveDir(dir string) Option {
	return func(a *App) { a.saveDir = dir }
}

// WithRand sets the source used to pick a computer opponent.
func WithRand(r *rand.Rand) Option {
	return func(a *App) { a.rng = r }
}

// App is the bubbletea model hosting one game session.
type App struct {
	session *game.Session
	field   *game.Field
	sched   *sched.Scheduler
	screen  *charselect.Screen
	match   *fight.Match
	panel   *InventoryPanel
	cues    *cueBoard

	keys   keyMap
	help   help.Model
	log    viewport.Model
	input  textinput.Model
	prompt promptMode

	saveDir string
	lines   []string
	rng     *rand.Rand
	logger  *slog.Logger
	width   int
	height  int
}

// New builds the host for s, starting on the field.
func New(s *game.Session, opts ...Option) (App, error) {
	field, err := game.NewField(s)
	if err != nil {
		return App{}, fmt.Errorf("building field: %w", err)
	}

	ti := textinput.New()
	ti.Placeholder = "slot name"
	ti.CharLimit = 32
	ti.Width = 24

	a := App{
		session: s,
		field:   field,
		sched:   sched.New(),
		cues:    &cueBoard{},
		keys:    defaultKeys(),
		help:    help.New(),
		log:     viewport.New(60, 8),
		input:   ti,
		saveDir: models.DefaultSaveDir,
		logger:  s.Logger(),
	}
	for _, opt := range opts {
		opt(&a)
	}
	s.SetCuePlayer(a.cues)
	a.panel = NewInventoryPanel(s.Ledger(), a.logger)

	title := s.Content().Title
	if title == "" {
		title = "Satchel"
	}
	a.addLines("Welcome to " + title + ".")
	a.addLines(field.TakeNotes()...)
	return a, nil
}

func tick() tea.Cmd {
	return tea.Tick(Frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (a App) Init() tea.Cmd {
	return tick()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.log.Width = max(20, int(float64(msg.Width)*0.70))
		a.log.Height = max(3, msg.Height-14)
		a.refreshLog()
		return a, nil

	case frameMsg:
		a.step()
		return a, tick()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.field.Quit) {
			return a, tea.Quit
		}
		if a.prompt != promptNone {
			return a.updatePrompt(msg)
		}
		switch a.session.Scene() {
		case game.SceneSelect:
			a.updateSelect(msg)
		case game.SceneFight:
			a.updateFight(msg)
		default:
			cmd = a.updateField(msg)
		}
		return a, cmd
	}

	if a.prompt != promptNone {
		a.input, cmd = a.input.Update(msg)
	}
	return a, cmd
}

// step advances one frame: scheduled tasks, the select latch, then any
// scene change they asked for.
func (a *App) step() {
	a.sched.Advance(Frame)
	if a.screen != nil {
		a.screen.Tick()
	}
	a.cues.tick()
	a.takeScene()
}

func (a *App) takeScene() {
	name, ok := a.session.TakeScene()
	if !ok {
		return
	}
	switch name {
	case game.SceneSelect:
		a.enterSelect()
	case game.SceneFight:
		a.enterFight()
	case game.SceneField:
		a.enterField()
	default:
		a.logger.Warn("unknown scene, returning to the field", "scene", name)
		a.toField()
	}
}

func (a *App) toField() {
	a.session.LoadScene(game.SceneField)
	a.takeScene()
}

func (a *App) enterField() {
	if a.screen != nil {
		a.screen.Leave()
		a.screen = nil
	}
	a.match = nil
}

func (a *App) enterSelect() {
	c := a.session.Content()
	cfg := charselect.Config{
		Slots:     len(c.Roster),
		Columns:   c.Select.Columns,
		TwoPlayer: c.Select.TwoPlayer,
		Fanfare:   time.Duration(c.Select.FanfareMS) * time.Millisecond,
		NextScene: c.Select.NextScene,
	}
	scr, err := charselect.New(cfg, a.session, a.sched, a.logger)
	if err != nil {
		a.logger.Error("character select failed", "error", err)
		a.addLines("Character select is unavailable: " + err.Error())
		a.toField()
		return
	}
	a.screen = scr
}

func (a *App) enterFight() {
	if a.screen != nil {
		a.screen.Leave()
		a.screen = nil
	}
	roster := make([]fight.Character, 0, len(a.session.Content().Roster))
	for _, f := range a.session.Content().Roster {
		roster = append(roster, fight.Character{Name: f.Name, Glyph: f.Glyph})
	}
	m, err := fight.Setup(a.session.Selection(), roster, a.rng, a.logger)
	if err != nil {
		a.logger.Error("fight setup failed", "error", err)
		a.addLines("The fight could not start: " + err.Error())
		a.toField()
		return
	}
	a.match = &m
}

func (a *App) updateField(msg tea.KeyMsg) tea.Cmd {
	k := a.keys.field
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, k.Left):
		a.field.Move(-1)
	case key.Matches(msg, k.Right):
		a.field.Move(1)
	case key.Matches(msg, k.Advance):
		a.field.Advance()
	case key.Matches(msg, k.Switch):
		a.field.SwitchKey()
	case key.Matches(msg, k.Select):
		a.session.LoadScene(game.SceneSelect)
		a.takeScene()
	case key.Matches(msg, k.Save):
		cmd = a.openPrompt(promptSave)
	case key.Matches(msg, k.Load):
		cmd = a.openPrompt(promptLoad)
	case key.Matches(msg, k.Inventory):
		a.addLines(a.panel.LogContents()...)
	}
	a.addLines(a.field.TakeNotes()...)
	return cmd
}

func (a *App) updateSelect(msg tea.KeyMsg) {
	k := a.keys.sel
	if key.Matches(msg, k.Back) {
		a.toField()
		return
	}
	edges := []struct {
		b key.Binding
		p charselect.Player
		s charselect.Signal
	}{
		{k.P1Left, charselect.P1, charselect.Left},
		{k.P1Right, charselect.P1, charselect.Right},
		{k.P1Up, charselect.P1, charselect.Up},
		{k.P1Down, charselect.P1, charselect.Down},
		{k.P1Confirm, charselect.P1, charselect.Confirm},
		{k.P2Left, charselect.P2, charselect.Left},
		{k.P2Right, charselect.P2, charselect.Right},
		{k.P2Up, charselect.P2, charselect.Up},
		{k.P2Down, charselect.P2, charselect.Down},
		{k.P2Confirm, charselect.P2, charselect.Confirm},
	}
	for _, e := range edges {
		if key.Matches(msg, e.b) {
			a.screen.HandleEdge(e.p, e.s)
			return
		}
	}
}

func (a *App) updateFight(msg tea.KeyMsg) {
	if key.Matches(msg, a.keys.fight.Back) {
		a.toField()
	}
}

func (a *App) openPrompt(mode promptMode) tea.Cmd {
	a.prompt = mode
	a.input.Reset()
	a.input.Placeholder = "slot name"
	if mode == promptSave {
		a.input.Prompt = "Save as: "
	} else {
		a.input.Prompt = "Load: "
		saves, err := models.ListSaves(a.saveDir)
		if err != nil {
			a.logger.Warn("listing saves", "dir", a.saveDir, "error", err)
		} else if len(saves) > 0 {
			a.input.Placeholder = strings.Join(saves, ", ")
		}
	}
	return a.input.Focus()
}

func (a App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := a.keys.prompt
	switch {
	case key.Matches(msg, k.Cancel):
		a.closePrompt()
		return a, nil
	case key.Matches(msg, k.Accept):
		name := strings.TrimSpace(a.input.Value())
		if name == "" {
			name = "current"
		}
		mode := a.prompt
		a.closePrompt()
		if mode == promptSave {
			if err := a.session.Save(a.saveDir, name); err != nil {
				a.logger.Error("save failed", "slot", name, "error", err)
				a.addLines("Save failed: " + err.Error())
			} else {
				a.addLines("Saved to " + name + ".")
			}
		} else {
			if err := a.session.Load(a.saveDir, name); err != nil {
				a.logger.Error("load failed", "slot", name, "error", err)
				a.addLines("Load failed: " + err.Error())
			} else {
				a.addLines("Loaded " + name + ".")
			}
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) closePrompt() {
	a.prompt = promptNone
	a.input.Blur()
	a.input.Reset()
}

func (a *App) addLines(lines ...string) {
	if len(lines) == 0 {
		return
	}
	a.lines = append(a.lines, lines...)
	if n := len(a.lines) - maxLogLines; n > 0 {
		a.lines = a.lines[n:]
	}
	a.refreshLog()
}

func (a *App) refreshLog() {
	a.log.SetContent(strings.Join(a.lines, "\n"))
	a.log.GotoBottom()
}

// Close releases the inventory subscription.
func (a App) Close() {
	a.panel.Close()
}

// Lines returns the event log.
func (a App) Lines() []string { return a.lines }

func (a App) Field() *game.Field { return a.field }

func (a App) Session() *game.Session { return a.session }

// Screen returns the character select screen while it is showing.
func (a App) Screen() *charselect.Screen { return a.screen }

// Match returns the current fight, nil outside the fight scene.
func (a App) Match() *fight.Match { return a.match }

func (a App) Panel() *InventoryPanel { return a.panel }

func (a App) View() string {
	var s string
	switch a.session.Scene() {
	case game.SceneSelect:
		s = a.viewSelect()
	case game.SceneFight:
		s = a.viewFight()
	default:
		s = a.viewField()
	}
	return "\n" + s + "\n"
}

func (a App) status() string {
	if a.cues.last == "" {
		return ""
	}
	return statusStyle.Render("♪ " + a.cues.last)
}

func (a App) viewField() string {
	title := titleStyle.Render(a.session.Content().Title)
	strip := a.renderStrip()

	balloon := ""
	if npc := a.field.Talking(); npc != nil {
		b := npc.Balloon()
		text := npc.Name + ": " + b.Text
		if b.Legend {
			text += "\n" + legendStyle.Render(b.LegendText)
		}
		balloon = balloonStyle.Render(text)
	}

	body := "Body: " + a.field.Switcher().Active().Name
	left := lipgloss.JoinVertical(lipgloss.Left, title, "", strip, body, balloon, "", a.log.View())
	panelWidth := max(18, int(float64(a.width)*0.25))
	main := lipgloss.JoinHorizontal(lipgloss.Top, left, a.panel.View(panelWidth))

	bottom := helpStyle.Render(a.help.View(a.keys.field))
	if a.prompt != promptNone {
		bottom = a.input.View() + "\n" + helpStyle.Render(a.help.View(a.keys.prompt))
	}
	return lipgloss.JoinVertical(lipgloss.Left, main, a.status(), bottom)
}

func (a App) viewSelect() string {
	if a.screen == nil {
		return ""
	}
	roster := a.session.Content().Roster
	cols := a.screen.Config().Columns
	p1, p2 := a.screen.Index(charselect.P1), -1
	if a.screen.Config().TwoPlayer {
		p2 = a.screen.Index(charselect.P2)
	}

	var rows []string
	for start := 0; start < len(roster); start += cols {
		var cells []string
		for i := start; i < min(start+cols, len(roster)); i++ {
			style := idleStyle
			if a.screen.Ready() {
				switch {
				case i == p1 && i == p2:
					style = bothStyle
				case i == p1:
					style = p1Style
				case i == p2:
					style = p2Style
				}
			}
			cells = append(cells, style.Width(12).Render(cellLabel(roster[i].Glyph, roster[i].Name)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	players := []string{a.playerLine("P1", charselect.P1, roster)}
	if a.screen.Config().TwoPlayer {
		players = append(players, a.playerLine("P2", charselect.P2, roster))
	}
	footer := ""
	if a.screen.Loading() {
		footer = confirmedStyle.Render("Get ready!")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("CHOOSE YOUR FIGHTER"), "",
		lipgloss.JoinVertical(lipgloss.Left, rows...), "",
		strings.Join(players, "   "), footer,
		a.status(),
		helpStyle.Render(a.help.View(a.keys.sel)),
	)
}

func (a App) playerLine(label string, p charselect.Player, roster []models.FighterSpec) string {
	name := roster[a.screen.Index(p)].Name
	if a.screen.Confirmed(p) {
		return confirmedStyle.Render(label + ": " + name + " ✓")
	}
	return label + ": " + name
}

func (a App) viewFight() string {
	if a.match == nil {
		return ""
	}
	m := a.match
	line := fmt.Sprintf("%s  vs  %s",
		fighterLabel(m.P1), fighterLabel(m.P2))
	var notes []string
	if m.Fallback {
		notes = append(notes, dimStyle.Render("No selection found, default fighters spawned."))
	}
	if m.RandomP2 {
		notes = append(notes, dimStyle.Render("Player 2 was picked at random."))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("FIGHT!"), "",
		line, "",
		strings.Join(notes, "\n"),
		helpStyle.Render(a.help.View(a.keys.fight)),
	)
}

func fighterLabel(f fight.Fighter) string {
	return fmt.Sprintf("%s (%s/%s, jump %s)",
		cellLabel(f.Character.Glyph, f.Character.Name), f.Controls.Left, f.Controls.Right, f.Controls.Jump)
}

// Run starts a bubbletea program for app and releases it when the program
// exits.
func Run(app App, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(app, opts...)
	final, err := p.Run()
	if a, ok := final.(App); ok {
		a.Close()
	} else {
		app.Close()
	}
	return err
}
