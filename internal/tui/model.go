// Package tui renders a running game with Bubble Tea: the board grid, per
// player scores and freeze indicators, the round countdown, and keyboard
// input for human players. It consumes the engine's display events and talks
// back only through Player.OnSelect.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/settable/internal/deck"
	"github.com/lox/settable/internal/display"
	"github.com/lox/settable/internal/game"
)

const columns = 4

// shapes and shadings render the third and fourth card features.
var (
	shapes   = []string{"●", "▲", "■"}
	shadings = []string{"", "○", "◌"}
)

// keyGrids maps keyboard rows to board slots, one grid per human player.
// Left hand QWER/ASDF/ZXCV for the first, right hand for the second.
var keyGrids = []string{
	"qwerasdfzxcv",
	"uiopjkl;m,./",
}

type eventMsg struct {
	event display.Event
}

// Model is the Bubble Tea model for a game in progress.
type Model struct {
	cfg      game.Config
	geometry deck.Geometry
	events   <-chan display.Event
	onSelect func(player, slot int)
	cancel   func()

	board     []deck.Card
	tokens    [][]bool // [slot][player]
	scores    []int
	freezes   []time.Duration
	remaining time.Duration
	warn      bool
	countdown progress.Model

	winners  []int
	gameOver bool
	quitting bool
}

// New creates the model. onSelect routes a human player's key press into the
// engine; cancel aborts the game when the user quits mid-play.
func New(cfg game.Config, events <-chan display.Event, onSelect func(player, slot int), cancel func()) *Model {
	lipgloss.SetColorProfile(termenv.ColorProfile())

	board := make([]deck.Card, cfg.TableSize)
	tokens := make([][]bool, cfg.TableSize)
	for i := range board {
		board[i] = deck.NoCard
		tokens[i] = make([]bool, cfg.Players)
	}

	return &Model{
		cfg:       cfg,
		geometry:  cfg.Geometry(),
		events:    events,
		onSelect:  onSelect,
		cancel:    cancel,
		board:     board,
		tokens:    tokens,
		scores:    make([]int, cfg.Players),
		freezes:   make([]time.Duration, cfg.Players),
		remaining: cfg.TurnTimeout,
		countdown: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.waitForEvent()
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return eventMsg{event: ev}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case eventMsg:
		m.apply(msg.event)
		return m, m.waitForEvent()
	case tea.WindowSizeMsg:
		m.countdown.Width = min(msg.Width-4, 60)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.cancel()
		if m.gameOver {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.gameOver {
		return m, nil
	}

	key := msg.String()
	for player := 0; player < m.cfg.HumanPlayers && player < len(keyGrids); player++ {
		if slot := strings.Index(keyGrids[player], key); slot >= 0 && slot < m.cfg.TableSize {
			m.onSelect(player, slot)
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) apply(ev display.Event) {
	switch ev := ev.(type) {
	case display.CardPlaced:
		m.board[ev.Slot] = ev.Card
	case display.CardRemoved:
		m.board[ev.Slot] = deck.NoCard
	case display.TokenPlaced:
		m.tokens[ev.Slot][ev.Player] = true
	case display.TokenRemoved:
		m.tokens[ev.Slot][ev.Player] = false
	case display.ScoreChanged:
		m.scores[ev.Player] = ev.Score
	case display.FreezeChanged:
		m.freezes[ev.Player] = ev.Remaining
	case display.CountdownTick:
		m.remaining = ev.Remaining
		m.warn = ev.Warn
	case display.WinnersAnnounced:
		m.winners = ev.Players
		m.gameOver = true
	}
}

func (m *Model) View() string {
	if m.quitting && m.gameOver {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("settable"))
	b.WriteString("\n\n")
	b.WriteString(m.viewBoard())
	b.WriteString("\n")
	b.WriteString(m.viewCountdown())
	b.WriteString("\n\n")
	b.WriteString(m.viewPlayers())

	if m.gameOver {
		b.WriteString("\n\n")
		b.WriteString(WinnerStyle.Render(fmt.Sprintf("Game over! Winners: %v", m.winners)))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("press esc to exit"))
	} else if m.cfg.HumanPlayers > 0 {
		b.WriteString("\n\n")
		b.WriteString(HelpStyle.Render("select slots with qwer/asdf/zxcv · esc quits"))
	}
	return b.String()
}

func (m *Model) viewBoard() string {
	var rows []string
	for start := 0; start < m.cfg.TableSize; start += columns {
		var cells []string
		for slot := start; slot < start+columns && slot < m.cfg.TableSize; slot++ {
			cells = append(cells, m.viewSlot(slot))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) viewSlot(slot int) string {
	card := m.board[slot]
	if card == deck.NoCard {
		return EmptySlotStyle.Render("·")
	}

	style := SlotStyle
	var marks strings.Builder
	for player, has := range m.tokens[slot] {
		if has {
			marks.WriteString(lipgloss.NewStyle().
				Foreground(tokenColors[player%len(tokenColors)]).
				Render("●"))
		}
	}

	face := m.cardFace(card)
	if marks.Len() > 0 {
		face += "\n" + marks.String()
	}
	return style.Render(face)
}

// cardFace renders a card. The classic geometry gets count x shape glyphs
// coloured by the first feature and shaded by the fourth; anything else
// falls back to the numeric feature vector.
func (m *Model) cardFace(card deck.Card) string {
	f := m.geometry.FeaturesOf(card)
	if m.geometry.Features != 4 || m.geometry.Options != 3 {
		return m.geometry.String(card)
	}

	color := cardColors[f[0]]
	shape := shapes[f[2]]
	if f[3] > 0 {
		shape = shadings[f[3]]
		if shape == "" {
			shape = shapes[f[2]]
		}
	}
	face := strings.Repeat(shape, f[1]+1)
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render(face)
}

func (m *Model) viewCountdown() string {
	percent := 0.0
	if m.cfg.TurnTimeout > 0 {
		percent = float64(m.remaining) / float64(m.cfg.TurnTimeout)
	}
	label := fmt.Sprintf(" %2ds", int(m.remaining/time.Second))
	if m.warn {
		label = WarnStyle.Render(label)
	}
	return m.countdown.ViewAs(percent) + label
}

func (m *Model) viewPlayers() string {
	var lines []string
	for id := 0; id < m.cfg.Players; id++ {
		kind := "bot"
		if id < m.cfg.HumanPlayers {
			kind = "you"
		}
		line := fmt.Sprintf("player %d (%s)  %s", id, kind,
			ScoreStyle.Render(fmt.Sprintf("score %d", m.scores[id])))
		if m.freezes[id] > 0 {
			line += "  " + FreezeStyle.Render(fmt.Sprintf("frozen %ds", int(m.freezes[id]/time.Second)+1))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
