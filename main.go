// Command numguess runs the guessing game locally in the terminal: the
// controller is simulated in-process and the multiplexed display is drawn as
// seven-segment art.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/segview/numguess/render"
	"github.com/segview/numguess/sim"
)

const fps = 60

var tickHzFlag = flag.Int("tick-hz", 0, "override the simulation tick rate")

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type gameUI struct {
	ctrl          sim.Controller
	panel         sim.Panel
	ticksPerFrame int
	holdLen       int
	hold          [3]int // remaining ticks each raw button line stays high
	resetHold     int
	quitting      bool
}

func newGameUI(cfg sim.Config) gameUI {
	ctrl := sim.New(cfg)
	ticksPerFrame := cfg.TickHz / fps
	if ticksPerFrame < 1 {
		ticksPerFrame = 1
	}
	return gameUI{
		ctrl:          ctrl,
		panel:         sim.NewPanel(),
		ticksPerFrame: ticksPerFrame,
		holdLen:       int(ctrl.Timing().DebounceTicks) + 6,
	}
}

func (m gameUI) Init() tea.Cmd { return tickCmd() }

func (m gameUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "s":
			m.hold[0] = m.holdLen
		case "i", "up", "+":
			m.hold[1] = m.holdLen
		case "enter":
			m.hold[2] = m.holdLen
		case "r":
			m.resetHold = 1
		}
		return m, nil

	case tickMsg:
		for i := 0; i < m.ticksPerFrame; i++ {
			in := sim.Inputs{
				Reset:     m.resetHold > 0,
				Start:     m.hold[0] > 0,
				Increment: m.hold[1] > 0,
				Submit:    m.hold[2] > 0,
			}
			if m.resetHold > 0 {
				m.resetHold--
			}
			for b := range m.hold {
				if m.hold[b] > 0 {
					m.hold[b]--
				}
			}
			var out sim.Outputs
			m.ctrl, out = m.ctrl.Step(in)
			m.panel.Observe(out)
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m gameUI) View() string {
	if m.quitting {
		return ""
	}
	g := m.ctrl.Game
	status := fmt.Sprintf("state: %s   guess: %d   attempts: %d   result: %s",
		g.State, g.Guess, g.Attempts, g.Result)
	help := "[s]tart  [i]ncrement  [enter] submit  [r]eset  [q]uit"
	return render.Board(m.panel.Glyphs) + "\n" +
		render.Status(status) + "\n" + render.Status(help) + "\n"
}

func main() {
	flag.Parse()

	cfg := sim.DefaultConfig()
	if *tickHzFlag > 0 {
		cfg.TickHz = *tickHzFlag
	}

	p := tea.NewProgram(newGameUI(cfg))
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
