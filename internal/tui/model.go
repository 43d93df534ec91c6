// SPDX-License-Identifier: EPL-2.0

// Package tui is the interactive demo front-end: it lists channels and their
// playbacks and maps keys to manager operations.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/audpool"
)

const volumeStep = 10

type tickMsg time.Time

// Model is the bubbletea model of the demo.
type Model struct {
	mgr       *audpool.Manager
	channels  []string
	addresses []string
	interval  time.Duration

	selected int
	clip     int
	last     time.Time
	status   string
	width    int
	height   int
}

// New returns a model playing addresses on the channels of mgr. Fades are
// driven by the model every interval.
func New(mgr *audpool.Manager, addresses []string, interval time.Duration) Model {
	return Model{
		mgr:       mgr,
		channels:  mgr.Channels(),
		addresses: addresses,
		interval:  interval,
		status:    "ready",
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		m.last = now
		m.mgr.Tick(dt)
		return m, m.tick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
	case "down", "j":
		if m.selected < len(m.channels)-1 {
			m.selected++
		}
	case "left", "h":
		if m.clip > 0 {
			m.clip--
		}
	case "right", "l":
		if m.clip < len(m.addresses)-1 {
			m.clip++
		}
	case "enter", " ":
		m.play()
	case "s":
		m.report("stop", m.mgr.Stop(m.channel()))
	case "f":
		m.report("force stop", m.mgr.ForceStop(m.channel()))
	case "+", "=":
		m.nudge(volumeStep)
	case "-":
		m.nudge(-volumeStep)
	}

	return m, nil
}

func (m *Model) channel() string {
	if len(m.channels) == 0 {
		return ""
	}
	return m.channels[m.selected]
}

func (m *Model) address() string {
	if len(m.addresses) == 0 {
		return ""
	}
	return m.addresses[m.clip]
}

func (m *Model) play() {
	h, err := m.mgr.Play(m.address(), m.channel())
	if err != nil {
		m.status = "play: " + err.Error()
		return
	}
	m.status = "playing " + h.String()
}

func (m *Model) nudge(delta float64) {
	ch := m.channel()
	v, err := m.mgr.ChannelVolume(ch)
	if err == nil {
		err = m.mgr.SetChannelVolume(ch, v+delta)
	}
	if err != nil {
		m.status = "volume: " + err.Error()
		return
	}

	v, _ = m.mgr.ChannelVolume(ch)
	m.status = fmt.Sprintf("%s volume %.0f", ch, v)
}

func (m *Model) report(op string, err error) {
	if err != nil {
		m.status = op + ": " + err.Error()
		return
	}
	m.status = op + " " + m.channel()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("audpool demo\n\n")

	for i, name := range m.channels {
		marker := " "
		if i == m.selected {
			marker = ">"
		}

		s, err := m.mgr.Channel(name)
		if err != nil {
			fmt.Fprintf(&b, "%s %-12s %v\n", marker, name, err)
			continue
		}

		playbacks := s.Playbacks()
		fmt.Fprintf(&b, "%s %-12s vol %3.0f  voices %d/%d\n", marker, name, s.Volume(), len(playbacks), s.Voices())
		for _, p := range playbacks {
			fmt.Fprintf(&b, "    #%d %-16s %-8s gain %.2f\n", p.ID, p.Address, p.State, p.Gain)
		}
	}

	fmt.Fprintf(&b, "\nclip: < %s >\n", m.address())
	fmt.Fprintf(&b, "%s\n\n", m.status)
	b.WriteString("↑/↓ channel  ←/→ clip  enter play  s stop  f force stop  +/- volume  q quit\n")

	return b.String()
}

// Run starts the demo and blocks until the user quits.
func Run(mgr *audpool.Manager, addresses []string, interval time.Duration) error {
	_, err := tea.NewProgram(New(mgr, addresses, interval), tea.WithAltScreen()).Run()
	return err
}
