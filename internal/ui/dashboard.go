package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DashboardSnapshot is the session as the dashboard shows it.
type DashboardSnapshot struct {
	Phase     string
	Connected bool
	Account   string
	Accounts  []string
	Network   string
	ChainID   uint64
	Balance   string
	Symbol    string
	Paused    bool
	Owner     string
	IsOwner   bool
}

// DashboardActions binds dashboard keys to operations. Snapshot must not
// block; the others run off the UI goroutine and return a status line.
type DashboardActions struct {
	Snapshot    func() DashboardSnapshot
	Refresh     func() (string, error)
	NextAccount func() (string, error)
	Faucet      func() (string, error)
	TogglePause func() (string, error)
	Connect     func() (string, error)
	Disconnect  func() (string, error)
}

// DashboardModel is the Bubble Tea model for the live session dashboard.
type DashboardModel struct {
	actions    DashboardActions
	snap       DashboardSnapshot
	interval   time.Duration
	busy       string
	status     string
	statusErr  bool
	lastUpdate time.Time
	frame      int
	quitting   bool
}

type snapshotTickMsg struct{}
type autoRefreshMsg struct{}

type actionDoneMsg struct {
	status string
	err    error
}

// NewDashboard creates the dashboard model. A positive interval refreshes
// the balance on that period.
func NewDashboard(interval time.Duration, actions DashboardActions) DashboardModel {
	m := DashboardModel{actions: actions, interval: interval}
	if actions.Snapshot != nil {
		m.snap = actions.Snapshot()
	}
	return m
}

// RunDashboard runs the dashboard until the user quits.
func RunDashboard(m DashboardModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(snapshotTick(), m.autoRefresh())
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy != "" {
			return m, nil
		}
		return m.handleKey(key)

	case snapshotTickMsg:
		m.frame = (m.frame + 1) % len(spinFrames)
		m.takeSnapshot()
		return m, snapshotTick()

	case autoRefreshMsg:
		next := m.autoRefresh()
		if m.busy != "" || !m.snap.Connected {
			return m, next
		}
		var cmd tea.Cmd
		m, cmd = m.run("Refreshing", m.actions.Refresh)
		return m, tea.Batch(cmd, next)

	case actionDoneMsg:
		m.busy = ""
		m.status, m.statusErr = msg.status, false
		if msg.err != nil {
			m.status, m.statusErr = msg.err.Error(), true
		}
		m.takeSnapshot()
		m.lastUpdate = time.Now()
	}
	return m, nil
}

func (m DashboardModel) handleKey(key string) (DashboardModel, tea.Cmd) {
	switch key {
	case "c":
		if m.snap.Connected {
			return m, nil
		}
		return m.run("Connecting", m.actions.Connect)
	}

	if !m.snap.Connected {
		switch key {
		case "r", "a", "f", "p", "d":
			m.status, m.statusErr = "Not connected. Press c to connect.", true
		}
		return m, nil
	}

	switch key {
	case "r":
		return m.run("Refreshing", m.actions.Refresh)
	case "a":
		return m.run("Switching account", m.actions.NextAccount)
	case "f":
		return m.run("Claiming faucet", m.actions.Faucet)
	case "p":
		if !m.snap.IsOwner {
			m.status, m.statusErr = "Only the contract owner can pause or unpause", true
			return m, nil
		}
		label := "Pausing"
		if m.snap.Paused {
			label = "Unpausing"
		}
		return m.run(label, m.actions.TogglePause)
	case "d":
		return m.run("Disconnecting", m.actions.Disconnect)
	}
	return m, nil
}

func (m DashboardModel) run(label string, fn func() (string, error)) (DashboardModel, tea.Cmd) {
	if fn == nil {
		return m, nil
	}
	m.busy = label
	m.status = ""
	return m, func() tea.Msg {
		status, err := fn()
		return actionDoneMsg{status: status, err: err}
	}
}

func (m *DashboardModel) takeSnapshot() {
	if m.actions.Snapshot != nil {
		m.snap = m.actions.Snapshot()
	}
}

func (m DashboardModel) autoRefresh() tea.Cmd {
	if m.interval <= 0 {
		return nil
	}
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return autoRefreshMsg{} })
}

func snapshotTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg { return snapshotTickMsg{} })
}

func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(StyleTitle.Render("⚡ TMB Dashboard") + "\n")

	updated := "never"
	if !m.lastUpdate.IsZero() {
		updated = m.lastUpdate.Format("15:04:05")
	}
	sb.WriteString(StyleMeta.Render(fmt.Sprintf("%s · updated %s", m.snap.Phase, updated)) + "\n\n")

	if !m.snap.Connected {
		sb.WriteString(Warn("Wallet not connected") + "\n\n")
	} else {
		sb.WriteString(KeyValueBlock("Session", m.sessionPairs()) + "\n")
		if len(m.snap.Accounts) > 1 {
			sb.WriteString(StyleHeader.Render("Accounts") + "\n")
			for _, a := range m.snap.Accounts {
				marker := "  "
				if strings.EqualFold(a, m.snap.Account) {
					marker = "▸ "
				}
				sb.WriteString(marker + Addr(a) + "\n")
			}
			sb.WriteString("\n")
		}
	}

	switch {
	case m.busy != "":
		sb.WriteString(StyleInfo.Render(spinFrames[m.frame]+" "+m.busy+"…") + "\n")
	case m.status != "" && m.statusErr:
		sb.WriteString(Err(m.status) + "\n")
	case m.status != "":
		sb.WriteString(Success(m.status) + "\n")
	}

	sb.WriteString("\n" + m.controls() + "\n")
	return sb.String()
}

func (m DashboardModel) sessionPairs() [][2]string {
	balance := m.snap.Balance
	if m.snap.Symbol != "" {
		balance += " " + m.snap.Symbol
	}
	paused := StyleSuccess.Render("active")
	if m.snap.Paused {
		paused = StyleError.Render("paused")
	}
	owner := m.snap.Owner
	if owner == "" {
		owner = "unknown"
	} else if m.snap.IsOwner {
		owner += " (you)"
	}
	return [][2]string{
		{"Account", m.snap.Account},
		{"Network", fmt.Sprintf("%s (%d)", m.snap.Network, m.snap.ChainID)},
		{"Balance", balance},
		{"Contract", paused},
		{"Owner", owner},
	}
}

func (m DashboardModel) controls() string {
	if !m.snap.Connected {
		return StyleMeta.Render("[ c ] connect   [ q ] quit")
	}
	parts := []string{"[ r ] refresh", "[ a ] next account", "[ f ] faucet"}
	if m.snap.IsOwner {
		if m.snap.Paused {
			parts = append(parts, "[ p ] unpause")
		} else {
			parts = append(parts, "[ p ] pause")
		}
	}
	parts = append(parts, "[ d ] disconnect", "[ q ] quit")
	return StyleMeta.Render(strings.Join(parts, "   "))
}
