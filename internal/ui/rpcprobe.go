package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ProbeStatus is the state of one endpoint row.
type ProbeStatus int

const (
	ProbeRunning ProbeStatus = iota
	ProbeDone
	ProbeError
)

// ProbeRow holds the probe outcome for one RPC endpoint.
type ProbeRow struct {
	URL     string
	Status  ProbeStatus
	Latency time.Duration
	Block   uint64
	ChainID uint64
	ErrMsg  string
}

// ProbeResultMsg is sent by each probe command when it finishes.
type ProbeResultMsg struct {
	URL     string
	Latency time.Duration
	Block   uint64
	ChainID uint64
	Err     error
}

type probeTickMsg struct{}

// ProbeModel is the Bubble Tea model for the live RPC endpoint test.
type ProbeModel struct {
	Network   string
	WantChain uint64
	Rows      []ProbeRow
	Done      int
	Frame     int
	Sorted    bool
	Quitting  bool
	ProbeFn   func(url string) tea.Cmd
}

// NewProbeModel creates the model with one running row per URL.
func NewProbeModel(network string, wantChain uint64, urls []string, probe func(url string) tea.Cmd) ProbeModel {
	rows := make([]ProbeRow, len(urls))
	for i, u := range urls {
		rows[i] = ProbeRow{URL: u}
	}
	return ProbeModel{Network: network, WantChain: wantChain, Rows: rows, ProbeFn: probe}
}

func (m ProbeModel) Init() tea.Cmd {
	cmds := []tea.Cmd{probeTick()}
	if m.ProbeFn != nil {
		for _, row := range m.Rows {
			cmds = append(cmds, m.ProbeFn(row.URL))
		}
	}
	return tea.Batch(cmds...)
}

func probeTick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return probeTickMsg{}
	})
}

func (m ProbeModel) failCount() int {
	n := 0
	for _, row := range m.Rows {
		if row.Status == ProbeError {
			n++
		}
	}
	return n
}

func (m ProbeModel) index(url string) int {
	for i, row := range m.Rows {
		if row.URL == url {
			return i
		}
	}
	return -1
}

func (m ProbeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Quitting = true
			return m, tea.Quit

		case "r":
			if m.ProbeFn == nil {
				return m, nil
			}
			var cmds []tea.Cmd
			for i := range m.Rows {
				if m.Rows[i].Status == ProbeError {
					m.Rows[i].Status = ProbeRunning
					m.Rows[i].ErrMsg = ""
					m.Done--
					m.Sorted = false
					cmds = append(cmds, m.ProbeFn(m.Rows[i].URL))
				}
			}
			return m, tea.Batch(cmds...)
		}

	case probeTickMsg:
		m.Frame = (m.Frame + 1) % len(spinFrames)
		if m.Done >= len(m.Rows) && !m.Sorted {
			m.Sorted = true
			// Fastest first, errors sink to the bottom.
			sort.SliceStable(m.Rows, func(i, j int) bool {
				if m.Rows[i].Status == ProbeError {
					return false
				}
				if m.Rows[j].Status == ProbeError {
					return true
				}
				return m.Rows[i].Latency < m.Rows[j].Latency
			})
		}
		return m, probeTick()

	case ProbeResultMsg:
		idx := m.index(msg.URL)
		if idx < 0 {
			return m, nil
		}
		switch {
		case msg.Err != nil:
			m.Rows[idx].Status = ProbeError
			m.Rows[idx].ErrMsg = trimErr(msg.Err.Error())
		case m.WantChain != 0 && msg.ChainID != m.WantChain:
			m.Rows[idx].Status = ProbeError
			m.Rows[idx].ErrMsg = fmt.Sprintf("wrong chain %d", msg.ChainID)
		default:
			m.Rows[idx].Status = ProbeDone
			m.Rows[idx].Latency = msg.Latency
			m.Rows[idx].Block = msg.Block
			m.Rows[idx].ChainID = msg.ChainID
		}
		m.Done++
	}

	return m, nil
}

func (m ProbeModel) View() string {
	if m.Quitting {
		return ""
	}

	var sb strings.Builder
	spin := spinFrames[m.Frame]

	sb.WriteString(StyleTitle.Render("🔌 RPC endpoints  ·  "+m.Network) + "\n")

	total := len(m.Rows)
	if m.Done >= total {
		label := fmt.Sprintf("✓ %d/%d endpoints checked", m.Done, total)
		if m.Sorted {
			label += " · fastest first"
		}
		sb.WriteString(StyleSuccess.Render(label) + "\n\n")
	} else {
		sb.WriteString(StyleInfo.Render(fmt.Sprintf("%s %d/%d probing…", spin, m.Done, total)) + "\n\n")
	}

	const (
		wURL   = 44
		wLat   = 10
		wBlock = 12
	)
	sep := StyleMeta.Render(strings.Repeat("─", wURL+wLat+wBlock+14))

	sb.WriteString(
		padR(StyleDim.Render("ENDPOINT"), wURL) + "  " +
			padR(StyleDim.Render("LATENCY"), wLat) + "  " +
			padR(StyleDim.Render("BLOCK"), wBlock) + "  " +
			StyleDim.Render("STATUS") + "\n",
	)
	sb.WriteString(sep + "\n")

	for _, row := range m.Rows {
		latStr, blockStr, statStr := renderProbeRow(row, spin)
		url := row.URL
		if len(url) > wURL {
			url = url[:wURL-1] + "…"
		}
		sb.WriteString(
			padR(StyleAddress.Render(url), wURL) + "  " +
				padR(latStr, wLat) + "  " +
				padR(blockStr, wBlock) + "  " +
				statStr + "\n",
		)
	}
	sb.WriteString(sep + "\n\n")

	controls := "[ q ] quit"
	if m.ProbeFn != nil && m.failCount() > 0 {
		controls = fmt.Sprintf("[ r ] retry %d failed   ", m.failCount()) + controls
	}
	sb.WriteString(StyleMeta.Render(controls) + "\n")
	return sb.String()
}

func renderProbeRow(row ProbeRow, spin string) (latStr, blockStr, statStr string) {
	switch row.Status {
	case ProbeRunning:
		return StyleMeta.Render(spin), StyleMeta.Render("—"), StyleMeta.Render("⏳")
	case ProbeDone:
		return StyleMeta.Render(row.Latency.Truncate(time.Millisecond).String()),
			StyleValue.Render(fmt.Sprintf("%d", row.Block)),
			StyleSuccess.Render("✓")
	case ProbeError:
		return StyleMeta.Render("—"), StyleMeta.Render("—"), StyleError.Render("✗ " + row.ErrMsg)
	}
	return "", "", ""
}
