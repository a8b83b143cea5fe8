package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProbeModelSortsFastestFirst(t *testing.T) {
	m := NewProbeModel("sepolia", 11155111, []string{"https://slow", "https://fast", "https://down"}, nil)

	for _, msg := range []ProbeResultMsg{
		{URL: "https://slow", Latency: 300 * time.Millisecond, Block: 10, ChainID: 11155111},
		{URL: "https://down", Err: errors.New("dial tcp: connection refused")},
		{URL: "https://fast", Latency: 20 * time.Millisecond, Block: 11, ChainID: 11155111},
	} {
		next, _ := m.Update(msg)
		m = next.(ProbeModel)
	}
	next, _ := m.Update(probeTickMsg{})
	m = next.(ProbeModel)

	assert.True(t, m.Sorted)
	assert.Equal(t, "https://fast", m.Rows[0].URL)
	assert.Equal(t, "https://slow", m.Rows[1].URL)
	assert.Equal(t, ProbeError, m.Rows[2].Status)
	assert.Equal(t, 1, m.failCount())
	assert.Contains(t, m.View(), "3/3 endpoints checked")
}

func TestProbeModelRejectsWrongChain(t *testing.T) {
	m := NewProbeModel("sepolia", 11155111, []string{"https://mainnet"}, nil)
	next, _ := m.Update(ProbeResultMsg{URL: "https://mainnet", ChainID: 1})
	m = next.(ProbeModel)

	assert.Equal(t, ProbeError, m.Rows[0].Status)
	assert.Equal(t, "wrong chain 1", m.Rows[0].ErrMsg)
}

func TestProbeModelIgnoresUnknownURL(t *testing.T) {
	m := NewProbeModel("sepolia", 0, []string{"https://a"}, nil)
	next, _ := m.Update(ProbeResultMsg{URL: "https://b"})
	assert.Equal(t, 0, next.(ProbeModel).Done)
}
