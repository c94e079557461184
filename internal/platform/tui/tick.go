// Package tui provides the Bubble Tea integration for Giraffe Run.
// It handles the terminal UI loop, input mapping and the menu flow.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Loop identifies the game model that requested it.
type TickMsg struct {
	Loop uint64
	Time time.Time
}

// loopIDs hands out game model identities so a model can ignore ticks
// requested by one it replaced.
var loopIDs atomic.Uint64

// tickCmd returns a Bubble Tea command that sends one tick message after
// one interval at the specified rate.
func tickCmd(loop uint64, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Loop: loop, Time: t}
	})
}
