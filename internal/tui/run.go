package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/taskline/internal/app"
)

// cacheSweepInterval is how often unused cache entries are collected while
// the TUI is running.
const cacheSweepInterval = time.Minute

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, c *app.Container, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.Cache.Run(ctx, cacheSweepInterval)

	m := New(ctx, c, opts)
	defer m.Close()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
