package tui

import (
	"sync"

	"github.com/runoshun/taskline/internal/tutorial"
)

// Ensure routeNav implements tutorial.Navigator.
var _ tutorial.Navigator = (*routeNav)(nil)

// routeNav holds the active tab. The tutorial navigates from scheduler
// goroutines, so the tab is mutex guarded and read by the model on every
// update instead of being copied into it.
type routeNav struct {
	tab Tab
	mu  sync.Mutex
}

func newRouteNav(tab Tab) *routeNav {
	return &routeNav{tab: tab}
}

// Route implements tutorial.Navigator.
func (n *routeNav) Route() string {
	return string(n.Tab())
}

// Navigate implements tutorial.Navigator. Unknown routes are ignored.
func (n *routeNav) Navigate(route string) {
	if tab, ok := ParseTab(route); ok {
		n.SetTab(tab)
	}
}

// Tab returns the active tab.
func (n *routeNav) Tab() Tab {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tab
}

// SetTab switches the active tab.
func (n *routeNav) SetTab(tab Tab) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.tab = tab
}
