package tui

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRouteNav_Navigate(t *testing.T) {
	nav := newRouteNav(TabList)

	nav.Navigate("calendar")
	assert.Equal(t, TabCalendar, nav.Tab())
	assert.Equal(t, "calendar", nav.Route())

	// Unknown routes are ignored
	nav.Navigate("inbox")
	assert.Equal(t, TabCalendar, nav.Tab())
}

func TestRouteNav_ConcurrentAccess(t *testing.T) {
	nav := newRouteNav(TabList)

	var wg sync.WaitGroup
	for _, tab := range Tabs() {
		wg.Add(1)
		go func(tab Tab) {
			defer wg.Done()
			nav.Navigate(string(tab))
			_ = nav.Route()
		}(tab)
	}
	wg.Wait()

	_, ok := ParseTab(nav.Route())
	assert.True(t, ok)
}
