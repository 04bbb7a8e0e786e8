package tutorial

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	viewport := Size{W: 80, H: 24}
	tooltip := Size{W: 20, H: 6}
	target := &Rect{X: 30, Y: 10, W: 10, H: 2}

	tests := []struct {
		name   string
		target *Rect
		pos    Position
		want   Point
	}{
		{"top", target, PositionTop, Point{X: 25, Y: 3}},
		{"bottom", target, PositionBottom, Point{X: 25, Y: 13}},
		{"left", target, PositionLeft, Point{X: 9, Y: 8}},
		{"right", target, PositionRight, Point{X: 41, Y: 8}},
		{"center", target, PositionCenter, Point{X: 30, Y: 9}},
		{"empty position centers", target, "", Point{X: 30, Y: 9}},
		{"missing target centers", nil, PositionBottom, Point{X: 30, Y: 9}},
		{"clamped at top", &Rect{X: 0, Y: 0, W: 4, H: 1}, PositionTop, Point{X: 1, Y: 1}},
		{"clamped at right", &Rect{X: 78, Y: 20, W: 2, H: 1}, PositionRight, Point{X: 59, Y: 17}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Place(tt.target, tooltip, viewport, tt.pos, DefaultGap))
		})
	}
}

func TestPlace_StaysInsideViewport(t *testing.T) {
	viewport := Size{W: 60, H: 20}
	tooltip := Size{W: 24, H: 8}
	positions := []Position{PositionTop, PositionBottom, PositionLeft, PositionRight, PositionCenter}

	for x := -5; x < 70; x += 7 {
		for y := -3; y < 25; y += 4 {
			for _, pos := range positions {
				p := Place(&Rect{X: x, Y: y, W: 3, H: 1}, tooltip, viewport, pos, DefaultGap)
				assert.GreaterOrEqual(t, p.X, 0)
				assert.GreaterOrEqual(t, p.Y, 0)
				assert.LessOrEqual(t, p.X+tooltip.W, viewport.W)
				assert.LessOrEqual(t, p.Y+tooltip.H, viewport.H)
			}
		}
	}
}

func TestClamp_TooltipLargerThanViewport(t *testing.T) {
	p := Clamp(Point{X: 5, Y: 5}, Size{W: 100, H: 50}, Size{W: 40, H: 10}, ViewportPadding)

	assert.Equal(t, Point{X: 0, Y: 0}, p)
}

func TestClamp_NoRoomForPadding(t *testing.T) {
	p := Clamp(Point{X: 9, Y: 0}, Size{W: 39, H: 5}, Size{W: 40, H: 10}, ViewportPadding)

	assert.Equal(t, 1, p.X)
	assert.Equal(t, 1, p.Y)
}

func TestAnchorRegistry(t *testing.T) {
	r := NewAnchorRegistry()
	r.Register(AnchorBoardTodo, Rect{X: 1, Y: 2, W: 3, H: 4})

	got, ok := r.Lookup(AnchorBoardTodo)
	assert.True(t, ok)
	assert.Equal(t, Rect{X: 1, Y: 2, W: 3, H: 4}, got)

	r.Unregister(AnchorBoardTodo)
	_, ok = r.Lookup(AnchorBoardTodo)
	assert.False(t, ok)

	r.Register(AnchorTaskItem, Rect{})
	r.Reset()
	_, ok = r.Lookup(AnchorTaskItem)
	assert.False(t, ok)
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}

	assert.True(t, r.Contains(2, 3))
	assert.True(t, r.Contains(5, 4))
	assert.False(t, r.Contains(6, 4))
	assert.False(t, r.Contains(2, 5))
	assert.False(t, Rect{}.Contains(0, 0))
}

func TestKeyMap_Action(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		msg  tea.KeyMsg
		want Action
	}{
		{tea.KeyMsg{Type: tea.KeyEsc}, ActionExit},
		{tea.KeyMsg{Type: tea.KeyRight}, ActionNext},
		{tea.KeyMsg{Type: tea.KeyEnter}, ActionNext},
		{tea.KeyMsg{Type: tea.KeyLeft}, ActionPrevious},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, km.Action(tt.msg))
		})
	}
}
