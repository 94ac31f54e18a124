package tui

import (
	tea "charm.land/bubbletea/v2"
)

// pushScreenMsg asks the router to show a screen on top of the stack.
type pushScreenMsg struct{ screen Screen }

// replaceScreenMsg swaps the top screen for another.
type replaceScreenMsg struct{ screen Screen }

// popScreenMsg returns to the previous screen.
type popScreenMsg struct{}

func push(s Screen) tea.Cmd    { return func() tea.Msg { return pushScreenMsg{s} } }
func replace(s Screen) tea.Cmd { return func() tea.Msg { return replaceScreenMsg{s} } }
func pop() tea.Msg             { return popScreenMsg{} }

// Router manages a stack of screens.
type Router struct {
	stack []Screen
}

// NewRouter creates a Router with the given initial screen.
func NewRouter(initial Screen) *Router {
	return &Router{stack: []Screen{initial}}
}

// Push adds a screen on top of the stack and calls its Init.
func (r *Router) Push(s Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Replace swaps the top screen for s and calls its Init.
func (r *Router) Replace(s Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	r.stack[len(r.stack)-1] = s
	return s.Init()
}

// Pop removes the top screen. The bottom screen is never removed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.stack = r.stack[:len(r.stack)-1]
	return nil
}

// Active returns the top screen on the stack.
func (r *Router) Active() Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of screens on the stack.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pushScreenMsg:
		return r.Push(msg.screen)
	case replaceScreenMsg:
		return r.Replace(msg.screen)
	case popScreenMsg:
		return r.Pop()
	}

	active := r.Active()
	if active == nil {
		return nil
	}
	updated, cmd := active.Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
