package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// documentMsg carries parsed document changes to the model. With reset set the
// rows replace everything; otherwise they are appended.
type documentMsg struct {
	reset bool
	style docStyle
	rows  []row
}

// scrollMsg asks the model to move the viewport.
type scrollMsg int

// Surface presents a console document in the Bubble Tea program. It implements
// console.Surface: the console calls it from logging goroutines, and the model
// mirrors the viewport state back into it.
type Surface struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	logger *zap.Logger

	prev  string // last document seen
	style docStyle
	rows  int

	offset int
	height int
}

// NewSurface creates a detached surface. Attach it to a program before the
// console becomes ready.
func NewSurface(logger *zap.Logger) *Surface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Surface{logger: logger}
}

// Attach routes updates to the given program.
func (s *Surface) Attach(p *tea.Program) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.send = p.Send
}

// SetDocument implements console.Surface.
func (s *Surface) SetDocument(doc string) {
	msg, ok := s.diff(doc)
	if !ok {
		return
	}
	s.dispatch(msg)
}

func (s *Surface) diff(doc string) (documentMsg, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.prev != "" && len(doc) >= len(s.prev) && strings.HasPrefix(doc, s.prev) {
		if len(doc) == len(s.prev) {
			return documentMsg{}, false
		}
		rows, err := parseFragment(doc[len(s.prev):])
		if err != nil {
			s.logger.Warn("parse console fragment", zap.Error(err))
			return documentMsg{}, false
		}
		s.prev = doc
		s.rows += len(rows)
		return documentMsg{style: s.style, rows: rows}, true
	}

	style, rows, err := parseDocument(doc)
	if err != nil {
		s.logger.Warn("parse console document", zap.Error(err))
		return documentMsg{}, false
	}
	s.prev = doc
	s.style = style
	s.rows = len(rows)
	return documentMsg{reset: true, style: style, rows: rows}, true
}

// ScrollOffset implements console.Surface.
func (s *Surface) ScrollOffset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offset
}

// ScrollMax implements console.Surface. Like a scrollbar, the range never
// shrinks below the visible extent.
func (s *Surface) ScrollMax() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return max(s.rows, s.height)
}

// VisibleExtent implements console.Surface.
func (s *Surface) VisibleExtent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.height
}

// SetScrollOffset implements console.Surface.
func (s *Surface) SetScrollOffset(offset int) {
	s.mu.Lock()
	s.offset = clampOffset(offset, s.rows, s.height)
	offset = s.offset
	s.mu.Unlock()
	s.dispatch(scrollMsg(offset))
}

// sync mirrors a viewport moved by the user.
func (s *Surface) sync(vp viewport.Model) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.height = vp.Height
	s.offset = clampOffset(vp.YOffset, s.rows, s.height)
}

func (s *Surface) dispatch(msg tea.Msg) {
	s.mu.Lock()
	send := s.send
	s.mu.Unlock()
	if send != nil {
		send(msg)
	}
}

func clampOffset(offset, rows, height int) int {
	limit := max(rows-height, 0)
	return min(max(offset, 0), limit)
}
