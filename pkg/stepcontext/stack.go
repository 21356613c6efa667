package stepcontext

import "github.com/fjglira/GoE2E-StepContext/pkg/domain"

// Frame is one in-progress step execution.
type Frame struct {
	Step domain.StepInfo
}

// Stack is a LIFO of step frames. Popping an empty stack is not an error
// here; the caller decides whether that is worth reporting.
type Stack struct {
	frames []Frame
}

// Push adds a frame on top of the stack.
func (s *Stack) Push(f Frame) {
	s.frames = append(s.frames, f)
}

// Pop removes and returns the top frame. It returns false and leaves the
// stack untouched when it is empty.
func (s *Stack) Pop() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	last := len(s.frames) - 1
	f := s.frames[last]
	s.frames[last] = Frame{}
	s.frames = s.frames[:last]
	return f, true
}

// Peek returns the top frame without removing it.
func (s *Stack) Peek() (Frame, bool) {
	if len(s.frames) == 0 {
		return Frame{}, false
	}
	return s.frames[len(s.frames)-1], true
}

// Depth reports how many frames are pushed.
func (s *Stack) Depth() int {
	return len(s.frames)
}

func (s *Stack) drop() {
	s.frames = nil
}
