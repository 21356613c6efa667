package stepcontext

import "github.com/fjglira/GoE2E-StepContext/pkg/domain"

// TopLevelTracker latches the type of the step that started the current
// top-level run. The latch changes only when a push starts from an empty
// stack and survives the stack draining back to zero.
type TopLevelTracker struct {
	kind domain.StepDefinitionType
	set  bool
}

// OnPush records info as the new top-level step if the stack was empty
// before the push.
func (t *TopLevelTracker) OnPush(depthBeforePush int, info domain.StepInfo) {
	if depthBeforePush != 0 {
		return
	}
	t.kind = info.Type
	t.set = true
}

// Reset clears the latch.
func (t *TopLevelTracker) Reset() {
	t.kind = 0
	t.set = false
}

// Current returns the latched type, or false if nothing is latched.
func (t *TopLevelTracker) Current() (domain.StepDefinitionType, bool) {
	return t.kind, t.set
}
