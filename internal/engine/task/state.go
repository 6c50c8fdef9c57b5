// Released under an MIT license. See LICENSE.

package task

import "github.com/michaelmacinnis/quill/internal/type/value"

// State is a task's scheduling state.
//
//	Running   -> Suspended  Suspend, only from inside a native call.
//	Suspended -> Running    Token.Resume, at most once per suspension.
//	Running   -> Done       the task's code returns or raises past its last frame.
//	*         -> Done       Kill.
type State int32

// Task states.
const (
	Running State = iota
	Suspended
	Done
)

// String returns the name of the state s.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Suspended:
		return "suspended"
	case Done:
		return "done"
	}

	return "unknown"
}

// Step produces the result of a suspended native call when the task resumes.
type Step func() (value.T, error)

// Token resumes a suspended task. A token resumes its task at most once.
type Token struct {
	task *T
	used bool
}

// Resume hands the token's task back to the scheduler. The step given to
// Suspend runs before the task executes any further instructions. Resume
// returns false, and does nothing, if the token was already used or if the
// task was killed while suspended.
func (k *Token) Resume() bool {
	if k.used {
		return false
	}

	k.used = true

	t := k.task
	if t.state != Suspended {
		return false
	}

	t.state = Running
	t.machine.Ready(t)

	return true
}

// Task returns the task the token resumes.
func (k *Token) Task() *T {
	return k.task
}

// Cancel marks the token as used without resuming its task, and returns
// the task to running if it was still suspended.
func (k *Token) Cancel() {
	if k.used {
		return
	}

	k.used = true

	if k.task.state == Suspended {
		k.task.state = Running
		k.task.pending = nil
	}
}

// AddWaiter registers k to be resumed when t is done. If t is already done
// k is resumed immediately.
func (t *T) AddWaiter(k *Token) {
	if t.state == Done {
		k.Resume()

		return
	}

	t.waiters = append(t.waiters, k)
}

// Kill forces t to done without executing further instructions. Waiters
// on t are resumed. External resources t was waiting on are unaffected;
// their eventual attempt to resume t is ignored.
func (t *T) Kill() {
	if t.state == Done {
		return
	}

	t.killed = true
	t.finish(t.result, nil)
}

// Suspend parks t. The returned token resumes it; on resumption step
// supplies the result of the native call that suspended.
func (t *T) Suspend(step Step) *Token {
	t.state = Suspended
	t.pending = step

	return &Token{task: t}
}

func (t *T) finish(v value.T, err error) {
	t.state = Done
	t.result = v
	t.err = err

	t.frames = nil
	t.stack = nil
	t.pending = nil

	waiters := t.waiters
	t.waiters = nil

	for _, k := range waiters {
		k.Resume()
	}

	t.machine.Finished(t)
}
