package engine

import (
	"sort"
	"time"
)

type task struct {
	due time.Time
	run func(at time.Time)
}

// agenda is the session's queue of one-shot tasks, ordered by due time and
// then by scheduling order. It is not safe for concurrent use; the session
// loop owns it.
type agenda struct {
	tasks    []task
	frozen   bool
	frozenAt time.Time
}

func newAgenda() *agenda {
	return &agenda{}
}

func (a *agenda) schedule(due time.Time, run func(at time.Time)) {
	i := sort.Search(len(a.tasks), func(i int) bool {
		return a.tasks[i].due.After(due)
	})
	a.tasks = append(a.tasks, task{})
	copy(a.tasks[i+1:], a.tasks[i:])
	a.tasks[i] = task{due: due, run: run}
}

func (a *agenda) clear() {
	a.tasks = nil
}

func (a *agenda) len() int {
	return len(a.tasks)
}

// next reports the earliest due time. A frozen agenda has nothing due.
func (a *agenda) next() (time.Time, bool) {
	if a.frozen || len(a.tasks) == 0 {
		return time.Time{}, false
	}
	return a.tasks[0].due, true
}

func (a *agenda) popDue(now time.Time) (task, bool) {
	due, ok := a.next()
	if !ok || due.After(now) {
		return task{}, false
	}
	t := a.tasks[0]
	a.tasks = a.tasks[1:]
	return t, true
}

func (a *agenda) freeze(now time.Time) {
	if a.frozen {
		return
	}
	a.frozen = true
	a.frozenAt = now
}

// thaw shifts every pending task by the time spent frozen.
func (a *agenda) thaw(now time.Time) {
	if !a.frozen {
		return
	}
	a.frozen = false
	shift := now.Sub(a.frozenAt)
	if shift <= 0 {
		return
	}
	for i := range a.tasks {
		a.tasks[i].due = a.tasks[i].due.Add(shift)
	}
}
