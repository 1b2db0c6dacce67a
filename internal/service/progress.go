package service

import (
	"math"

	"github.com/ncobase/taskmanager/internal/structs"
)

func countDone(items []structs.ChecklistItem) int {
	done := 0
	for _, item := range items {
		if item.Completed {
			done++
		}
	}
	return done
}

// Progress returns the rounded percentage of completed checklist items, 0 for an empty list.
// A partly completed list is clamped to 1..99.
func Progress(items []structs.ChecklistItem) int {
	total := len(items)
	if total == 0 {
		return 0
	}
	done := countDone(items)
	p := int(math.Round(100 * float64(done) / float64(total)))
	if done > 0 && done < total {
		p = min(max(p, 1), 99)
	}
	return p
}

// ChecklistStatus derives the status of a non-empty checklist from its item counts.
func ChecklistStatus(items []structs.ChecklistItem) string {
	switch done := countDone(items); {
	case done == 0:
		return structs.StatusPending
	case done == len(items):
		return structs.StatusCompleted
	default:
		return structs.StatusInProgress
	}
}

// Reconcile recomputes progress and status of t from its checklist.
// A task without checklist keeps its status; progress follows it.
func Reconcile(t *structs.Task) {
	if len(t.TodoChecklist) == 0 {
		if !structs.IsValidStatus(t.Status) {
			t.Status = structs.StatusPending
		}
		if t.Status == structs.StatusCompleted {
			t.Progress = 100
		} else {
			t.Progress = 0
		}
		return
	}
	t.Progress = Progress(t.TodoChecklist)
	t.Status = ChecklistStatus(t.TodoChecklist)
}

// ApplyStatus sets status on t. Completed marks every checklist item done.
// Any other status must agree with the checklist when there is one.
func ApplyStatus(t *structs.Task, status string) error {
	if !structs.IsValidStatus(status) {
		return BadInput("Invalid status value")
	}

	if status == structs.StatusCompleted {
		for i := range t.TodoChecklist {
			t.TodoChecklist[i].Completed = true
		}
		t.Status = status
		t.Progress = 100
		return nil
	}

	if len(t.TodoChecklist) > 0 {
		derived := ChecklistStatus(t.TodoChecklist)
		if derived != status {
			return BadInput("Status %q conflicts with checklist progress; update the checklist instead", status)
		}
	}
	t.Status = status
	Reconcile(t)
	return nil
}
