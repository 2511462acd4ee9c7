package ui

import (
	"fmt"

	"github.com/Makepad-fr/tada/internal/model"
)

const maxTitle = 80

// Header is the counts line shown above the list.
func Header(done, pending int) string {
	t := Current()
	return fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		C(t.Title, "Todos"),
		C(t.Success, t.SymDone), done,
		C(t.Pending, t.SymPending), pending,
		C(t.Accent, "Total"), done+pending,
	)
}

// TaskLines renders one numbered line per task. Numbers are 1-based positions
// in the full list, so grouped output still matches `done`/`rm` arguments.
func TaskLines(tasks []model.Task, group bool) []string {
	if !group {
		return numbered(tasks, allPositions(len(tasks)))
	}
	var pend, done []int
	for i, task := range tasks {
		if task.IsCompleted {
			done = append(done, i)
		} else {
			pend = append(pend, i)
		}
	}
	t := Current()
	var lines []string
	lines = append(lines, C(t.Accent, "Pending"))
	lines = append(lines, section(tasks, pend)...)
	lines = append(lines, "")
	lines = append(lines, C(t.Accent, "Done"))
	lines = append(lines, section(tasks, done)...)
	return lines
}

func section(tasks []model.Task, pos []int) []string {
	if len(pos) == 0 {
		return []string{C(Current().Muted, "(none)")}
	}
	return numbered(tasks, pos)
}

func allPositions(n int) []int {
	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	return pos
}

func numbered(tasks []model.Task, pos []int) []string {
	t := Current()
	if len(pos) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(pos))
	for _, i := range pos {
		task := tasks[i]
		box, color := t.BoxUnchecked, t.Muted
		if task.IsCompleted {
			box, color = t.BoxChecked, t.Success
		}
		title := []rune(task.Title)
		if len(title) > maxTitle {
			title = append(title[:maxTitle-3], []rune("...")...)
		}
		out = append(out, fmt.Sprintf("%s %s %s", Dim(fmt.Sprintf("%2d.", i+1)), C(color, box), string(title)))
	}
	return out
}
