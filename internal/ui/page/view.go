package page

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"

	"github.com/umakossiooo/to-do-app/internal/stats"
	"github.com/umakossiooo/to-do-app/internal/task"
)

// FormValues echoes the creation form back after a rejected submit.
type FormValues struct {
	Title        string
	Category     string
	Priority     string
	Urgent       bool
	AddReminder  bool
	ReminderDate string
	ReminderTime string
	AddLabel     bool
	Label        string
}

type TasksView struct {
	Tasks      []task.Task
	Sort       task.SortStrategy
	Categories []string
	Stats      stats.Stats
	Flash      string
	Error      string
	Form       FormValues
}

const stampLayout = "2006-01-02 15:04"

func stamp(at time.Time) string {
	return at.Format(stampLayout)
}

func createdAgo(t task.Task) string {
	return humanize.Time(t.CreatedAt)
}

func taskDOMID(t task.Task) string {
	return "task-" + strconv.Itoa(t.ID)
}

// taskAction is the form target for a per-task action such as "toggle".
func taskAction(t task.Task, action string) templ.SafeURL {
	return templ.SafeURL("/tasks/" + strconv.Itoa(t.ID) + "/" + action)
}
