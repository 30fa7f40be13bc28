package serverapp

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/umakossiooo/to-do-app/internal/httpmw"
	"github.com/umakossiooo/to-do-app/internal/session"
	"github.com/umakossiooo/to-do-app/internal/stats"
	"github.com/umakossiooo/to-do-app/internal/task"
	"github.com/umakossiooo/to-do-app/internal/ui/page"
)

const (
	msgTaskAdded      = "Task added successfully!"
	msgTitleRequired  = "Please enter a task title!"
	msgReminderNeeded = "Please choose a reminder date and time!"
)

var errBadReminder = errors.New("bad reminder")

type pageHandler struct {
	tasks      *task.Handler
	categories []string
	logger     log.FieldLogger
}

// GET /
// A ?sort= query orders this response only; POST /sort changes the strategy.
func (p *pageHandler) Index(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}

	var view task.SortStrategy
	if q := strings.TrimSpace(r.URL.Query().Get("sort")); q != "" {
		st, err := task.ParseSortStrategy(q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		view = st
	}

	p.render(w, r, s, view, http.StatusOK, s.TakeFlash(), "", page.FormValues{})
}

// POST /tasks
func (p *pageHandler) Create(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	form := formValues(r)
	in, err := createRequest(form)
	if err == nil {
		err = s.Do(func(store *task.Store) error {
			_, err := p.tasks.Create(store, in)
			return err
		})
	}

	switch {
	case err == nil:
		s.SetFlash(msgTaskAdded)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, task.ErrEmptyTitle):
		p.render(w, r, s, "", http.StatusUnprocessableEntity, "", msgTitleRequired, form)
	case errors.Is(err, errBadReminder):
		p.render(w, r, s, "", http.StatusUnprocessableEntity, "", msgReminderNeeded, form)
	case errors.Is(err, task.ErrUnknownPriority):
		p.render(w, r, s, "", http.StatusUnprocessableEntity, "", err.Error(), form)
	default:
		httpmw.Entry(p.logger, r).WithError(err).Error("create_task_failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// POST /tasks/{id}/toggle
func (p *pageHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	s, id, ok := p.target(w, r)
	if !ok {
		return
	}
	err := s.Do(func(store *task.Store) error {
		t, found := store.Get(id)
		if !found {
			return nil
		}
		var err error
		if t.Completed {
			_, _, err = store.MarkIncomplete(id)
		} else {
			_, _, err = store.MarkComplete(id)
		}
		return err
	})
	if err != nil {
		httpmw.Entry(p.logger, r).WithError(err).WithField("task_id", id).Error("task_listener_failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /tasks/{id}/delete
func (p *pageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, id, ok := p.target(w, r)
	if !ok {
		return
	}
	_ = s.Do(func(store *task.Store) error {
		store.Remove(id)
		return nil
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// POST /sort
func (p *pageHandler) Sort(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return
	}
	st, err := task.ParseSortStrategy(r.FormValue("sort"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = s.Do(func(store *task.Store) error {
		store.SetSortStrategy(st)
		return nil
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// target resolves the session and the {id} path value. Unknown ids are left
// for the store to ignore.
func (p *pageHandler) target(w http.ResponseWriter, r *http.Request) (*session.Session, int, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusInternalServerError)
		return nil, 0, false
	}
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		http.NotFound(w, r)
		return nil, 0, false
	}
	return s, id, true
}

// render draws the task page. A non-empty view orders this response without
// touching the session's strategy.
func (p *pageHandler) render(w http.ResponseWriter, r *http.Request, s *session.Session, view task.SortStrategy, code int, flash, errMsg string, form page.FormValues) {
	v := page.TasksView{
		Categories: p.categories,
		Flash:      flash,
		Error:      errMsg,
		Form:       form,
	}
	_ = s.Do(func(store *task.Store) error {
		tasks := store.Tasks()
		v.Sort = store.SortStrategy()
		if view != "" {
			tasks = view.Sort(store.InsertionOrder())
			v.Sort = view
		}
		v.Tasks = task.Snapshot(tasks)
		v.Stats = stats.Compute(tasks)
		return nil
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if err := page.TasksPage(v).Render(r.Context(), w); err != nil {
		httpmw.Entry(p.logger, r).WithError(err).Error("render_failed")
	}
}

func formValues(r *http.Request) page.FormValues {
	return page.FormValues{
		Title:        r.PostFormValue("title"),
		Category:     r.PostFormValue("category"),
		Priority:     r.PostFormValue("priority"),
		Urgent:       r.PostFormValue("urgent") != "",
		AddReminder:  r.PostFormValue("add_reminder") != "",
		ReminderDate: r.PostFormValue("reminder_date"),
		ReminderTime: r.PostFormValue("reminder_time"),
		AddLabel:     r.PostFormValue("add_label") != "",
		Label:        r.PostFormValue("label"),
	}
}

// createRequest maps the form onto a task.CreateRequest. The reminder date
// and time are read in the server's local zone; a missing time means midnight.
func createRequest(f page.FormValues) (task.CreateRequest, error) {
	in := task.CreateRequest{
		Title:    f.Title,
		Category: f.Category,
		Urgent:   f.Urgent,
		Priority: f.Priority,
	}
	if err := task.ValidateTitle(f.Title); err != nil {
		return in, err
	}

	if f.AddReminder {
		date := strings.TrimSpace(f.ReminderDate)
		clock := strings.TrimSpace(f.ReminderTime)
		if clock == "" {
			clock = "00:00"
		}
		at, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
		if err != nil {
			return in, errBadReminder
		}
		in.ReminderAt = &at
	}
	if f.AddLabel {
		in.Label = f.Label
	}
	return in, nil
}
