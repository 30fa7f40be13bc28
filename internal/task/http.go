package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Runner gives a handler exclusive access to one session's store.
type Runner interface {
	Do(fn func(*Store) error) error
}

type Handler struct {
	runnerResolver func(*http.Request) Runner
	listener       Listener
	logger         log.FieldLogger
}

func NewHandler(resolve func(*http.Request) Runner) *Handler {
	return &Handler{
		runnerResolver: resolve,
		logger:         log.StandardLogger(),
	}
}

// SetListener attaches l to every task created through the handler.
func (h *Handler) SetListener(l Listener) {
	h.listener = l
}

func (h *Handler) SetLogger(logger log.FieldLogger) {
	if logger != nil {
		h.logger = logger
	}
}

func (h *Handler) runnerForRequest(r *http.Request) Runner {
	if h.runnerResolver == nil {
		return nil
	}
	return h.runnerResolver(r)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// Snapshot copies tasks so they can be encoded after the store is released.
func Snapshot(tasks []*Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *t)
	}
	return out
}

// Create validates in and adds the resulting task to the store.
func (h *Handler) Create(store *Store, in CreateRequest) (*Task, error) {
	t, err := in.Build()
	if err != nil {
		return nil, err
	}
	if h.listener != nil {
		t.Attach(h.listener)
	}
	store.Add(&t)
	return &t, nil
}

// /api/tasks  (collection)
func (h *Handler) TasksRoot(w http.ResponseWriter, r *http.Request) {
	runner := h.runnerForRequest(r)
	if runner == nil {
		writeErr(w, http.StatusInternalServerError, "no session")
		return
	}

	switch r.Method {
	case http.MethodGet:
		var view SortStrategy
		if q := strings.TrimSpace(r.URL.Query().Get("sort")); q != "" {
			st, err := ParseSortStrategy(q)
			if err != nil {
				writeErr(w, http.StatusBadRequest, err.Error())
				return
			}
			view = st
		}

		var out []Task
		_ = runner.Do(func(s *Store) error {
			if view != "" {
				out = Snapshot(view.Sort(s.InsertionOrder()))
			} else {
				out = Snapshot(s.Tasks())
			}
			return nil
		})
		writeJSON(w, http.StatusOK, out)
		return

	case http.MethodPost:
		var in CreateRequest
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}

		var created Task
		err := runner.Do(func(s *Store) error {
			t, err := h.Create(s, in)
			if err == nil {
				created = *t
			}
			return err
		})
		if errors.Is(err, ErrEmptyTitle) || errors.Is(err, ErrUnknownPriority) {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, created)
		return

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
}

// /api/tasks/{id}[/completed|/deadline]
func (h *Handler) TasksSub(w http.ResponseWriter, r *http.Request) {
	runner := h.runnerForRequest(r)
	if runner == nil {
		writeErr(w, http.StatusInternalServerError, "no session")
		return
	}

	tail := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
	tail = strings.Trim(tail, "/")
	if tail == "" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	parts := strings.Split(tail, "/")
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	// /api/tasks/{id}
	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			if id <= 0 {
				writeErr(w, http.StatusNotFound, "not found")
				return
			}
			var (
				t  Task
				ok bool
			)
			_ = runner.Do(func(s *Store) error {
				var got *Task
				got, ok = s.Get(id)
				if ok {
					t = *got
				}
				return nil
			})
			if !ok {
				writeErr(w, http.StatusNotFound, "not found")
				return
			}
			writeJSON(w, http.StatusOK, t)
			return

		case http.MethodDelete:
			_ = runner.Do(func(s *Store) error {
				s.Remove(id)
				return nil
			})
			w.WriteHeader(http.StatusNoContent)
			return

		default:
			writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
	}

	if len(parts) != 2 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodPut {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if id <= 0 {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	var mutate func(*Store) (*Task, bool, error)

	switch parts[1] {
	// /api/tasks/{id}/completed
	case "completed":
		var in struct {
			Completed *bool `json:"completed"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if in.Completed == nil {
			writeErr(w, http.StatusBadRequest, `missing field "completed"`)
			return
		}
		mutate = func(s *Store) (*Task, bool, error) {
			if *in.Completed {
				return s.MarkComplete(id)
			}
			return s.MarkIncomplete(id)
		}

	// /api/tasks/{id}/deadline
	case "deadline":
		var in struct {
			Deadline *time.Time `json:"deadline"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		if in.Deadline == nil {
			writeErr(w, http.StatusBadRequest, `missing field "deadline"`)
			return
		}
		mutate = func(s *Store) (*Task, bool, error) {
			return s.SetDeadline(id, *in.Deadline)
		}

	default:
		writeErr(w, http.StatusNotFound, "not found")
		return
	}

	var (
		t  Task
		ok bool
	)
	err = runner.Do(func(s *Store) error {
		got, found, err := mutate(s)
		ok = found
		if got != nil {
			t = *got
		}
		return err
	})
	if err != nil {
		h.logger.WithError(err).WithField("task_id", id).Error("task_listener_failed")
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !ok {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// /api/sort
func (h *Handler) Sort(w http.ResponseWriter, r *http.Request) {
	runner := h.runnerForRequest(r)
	if runner == nil {
		writeErr(w, http.StatusInternalServerError, "no session")
		return
	}

	switch r.Method {
	case http.MethodGet:
		var st SortStrategy
		_ = runner.Do(func(s *Store) error {
			st = s.SortStrategy()
			return nil
		})
		writeJSON(w, http.StatusOK, map[string]any{"strategy": st})
		return

	case http.MethodPut:
		var in struct {
			Strategy string `json:"strategy"`
		}
		if err := decodeJSON(r, &in); err != nil {
			writeErr(w, http.StatusBadRequest, "bad json")
			return
		}
		st, err := ParseSortStrategy(in.Strategy)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err.Error())
			return
		}
		_ = runner.Do(func(s *Store) error {
			s.SetSortStrategy(st)
			return nil
		})
		writeJSON(w, http.StatusOK, map[string]any{"strategy": st})
		return

	default:
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
}
