package serverapp

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/umakossiooo/to-do-app/internal/config"
	"github.com/umakossiooo/to-do-app/internal/httpmw"
	"github.com/umakossiooo/to-do-app/internal/session"
	"github.com/umakossiooo/to-do-app/internal/stats"
	"github.com/umakossiooo/to-do-app/internal/task"
	staticfiles "github.com/umakossiooo/to-do-app/static"
)

type Options struct {
	Config *config.Config
	Logger *log.Logger
	// Now overrides the session clock in tests.
	Now func() time.Time
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	cfg := opts.Config

	sessions := session.NewManager(session.Options{
		CookieName:  cfg.Session.CookieName,
		TTL:         cfg.Session.TTL,
		Secure:      cfg.Session.Secure,
		MaxSessions: cfg.Session.Max,
		DefaultSort: cfg.DefaultSort(),
		Logger:      opts.Logger,
		Now:         opts.Now,
	})

	mux := http.NewServeMux()

	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticfiles.EmbeddedFS()))))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":       true,
			"service":  "to-do-app",
			"sessions": sessions.Len(),
			"time":     time.Now().UTC().Format(time.RFC3339),
		})
	})

	taskHandler := task.NewHandler(sessionRunner)
	taskHandler.SetLogger(opts.Logger)
	if cfg.Tasks.LogChanges {
		taskHandler.SetListener(changeLogger(opts.Logger))
	}
	app := http.NewServeMux()
	app.HandleFunc("/api/tasks", taskHandler.TasksRoot)
	app.HandleFunc("/api/tasks/", taskHandler.TasksSub)
	app.HandleFunc("/api/sort", taskHandler.Sort)
	app.HandleFunc("/api/stats", statsHandler)

	pages := &pageHandler{
		tasks:      taskHandler,
		categories: cfg.Tasks.Categories,
		logger:     opts.Logger,
	}
	app.HandleFunc("GET /{$}", pages.Index)
	app.HandleFunc("POST /tasks", pages.Create)
	app.HandleFunc("POST /tasks/{id}/toggle", pages.Toggle)
	app.HandleFunc("POST /tasks/{id}/delete", pages.Delete)
	app.HandleFunc("POST /sort", pages.Sort)

	// only app routes get a session; health checks and assets stay stateless
	mux.Handle("/", sessions.Middleware(app))

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

// sessionRunner resolves the store of the session attached by the middleware.
func sessionRunner(r *http.Request) task.Runner {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil
	}
	return s
}

// /api/stats
func statsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	runner := sessionRunner(r)
	if runner == nil {
		writeErr(w, http.StatusInternalServerError, "no session")
		return
	}
	var st stats.Stats
	_ = runner.Do(func(s *task.Store) error {
		st = stats.Compute(s.Tasks())
		return nil
	})
	writeJSON(w, http.StatusOK, st)
}

// changeLogger records completion and deadline changes.
func changeLogger(logger log.FieldLogger) task.Listener {
	return task.ListenerFunc(func(t *task.Task) error {
		fields := log.Fields{
			"task_id":   t.ID,
			"completed": t.Completed,
		}
		if t.Deadline != nil {
			fields["deadline"] = t.Deadline.Format(time.RFC3339)
		}
		logger.WithFields(fields).Info("task_changed")
		return nil
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}
