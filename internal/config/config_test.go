package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umakossiooo/to-do-app/internal/task"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "todo_session", cfg.Session.CookieName)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Nil(t, cfg.Session.Secure)
	assert.Equal(t, 10000, cfg.Session.Max)
	assert.Equal(t, []string{"Personal", "Work", "Shopping", "Other"}, cfg.Tasks.Categories)
	assert.Equal(t, task.SortByDate, cfg.DefaultSort())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
  shutdown_timeout: 3s
session:
  cookie_name: tasks
  ttl: 30m
  secure: true
tasks:
  categories: [Home, Garden]
  default_sort: priority
  log_changes: true
log:
  level: debug
  format: text
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "tasks", cfg.Session.CookieName)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	require.NotNil(t, cfg.Session.Secure)
	assert.True(t, *cfg.Session.Secure)
	assert.Equal(t, []string{"Home", "Garden"}, cfg.Tasks.Categories)
	assert.Equal(t, task.SortByPriority, cfg.DefaultSort())
	assert.True(t, cfg.Tasks.LogChanges)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.yml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownSort(t *testing.T) {
	cfg := Default()
	cfg.Tasks.DefaultSort = "alphabet"

	assert.ErrorIs(t, cfg.Validate(), task.ErrUnknownSortStrategy)
	assert.Equal(t, task.SortByDate, cfg.DefaultSort())
}

func TestValidate_RejectsUnknownLogFormat(t *testing.T) {
	cfg := Default()
	cfg.Log.Format = "xml"

	assert.Error(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TODO_ADDR", ":7000")
	t.Setenv("TODO_SESSION_TTL", "45m")
	t.Setenv("TODO_SHUTDOWN_TIMEOUT", "not-a-duration")
	t.Setenv("TODO_COOKIE_SECURE", "no")
	t.Setenv("TODO_LOG_LEVEL", "warn")
	t.Setenv("TODO_DEFAULT_SORT", "category")
	t.Setenv("TODO_SESSION_MAX", "250")

	cfg := Default()
	cfg.ApplyEnv()

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, 45*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	require.NotNil(t, cfg.Session.Secure)
	assert.False(t, *cfg.Session.Secure)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, task.SortByCategory, cfg.DefaultSort())
	assert.Equal(t, 250, cfg.Session.Max)
}

func TestLog_NewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Log{Level: "debug", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)

	logger.WithField("task_id", 3).Debug("task_changed")

	assert.Contains(t, buf.String(), `"msg":"task_changed"`)
	assert.Contains(t, buf.String(), `"task_id":3`)

	_, err = Log{Level: "loud", Format: "json"}.NewLogger(&buf)
	assert.Error(t, err)
}
