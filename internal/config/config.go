package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umakossiooo/to-do-app/internal/task"
)

type Config struct {
	Server  Server  `yaml:"server" json:"server"`
	Session Session `yaml:"session" json:"session"`
	Tasks   Tasks   `yaml:"tasks" json:"tasks"`
	Log     Log     `yaml:"log" json:"log"`
}

type Server struct {
	Addr            string        `yaml:"addr" json:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

type Session struct {
	CookieName string        `yaml:"cookie_name" json:"cookie_name"`
	TTL        time.Duration `yaml:"ttl" json:"ttl"`
	// Secure is nil when unset: cookies are then marked secure only on TLS requests.
	Secure *bool `yaml:"secure" json:"secure,omitempty"`
	// Max caps the number of stored sessions; the least recently seen is evicted.
	Max int `yaml:"max" json:"max"`
}

type Tasks struct {
	// Categories are the suggestions offered by the form; any text is accepted.
	Categories  []string `yaml:"categories" json:"categories"`
	DefaultSort string   `yaml:"default_sort" json:"default_sort"`
	LogChanges  bool     `yaml:"log_changes" json:"log_changes"`
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

func (s *Server) ApplyDefaults() {
	if s.Addr == "" {
		s.Addr = ":8080"
	}
	if s.ShutdownTimeout <= 0 {
		s.ShutdownTimeout = 10 * time.Second
	}
}

func (s *Session) ApplyDefaults() {
	if s.CookieName == "" {
		s.CookieName = "todo_session"
	}
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.Max <= 0 {
		s.Max = 10000
	}
}

func (t *Tasks) ApplyDefaults() {
	if len(t.Categories) == 0 {
		t.Categories = []string{"Personal", "Work", "Shopping", "Other"}
	}
	if t.DefaultSort == "" {
		t.DefaultSort = string(task.SortByDate)
	}
}

func (l *Log) ApplyDefaults() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "json"
	}
}

func (c *Config) ApplyDefaults() {
	c.Server.ApplyDefaults()
	c.Session.ApplyDefaults()
	c.Tasks.ApplyDefaults()
	c.Log.ApplyDefaults()
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := task.ParseSortStrategy(c.Tasks.DefaultSort); err != nil {
		return fmt.Errorf("tasks.default_sort: %w", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format: unsupported %q", c.Log.Format)
	}
	return nil
}

// DefaultSort returns the validated default strategy.
func (c *Config) DefaultSort() task.SortStrategy {
	st, err := task.ParseSortStrategy(c.Tasks.DefaultSort)
	if err != nil {
		return task.SortByDate
	}
	return st
}

func Default() *Config {
	var c Config
	c.ApplyDefaults()
	return &c
}

// Load reads a YAML config file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var r Config
	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &r); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}
	r.ApplyDefaults()
	return &r, nil
}
