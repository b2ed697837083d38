// Package session holds the per-invocation editing state: which env file is
// selected and its current parsed image. Every operation goes through an
// explicit Session owned by the caller; there is no process-wide current
// file. Mutating operations reload from disk immediately before computing
// their patch, which narrows (without eliminating) the window against
// concurrent external writers, and persist only when something changed.
package session

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bashup/dotenv/internal/config"
	"github.com/bashup/dotenv/internal/envfile"
	executil "github.com/bashup/dotenv/internal/exec"
	"github.com/bashup/dotenv/internal/logger"
	"github.com/bashup/dotenv/internal/shell"
)

// Session is the editing state for one env file. Exactly one image is
// current at a time; reload and successful writes replace it wholesale.
type Session struct {
	Path string
	File *envfile.File

	conf config.AppConfig
}

// New returns a session pointing at the configured default env file.
// Nothing is read from disk until the first operation needs the image.
func New(conf config.AppConfig) *Session {
	return &Session{Path: conf.EnvFile, conf: conf}
}

// Select loads (or reloads) the image from path and makes it current.
// A missing file selects an empty image; read errors fail the selection
// and leave the previous state untouched.
func (s *Session) Select(ctx context.Context, path string) error {
	f, err := envfile.Load(path)
	if err != nil {
		return err
	}
	s.Path = path
	s.File = f
	logger.Debug(ctx, "Selected '{{_File_}}%s{{|-|}}' (%d lines).", path, len(f.Lines))
	return nil
}

// reload re-reads the current path from disk, replacing the image.
func (s *Session) reload(ctx context.Context) error {
	return s.Select(ctx, s.Path)
}

// ensure lazily loads the image on first use.
func (s *Session) ensure(ctx context.Context) error {
	if s.File != nil {
		return nil
	}
	return s.reload(ctx)
}

// Get returns the value of the first assignment matching key.
func (s *Session) Get(ctx context.Context, key string) (string, error) {
	if err := s.ensure(ctx); err != nil {
		return "", err
	}
	value, ok := s.File.Get(key)
	if !ok {
		return "", fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	return value, nil
}

// Parse returns the (key, value) pairs matching keys, in file order,
// duplicates preserved. No keys means every assignment. An empty result is
// ErrNotFound.
func (s *Session) Parse(ctx context.Context, keys []string) ([]envfile.Pair, error) {
	if err := s.ensure(ctx); err != nil {
		return nil, err
	}
	pairs := s.File.Pairs(keys)
	if len(pairs) == 0 {
		return nil, ErrNotFound
	}
	return pairs, nil
}

// Export behaves like Parse and additionally installs every returned pair
// into the process environment. Keys must be valid environment variable
// identifiers. The caller prints the shell-evaluable export lines; the
// process cannot reach its parent's environment, so setting the variables
// here only affects subprocesses run later in the same invocation.
func (s *Session) Export(ctx context.Context, keys []string) ([]envfile.Pair, error) {
	pairs, err := s.Parse(ctx, keys)
	if err != nil {
		return nil, err
	}
	for _, p := range pairs {
		if !shell.ValidName(p.Key) {
			return nil, &InvalidKeyError{Key: p.Key}
		}
	}
	for _, p := range pairs {
		if err := os.Setenv(p.Key, p.Value); err != nil {
			return nil, fmt.Errorf("exporting %s: %w", p.Key, err)
		}
	}
	return pairs, nil
}

// Set applies the given operation specs (see ParseOps) and persists the
// file iff anything changed. It reports whether a write happened.
func (s *Session) Set(ctx context.Context, specs []string) (bool, error) {
	ops, err := ParseOps(specs)
	if err != nil {
		return false, err
	}
	if err := s.reload(ctx); err != nil {
		return false, err
	}

	next, changed := s.File.Patch(ops)
	if !changed {
		logger.Info(ctx, "No changes for '{{_File_}}%s{{|-|}}'.", s.Path)
		return false, nil
	}

	logger.Notice(ctx, "Updating variables in '{{_File_}}%s{{|-|}}':", s.Path)
	for _, op := range ops {
		switch op.Mode {
		case envfile.OpDelete:
			logger.Notice(ctx, "\tunset {{_Var_}}%s{{|-|}}", op.Key)
		default:
			logger.Notice(ctx, "\t{{_Var_}}%s{{|-|}}={{_Value_}}%s{{|-|}}", op.Key, op.Value)
		}
	}

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Puts appends one raw literal line and persists unconditionally.
func (s *Session) Puts(ctx context.Context, line string) error {
	if err := s.reload(ctx); err != nil {
		return err
	}
	return s.persist(ctx, s.File.WithLine(line))
}

// Generate returns the existing value of key, or produces one by running
// command and persisting its captured stdout (one trailing newline run
// trimmed, matching command substitution). A failing command leaves the
// file untouched.
func (s *Session) Generate(ctx context.Context, key string, command []string) (string, error) {
	return s.GenerateWith(ctx, key, func() (string, error) {
		out, err := executil.CaptureOutput(ctx, command[0], command[1:]...)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(out, "\r\n"), nil
	})
}

// GenerateWith is Generate with an arbitrary value producer. The producer
// is not invoked when the key already has a value.
func (s *Session) GenerateWith(ctx context.Context, key string, produce func() (string, error)) (string, error) {
	if err := s.reload(ctx); err != nil {
		return "", err
	}

	if value, ok := s.File.Get(key); ok {
		logger.Info(ctx, "'{{_Var_}}%s{{|-|}}' already set, not generating.", key)
		return value, nil
	}

	value, err := produce()
	if err != nil {
		return "", err
	}

	next, changed := s.File.Patch([]envfile.Op{{Key: key, Value: value, Mode: envfile.OpSet}})
	if changed {
		if err := s.persist(ctx, next); err != nil {
			return "", err
		}
	}
	return value, nil
}

// persist backs up (when configured), writes atomically and makes the new
// image current.
func (s *Session) persist(ctx context.Context, next *envfile.File) error {
	if s.conf.Backups.Enabled {
		if err := backupFile(ctx, s.File, s.conf.Backups.KeepDays); err != nil {
			logger.Warn(ctx, "Failed to back up '{{_File_}}%s{{|-|}}': %v", s.Path, err)
		}
	}

	logDiff(ctx, s.File.Text(), next.Text())

	if err := next.Save(); err != nil {
		return err
	}
	s.File = next
	return nil
}
