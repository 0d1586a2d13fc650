package codec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"taskmgr/internal/service"
)

// File persists a store to a task file on disk.
type File struct {
	Path   string
	Limits service.Limits
	Log    log.FieldLogger
}

// NewFile creates a File. A nil logger falls back to the logrus standard logger.
func NewFile(path string, limits service.Limits, logger log.FieldLogger) *File {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &File{Path: path, Limits: limits, Log: logger}
}

// Load decodes the task file. A file that is absent or cannot be opened
// yields an empty state; that is the normal first-run condition, not an error.
func (f *File) Load() (service.State, Report) {
	entry := f.Log.WithField("path", f.Path)
	empty := service.State{Tasks: []service.Task{}, NextID: 1}

	file, err := os.Open(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			entry.Info("task file not found, starting with an empty list")
		} else {
			entry.WithError(err).Warn("cannot open task file, starting with an empty list")
		}
		return empty, Report{}
	}
	defer file.Close()

	state, rep, err := Decode(file, f.Limits)
	for _, w := range rep.Warnings {
		entry.Warn(w)
	}
	if rep.Corrupt != nil {
		entry.WithFields(log.Fields{
			"record": rep.Corrupt.Record,
			"line":   rep.Corrupt.Line,
		}).Warnf("corrupt data in task file, skipping task %d and the rest: %s", rep.Corrupt.Record, rep.Corrupt.Msg)
	}
	if err != nil {
		entry.WithError(err).Warn("read error in task file, keeping tasks read so far")
	}

	entry.WithFields(log.Fields{
		"loaded":   rep.Loaded,
		"declared": rep.Declared,
	}).Infof("loaded %d tasks", rep.Loaded)
	return state, rep
}

// Save replaces the task file with the encoded state. The write goes to a
// temporary file in the same directory which is then renamed over the target.
// A symlinked path is resolved first so the link survives, and an existing
// file keeps its permissions; a new file is created 0600.
// Errors wrap service.ErrIO.
func (f *File) Save(state service.State) error {
	target, mode := f.destination()
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return f.ioError("create temp file", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return f.ioError("chmod", err)
	}
	if err := Encode(tmp, state); err != nil {
		cleanup()
		return f.ioError("write", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return f.ioError("sync", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return f.ioError("close", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return f.ioError("rename", err)
	}

	f.Log.WithFields(log.Fields{
		"path":  f.Path,
		"tasks": len(state.Tasks),
	}).Debug("saved task file")
	return nil
}

// destination returns the file a save replaces and the mode it should get.
func (f *File) destination() (string, os.FileMode) {
	target := f.Path
	if resolved, err := filepath.EvalSymlinks(f.Path); err == nil {
		target = resolved
	}
	mode := os.FileMode(0600)
	if fi, err := os.Stat(target); err == nil {
		mode = fi.Mode().Perm()
	}
	return target, mode
}

func (f *File) ioError(op string, err error) error {
	f.Log.WithError(err).WithField("path", f.Path).Errorf("could not save task file (%s)", op)
	return fmt.Errorf("%w: %s %s: %v", service.ErrIO, op, f.Path, err)
}
