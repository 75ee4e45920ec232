// Package lockfile maintains a hash-verified provenance record of
// installed hook binaries. The lock is an audit record, never a cache:
// installation skip decisions are made on binary presence alone.
package lockfile

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/prehook/pkg/errors"
	"github.com/arthur-debert/prehook/pkg/logging"
)

// Name is the lock file name, relative to the working tree root.
const Name = ".precommit-lock.yaml"

// Version is the current lock file format version.
const Version = 1

// File is the full lock file snapshot.
type File struct {
	Version     int     `yaml:"version"`
	GeneratedAt string  `yaml:"generated_at"`
	Hooks       []Entry `yaml:"hooks"`
}

// Entry records one installed hook binary.
type Entry struct {
	ID       string `yaml:"id"`
	Binary   string `yaml:"binary"`
	SHA256   string `yaml:"sha256"`
	Language string `yaml:"language"`
	Source   string `yaml:"source,omitempty"`
	Entry    string `yaml:"entry,omitempty"`
}

func newFile() *File {
	return &File{
		Version:     Version,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Hooks:       []Entry{},
	}
}

// Load reads the lock file at path, or returns a fresh one when it
// does not exist yet. The timestamp is always refreshed: the lock is
// rewritten as a whole on every record.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newFile(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockLoad, "failed to read lock file %s", path)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(err, errors.ErrLockLoad, "failed to parse lock file %s", path)
	}
	f.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	return &f, nil
}

// Save writes the full snapshot atomically via a temp file and rename.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(err, errors.ErrLockWrite, "failed to marshal lock file")
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrLockWrite, "failed to write temp lock file %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrapf(err, errors.ErrLockWrite, "failed to rename temp lock file to %s", path)
	}
	return nil
}

// HashFile computes the lowercase hex sha256 of a file's content with
// a streaming read.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to open %s for hashing", path)
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Record upserts a lock entry for the hook id: the binary is hashed,
// any existing entry for the id is replaced, the set is re-sorted by
// id and the whole lock is written back under root. The binary path is
// stored relative to root when possible.
func Record(root, id, language, source, entry, binaryPath string) error {
	lockPath := filepath.Join(root, Name)

	lock, err := Load(lockPath)
	if err != nil {
		return err
	}

	sum, err := HashFile(binaryPath)
	if err != nil {
		return err
	}

	binary := binaryPath
	if rel, err := filepath.Rel(root, binaryPath); err == nil && !filepath.IsAbs(rel) && !isOutside(rel) {
		binary = filepath.ToSlash(rel)
	}

	kept := lock.Hooks[:0]
	for _, e := range lock.Hooks {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	lock.Hooks = append(kept, Entry{
		ID:       id,
		Binary:   binary,
		SHA256:   sum,
		Language: language,
		Source:   source,
		Entry:    entry,
	})
	sort.Slice(lock.Hooks, func(i, j int) bool { return lock.Hooks[i].ID < lock.Hooks[j].ID })

	if err := Save(lockPath, lock); err != nil {
		return err
	}

	logger := logging.GetLogger("lockfile")
	logger.Debug().
		Str("hook", id).
		Str("binary", binary).
		Str("sha256", sum).
		Msg("Recorded lock entry")
	return nil
}

func isOutside(rel string) bool {
	return rel == ".." || len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
