/*
Package envfile reads and rewrites dotenv style KEY=VALUE files.

Rewrites only touch the matched assignment, every other byte of the file
(including line endings) is passed through as is.
*/
package envfile

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
)

// ErrFileIO marks failures reading or writing the environment file
var ErrFileIO = errors.New("environment file io failure")

const defaultMode os.FileMode = 0o644

// Read returns the full file contents
func Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "unable to read %s", path), ErrFileIO)
	}
	return string(data), nil
}

// AssignmentPattern matches a line starting with name=current.
// current is matched literally and as a prefix, so an empty current
// matches any assignment of name.
func AssignmentPattern(name string, current string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(name) + regexp.QuoteMeta("="+current))
}

// ReplaceFirst replaces the first name=current occurrence with name=value.
// The returned bool reports whether anything matched, if not the content
// is returned unchanged.
func ReplaceFirst(content string, name string, current string, value string) (string, bool) {
	loc := AssignmentPattern(name, current).FindStringIndex(content)
	if loc == nil {
		return content, false
	}
	return content[:loc[0]] + name + "=" + value + content[loc[1]:], true
}

// Lookup parses content as dotenv and returns the value of name
func Lookup(content string, name string) (string, bool, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return "", false, errors.Wrap(err, "unable to parse environment file")
	}
	v, ok := values[name]
	return v, ok, nil
}

// WriteAtomic replaces the file at path with content.
// The content goes to a temporary file in the same directory first which is
// then renamed over path, so a failed write never leaves a truncated file.
// The mode of an existing file is kept, symlinks are followed so the
// link target receives the content and the link itself stays in place.
func WriteAtomic(path string, content string) error {
	target, err := filepath.EvalSymlinks(path)
	switch {
	case err == nil:
		path = target
	case !errors.Is(err, os.ErrNotExist):
		return errors.Mark(errors.Wrapf(err, "unable to resolve %s", path), ErrFileIO)
	}
	mode := defaultMode
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "unable to create temporary file for %s", path), ErrFileIO)
	}
	tmpName := tmp.Name()
	cleanup := func(cause error, msg string) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Mark(errors.Wrapf(cause, "%s %s", msg, path), ErrFileIO)
	}
	if _, err := tmp.WriteString(content); err != nil {
		return cleanup(err, "unable to write")
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err, "unable to sync")
	}
	if err := tmp.Chmod(mode); err != nil {
		return cleanup(err, "unable to chmod")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Mark(errors.Wrapf(err, "unable to close temporary file for %s", path), ErrFileIO)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Mark(errors.Wrapf(err, "unable to replace %s", path), ErrFileIO)
	}
	return nil
}
