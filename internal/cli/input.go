package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
)

// appName is the application name used for directories and display.
const appName = "wordcloud"

// readSubmissions loads submissions from path. Two layouts are
// accepted: a single JSON array of submission objects, or JSON lines
// (one object per line, blank lines ignored). "-" reads stdin.
func readSubmissions(path string) ([]cloud.Submission, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read submissions %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read submissions %s", path)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var subs []cloud.Submission
		if err := json.Unmarshal(trimmed, &subs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse submissions %s", path)
		}
		return subs, nil
	}

	// JSON lines
	var subs []cloud.Submission
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		var sub cloud.Submission
		if err := json.Unmarshal(text, &sub); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s line %d", path, line)
		}
		subs = append(subs, sub)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "scan submissions %s", path)
	}
	return subs, nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// cacheDir returns the cache directory using the XDG standard
// (~/.cache/wordcloud/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
