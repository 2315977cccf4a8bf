package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/classkit/wordcloud/pkg/errors"
)

func writeSubmissionsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "submissions.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write submissions: %v", err)
	}
	return path
}

func TestReadSubmissionsArray(t *testing.T) {
	path := writeSubmissionsFile(t, `[
		{"submitter_id": "s1", "word": "수학"},
		{"submitter_id": "s2", "word": "과학"}
	]`)

	subs, err := readSubmissions(path)
	if err != nil {
		t.Fatalf("readSubmissions() error: %v", err)
	}

	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[0].Word != "수학" || subs[0].SubmitterID != "s1" {
		t.Errorf("subs[0] = %+v", subs[0])
	}
}

func TestReadSubmissionsJSONLines(t *testing.T) {
	path := writeSubmissionsFile(t, `{"submitter_id": "s1", "word": "수학"}

{"submitter_id": "s2", "word": "체육"}
`)

	subs, err := readSubmissions(path)
	if err != nil {
		t.Fatalf("readSubmissions() error: %v", err)
	}

	if len(subs) != 2 {
		t.Fatalf("len(subs) = %d, want 2", len(subs))
	}
	if subs[1].Word != "체육" {
		t.Errorf("subs[1].Word = %q, want %q", subs[1].Word, "체육")
	}
}

func TestReadSubmissionsEmpty(t *testing.T) {
	path := writeSubmissionsFile(t, "")

	subs, err := readSubmissions(path)
	if err != nil {
		t.Fatalf("readSubmissions() error: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("len(subs) = %d, want 0", len(subs))
	}
}

func TestReadSubmissionsMissingFile(t *testing.T) {
	_, err := readSubmissions(filepath.Join(t.TempDir(), "nope.json"))
	if errors.GetCode(err) != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestReadSubmissionsMalformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"broken array", `[{"word": "a"}`},
		{"broken line", `{"word": }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSubmissionsFile(t, tt.content)
			_, err := readSubmissions(path)
			if errors.GetCode(err) != errors.ErrCodeInvalidInput {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}
