// Package store persists word-cloud sessions and submissions.
//
// A Session is one bounded collection window (a classroom activity): it
// has a title, an active/ended status, and an optional cap on
// submissions per participant. Submissions are single words owned by
// their submitter; edits overwrite in place and deletes require
// ownership unless performed as admin.
//
// Two backends are provided: MemoryStore for development and tests,
// and MongoStore for production deployments. Both enforce the same
// domain rules through the shared validation helpers in this file, so
// behavior does not drift between them.
package store

import (
	"context"
	"time"

	"github.com/classkit/wordcloud/pkg/cloud"
	"github.com/classkit/wordcloud/pkg/errors"
)

// Session statuses.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Session is one bounded word-collection window.
type Session struct {
	ID    string `json:"id" bson:"_id"`
	Title string `json:"title" bson:"title"`

	// Status is StatusActive or StatusEnded. Ended sessions reject
	// submission writes but keep serving reads.
	Status string `json:"status" bson:"status"`

	// MaxPerParticipant caps how many submissions one participant may
	// hold in this session. Zero means unlimited.
	MaxPerParticipant int `json:"max_per_participant,omitempty" bson:"max_per_participant,omitempty"`

	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" bson:"ended_at,omitempty"`
}

// Active reports whether the session accepts submission writes.
func (s *Session) Active() bool { return s.Status == StatusActive }

// Submission is one stored word. Edits replace Word in place (same
// identity, UpdatedAt bumped); submissions are not versioned.
type Submission struct {
	ID          string    `json:"id" bson:"_id"`
	SessionID   string    `json:"session_id" bson:"session_id"`
	SubmitterID string    `json:"submitter_id" bson:"submitter_id"`
	Word        string    `json:"word" bson:"word"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Store is the persistence interface for sessions and submissions.
// Implementations must be safe for concurrent use.
type Store interface {
	CreateSession(ctx context.Context, title string, maxPerParticipant int) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
	EndSession(ctx context.Context, id string) (*Session, error)

	// CreateSubmission validates the word, the session status, and the
	// per-participant cap before storing.
	CreateSubmission(ctx context.Context, sessionID, submitterID, word string) (*Submission, error)

	// UpdateSubmission replaces the word of an existing submission.
	// Non-admin callers must own the submission.
	UpdateSubmission(ctx context.Context, sessionID, submissionID, submitterID, word string, admin bool) (*Submission, error)

	// DeleteSubmission removes a submission. Non-admin callers must own
	// the submission.
	DeleteSubmission(ctx context.Context, sessionID, submissionID, submitterID string, admin bool) error

	// ListSubmissions returns all submissions of a session in creation
	// order.
	ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error)

	Close(ctx context.Context) error
}

// CloudSubmissions converts stored submissions to the aggregation
// input records of the layout core.
func CloudSubmissions(subs []Submission) []cloud.Submission {
	out := make([]cloud.Submission, len(subs))
	for i, s := range subs {
		out[i] = cloud.Submission{SubmitterID: s.SubmitterID, Word: s.Word}
	}
	return out
}

// checkWrite gates a submission write against session state.
func checkWrite(sess *Session) error {
	if sess == nil {
		return errors.New(errors.ErrCodeSessionNotFound, "session not found")
	}
	if !sess.Active() {
		return errors.New(errors.ErrCodeSessionEnded, "session %q has ended", sess.Title)
	}
	return nil
}

// checkCap gates a new submission against the per-participant cap.
// have is the participant's current submission count in the session.
func checkCap(sess *Session, have int) error {
	if sess.MaxPerParticipant > 0 && have >= sess.MaxPerParticipant {
		return errors.New(errors.ErrCodeSubmissionLimit,
			"submission limit reached (%d per participant)", sess.MaxPerParticipant)
	}
	return nil
}

// checkOwner gates edits and deletes.
func checkOwner(sub *Submission, submitterID string, admin bool) error {
	if sub == nil {
		return errors.New(errors.ErrCodeSubmissionNotFound, "submission not found")
	}
	if !admin && sub.SubmitterID != submitterID {
		return errors.New(errors.ErrCodeNotOwner, "submission belongs to another participant")
	}
	return nil
}
