package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classkit/wordcloud/pkg/errors"
	"github.com/classkit/wordcloud/pkg/httputil"
)

// Collection names within the wordcloud database.
const (
	sessionsCollection    = "sessions"
	submissionsCollection = "submissions"
)

// MongoStore is a MongoDB-backed Store for production deployments.
type MongoStore struct {
	client      *mongo.Client
	sessions    *mongo.Collection
	submissions *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	URI      string // default "mongodb://localhost:27017"
	Database string // default "wordcloud"
}

// NewMongoStore connects to MongoDB and verifies the connection.
// Transient connection failures are retried with backoff before
// giving up.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "wordcloud"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	err = httputil.Retry(ctx, 3, time.Second, func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return &httputil.RetryableError{Err: err}
		}
		return nil
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(cfg.Database)
	return &MongoStore{
		client:      client,
		sessions:    db.Collection(sessionsCollection),
		submissions: db.Collection(submissionsCollection),
	}, nil
}

func (s *MongoStore) CreateSession(ctx context.Context, title string, maxPerParticipant int) (*Session, error) {
	if err := errors.ValidateTitle(title); err != nil {
		return nil, err
	}
	if maxPerParticipant < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max per participant cannot be negative")
	}

	sess := &Session{
		ID:                uuid.NewString(),
		Title:             title,
		Status:            StatusActive,
		MaxPerParticipant: maxPerParticipant,
		CreatedAt:         time.Now().UTC(),
	}

	if _, err := s.sessions.InsertOne(ctx, sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "insert session")
	}
	return sess, nil
}

func (s *MongoStore) GetSession(ctx context.Context, id string) (*Session, error) {
	var sess Session
	err := s.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load session %s", id)
	}
	return &sess, nil
}

func (s *MongoStore) EndSession(ctx context.Context, id string) (*Session, error) {
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"status": StatusEnded, "ended_at": now}}

	res := s.sessions.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var sess Session
	if err := res.Decode(&sess); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New(errors.ErrCodeSessionNotFound, "session %s not found", id)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "end session %s", id)
	}
	return &sess, nil
}

func (s *MongoStore) CreateSubmission(ctx context.Context, sessionID, submitterID, word string) (*Submission, error) {
	if err := errors.ValidateWord(word); err != nil {
		return nil, err
	}

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkWrite(sess); err != nil {
		return nil, err
	}

	if sess.MaxPerParticipant > 0 {
		have, err := s.submissions.CountDocuments(ctx, bson.M{
			"session_id":   sessionID,
			"submitter_id": submitterID,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "count submissions")
		}
		if err := checkCap(sess, int(have)); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	sub := &Submission{
		ID:          uuid.NewString(),
		SessionID:   sessionID,
		SubmitterID: submitterID,
		Word:        word,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.submissions.InsertOne(ctx, sub); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "insert submission")
	}
	return sub, nil
}

func (s *MongoStore) UpdateSubmission(ctx context.Context, sessionID, submissionID, submitterID, word string, admin bool) (*Submission, error) {
	if err := errors.ValidateWord(word); err != nil {
		return nil, err
	}

	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := checkWrite(sess); err != nil {
		return nil, err
	}

	sub, err := s.getSubmission(ctx, sessionID, submissionID)
	if err != nil {
		return nil, err
	}
	if err := checkOwner(sub, submitterID, admin); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{"word": word, "updated_at": now}}
	if _, err := s.submissions.UpdateOne(ctx, bson.M{"_id": submissionID}, update); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "update submission %s", submissionID)
	}

	sub.Word = word
	sub.UpdatedAt = now
	return sub, nil
}

func (s *MongoStore) DeleteSubmission(ctx context.Context, sessionID, submissionID, submitterID string, admin bool) error {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return err
	}

	sub, err := s.getSubmission(ctx, sessionID, submissionID)
	if err != nil {
		return err
	}
	if err := checkOwner(sub, submitterID, admin); err != nil {
		return err
	}

	if _, err := s.submissions.DeleteOne(ctx, bson.M{"_id": submissionID}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete submission %s", submissionID)
	}
	return nil
}

func (s *MongoStore) ListSubmissions(ctx context.Context, sessionID string) ([]Submission, error) {
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	cur, err := s.submissions.Find(ctx, bson.M{"session_id": sessionID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list submissions")
	}
	defer cur.Close(ctx)

	var subs []Submission
	if err := cur.All(ctx, &subs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode submissions")
	}
	return subs, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) getSubmission(ctx context.Context, sessionID, submissionID string) (*Submission, error) {
	var sub Submission
	err := s.submissions.FindOne(ctx, bson.M{"_id": submissionID, "session_id": sessionID}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSubmissionNotFound, "submission %s not found", submissionID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load submission %s", submissionID)
	}
	return &sub, nil
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
