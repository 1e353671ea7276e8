// Package handoff passes the final transcript snapshot from the interview
// end handler to feedback generation through Redis. Each snapshot is read
// once and then gone; the database remains the fallback source of truth.
package handoff

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
)

var ErrNotFound = errors.New("handoff snapshot not found")

const defaultTTL = 30 * time.Minute

// Snapshot is the transcript state captured when an interview ends.
type Snapshot struct {
	InterviewID       string            `json:"interviewId"`
	Role              string            `json:"role"`
	InterviewType     string            `json:"interviewType"`
	QuestionsAnswered int               `json:"questionsAnswered"`
	TotalQuestions    int               `json:"totalQuestions"`
	Questions         []models.Question `json:"questions"`
	EndedAt           time.Time         `json:"endedAt"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(redisAddr, password string) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
	})
	return &Store{rdb: rdb, ttl: defaultTTL}
}

// NewStoreWithClient wraps an existing client, mainly for tests.
func NewStoreWithClient(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, ttl: defaultTTL}
}

func key(interviewID string) string {
	return "handoff:interview:" + interviewID
}

// Put stores the snapshot with a TTL so abandoned snapshots expire on their
// own.
func (s *Store) Put(ctx context.Context, snap *Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode handoff snapshot: %w", err)
	}
	return s.rdb.Set(ctx, key(snap.InterviewID), payload, s.ttl).Err()
}

// Take retrieves and deletes the snapshot in one step. A second Take for the
// same interview returns ErrNotFound.
func (s *Store) Take(ctx context.Context, interviewID string) (*Snapshot, error) {
	payload, err := s.rdb.GetDel(ctx, key(interviewID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode handoff snapshot: %w", err)
	}
	return &snap, nil
}

// Ping verifies connectivity at startup.
func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}
