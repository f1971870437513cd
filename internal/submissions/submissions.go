package submissions

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StudentItem uniquely identifies one learner's relationship to one block
// instance inside a course. It is the key every submission and assessment
// hangs off of.
type StudentItem struct {
	StudentID string `json:"student_id"`
	ItemID    string `json:"item_id"`
	CourseID  string `json:"course_id"`
	ItemType  string `json:"item_type"`
}

type Submission struct {
	UUID      string      `json:"uuid"`
	Item      StudentItem `json:"student_item"`
	Answer    string      `json:"answer"`
	Attempt   int         `json:"attempt_number"`
	CreatedAt int64       `json:"created_at"`
}

// Kind values for Assessment.
const (
	KindPeer = "PE"
	KindSelf = "SE"
)

type Assessment struct {
	UUID           string         `json:"uuid"`
	SubmissionUUID string         `json:"submission_uuid"`
	ScorerID       string         `json:"scorer_id"`
	Kind           string         `json:"kind"`
	PointsEarned   map[string]int `json:"points_earned"` // criterion name -> option points
	Feedback       string         `json:"feedback"`
	CreatedAt      int64          `json:"created_at"`
}

var ErrNotFound = errors.New("submissions: not found")

// API is the submissions-service surface the block depends on. Scoring lives
// behind this boundary and is not implemented here.
type API interface {
	Create(ctx context.Context, item StudentItem, answer string) (Submission, error)
	Get(ctx context.Context, submissionUUID string) (Submission, error)
	ListForItem(ctx context.Context, item StudentItem) ([]Submission, error)
	CreateAssessment(ctx context.Context, a Assessment) (Assessment, error)
	CountByScorer(ctx context.Context, scorerID, kind string) (int, error)
}

type memoryStore struct {
	mu          sync.RWMutex
	subs        map[string]Submission
	assessments map[string]Assessment
}

func NewInMemoryStore() API {
	return &memoryStore{
		subs:        map[string]Submission{},
		assessments: map[string]Assessment{},
	}
}

func (m *memoryStore) Create(ctx context.Context, item StudentItem, answer string) (Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	attempt := 1
	for _, s := range m.subs {
		if s.Item == item {
			attempt++
		}
	}
	s := Submission{
		UUID:      uuid.NewString(),
		Item:      item,
		Answer:    answer,
		Attempt:   attempt,
		CreatedAt: time.Now().Unix(),
	}
	m.subs[s.UUID] = s
	return s, nil
}

func (m *memoryStore) Get(ctx context.Context, submissionUUID string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[submissionUUID]
	if !ok {
		return Submission{}, ErrNotFound
	}
	return s, nil
}

func (m *memoryStore) ListForItem(ctx context.Context, item StudentItem) ([]Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Submission{}
	for _, s := range m.subs {
		if s.Item == item {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Attempt < out[j].Attempt })
	return out, nil
}

func (m *memoryStore) CreateAssessment(ctx context.Context, a Assessment) (Assessment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[a.SubmissionUUID]; !ok {
		return Assessment{}, ErrNotFound
	}
	a.UUID = uuid.NewString()
	a.CreatedAt = time.Now().Unix()
	m.assessments[a.UUID] = a
	return a, nil
}

func (m *memoryStore) CountByScorer(ctx context.Context, scorerID, kind string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, a := range m.assessments {
		if a.ScorerID == scorerID && a.Kind == kind {
			n++
		}
	}
	return n, nil
}
