package submissions

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type sqlStore struct {
	db     *sql.DB
	driver string // "sqlite" | "postgres"
}

func NewSQLStore(db *sql.DB, driver string) API {
	return &sqlStore{db: db, driver: driver}
}

// rebind converts ?-placeholders to $n for postgres.
func (s *sqlStore) rebind(q string) string {
	if s.driver != "postgres" {
		return q
	}
	out := make([]byte, 0, len(q)+8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			out = append(out, fmt.Sprintf("$%d", n)...)
			continue
		}
		out = append(out, q[i])
	}
	return string(out)
}

func (s *sqlStore) Create(ctx context.Context, item StudentItem, answer string) (Submission, error) {
	var attempt int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM submissions
		WHERE student_id=? AND item_id=? AND course_id=? AND item_type=?`),
		item.StudentID, item.ItemID, item.CourseID, item.ItemType).Scan(&attempt)
	if err != nil {
		return Submission{}, err
	}
	sub := Submission{
		UUID:      uuid.NewString(),
		Item:      item,
		Answer:    answer,
		Attempt:   attempt + 1,
		CreatedAt: time.Now().Unix(),
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO submissions (uuid, student_id, item_id, course_id, item_type, answer, attempt_number, created_at)
		VALUES (?,?,?,?,?,?,?,?)`),
		sub.UUID, item.StudentID, item.ItemID, item.CourseID, item.ItemType, sub.Answer, sub.Attempt, sub.CreatedAt)
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *sqlStore) Get(ctx context.Context, submissionUUID string) (Submission, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT uuid, student_id, item_id, course_id, item_type, answer, attempt_number, created_at
		FROM submissions WHERE uuid=?`), submissionUUID)
	return scanSubmission(row)
}

func (s *sqlStore) ListForItem(ctx context.Context, item StudentItem) ([]Submission, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT uuid, student_id, item_id, course_id, item_type, answer, attempt_number, created_at
		FROM submissions
		WHERE student_id=? AND item_id=? AND course_id=? AND item_type=?
		ORDER BY attempt_number`),
		item.StudentID, item.ItemID, item.CourseID, item.ItemType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, rows.Err()
}

func (s *sqlStore) CreateAssessment(ctx context.Context, a Assessment) (Assessment, error) {
	if _, err := s.Get(ctx, a.SubmissionUUID); err != nil {
		return Assessment{}, err
	}
	a.UUID = uuid.NewString()
	a.CreatedAt = time.Now().Unix()
	points, err := json.Marshal(a.PointsEarned)
	if err != nil {
		return Assessment{}, err
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO assessments (uuid, submission_uuid, scorer_id, kind, points_json, feedback, created_at)
		VALUES (?,?,?,?,?,?,?)`),
		a.UUID, a.SubmissionUUID, a.ScorerID, a.Kind, string(points), a.Feedback, a.CreatedAt)
	if err != nil {
		return Assessment{}, err
	}
	return a, nil
}

func (s *sqlStore) CountByScorer(ctx context.Context, scorerID, kind string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT COUNT(*) FROM assessments WHERE scorer_id=? AND kind=?`),
		scorerID, kind).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(r rowScanner) (Submission, error) {
	var sub Submission
	err := r.Scan(&sub.UUID, &sub.Item.StudentID, &sub.Item.ItemID, &sub.Item.CourseID,
		&sub.Item.ItemType, &sub.Answer, &sub.Attempt, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	if err != nil {
		return Submission{}, err
	}
	return sub, nil
}
