package exam

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"worldtests/internal/events"
	"worldtests/internal/question"
)

type Service struct {
	store     question.Store
	publisher events.Publisher
	metrics   *Metrics
	logger    *zap.Logger
	now       func() time.Time
}

type ServiceConfig struct {
	Publisher events.Publisher
	Metrics   *Metrics
	Logger    *zap.Logger
}

type CheckInput struct {
	TestID  int64
	UserID  int64
	Answers map[string]json.RawMessage
}

type ItemResult struct {
	QuestionID int64  `json:"question_id"`
	Seq        int    `json:"seq"`
	Mechanic   string `json:"mechanic"`
	Answered   bool   `json:"answered"`
	Correct    bool   `json:"correct"`
	Reason     string `json:"reason"`
}

type CheckResult struct {
	ID         string       `json:"id"`
	TestID     int64        `json:"test_id"`
	UserID     int64        `json:"user_id"`
	Correct    int          `json:"correct"`
	Wrong      int          `json:"wrong"`
	Unanswered int          `json:"unanswered"`
	Total      int          `json:"total"`
	Score      float64      `json:"score"`
	CheckedAt  time.Time    `json:"checked_at"`
	Items      []ItemResult `json:"items"`
}

func NewService(store question.Store, cfg ServiceConfig) *Service {
	if cfg.Publisher == nil {
		cfg.Publisher = events.NopPublisher{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		store:     store,
		publisher: cfg.Publisher,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		now:       time.Now,
	}
}

// Check grades every question of the test against the submitted answers.
// Answers are keyed by question id; a question without an answer counts as
// unanswered. Only fully correct questions add to the score.
func (s *Service) Check(ctx context.Context, in CheckInput) (*CheckResult, error) {
	if in.TestID <= 0 || in.UserID <= 0 {
		return nil, question.ErrInvalidInput
	}

	recs, err := s.store.ListByTest(ctx, in.TestID)
	if err != nil {
		return nil, fmt.Errorf("load test questions: %w", err)
	}

	out := &CheckResult{
		ID:        uuid.NewString(),
		TestID:    in.TestID,
		UserID:    in.UserID,
		Total:     len(recs),
		CheckedAt: s.now().UTC(),
		Items:     make([]ItemResult, 0, len(recs)),
	}

	for _, rec := range recs {
		res := ScoreQuestion(rec, in.Answers[strconv.FormatInt(rec.ID, 10)])
		s.metrics.observe(res)
		if res.Err != nil {
			s.logger.Warn("question scored as incorrect: untrusted definition or key",
				zap.Int64("test_id", rec.TestID),
				zap.Int64("question_id", rec.ID),
				zap.String("mechanic", rec.Mechanic),
				zap.String("reason", res.Reason),
				zap.Error(res.Err))
		}

		switch {
		case res.Correct:
			out.Correct++
		case res.Answered:
			out.Wrong++
		default:
			out.Unanswered++
		}
		out.Items = append(out.Items, ItemResult{
			QuestionID: rec.ID,
			Seq:        rec.Seq,
			Mechanic:   res.Mechanic,
			Answered:   res.Answered,
			Correct:    res.Correct,
			Reason:     res.Reason,
		})
	}
	out.Score = percentage(out.Correct, out.Total)

	ev := events.SubmissionChecked{
		ID:        out.ID,
		TestID:    out.TestID,
		UserID:    out.UserID,
		Correct:   out.Correct,
		Total:     out.Total,
		Score:     out.Score,
		CheckedAt: out.CheckedAt,
	}
	if err := s.publisher.PublishSubmissionChecked(ctx, ev); err != nil {
		s.logger.Error("publish submission event",
			zap.String("check_id", out.ID),
			zap.Int64("test_id", out.TestID),
			zap.Error(err))
	}

	return out, nil
}

// ListQuestions returns the learner-facing view of a test.
func (s *Service) ListQuestions(ctx context.Context, testID int64) ([]question.PublicQuestion, error) {
	if testID <= 0 {
		return nil, question.ErrInvalidInput
	}
	recs, err := s.store.ListByTest(ctx, testID)
	if err != nil {
		return nil, fmt.Errorf("list test questions: %w", err)
	}
	return question.PublicViews(recs), nil
}

func percentage(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*10000/float64(total)) / 100
}
