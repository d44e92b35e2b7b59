package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"quorum/internal/models"

	"github.com/stretchr/testify/require"
)

// replyRepoStub is a stub for repository.ReplyRepository.
type replyRepoStub struct {
	createFn         func(context.Context, *models.Reply) error
	getByIDFn        func(context.Context, uint) (*models.Reply, error)
	listByQuestionFn func(context.Context, uint, bool) ([]*models.Reply, error)
	updateFieldsFn   func(context.Context, uint, map[string]interface{}) error
	setPublishedAtFn func(context.Context, uint, *time.Time) error
	deleteFn         func(context.Context, uint) error
}

func (s *replyRepoStub) Create(ctx context.Context, reply *models.Reply) error {
	return s.createFn(ctx, reply)
}
func (s *replyRepoStub) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	return s.getByIDFn(ctx, id)
}
func (s *replyRepoStub) ListByQuestion(ctx context.Context, questionID uint, includeUnpublished bool) ([]*models.Reply, error) {
	return s.listByQuestionFn(ctx, questionID, includeUnpublished)
}
func (s *replyRepoStub) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.updateFieldsFn(ctx, id, fields)
}
func (s *replyRepoStub) SetPublishedAt(ctx context.Context, id uint, publishedAt *time.Time) error {
	return s.setPublishedAtFn(ctx, id, publishedAt)
}
func (s *replyRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopReplyRepo() *replyRepoStub {
	return &replyRepoStub{
		createFn:  func(_ context.Context, _ *models.Reply) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Reply, error) { return &models.Reply{ID: id}, nil },
		listByQuestionFn: func(_ context.Context, _ uint, _ bool) ([]*models.Reply, error) {
			return nil, nil
		},
		updateFieldsFn:   func(_ context.Context, _ uint, _ map[string]interface{}) error { return nil },
		setPublishedAtFn: func(_ context.Context, _ uint, _ *time.Time) error { return nil },
		deleteFn:         func(_ context.Context, _ uint) error { return nil },
	}
}

// questionRepoStub is a stub for repository.QuestionRepository.
type questionRepoStub struct {
	createFn        func(context.Context, *models.Question) error
	getByIDFn       func(context.Context, uint) (*models.Question, error)
	setResolvedByFn func(context.Context, uint, *uint) error
}

func (s *questionRepoStub) Create(ctx context.Context, question *models.Question) error {
	return s.createFn(ctx, question)
}
func (s *questionRepoStub) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	return s.getByIDFn(ctx, id)
}
func (s *questionRepoStub) SetResolvedBy(ctx context.Context, id uint, replyID *uint) error {
	return s.setResolvedByFn(ctx, id, replyID)
}

func noopQuestionRepo() *questionRepoStub {
	return &questionRepoStub{
		createFn: func(_ context.Context, _ *models.Question) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Question, error) {
			return &models.Question{ID: id}, nil
		},
		setResolvedByFn: func(_ context.Context, _ uint, _ *uint) error { return nil },
	}
}

// captureRecorder records analytics captures for assertions.
type captureRecorder struct {
	mu    sync.Mutex
	calls []capturedEvent
	err   error
}

type capturedEvent struct {
	event string
	props map[string]interface{}
}

func (r *captureRecorder) Capture(_ context.Context, event string, props map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, capturedEvent{event: event, props: props})
	return r.err
}

func (r *captureRecorder) captured() []capturedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]capturedEvent, len(r.calls))
	copy(out, r.calls)
	return out
}

func uintPtr(v uint) *uint { return &v }

func memberSession(id uint) *models.Session {
	return &models.Session{Profile: &models.Profile{ID: id}, Role: models.RoleMember}
}

func moderatorSession(id uint) *models.Session {
	return &models.Session{Profile: &models.Profile{ID: id}, Role: models.RoleModerator}
}

func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}
