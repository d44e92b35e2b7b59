package thread

import (
	"context"
	"sync"

	"quorum/internal/models"
)

// discussionStub is a stub for Discussion.
type discussionStub struct {
	question  *models.Question
	resolveFn func(context.Context, bool, *uint) error
	publishFn func(context.Context, bool, uint) error
	deleteFn  func(context.Context, uint) error

	resolveCalls []resolveCall
	publishCalls []publishCall
	deleteCalls  []uint
	refreshes    int
}

type resolveCall struct {
	mark    bool
	replyID *uint
}

type publishCall struct {
	currentlyPublished bool
	replyID            uint
}

func newDiscussionStub(q *models.Question) *discussionStub {
	return &discussionStub{question: q}
}

func (d *discussionStub) Question() *models.Question { return d.question }

func (d *discussionStub) Resolve(ctx context.Context, mark bool, replyID *uint) error {
	d.resolveCalls = append(d.resolveCalls, resolveCall{mark: mark, replyID: replyID})
	if d.resolveFn != nil {
		return d.resolveFn(ctx, mark, replyID)
	}
	return nil
}

func (d *discussionStub) Publish(ctx context.Context, currentlyPublished bool, replyID uint) error {
	d.publishCalls = append(d.publishCalls, publishCall{currentlyPublished: currentlyPublished, replyID: replyID})
	if d.publishFn != nil {
		return d.publishFn(ctx, currentlyPublished, replyID)
	}
	return nil
}

func (d *discussionStub) Delete(ctx context.Context, replyID uint) error {
	d.deleteCalls = append(d.deleteCalls, replyID)
	if d.deleteFn != nil {
		return d.deleteFn(ctx, replyID)
	}
	return nil
}

func (d *discussionStub) Refresh() { d.refreshes++ }

// contentAPIStub is a stub for ContentAPI.
type contentAPIStub struct {
	mu          sync.Mutex
	updateFn    func(context.Context, uint, map[string]interface{}) error
	deleteFn    func(context.Context, uint) error
	updateCalls []updateCall
}

type updateCall struct {
	replyID uint
	fields  map[string]interface{}
}

func (c *contentAPIStub) UpdateReply(ctx context.Context, replyID uint, fields map[string]interface{}) error {
	c.mu.Lock()
	c.updateCalls = append(c.updateCalls, updateCall{replyID: replyID, fields: fields})
	c.mu.Unlock()
	if c.updateFn != nil {
		return c.updateFn(ctx, replyID, fields)
	}
	return nil
}

func (c *contentAPIStub) DeleteReply(ctx context.Context, replyID uint) error {
	if c.deleteFn != nil {
		return c.deleteFn(ctx, replyID)
	}
	return nil
}

// sinkRecorder records analytics captures.
type sinkRecorder struct {
	captureFn func(context.Context, string, map[string]interface{}) error
	events    []capturedEvent
}

type capturedEvent struct {
	name       string
	properties map[string]interface{}
}

func (s *sinkRecorder) Capture(ctx context.Context, event string, properties map[string]interface{}) error {
	s.events = append(s.events, capturedEvent{name: event, properties: properties})
	if s.captureFn != nil {
		return s.captureFn(ctx, event, properties)
	}
	return nil
}

func uintPtr(v uint) *uint { return &v }

func aiReply(id, aiProfileID uint) *models.Reply {
	return &models.Reply{
		ID:        id,
		ProfileID: uintPtr(aiProfileID),
		Profile:   &models.Profile{ID: aiProfileID, FirstName: "Max"},
	}
}
