// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"time"

	"quorum/internal/models"

	"gorm.io/gorm"
)

// ReplyRepository defines interface for reply operations
type ReplyRepository interface {
	Create(ctx context.Context, reply *models.Reply) error
	GetByID(ctx context.Context, id uint) (*models.Reply, error)
	ListByQuestion(ctx context.Context, questionID uint, includeUnpublished bool) ([]*models.Reply, error)
	// UpdateFields applies an idempotent partial update of the given columns.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	SetPublishedAt(ctx context.Context, id uint, publishedAt *time.Time) error
	Delete(ctx context.Context, id uint) error
}

type replyRepository struct {
	db *gorm.DB
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *gorm.DB) ReplyRepository {
	return &replyRepository{db: db}
}

func (r *replyRepository) Create(ctx context.Context, reply *models.Reply) error {
	return r.db.WithContext(ctx).Create(reply).Error
}

func (r *replyRepository) GetByID(ctx context.Context, id uint) (*models.Reply, error) {
	var reply models.Reply
	if err := r.db.WithContext(ctx).Preload("Profile.Teams").Preload("Profile").First(&reply, id).Error; err != nil {
		return nil, err
	}
	return &reply, nil
}

func (r *replyRepository) ListByQuestion(
	ctx context.Context,
	questionID uint,
	includeUnpublished bool,
) ([]*models.Reply, error) {
	q := r.db.WithContext(ctx).
		Preload("Profile.Teams").
		Preload("Profile").
		Where("question_id = ?", questionID)
	if !includeUnpublished {
		q = q.Where("published_at IS NOT NULL")
	}
	var replies []*models.Reply
	err := q.Order("created_at asc").Find(&replies).Error
	return replies, err
}

func (r *replyRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Reply{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *replyRepository) SetPublishedAt(ctx context.Context, id uint, publishedAt *time.Time) error {
	return r.UpdateFields(ctx, id, map[string]interface{}{"published_at": publishedAt})
}

func (r *replyRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reply{}, id).Error
}
