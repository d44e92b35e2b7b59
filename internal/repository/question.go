package repository

import (
	"context"

	"quorum/internal/models"

	"gorm.io/gorm"
)

// QuestionRepository defines interface for question operations
type QuestionRepository interface {
	Create(ctx context.Context, question *models.Question) error
	GetByID(ctx context.Context, id uint) (*models.Question, error)
	// SetResolvedBy updates the solution marker; nil clears it.
	SetResolvedBy(ctx context.Context, id uint, replyID *uint) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Preload("Topics").
		First(&question, id).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) SetResolvedBy(ctx context.Context, id uint, replyID *uint) error {
	res := r.db.WithContext(ctx).Model(&models.Question{}).Where("id = ?", id).
		Update("resolved_by_id", replyID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
