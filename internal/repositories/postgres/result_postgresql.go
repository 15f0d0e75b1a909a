package postgres

import (
	"context"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"gorm.io/gorm"
)

type ResultPostgreSQL struct {
	db *gorm.DB
}

func NewResultPostgreSQL(db *gorm.DB) repositories.ResultRepository {
	return &ResultPostgreSQL{db: db}
}

func (r *ResultPostgreSQL) Create(ctx context.Context, result *models.Result) error {
	return r.db.WithContext(ctx).Create(result).Error
}

func (r *ResultPostgreSQL) GetByID(ctx context.Context, id string) (*models.Result, error) {
	var result models.Result
	if err := r.db.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *ResultPostgreSQL) GetByUser(ctx context.Context, userID string) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("attempt_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultPostgreSQL) GetByAssessment(ctx context.Context, assessmentID string) ([]*models.Result, error) {
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("attempt_date DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultPostgreSQL) GetByAssessmentIDs(ctx context.Context, assessmentIDs []string) ([]*models.Result, error) {
	if len(assessmentIDs) == 0 {
		return nil, nil
	}
	var results []*models.Result
	if err := r.db.WithContext(ctx).
		Where("assessment_id IN ?", assessmentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ResultPostgreSQL) CountByAssessment(ctx context.Context, assessmentID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Result{}).
		Where("assessment_id = ?", assessmentID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
