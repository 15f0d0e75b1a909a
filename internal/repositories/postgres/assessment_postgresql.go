package postgres

import (
	"context"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"gorm.io/gorm"
)

type AssessmentPostgreSQL struct {
	db *gorm.DB
}

func NewAssessmentPostgreSQL(db *gorm.DB) repositories.AssessmentRepository {
	return &AssessmentPostgreSQL{db: db}
}

func (a *AssessmentPostgreSQL) Create(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Create(assessment).Error
}

func (a *AssessmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Assessment, error) {
	var assessment models.Assessment
	if err := a.db.WithContext(ctx).
		Preload("Course").
		First(&assessment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &assessment, nil
}

func (a *AssessmentPostgreSQL) GetByIDs(ctx context.Context, ids []string) ([]*models.Assessment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var assessments []*models.Assessment
	if err := a.db.WithContext(ctx).
		Preload("Course").
		Where("id IN ?", ids).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (a *AssessmentPostgreSQL) GetByCourse(ctx context.Context, courseID string) ([]*models.Assessment, error) {
	var assessments []*models.Assessment
	if err := a.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (a *AssessmentPostgreSQL) GetByCourseIDs(ctx context.Context, courseIDs []string) ([]*models.Assessment, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var assessments []*models.Assessment
	if err := a.db.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Find(&assessments).Error; err != nil {
		return nil, err
	}
	return assessments, nil
}

func (a *AssessmentPostgreSQL) List(ctx context.Context, filters repositories.AssessmentFilters) ([]*models.Assessment, int64, error) {
	var assessments []*models.Assessment
	var total int64

	query := a.db.WithContext(ctx).Model(&models.Assessment{})
	if filters.CourseID != nil {
		query = query.Where("course_id = ?", *filters.CourseID)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.Limit, filters.Offset, filters.SortBy, filters.SortOrder)
	if err := query.Preload("Course").Find(&assessments).Error; err != nil {
		return nil, 0, err
	}

	return assessments, total, nil
}

func (a *AssessmentPostgreSQL) Update(ctx context.Context, assessment *models.Assessment) error {
	return a.db.WithContext(ctx).Save(assessment).Error
}

func (a *AssessmentPostgreSQL) Delete(ctx context.Context, id string) error {
	return a.db.WithContext(ctx).Delete(&models.Assessment{}, "id = ?", id).Error
}
