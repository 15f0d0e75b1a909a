package postgres

import (
	"context"

	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
	"gorm.io/gorm"
)

// UserDirectoryPostgreSQL serves identities from the local users read
// model. Deployments without Casdoor (development, tests against a seeded
// database) select it via USER_DIRECTORY=local.
type UserDirectoryPostgreSQL struct {
	db *gorm.DB
}

func NewUserDirectoryPostgreSQL(db *gorm.DB) repositories.UserDirectory {
	return &UserDirectoryPostgreSQL{db: db}
}

func (u *UserDirectoryPostgreSQL) Get(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserDirectoryPostgreSQL) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	if len(ids) == 0 {
		return map[string]*models.User{}, nil
	}
	var users []*models.User
	if err := u.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*models.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}
	return byID, nil
}
