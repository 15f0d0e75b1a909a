// Package casdoor implements the user directory against the Casdoor
// identity provider. Accounts live in Casdoor; this adapter only reads.
package casdoor

import (
	"context"
	"fmt"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/edusync/course-service/internal/models"
	"github.com/edusync/course-service/internal/repositories"
)

type Config struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Certificate  string
	Organization string
	Application  string
}

type userDirectory struct {
	client *casdoorsdk.Client
}

func NewUserDirectory(cfg Config) repositories.UserDirectory {
	client := casdoorsdk.NewClient(
		cfg.Endpoint,
		cfg.ClientID,
		cfg.ClientSecret,
		cfg.Certificate,
		cfg.Organization,
		cfg.Application,
	)
	return &userDirectory{client: client}
}

func (d *userDirectory) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := d.client.GetUserByUserId(id)
	if err != nil {
		return nil, fmt.Errorf("casdoor lookup for user %s: %w", id, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found in directory", id)
	}
	return toModel(user), nil
}

func (d *userDirectory) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	for _, id := range ids {
		if _, ok := users[id]; ok {
			continue
		}
		user, err := d.client.GetUserByUserId(id)
		if err != nil {
			return nil, fmt.Errorf("casdoor lookup for user %s: %w", id, err)
		}
		if user == nil {
			// Deleted accounts degrade per record; callers render a
			// placeholder instead of failing the whole aggregation.
			continue
		}
		users[id] = toModel(user)
	}
	return users, nil
}

func toModel(user *casdoorsdk.User) *models.User {
	name := user.DisplayName
	if name == "" {
		name = user.Name
	}
	role := models.RoleStudent
	if user.Tag == string(models.RoleInstructor) {
		role = models.RoleInstructor
	}
	return &models.User{
		ID:    user.Id,
		Name:  name,
		Email: user.Email,
		Role:  role,
	}
}
