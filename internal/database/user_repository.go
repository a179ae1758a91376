package database

import (
	"github.com/Maksim2301/System-activity-monitor/internal/models"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// UserRepository resolves identities for the composition root. Authentication
// itself is out of scope; this only maps a username to a stored identity.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns the user with the given name, or nil if unknown.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	result := r.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to query user")
	}
	return &user, nil
}

// FindOrCreate returns the user with the given name, creating it first if
// it does not exist yet.
func (r *UserRepository) FindOrCreate(username string) (*models.User, error) {
	user, err := r.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user = &models.User{Username: username}
	if result := r.db.Create(user); result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to create user")
	}
	return user, nil
}
