package repositories

import (
	"database/sql"
	"fmt"

	"souq/internal/models"
)

// UserRepository reads collaborator-owned user records for order
// attribution. Account mutation lives outside this service.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.getUser("id", id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getUser("email", email)
}

func (r *UserRepository) getUser(column, value string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, phone, created_at
		FROM users
		WHERE %s = $1`, column)

	user := &models.User{}
	err := r.db.QueryRow(query, value).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}
