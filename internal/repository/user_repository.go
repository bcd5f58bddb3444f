package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/bookmark-keeper/internal/model"
)

// UserRepo persists rows of the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,created_at,updated_at"

// Create inserts a user and returns the stored row.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string, firstName, lastName *string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?,?,?,?)",
		email, passwordHash, firstName, lastName)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// UpdateProfile applies the non-nil fields of upd to the user row and
// returns the updated row. A zero-field update is a plain re-read.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, upd model.UserUpdate) (model.User, error) {
	if !upd.Empty() {
		set := make([]string, 0, 3)
		args := make([]any, 0, 4)
		if upd.Email != nil {
			set = append(set, "email=?")
			args = append(args, strings.ToLower(strings.TrimSpace(*upd.Email)))
		}
		if upd.FirstName != nil {
			set = append(set, "first_name=?")
			args = append(args, *upd.FirstName)
		}
		if upd.LastName != nil {
			set = append(set, "last_name=?")
			args = append(args, *upd.LastName)
		}
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(set, ",")+" WHERE id=?", args...)
		if err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return model.User{}, ErrEmailExists
			}
			return model.User{}, err
		}
		// clientFoundRows is set on the DSN, so zero means no such row.
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return model.User{}, ErrUserNotFound
		}
	}
	return r.GetByID(ctx, id)
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}
