package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
	"github.com/sportgear/ecommerce-auth/internal/domain/repository"
)

const userColumns = `id, email, password_hash, first_name, last_name, phone_number,
	date_of_birth, role, status, created_at, last_login`

// UserRepository is the pgx-backed UserStore. The unique index on
// users.email is the authoritative guard against concurrent duplicate
// registration; the service-level existence check is only a fast path.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.FinalizeForCreate()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, first_name, last_name, phone_number,
			date_of_birth, role, status, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber,
		u.DateOfBirth, u.Role, u.Status, u.CreatedAt, u.LastLogin)

	if err := row.Scan(&u.ID); err != nil {
		return mapError(err)
	}

	for i := range u.Addresses {
		a := &u.Addresses[i]
		a.UserID = u.ID
		row := tx.QueryRow(ctx, `
			INSERT INTO addresses (user_id, street_type, number_prefix, main_number,
				secondary_number, additional_info, neighborhood, city, zip_code, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		`, a.UserID, a.StreetType, a.NumberPrefix, a.MainNumber,
			a.SecondaryNumber, a.AdditionalInfo, a.Neighborhood, a.City, a.ZipCode, a.Country)
		if err := row.Scan(&a.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := scanUser(row, u); err != nil {
		return nil, mapError(err)
	}
	if err := r.loadAddresses(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, first_name = $2, last_name = $3, phone_number = $4,
			date_of_birth = $5, role = $6, status = $7
		WHERE id = $8
	`, u.Email, u.FirstName, u.LastName, u.PhoneNumber,
		u.DateOfBirth, u.Role, u.Status, u.ID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1 WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login = $1 WHERE id = $2
	`, at, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumns+`
		FROM users
		ORDER BY created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		u := &entity.User{}
		if err := scanUser(rows, u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) loadAddresses(ctx context.Context, u *entity.User) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, street_type, number_prefix, main_number,
			secondary_number, additional_info, neighborhood, city, zip_code, country
		FROM addresses
		WHERE user_id = $1
		ORDER BY id
	`, u.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var a entity.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.StreetType, &a.NumberPrefix, &a.MainNumber,
			&a.SecondaryNumber, &a.AdditionalInfo, &a.Neighborhood, &a.City, &a.ZipCode, &a.Country); err != nil {
			return err
		}
		u.Addresses = append(u.Addresses, a)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *entity.User) error {
	return row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.PhoneNumber, &u.DateOfBirth, &u.Role, &u.Status, &u.CreatedAt, &u.LastLogin)
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

var _ repository.UserRepository = (*UserRepository)(nil)
