package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spotilove/core/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

const userColumns = `
	u.id, u.name, u.age, u.gender, u.orientation, u.email, u.password_hash,
	u.bio, u.location, u.created_at, u.last_login_at,
	p.user_id AS profile_user_id,
	COALESCE(p.genres, '{}')  AS genres,
	COALESCE(p.artists, '{}') AS artists,
	COALESCE(p.songs, '{}')   AS songs
`

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

// Store inserts the user and, when present, its music profile in one tx.
func (d *Driver) Store(ctx context.Context, u model.User) error {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	userDB := FromDomain(u)
	query := `
		INSERT INTO users (id, name, age, gender, orientation, email, password_hash, bio, location, created_at)
		VALUES (:id, :name, :age, :gender, :orientation, :email, :password_hash, :bio, :location, :created_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, userDB); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to store user: %w", err)
	}

	if u.Profile != nil {
		if err := upsertProfile(ctx, tx, *u.Profile); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (d *Driver) LoadByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN music_profiles p ON p.user_id = u.id
		WHERE u.id = $1
	`

	var row userWithProfileDB
	if err := d.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	user := row.ToDomain()
	images, err := d.ImagesByUser(ctx, id)
	if err != nil {
		return model.User{}, err
	}
	user.Images = images

	return user, nil
}

func (d *Driver) LoadByEmail(ctx context.Context, email string) (model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN music_profiles p ON p.user_id = u.id
		WHERE u.email = $1
	`

	var row userWithProfileDB
	if err := d.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to load user by email: %w", err)
	}

	return row.ToDomain(), nil
}

// LoadByIDs returns profiled users for the given IDs, images included.
// Missing IDs are silently absent from the result.
func (d *Driver) LoadByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error) {
	if len(ids) == 0 {
		return []model.User{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT `+userColumns+`
		FROM users u
		LEFT JOIN music_profiles p ON p.user_id = u.id
		WHERE u.id IN (?)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = d.db.Rebind(query)
	var rows []userWithProfileDB
	if err := d.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load users by ids: %w", err)
	}

	images, err := d.imagesByUsers(ctx, ids)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, len(rows))
	for i, row := range rows {
		user := row.ToDomain()
		user.Images = images[user.ID]
		users[i] = user
	}

	return users, nil
}

// ReplaceMusicProfile overwrites the whole profile. Partial merges are not a thing.
func (d *Driver) ReplaceMusicProfile(ctx context.Context, p model.MusicProfile) error {
	if err := d.ensureUserExists(ctx, p.UserID); err != nil {
		return err
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsertProfile(ctx, tx, p); err != nil {
		return err
	}

	return tx.Commit()
}

func (d *Driver) UpdateBasic(ctx context.Context, id uuid.UUID, age int, gender, orientation, bio string) error {
	query := `
		UPDATE users
		SET age = $2, gender = $3, orientation = $4, bio = $5
		WHERE id = $1
	`

	result, err := d.db.ExecContext(ctx, query, id, age, gender, orientation, bio)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result)
}

func (d *Driver) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET last_login_at = $2 WHERE id = $1`

	result, err := d.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}
	return requireRow(result)
}

func (d *Driver) AddImage(ctx context.Context, img model.UserImage) error {
	if err := d.ensureUserExists(ctx, img.UserID); err != nil {
		return err
	}

	query := `INSERT INTO user_images (id, user_id, image_url) VALUES ($1, $2, $3)`

	if _, err := d.db.ExecContext(ctx, query, img.ID, img.UserID, img.ImageURL); err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	return nil
}

func (d *Driver) ImagesByUser(ctx context.Context, id uuid.UUID) ([]string, error) {
	query := `SELECT image_url FROM user_images WHERE user_id = $1 ORDER BY id`

	var urls []string
	if err := d.db.SelectContext(ctx, &urls, query, id); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}
	return urls, nil
}

// FetchCandidates selects profiled users outside the exclude set, owner
// excluded, bounded by batchSize. Ordering is left to the scorer.
func (d *Driver) FetchCandidates(ctx context.Context, ownerID uuid.UUID, exclude []uuid.UUID, batchSize int) ([]model.Candidate, error) {
	excludeSet := append([]uuid.UUID{ownerID}, exclude...)

	query, args, err := sqlx.In(`
		SELECT u.id, u.name, u.age, u.gender, u.orientation, u.email, u.password_hash,
		       u.bio, u.location, u.created_at, u.last_login_at,
		       p.user_id AS profile_user_id, p.genres, p.artists, p.songs
		FROM users u
		JOIN music_profiles p ON p.user_id = u.id
		WHERE u.id NOT IN (?)
		LIMIT ?
	`, excludeSet, batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to build candidates query: %w", err)
	}

	query = d.db.Rebind(query)
	var rows []userWithProfileDB
	if err := d.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(rows))
	for _, row := range rows {
		user := row.ToDomain()
		if user.Profile == nil {
			continue
		}
		candidates = append(candidates, model.Candidate{User: user, Profile: *user.Profile})
	}

	return candidates, nil
}

// CountCandidates counts profiled users other than the owner.
func (d *Driver) CountCandidates(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM users u
		JOIN music_profiles p ON p.user_id = u.id
		WHERE u.id <> $1
	`

	var count int
	if err := d.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

// DeleteAll wipes users and everything cascading off them. Dev tooling only.
func (d *Driver) DeleteAll(ctx context.Context) (int, error) {
	result, err := d.db.ExecContext(ctx, `DELETE FROM users`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear users: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (d *Driver) imagesByUsers(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID][]string{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, user_id, image_url FROM user_images WHERE user_id IN (?) ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build images query: %w", err)
	}

	query = d.db.Rebind(query)
	var rows []struct {
		ID       uuid.UUID `db:"id"`
		UserID   uuid.UUID `db:"user_id"`
		ImageURL string    `db:"image_url"`
	}
	if err := d.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load images: %w", err)
	}

	images := make(map[uuid.UUID][]string, len(ids))
	for _, row := range rows {
		images[row.UserID] = append(images[row.UserID], row.ImageURL)
	}
	return images, nil
}

func (d *Driver) ensureUserExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := d.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func upsertProfile(ctx context.Context, tx *sqlx.Tx, p model.MusicProfile) error {
	query := `
		INSERT INTO music_profiles (user_id, genres, artists, songs)
		VALUES (:user_id, :genres, :artists, :songs)
		ON CONFLICT (user_id) DO UPDATE SET
			genres = EXCLUDED.genres,
			artists = EXCLUDED.artists,
			songs = EXCLUDED.songs
	`

	if _, err := tx.NamedExecContext(ctx, query, profileFromDomain(p)); err != nil {
		return fmt.Errorf("failed to upsert music profile: %w", err)
	}
	return nil
}

func requireRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "unique constraint") ||
		strings.Contains(err.Error(), "duplicate key")
}
