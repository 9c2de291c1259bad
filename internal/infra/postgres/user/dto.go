package infra_postgres_user

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/spotilove/core/internal/model"
)

type UserDB struct {
	ID           uuid.UUID  `db:"id"`
	Name         string     `db:"name"`
	Age          int        `db:"age"`
	Gender       string     `db:"gender"`
	Orientation  *string    `db:"orientation"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	Bio          *string    `db:"bio"`
	Location     *string    `db:"location"`
	CreatedAt    time.Time  `db:"created_at"`
	LastLoginAt  *time.Time `db:"last_login_at"`
}

type ProfileDB struct {
	UserID  uuid.UUID      `db:"user_id"`
	Genres  pq.StringArray `db:"genres"`
	Artists pq.StringArray `db:"artists"`
	Songs   pq.StringArray `db:"songs"`
}

// userWithProfileDB is the joined row shape; profile columns are NULL when
// the user has no music profile yet.
type userWithProfileDB struct {
	UserDB
	Genres  pq.StringArray `db:"genres"`
	Artists pq.StringArray `db:"artists"`
	Songs   pq.StringArray `db:"songs"`
	HasRow  *uuid.UUID     `db:"profile_user_id"`
}

func (u *UserDB) ToDomain() model.User {
	user := model.User{
		ID:           u.ID,
		Name:         u.Name,
		Age:          u.Age,
		Gender:       u.Gender,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
	if u.Orientation != nil {
		user.Orientation = *u.Orientation
	}
	if u.Bio != nil {
		user.Bio = *u.Bio
	}
	if u.Location != nil {
		user.Location = *u.Location
	}
	return user
}

func (r *userWithProfileDB) ToDomain() model.User {
	user := r.UserDB.ToDomain()
	if r.HasRow != nil {
		user.Profile = &model.MusicProfile{
			UserID:  r.ID,
			Genres:  []string(r.Genres),
			Artists: []string(r.Artists),
			Songs:   []string(r.Songs),
		}
	}
	return user
}

func FromDomain(u model.User) UserDB {
	dto := UserDB{
		ID:           u.ID,
		Name:         u.Name,
		Age:          u.Age,
		Gender:       u.Gender,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		CreatedAt:    u.CreatedAt,
		LastLoginAt:  u.LastLoginAt,
	}
	if u.Orientation != "" {
		dto.Orientation = &u.Orientation
	}
	if u.Bio != "" {
		dto.Bio = &u.Bio
	}
	if u.Location != "" {
		dto.Location = &u.Location
	}
	return dto
}

func profileFromDomain(p model.MusicProfile) ProfileDB {
	return ProfileDB{
		UserID:  p.UserID,
		Genres:  pq.StringArray(p.Genres),
		Artists: pq.StringArray(p.Artists),
		Songs:   pq.StringArray(p.Songs),
	}
}
