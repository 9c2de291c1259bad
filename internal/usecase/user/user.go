package usecase_user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
	"github.com/spotilove/core/internal/service/auth"
)

var (
	ErrUserNotFound   = errors.New("no such user")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrEmptyProfile   = errors.New("music profile must not be empty")
	ErrInternal       = errors.New("internal error")
)

const presignTTL = 15 * time.Minute

//go:generate mockery --name=UserRepository --output=./mocks/user_repository --filename=user_repository.go
type UserRepository interface {
	Store(ctx context.Context, u model.User) error
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
	UpdateBasic(ctx context.Context, id uuid.UUID, age int, gender, orientation, bio string) error
	ReplaceMusicProfile(ctx context.Context, p model.MusicProfile) error
	AddImage(ctx context.Context, img model.UserImage) error
	DeleteAll(ctx context.Context) (int, error)
}

//go:generate mockery --name=PhotoStorage --output=./mocks/photo_storage --filename=photo_storage.go
type PhotoStorage interface {
	Save(ctx context.Context, obj *model.Photo, readyKey *string) (string, error)
	GeneratePresignedURL(ctx context.Context, rawURL string, ttl time.Duration) (string, error)
}

type RegisterParams struct {
	Name        string
	Age         int
	Gender      string
	Orientation string
	Email       string
	Password    string
	Bio         string
	Location    string
	Profile     model.MusicProfile
}

type Usecase struct {
	UserRepository UserRepository
	PhotoStorage   PhotoStorage
}

func New(UserRepository UserRepository, PhotoStorage PhotoStorage) *Usecase {
	return &Usecase{
		UserRepository: UserRepository,
		PhotoStorage:   PhotoStorage,
	}
}

// Register creates a user together with their initial taste profile. The
// profile is mandatory: a user without one never enters anyone's queue.
func (u *Usecase) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	if params.Profile.IsEmpty() {
		return model.User{}, ErrEmptyProfile
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return model.User{}, errors.Join(ErrInternal, err)
	}

	id := uuid.New()
	user := model.User{
		ID:           id,
		Name:         params.Name,
		Age:          params.Age,
		Gender:       params.Gender,
		Orientation:  params.Orientation,
		Email:        params.Email,
		PasswordHash: hash,
		Bio:          params.Bio,
		Location:     params.Location,
		CreatedAt:    time.Now().UTC(),
		Profile:      &params.Profile,
	}
	user.Profile.UserID = id

	if err := u.UserRepository.Store(ctx, user); err != nil {
		if errors.Is(err, infra_postgres_user.ErrDuplicateEmail) {
			return model.User{}, ErrDuplicateEmail
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}

	return user, nil
}

func (u *Usecase) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := u.UserRepository.LoadByID(ctx, id)
	if err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, errors.Join(ErrInternal, err)
	}

	return user, nil
}

func (u *Usecase) UpdateBasic(ctx context.Context, id uuid.UUID, age int, gender, orientation, bio string) error {
	if err := u.UserRepository.UpdateBasic(ctx, id, age, gender, orientation, bio); err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// ReplaceMusicProfile swaps the whole taste profile. Queued suggestions keep
// their local score until the next enrichment pass touches them.
func (u *Usecase) ReplaceMusicProfile(ctx context.Context, p model.MusicProfile) error {
	if p.IsEmpty() {
		return ErrEmptyProfile
	}

	if err := u.UserRepository.ReplaceMusicProfile(ctx, p); err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// UploadPhoto stores the raw image in object storage and records a presigned
// link on the user.
func (u *Usecase) UploadPhoto(ctx context.Context, userID uuid.UUID, filename string, content []byte) (string, error) {
	if _, err := u.Get(ctx, userID); err != nil {
		return "", err
	}

	photo := &model.Photo{
		Filename: filename,
		Content:  content,
		UserID:   userID.String(),
	}

	key, err := u.PhotoStorage.Save(ctx, photo, nil)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	url, err := u.PhotoStorage.GeneratePresignedURL(ctx, key, presignTTL)
	if err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	img := model.UserImage{
		ID:       uuid.New(),
		UserID:   userID,
		ImageURL: url,
	}
	if err := u.UserRepository.AddImage(ctx, img); err != nil {
		return "", errors.Join(ErrInternal, err)
	}

	return url, nil
}

// PopulateDemoUsers seeds a deterministic demo population. Meant for local
// and staging environments only; the delivery layer keeps it off production
// routers.
func (u *Usecase) PopulateDemoUsers(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		count = 20
	}

	created := 0
	for i := 0; i < count; i++ {
		seed := demoSeeds[i%len(demoSeeds)]
		params := RegisterParams{
			Name:        fmt.Sprintf("%s %d", seed.name, i),
			Age:         20 + i%30,
			Gender:      seed.gender,
			Orientation: seed.orientation,
			Email:       fmt.Sprintf("demo-%d-%s@spotilove.dev", i, uuid.NewString()[:8]),
			Password:    "demo-password",
			Bio:         seed.bio,
			Location:    seed.location,
			Profile: model.MusicProfile{
				Genres:  seed.genres,
				Artists: seed.artists,
				Songs:   seed.songs,
			},
		}
		if _, err := u.Register(ctx, params); err != nil {
			return created, err
		}
		created++
	}

	return created, nil
}

func (u *Usecase) ClearUsers(ctx context.Context) (int, error) {
	deleted, err := u.UserRepository.DeleteAll(ctx)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return deleted, nil
}

type demoSeed struct {
	name        string
	gender      string
	orientation string
	bio         string
	location    string
	genres      []string
	artists     []string
	songs       []string
}

var demoSeeds = []demoSeed{
	{
		name: "Alex", gender: "male", orientation: model.OrientationBoth,
		bio: "vinyl collector", location: "Berlin",
		genres:  []string{"indie", "rock", "shoegaze"},
		artists: []string{"Radiohead", "Slowdive", "The National"},
		songs:   []string{"Creep", "When the Sun Hits", "Bloodbuzz Ohio"},
	},
	{
		name: "Maria", gender: "female", orientation: "male",
		bio: "festival regular", location: "Lisbon",
		genres:  []string{"electronic", "house", "techno"},
		artists: []string{"Bicep", "Four Tet", "Caribou"},
		songs:   []string{"Glue", "Baby", "Odessa"},
	},
	{
		name: "Sam", gender: "male", orientation: "female",
		bio: "bedroom producer", location: "London",
		genres:  []string{"hip-hop", "jazz", "soul"},
		artists: []string{"Kendrick Lamar", "Robert Glasper", "Erykah Badu"},
		songs:   []string{"Alright", "Black Radio", "On & On"},
	},
	{
		name: "Nina", gender: "female", orientation: model.OrientationBoth,
		bio: "karaoke enthusiast", location: "Warsaw",
		genres:  []string{"pop", "indie", "rock"},
		artists: []string{"Radiohead", "Dua Lipa", "Arctic Monkeys"},
		songs:   []string{"Creep", "Levitating", "505"},
	},
}
