package user

import (
	"context"
	"testing"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/internal/utils/storage"
	"foodgram-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepository struct {
	users         map[string]*entities.User
	subscriptions map[string]struct{}
	recipes       map[string][]*entities.Recipe
}

func newStubUserRepository() *stubUserRepository {
	return &stubUserRepository{
		users:         make(map[string]*entities.User),
		subscriptions: make(map[string]struct{}),
		recipes:       make(map[string][]*entities.Recipe),
	}
}

func subscriptionKey(userID, authorID string) string {
	return userID + "/" + authorID
}

func (r *stubUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.users[user.ID.String()] = user
	return nil
}

func (r *stubUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepository) UpdateAvatar(_ context.Context, userID, avatarURL string) error {
	user, ok := r.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.AvatarURL = avatarURL
	return nil
}

func (r *stubUserRepository) Subscribe(_ context.Context, userID, authorID string) error {
	key := subscriptionKey(userID, authorID)
	if _, ok := r.subscriptions[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	r.subscriptions[key] = struct{}{}
	return nil
}

func (r *stubUserRepository) Unsubscribe(_ context.Context, userID, authorID string) error {
	key := subscriptionKey(userID, authorID)
	if _, ok := r.subscriptions[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.subscriptions, key)
	return nil
}

func (r *stubUserRepository) IsSubscribed(_ context.Context, userID, authorID string) (bool, error) {
	_, ok := r.subscriptions[subscriptionKey(userID, authorID)]
	return ok, nil
}

func (r *stubUserRepository) GetSubscribedAuthors(_ context.Context, userID string, _, _ int) ([]*entities.User, int64, error) {
	var authors []*entities.User
	for _, author := range r.users {
		if _, ok := r.subscriptions[subscriptionKey(userID, author.ID.String())]; ok {
			authors = append(authors, author)
		}
	}
	return authors, int64(len(authors)), nil
}

func (r *stubUserRepository) GetRecipesByAuthor(_ context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	recipes := r.recipes[authorID]
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (r *stubUserRepository) CountRecipesByAuthor(_ context.Context, authorID string) (int64, error) {
	return int64(len(r.recipes[authorID])), nil
}

func seedUser(repo *stubUserRepository, email, password string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Username: email,
		Password: string(hashed),
	}
	repo.users[user.ID.String()] = user
	return user
}

func newTestService(repo *stubUserRepository) UserService {
	t := jwt.NewJWTService()
	return NewUserService(repo, t, storage.AwsS3{})
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	seedUser(repo, "cook@example.com", "password123")

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Anna",
		LastName:  "Smith",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	seedUser(repo, "cook@example.com", "password123")

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestSubscribeSelf(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	user := seedUser(repo, "cook@example.com", "password123")

	_, err := service.Subscribe(context.Background(), user.ID.String(), user.ID.String())
	assert.ErrorIs(t, err, domain.ErrSelfSubscribe)
}

func TestSubscribeTwice(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	follower := seedUser(repo, "follower@example.com", "password123")
	author := seedUser(repo, "author@example.com", "password123")

	_, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String())
	require.NoError(t, err)

	_, err = service.Subscribe(context.Background(), follower.ID.String(), author.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	follower := seedUser(repo, "follower@example.com", "password123")

	_, err := service.Subscribe(context.Background(), follower.ID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUnsubscribeNotSubscribed(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	follower := seedUser(repo, "follower@example.com", "password123")
	author := seedUser(repo, "author@example.com", "password123")

	err := service.Unsubscribe(context.Background(), follower.ID.String(), author.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotSubscribed)
}

func TestSubscriptionResponseIncludesRecipes(t *testing.T) {
	repo := newStubUserRepository()
	service := newTestService(repo)
	follower := seedUser(repo, "follower@example.com", "password123")
	author := seedUser(repo, "author@example.com", "password123")

	for i := 0; i < 5; i++ {
		repo.recipes[author.ID.String()] = append(repo.recipes[author.ID.String()], &entities.Recipe{
			ID:                 uuid.New(),
			AuthorID:           author.ID,
			Name:               "Recipe",
			CookingTimeMinutes: 10,
		})
	}

	res, err := service.Subscribe(context.Background(), follower.ID.String(), author.ID.String())
	require.NoError(t, err)
	assert.True(t, res.IsSubscribed)
	assert.Equal(t, 5, res.RecipesCount)

	subscriptions, total, err := service.GetSubscriptions(context.Background(), follower.ID.String(), 1, 10, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, subscriptions, 1)
	assert.Len(t, subscriptions[0].Recipes, 3)
}
