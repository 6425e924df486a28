package services_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"github.com/sajibdev/chirpnet/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes so the service layer is exercised without
// MongoDB, PostgreSQL or a transport.

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

var _ repositories.UserRepository = (*memoryUserRepo)(nil)

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Followers = append([]primitive.ObjectID{}, u.Followers...)
	c.Following = append([]primitive.ObjectID{}, u.Following...)
	c.LikedPosts = append([]primitive.ObjectID{}, u.LikedPosts...)
	return &c
}

func (r *memoryUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *memoryUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.users[user.ID]
	if !ok {
		return errs.ErrUserNotFound
	}
	stored.FullName = user.FullName
	stored.Username = user.Username
	stored.Email = user.Email
	stored.Password = user.Password
	stored.Bio = user.Bio
	stored.Link = user.Link
	stored.ProfileImg = user.ProfileImg
	stored.CoverImg = user.CoverImg
	stored.UpdatedAt = user.UpdatedAt
	return nil
}

func (r *memoryUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func addToSet(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := set[:0]
	for _, existing := range set {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func (r *memoryUserRepo) mutate(id primitive.ObjectID, fn func(*models.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return errs.ErrUserNotFound
	}
	fn(user)
	return nil
}

func (r *memoryUserRepo) PushFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Followers = addToSet(u.Followers, followerID) })
}

func (r *memoryUserRepo) PullFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Followers = pull(u.Followers, followerID) })
}

func (r *memoryUserRepo) PushFollowing(_ context.Context, userID, followedID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Following = addToSet(u.Following, followedID) })
}

func (r *memoryUserRepo) PullFollowing(_ context.Context, userID, followedID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.Following = pull(u.Following, followedID) })
}

func (r *memoryUserRepo) PushLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.LikedPosts = addToSet(u.LikedPosts, postID) })
}

func (r *memoryUserRepo) PullLikedPost(_ context.Context, userID, postID primitive.ObjectID) error {
	return r.mutate(userID, func(u *models.User) { u.LikedPosts = pull(u.LikedPosts, postID) })
}

func (r *memoryUserRepo) Sample(_ context.Context, exclude primitive.ObjectID, size int) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sampled := []models.User{}
	for _, user := range r.users {
		if user.ID == exclude {
			continue
		}
		sampled = append(sampled, *cloneUser(user))
		if len(sampled) == size {
			break
		}
	}
	return sampled, nil
}

func (r *memoryUserRepo) Search(_ context.Context, query string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []models.User{}
	for _, user := range r.users {
		if strings.Contains(strings.ToLower(user.Username), strings.ToLower(query)) {
			matched = append(matched, *cloneUser(user))
		}
	}
	return matched, nil
}

func (r *memoryUserRepo) RemoveUserRefs(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		user.Followers = pull(user.Followers, userID)
		user.Following = pull(user.Following, userID)
	}
	return nil
}

type memoryPostRepo struct {
	mu    sync.Mutex
	posts map[primitive.ObjectID]*models.Post
}

var _ repositories.PostRepository = (*memoryPostRepo)(nil)

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{posts: make(map[primitive.ObjectID]*models.Post)}
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Likes = append([]primitive.ObjectID{}, p.Likes...)
	c.Comments = append([]models.Comment{}, p.Comments...)
	return &c
}

func (r *memoryPostRepo) Create(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Likes == nil {
		post.Likes = []primitive.ObjectID{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	r.posts[post.ID] = clonePost(post)
	return nil
}

func (r *memoryPostRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, errs.ErrPostNotFound
	}
	return clonePost(post), nil
}

func (r *memoryPostRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return errs.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryPostRepo) mutate(id primitive.ObjectID, fn func(*models.Post)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return errs.ErrPostNotFound
	}
	fn(post)
	return nil
}

func (r *memoryPostRepo) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	return r.mutate(postID, func(p *models.Post) { p.Likes = addToSet(p.Likes, userID) })
}

func (r *memoryPostRepo) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	return r.mutate(postID, func(p *models.Post) { p.Likes = pull(p.Likes, userID) })
}

func (r *memoryPostRepo) AddComment(_ context.Context, postID primitive.ObjectID, comment models.Comment) error {
	return r.mutate(postID, func(p *models.Post) { p.Comments = append(p.Comments, comment) })
}

func (r *memoryPostRepo) collect(filter func(*models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := []models.Post{}
	for _, post := range r.posts {
		if filter(post) {
			posts = append(posts, *clonePost(post))
		}
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.After(posts[j].CreatedAt) })
	return posts
}

func (r *memoryPostRepo) GetAll(_ context.Context) ([]models.Post, error) {
	return r.collect(func(*models.Post) bool { return true }), nil
}

func (r *memoryPostRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return r.collect(func(p *models.Post) bool { return p.User == userID }), nil
}

func (r *memoryPostRepo) GetByUserIDs(_ context.Context, userIDs []primitive.ObjectID) ([]models.Post, error) {
	return r.collect(func(p *models.Post) bool {
		for _, id := range userIDs {
			if p.User == id {
				return true
			}
		}
		return false
	}), nil
}

func (r *memoryPostRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	return r.collect(func(p *models.Post) bool {
		for _, id := range ids {
			if p.ID == id {
				return true
			}
		}
		return false
	}), nil
}

func (r *memoryPostRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, post := range r.posts {
		if post.User == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func (r *memoryPostRepo) PullLikesByUser(_ context.Context, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, post := range r.posts {
		post.Likes = pull(post.Likes, userID)
	}
	return nil
}

type memoryNotificationRepo struct {
	mu            sync.Mutex
	nextID        uint
	notifications []models.Notification
}

var _ repositories.NotificationRepository = (*memoryNotificationRepo)(nil)

func newMemoryNotificationRepo() *memoryNotificationRepo {
	return &memoryNotificationRepo{}
}

func (r *memoryNotificationRepo) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	notification.ID = r.nextID
	notification.CreatedAt = time.Now()
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *memoryNotificationRepo) GetByRecipient(toID string) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := []models.Notification{}
	for _, n := range r.notifications {
		if n.ToID == toID {
			matched = append(matched, n)
		}
	}
	return matched, nil
}

func (r *memoryNotificationRepo) MarkAllRead(toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.notifications {
		if r.notifications[i].ToID == toID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *memoryNotificationRepo) DeleteByRecipient(toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.ToID != toID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

func (r *memoryNotificationRepo) DeleteByUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.notifications[:0]
	for _, n := range r.notifications {
		if n.ToID != userID && n.FromID != userID {
			kept = append(kept, n)
		}
	}
	r.notifications = kept
	return nil
}

// fakeMediaStore mimics the media collaborator. Destroy can be made to
// fail to exercise the best-effort deletion policy.
type fakeMediaStore struct {
	mu          sync.Mutex
	nextID      int
	uploaded    []string
	destroyed   []string
	failDestroy bool
}

func newFakeMediaStore() *fakeMediaStore {
	return &fakeMediaStore{}
}

func (s *fakeMediaStore) Upload(_ context.Context, payload string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	url := fmt.Sprintf("https://media.test/v1/img_%d.png", s.nextID)
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *fakeMediaStore) Destroy(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDestroy {
		return fmt.Errorf("media store unavailable")
	}
	s.destroyed = append(s.destroyed, url)
	return nil
}

// testEnv wires the services over the in-memory fakes.
type testEnv struct {
	users  *memoryUserRepo
	posts  *memoryPostRepo
	notifs *memoryNotificationRepo
	media  *fakeMediaStore

	auth         *services.AuthService
	userService  *services.UserService
	postService  *services.PostService
	notifService *services.NotificationService
}

func newTestEnv() *testEnv {
	users := newMemoryUserRepo()
	posts := newMemoryPostRepo()
	notifs := newMemoryNotificationRepo()
	mediaStore := newFakeMediaStore()

	notifService := services.NewNotificationService(notifs, users)
	return &testEnv{
		users:        users,
		posts:        posts,
		notifs:       notifs,
		media:        mediaStore,
		auth:         services.NewAuthService(users, "test-secret"),
		userService:  services.NewUserService(users, posts, notifService, mediaStore),
		postService:  services.NewPostService(posts, users, notifService, mediaStore),
		notifService: notifService,
	}
}

// signup registers a user through the real signup path.
func (env *testEnv) signup(ctx context.Context, username string) (*models.User, error) {
	return env.auth.Signup(ctx, models.SignupRequest{
		FullName: username + " example",
		Username: username,
		Email:    username + "@example.com",
		Password: "secret123",
	})
}
