package services

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/logger"
	"github.com/sajibdev/chirpnet/backend/internal/media"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const (
	suggestedSampleSize = 10
	suggestedLimit      = 4
)

// FollowResult reports which half of the follow toggle was applied.
type FollowResult struct {
	Following bool   `json:"following"`
	Message   string `json:"message"`
}

// UserService applies social-graph mutations and profile operations.
// Every operation takes the resolved actor explicitly.
type UserService struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	notifications *NotificationService
	media         media.Store
	validate      *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(users repositories.UserRepository, posts repositories.PostRepository, notifications *NotificationService, mediaStore media.Store) *UserService {
	return &UserService{
		users:         users,
		posts:         posts,
		notifications: notifications,
		media:         mediaStore,
		validate:      validator.New(),
	}
}

// GetProfile returns the user behind a username.
func (s *UserService) GetProfile(ctx context.Context, username string) (*models.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// GetUserByID returns the user behind an id.
func (s *UserService) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// ToggleFollow flips the follow edge between actor and target. Both edge
// sides are written; a follow emits a notification to the target, an
// unfollow emits nothing. The two writes are independent single-document
// updates, fail-forward rather than fail-atomic.
func (s *UserService) ToggleFollow(ctx context.Context, actor *models.User, targetID primitive.ObjectID) (*FollowResult, error) {
	if targetID == actor.ID {
		return nil, errs.ErrSelfFollow
	}

	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actor.IsFollowing(targetID) {
		if err := s.users.PullFollower(ctx, target.ID, actor.ID); err != nil {
			return nil, err
		}
		if err := s.users.PullFollowing(ctx, actor.ID, target.ID); err != nil {
			return nil, err
		}
		return &FollowResult{Following: false, Message: "User unfollowed successfully"}, nil
	}

	if err := s.users.PushFollower(ctx, target.ID, actor.ID); err != nil {
		return nil, err
	}
	if err := s.users.PushFollowing(ctx, actor.ID, target.ID); err != nil {
		return nil, err
	}
	if err := s.notifications.Emit(actor.ID, target.ID, models.NotificationTypeFollow); err != nil {
		logger.Error("emitting follow notification", "from", actor.ID.Hex(), "to", target.ID.Hex(), "error", err)
	}
	return &FollowResult{Following: true, Message: "User followed successfully"}, nil
}

// SuggestUsers returns up to four users the actor does not follow yet,
// drawn from a random sample of ten. Fewer than four, or none, is fine
// when the sample happens to be mostly already-followed users.
func (s *UserService) SuggestUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	sampled, err := s.users.Sample(ctx, actor.ID, suggestedSampleSize)
	if err != nil {
		return nil, err
	}

	suggested := []models.User{}
	for _, user := range sampled {
		if actor.IsFollowing(user.ID) {
			continue
		}
		user.Password = ""
		suggested = append(suggested, user)
		if len(suggested) == suggestedLimit {
			break
		}
	}
	return suggested, nil
}

// UpdateProfile applies profile field changes, an optional password
// change and optional image uploads. Replaced images are destroyed in the
// media store best-effort.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if (req.NewPassword == "") != (req.CurrentPassword == "") {
		return nil, errs.ErrPasswordPair
	}
	if req.CurrentPassword != "" && req.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)) != nil {
			return nil, errs.ErrWrongPassword
		}
		if len(req.NewPassword) < minPasswordLen {
			return nil, errs.ErrPasswordTooShort
		}
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, hashErr
		}
		user.Password = string(hashed)
	}

	if req.Email != "" {
		if err := s.validate.Var(req.Email, "email"); err != nil {
			return nil, errs.ErrInvalidEmail
		}
	}

	if req.ProfileImg != "" {
		url, upErr := s.replaceImage(ctx, user.ProfileImg, req.ProfileImg)
		if upErr != nil {
			return nil, upErr
		}
		user.ProfileImg = url
	}
	if req.CoverImg != "" {
		url, upErr := s.replaceImage(ctx, user.CoverImg, req.CoverImg)
		if upErr != nil {
			return nil, upErr
		}
		user.CoverImg = url
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Bio != "" {
		user.Bio = req.Bio
	}
	if req.Link != "" {
		user.Link = req.Link
	}
	user.UpdatedAt = time.Now()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// replaceImage uploads the new inline payload and destroys the previous
// image if there was one. Destroy failures never block the update.
func (s *UserService) replaceImage(ctx context.Context, oldURL, payload string) (string, error) {
	if oldURL != "" {
		if err := s.media.Destroy(ctx, oldURL); err != nil {
			logger.Warn("destroying replaced image", "url", oldURL, "error", err)
		}
	}
	return s.media.Upload(ctx, payload)
}

// SearchUsers finds users by case-insensitive username substring.
func (s *UserService) SearchUsers(ctx context.Context, query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errs.ErrQueryRequired
	}

	users, err := s.users.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, errs.ErrNoUsersFound
	}

	results := make([]models.UserCompact, 0, len(users))
	for i := range users {
		results = append(results, users[i].ToCompact())
	}
	return results, nil
}

// DeleteAccount removes the actor and cascades: authored posts and their
// media go, the actor is pulled from every follow edge and like set, and
// notifications referencing the actor on either side are dropped.
func (s *UserService) DeleteAccount(ctx context.Context, actor *models.User) error {
	posts, err := s.posts.GetByUserID(ctx, actor.ID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		if post.Img == "" {
			continue
		}
		if err := s.media.Destroy(ctx, post.Img); err != nil {
			logger.Warn("destroying post image during account deletion", "url", post.Img, "error", err)
		}
	}
	if err := s.posts.DeleteByUserID(ctx, actor.ID); err != nil {
		return err
	}
	if err := s.posts.PullLikesByUser(ctx, actor.ID); err != nil {
		return err
	}
	if err := s.users.RemoveUserRefs(ctx, actor.ID); err != nil {
		return err
	}
	if err := s.notifications.DeleteForUser(actor.ID); err != nil {
		return err
	}
	return s.users.Delete(ctx, actor.ID)
}
