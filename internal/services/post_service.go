package services

import (
	"context"
	"strings"
	"time"

	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/logger"
	"github.com/sajibdev/chirpnet/backend/internal/media"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostService applies post mutations: create, delete behind the
// ownership guard, like toggles and comment appends. Every operation
// takes the resolved actor explicitly.
type PostService struct {
	posts         repositories.PostRepository
	users         repositories.UserRepository
	notifications *NotificationService
	media         media.Store
}

// NewPostService creates a new PostService.
func NewPostService(posts repositories.PostRepository, users repositories.UserRepository, notifications *NotificationService, mediaStore media.Store) *PostService {
	return &PostService{
		posts:         posts,
		users:         users,
		notifications: notifications,
		media:         mediaStore,
	}
}

// CreatePost persists a new post owned by the actor. At least one of
// text and image is required; an inline image is pushed to the media
// store first and only its URL is stored.
func (s *PostService) CreatePost(ctx context.Context, actor *models.User, text, img string) (*models.Post, error) {
	if text == "" && img == "" {
		return nil, errs.ErrPostEmpty
	}

	if img != "" {
		url, err := s.media.Upload(ctx, img)
		if err != nil {
			return nil, err
		}
		img = url
	}

	post := &models.Post{
		User: actor.ID,
		Text: text,
		Img:  img,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post after the ownership guard passes. The
// associated image is destroyed best-effort; a media-store failure is
// logged and never blocks the metadata deletion.
func (s *PostService) DeletePost(ctx context.Context, actor *models.User, postID primitive.ObjectID) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.User != actor.ID {
		return errs.ErrNotPostOwner
	}

	if post.Img != "" {
		if err := s.media.Destroy(ctx, post.Img); err != nil {
			logger.Warn("destroying post image", "post", postID.Hex(), "error", err)
		}
	}
	return s.posts.Delete(ctx, postID)
}

// ToggleLike flips the actor's membership in the post's like set and
// mirrors it in the actor's likedPosts. The like half notifies the post
// owner, including when the actor likes their own post; the unlike half
// emits nothing. Returns the updated like set.
func (s *PostService) ToggleLike(ctx context.Context, actor *models.User, postID primitive.ObjectID) ([]primitive.ObjectID, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.HasLike(actor.ID) {
		if err := s.posts.RemoveLike(ctx, postID, actor.ID); err != nil {
			return nil, err
		}
		if err := s.users.PullLikedPost(ctx, actor.ID, postID); err != nil {
			return nil, err
		}
		updated := make([]primitive.ObjectID, 0, len(post.Likes))
		for _, id := range post.Likes {
			if id != actor.ID {
				updated = append(updated, id)
			}
		}
		return updated, nil
	}

	if err := s.posts.AddLike(ctx, postID, actor.ID); err != nil {
		return nil, err
	}
	if err := s.users.PushLikedPost(ctx, actor.ID, postID); err != nil {
		return nil, err
	}
	if err := s.notifications.Emit(actor.ID, post.User, models.NotificationTypeLike); err != nil {
		logger.Error("emitting like notification", "from", actor.ID.Hex(), "to", post.User.Hex(), "error", err)
	}
	return append(post.Likes, actor.ID), nil
}

// AddComment appends a comment to the post. Comments never notify; the
// asymmetry with likes and follows is intentional.
func (s *PostService) AddComment(ctx context.Context, actor *models.User, postID primitive.ObjectID, text string) (*models.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.ErrCommentEmpty
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		User:      actor.ID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}
	post.Comments = append(post.Comments, comment)
	return post, nil
}

// GetAllPosts returns every post, newest first, hydrated.
func (s *PostService) GetAllPosts(ctx context.Context) ([]models.PostView, error) {
	posts, err := s.posts.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts), nil
}

// GetFollowingPosts returns the posts authored by users the actor
// follows, newest first.
func (s *PostService) GetFollowingPosts(ctx context.Context, actor *models.User) ([]models.PostView, error) {
	posts, err := s.posts.GetByUserIDs(ctx, actor.Following)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts), nil
}

// GetUserPosts returns the posts authored by the named user.
func (s *PostService) GetUserPosts(ctx context.Context, username string) ([]models.PostView, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts), nil
}

// GetLikedPosts returns the posts the given user has liked.
func (s *PostService) GetLikedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.PostView, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.GetByIDs(ctx, user.LikedPosts)
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, posts), nil
}

// hydrate attaches compact author records to posts and their comments,
// fetching each referenced user once.
func (s *PostService) hydrate(ctx context.Context, posts []models.Post) []models.PostView {
	userCache := make(map[primitive.ObjectID]models.UserCompact)
	lookup := func(id primitive.ObjectID) models.UserCompact {
		if compact, ok := userCache[id]; ok {
			return compact
		}
		compact := models.UserCompact{ID: id}
		if user, err := s.users.GetByID(ctx, id); err == nil {
			compact = user.ToCompact()
		}
		userCache[id] = compact
		return compact
	}

	views := make([]models.PostView, 0, len(posts))
	for _, post := range posts {
		view := models.PostView{
			ID:        post.ID,
			User:      lookup(post.User),
			Text:      post.Text,
			Img:       post.Img,
			Likes:     post.Likes,
			Comments:  make([]models.CommentView, 0, len(post.Comments)),
			CreatedAt: post.CreatedAt,
		}
		if view.Likes == nil {
			view.Likes = []primitive.ObjectID{}
		}
		for _, comment := range post.Comments {
			view.Comments = append(view.Comments, models.CommentView{
				User:      lookup(comment.User),
				Text:      comment.Text,
				CreatedAt: comment.CreatedAt,
			})
		}
		views = append(views, view)
	}
	return views
}
