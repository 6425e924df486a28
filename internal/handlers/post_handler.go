package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles post creation, deletion, likes, comments and feeds.
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post routes; all require a session.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/all", h.GetAllPosts)
	g.GET("/following", h.GetFollowingPosts)
	g.GET("/likes/:id", h.GetLikedPosts)
	g.GET("/user/:username", h.GetUserPosts)
	g.POST("/create", h.CreatePost)
	g.POST("/like/:id", h.ToggleLike)
	g.POST("/comment/:id", h.AddComment)
	g.DELETE("/:id", h.DeletePost)
}

// CreatePost creates a post owned by the authenticated user.
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postService.CreatePost(c.Request().Context(), currentUser(c), req.Text, req.Img)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post owned by the authenticated user.
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	if err := h.postService.DeletePost(c.Request().Context(), currentUser(c), postID); err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Post deleted successfully"})
}

// ToggleLike likes or unlikes a post and returns the updated like set.
func (h *PostHandler) ToggleLike(c echo.Context) error {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	likes, err := h.postService.ToggleLike(c.Request().Context(), currentUser(c), postID)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, likes)
}

// AddComment appends a comment to a post.
func (h *PostHandler) AddComment(c echo.Context) error {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid post ID")
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	post, err := h.postService.AddComment(c.Request().Context(), currentUser(c), postID, req.Text)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetAllPosts returns every post, newest first.
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.postService.GetAllPosts(c.Request().Context())
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFollowingPosts returns the feed of followed users.
func (h *PostHandler) GetFollowingPosts(c echo.Context) error {
	posts, err := h.postService.GetFollowingPosts(c.Request().Context(), currentUser(c))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetUserPosts returns the posts authored by the named user.
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.postService.GetUserPosts(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// GetLikedPosts returns the posts liked by the given user.
func (h *PostHandler) GetLikedPosts(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	posts, err := h.postService.GetLikedPosts(c.Request().Context(), userID)
	if err != nil {
		return errs.HTTP(err)
	}
	return c.JSON(http.StatusOK, posts)
}
