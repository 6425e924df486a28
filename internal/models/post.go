package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is a single entry in a post's ordered, append-only comment list.
type Comment struct {
	User      primitive.ObjectID `json:"user" bson:"user"`
	Text      string             `json:"text" bson:"text"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// Post represents a post document stored in MongoDB. Likes is an id set
// (a user appears at most once); Comments are embedded in insertion order.
type Post struct {
	ID        primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	User      primitive.ObjectID   `json:"user" bson:"user"`
	Text      string               `json:"text" bson:"text"`
	Img       string               `json:"img,omitempty" bson:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
	Comments  []Comment            `json:"comments" bson:"comments"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// HasLike reports whether userID is in the post's like set.
func (p *Post) HasLike(userID primitive.ObjectID) bool {
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CreatePostRequest defines the request body for creating a post.
// At least one of Text and Img must be present; Img is inline-encoded.
type CreatePostRequest struct {
	Text string `json:"text,omitempty"`
	Img  string `json:"img,omitempty"`
}

// CreateCommentRequest defines the request body for commenting on a post.
type CreateCommentRequest struct {
	Text string `json:"text"`
}

// CommentView is a comment with its author hydrated.
type CommentView struct {
	User      UserCompact `json:"user"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

// PostView is a post with its author and comment authors hydrated,
// the shape returned by the feed endpoints.
type PostView struct {
	ID        primitive.ObjectID   `json:"_id"`
	User      UserCompact          `json:"user"`
	Text      string               `json:"text"`
	Img       string               `json:"img,omitempty"`
	Likes     []primitive.ObjectID `json:"likes"`
	Comments  []CommentView        `json:"comments"`
	CreatedAt time.Time            `json:"createdAt"`
}
