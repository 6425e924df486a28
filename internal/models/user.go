package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user document stored in MongoDB.
// Followers, Following and LikedPosts are id sets kept on the document itself.
type User struct {
	ID         primitive.ObjectID   `json:"_id,omitempty" bson:"_id,omitempty"`
	FullName   string               `json:"fullName" bson:"fullName"`
	Username   string               `json:"username" bson:"username"`
	Email      string               `json:"email" bson:"email"`
	Password   string               `json:"-" bson:"password"` // bcrypt hash, never serialized
	Followers  []primitive.ObjectID `json:"followers" bson:"followers"`
	Following  []primitive.ObjectID `json:"following" bson:"following"`
	ProfileImg string               `json:"profileImg" bson:"profileImg"`
	CoverImg   string               `json:"coverImg" bson:"coverImg"`
	Bio        string               `json:"bio" bson:"bio"`
	Link       string               `json:"link" bson:"link"`
	LikedPosts []primitive.ObjectID `json:"likedPosts" bson:"likedPosts"`
	CreatedAt  time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// UserCompact is the reduced user shape embedded in feeds and notifications.
type UserCompact struct {
	ID         primitive.ObjectID `json:"_id"`
	FullName   string             `json:"fullName"`
	Username   string             `json:"username"`
	ProfileImg string             `json:"profileImg"`
}

// ToCompact strips a user down to the fields safe to embed in other payloads.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:         u.ID,
		FullName:   u.FullName,
		Username:   u.Username,
		ProfileImg: u.ProfileImg,
	}
}

// IsFollowing reports whether id is in the user's following set.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

// HasLiked reports whether id is in the user's likedPosts set.
func (u *User) HasLiked(id primitive.ObjectID) bool {
	for _, p := range u.LikedPosts {
		if p == id {
			return true
		}
	}
	return false
}

// SignupRequest defines the request body for registering a new account.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=2,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest defines the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates.
// Image fields carry inline-encoded payloads that are pushed to the media
// store; password change requires both the current and the new password.
type UpdateProfileRequest struct {
	FullName        string `json:"fullName,omitempty"`
	Username        string `json:"username,omitempty"`
	Email           string `json:"email,omitempty" validate:"omitempty,email"`
	Bio             string `json:"bio,omitempty"`
	Link            string `json:"link,omitempty"`
	CurrentPassword string `json:"currentPassword,omitempty"`
	NewPassword     string `json:"newPassword,omitempty"`
	ProfileImg      string `json:"profileImg,omitempty"`
	CoverImg        string `json:"coverImg,omitempty"`
}

// SearchUsersRequest defines the request body for username search.
type SearchUsersRequest struct {
	Query string `json:"query"`
}
