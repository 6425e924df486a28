package repositories

import (
	"context"

	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user data operations.
// Follow edges and liked-post memberships mutate through dedicated
// push/pull operations so each write stays a single-document update.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	PushFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	PullFollower(ctx context.Context, userID, followerID primitive.ObjectID) error
	PushFollowing(ctx context.Context, userID, followedID primitive.ObjectID) error
	PullFollowing(ctx context.Context, userID, followedID primitive.ObjectID) error
	PushLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error
	PullLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error

	Sample(ctx context.Context, exclude primitive.ObjectID, size int) ([]models.User, error)
	Search(ctx context.Context, query string) ([]models.User, error)
	RemoveUserRefs(ctx context.Context, userID primitive.ObjectID) error
}

// MongoUserRepository implements UserRepository for MongoDB.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// EnsureIndexes creates the unique indexes on username and email.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

// Create inserts a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

// GetByID retrieves a user by its ObjectID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// GetByUsername retrieves a user by its unique username.
func (r *MongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

// GetByEmail retrieves a user by its unique email.
func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update persists the mutable profile fields of a user.
func (r *MongoUserRepository) Update(ctx context.Context, user *models.User) error {
	update := bson.M{"$set": bson.M{
		"fullName":   user.FullName,
		"username":   user.Username,
		"email":      user.Email,
		"password":   user.Password,
		"bio":        user.Bio,
		"link":       user.Link,
		"profileImg": user.ProfileImg,
		"coverImg":   user.CoverImg,
		"updatedAt":  user.UpdatedAt,
	}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Delete removes a user document by id.
func (r *MongoUserRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// PushFollower adds followerID to userID's followers set.
func (r *MongoUserRepository) PushFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$addToSet", "followers", followerID)
}

// PullFollower removes followerID from userID's followers set.
func (r *MongoUserRepository) PullFollower(ctx context.Context, userID, followerID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$pull", "followers", followerID)
}

// PushFollowing adds followedID to userID's following set.
func (r *MongoUserRepository) PushFollowing(ctx context.Context, userID, followedID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$addToSet", "following", followedID)
}

// PullFollowing removes followedID from userID's following set.
func (r *MongoUserRepository) PullFollowing(ctx context.Context, userID, followedID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$pull", "following", followedID)
}

// PushLikedPost adds postID to userID's likedPosts set.
func (r *MongoUserRepository) PushLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$addToSet", "likedPosts", postID)
}

// PullLikedPost removes postID from userID's likedPosts set.
func (r *MongoUserRepository) PullLikedPost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return r.updateSet(ctx, userID, "$pull", "likedPosts", postID)
}

func (r *MongoUserRepository) updateSet(ctx context.Context, userID primitive.ObjectID, op, field string, value primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{op: bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// Sample returns up to size random users excluding the given id.
func (r *MongoUserRepository) Sample(ctx context.Context, exclude primitive.ObjectID, size int) ([]models.User, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$ne": exclude}}}},
		{{Key: "$sample", Value: bson.M{"size": size}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Search finds users whose username contains the query, case-insensitive.
func (r *MongoUserRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	filter := bson.M{"username": bson.M{"$regex": query, "$options": "i"}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// RemoveUserRefs pulls a deleted user out of every followers and
// following set it appears in.
func (r *MongoUserRepository) RemoveUserRefs(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx, bson.M{}, bson.M{
		"$pull": bson.M{
			"followers": userID,
			"following": userID,
		},
	})
	return err
}
