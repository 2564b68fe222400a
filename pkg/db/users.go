package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/starkproducts/platform/pkg/models"
)

// CreateUser inserts a new user document.
func (d *DB) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := d.db.Collection(collUsers).InsertOne(ctx, user); err != nil {
		return wrapWriteErr("create user", err)
	}

	return nil
}

// GetUser fetches a user by its id.
func (d *DB) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	err := d.db.Collection(collUsers).FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err != nil {
		return nil, wrapReadErr("get user", err)
	}

	return &user, nil
}

// GetUserByLogin fetches a user by username or email, case-insensitively.
func (d *DB) GetUserByLogin(ctx context.Context, usernameOrEmail string) (*models.User, error) {
	login := strings.ToLower(strings.TrimSpace(usernameOrEmail))

	var user models.User

	err := d.db.Collection(collUsers).FindOne(ctx, bson.M{
		"$or": []bson.M{
			{"username": login},
			{"email": login},
		},
	}).Decode(&user)
	if err != nil {
		return nil, wrapReadErr("get user by login", err)
	}

	return &user, nil
}

// GetUserByVerificationToken fetches the user holding an email verification token.
func (d *DB) GetUserByVerificationToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User

	err := d.db.Collection(collUsers).FindOne(ctx, bson.M{"email_verification_token": token}).Decode(&user)
	if err != nil {
		return nil, wrapReadErr("get user by verification token", err)
	}

	return &user, nil
}

// GetUserByResetToken fetches the user holding an unexpired password reset token.
func (d *DB) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User

	err := d.db.Collection(collUsers).FindOne(ctx, bson.M{
		"password_reset_token":   token,
		"password_reset_expires": bson.M{"$gt": time.Now()},
	}).Decode(&user)
	if err != nil {
		return nil, wrapReadErr("get user by reset token", err)
	}

	return &user, nil
}

// UserExists reports whether a user with the given username or email exists.
func (d *DB) UserExists(ctx context.Context, username, email string) (bool, error) {
	count, err := d.db.Collection(collUsers).CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"username": strings.ToLower(username)},
			{"email": strings.ToLower(email)},
		},
	})
	if err != nil {
		return false, fmt.Errorf("%w: user exists: %w", ErrDatabaseError, err)
	}

	return count > 0, nil
}

// UpdateUser applies a partial update to a user document.
func (d *DB) UpdateUser(ctx context.Context, id string, set bson.M) error {
	res, err := d.db.Collection(collUsers).UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return wrapWriteErr("update user", err)
	}

	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteUser removes a user document.
func (d *DB) DeleteUser(ctx context.Context, id string) error {
	res, err := d.db.Collection(collUsers).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("%w: delete user: %w", ErrDatabaseError, err)
	}

	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// ListUsers returns users matching the filter, newest first.
func (d *DB) ListUsers(ctx context.Context, filter UserFilter) ([]*models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Skip > 0 {
		opts.SetSkip(filter.Skip)
	}

	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := d.db.Collection(collUsers).Find(ctx, userQuery(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", ErrDatabaseError, err)
	}
	defer cur.Close(ctx)

	var users []*models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%w: decode users: %w", ErrDatabaseError, err)
	}

	return users, nil
}

// CountUsers counts users matching the filter.
func (d *DB) CountUsers(ctx context.Context, filter UserFilter) (int64, error) {
	count, err := d.db.Collection(collUsers).CountDocuments(ctx, userQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("%w: count users: %w", ErrDatabaseError, err)
	}

	return count, nil
}

func userQuery(filter UserFilter) bson.M {
	query := bson.M{}

	if filter.Role != "" {
		query["role"] = filter.Role
	}

	if filter.Status != "" {
		query["status"] = filter.Status
	}

	if filter.CompanyID != "" {
		query["company_id"] = filter.CompanyID
	}

	if filter.Search != "" {
		regex := primitive.Regex{Pattern: regexQuote(filter.Search), Options: "i"}
		query["$or"] = []bson.M{
			{"username": regex},
			{"email": regex},
			{"first_name": regex},
			{"last_name": regex},
		}
	}

	return query
}
