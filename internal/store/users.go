package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/svc/auth"
)

func userErr(err error) error {
	return translate(err, auth.ErrUserNotFound, auth.ErrEmailTaken)
}

func (s *Store) CreateUser(ctx context.Context, user *auth.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	now := s.timestamp()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	return userErr(insertOne(ctx, s.col(ColUsers), user))
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	user, err := findOne[auth.User](ctx, s.col(ColUsers), byID(id))
	return user, userErr(err)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	user, err := findOne[auth.User](ctx, s.col(ColUsers), bson.D{{Key: "email", Value: email}})
	return user, userErr(err)
}

func (s *Store) ListUsers(ctx context.Context) ([]*auth.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[auth.User](ctx, s.col(ColUsers), bson.D{}, opts)
}

func (s *Store) UpdateUser(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	if upd.IsEmpty() {
		return s.GetUserByID(ctx, id)
	}

	set := bson.D{{Key: "updated_at", Value: s.timestamp()}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Avatar != nil {
		set = append(set, bson.E{Key: "avatar", Value: *upd.Avatar})
	}
	if upd.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *upd.Role})
	}
	if upd.BiometricEnabled != nil {
		set = append(set, bson.E{Key: "biometric_enabled", Value: *upd.BiometricEnabled})
	}
	if upd.PasswordHash != nil {
		set = append(set, bson.E{Key: "password_hash", Value: *upd.PasswordHash})
	}
	if upd.Provider != nil {
		set = append(set, bson.E{Key: "provider", Value: *upd.Provider})
	}

	user, err := findOneAndUpdate[auth.User](ctx, s.col(ColUsers), byID(id), bson.D{{Key: "$set", Value: set}})
	return user, userErr(err)
}

func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return userErr(deleteByID(ctx, s.col(ColUsers), id))
}

func (s *Store) SetVerification(ctx context.Context, id string, secret auth.Secret) error {
	return userErr(updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "verification", Value: secret},
		{Key: "updated_at", Value: s.timestamp()},
	}))
}

func (s *Store) SetPasswordReset(ctx context.Context, id string, secret auth.Secret) error {
	return userErr(updateFields(ctx, s.col(ColUsers), id, bson.D{
		{Key: "password_reset", Value: secret},
		{Key: "updated_at", Value: s.timestamp()},
	}))
}

// MarkVerified matches on the digest so that two concurrent verifications
// of the same code cannot both succeed.
func (s *Store) MarkVerified(ctx context.Context, id, digest string) error {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "verified", Value: false},
		{Key: "verification.digest", Value: digest},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "verified", Value: true},
			{Key: "updated_at", Value: s.timestamp()},
		}},
		{Key: "$unset", Value: bson.D{{Key: "verification", Value: ""}}},
	}

	res, err := s.col(ColUsers).UpdateOne(ctx, filter, update)
	if err != nil {
		return userErr(wrapError(err))
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// ConsumePasswordReset redeems a pending reset in a single write. A local
// password now exists, so the provider becomes local.
func (s *Store) ConsumePasswordReset(ctx context.Context, req auth.ConsumeReset) (*auth.User, error) {
	filter := bson.D{
		{Key: "email", Value: req.Email},
		{Key: "password_reset.digest", Value: req.Digest},
		{Key: "password_reset.method", Value: req.Method},
		{Key: "password_reset.expires_at", Value: bson.D{{Key: "$gt", Value: req.Now}}},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "password_hash", Value: req.PasswordHash},
			{Key: "provider", Value: auth.ProviderLocal},
			{Key: "updated_at", Value: s.timestamp()},
		}},
		{Key: "$unset", Value: bson.D{{Key: "password_reset", Value: ""}}},
	}

	user, err := findOneAndUpdate[auth.User](ctx, s.col(ColUsers), filter, update)
	return user, userErr(err)
}

// LinkGoogle only touches accounts without a Google id. An account linked
// in the meantime is returned unchanged.
func (s *Store) LinkGoogle(ctx context.Context, id, googleID, avatar string) (*auth.User, error) {
	filter := bson.D{
		{Key: "_id", Value: id},
		{Key: "$or", Value: bson.A{
			bson.D{{Key: "google_id", Value: bson.D{{Key: "$exists", Value: false}}}},
			bson.D{{Key: "google_id", Value: ""}},
		}},
	}
	set := bson.D{
		{Key: "google_id", Value: googleID},
		{Key: "updated_at", Value: s.timestamp()},
	}
	if avatar != "" {
		set = append(set, bson.E{Key: "avatar", Value: avatar})
	}

	user, err := findOneAndUpdate[auth.User](ctx, s.col(ColUsers), filter, bson.D{{Key: "$set", Value: set}})
	if errors.Is(err, ErrNotFound) {
		return s.GetUserByID(ctx, id)
	}
	return user, userErr(err)
}

var _ auth.Storage = (*Store)(nil)
