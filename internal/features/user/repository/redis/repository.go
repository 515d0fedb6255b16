package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"user-admin-backend/internal/common/validation"
	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/repository"
)

const (
	userKeyPrefix  = "user:"
	emailIdxPrefix = "index:email:"
	phoneIdxPrefix = "index:phone:"
)

type userRepository struct {
	client redis.Cmdable
}

func NewUserRepository(client redis.Cmdable) repository.UserRepository {
	return &userRepository{client: client}
}

func userKey(id string) string {
	return userKeyPrefix + id
}

func emailKey(email string) string {
	return emailIdxPrefix + validation.NormalizeEmail(email)
}

func phoneKey(phone string) string {
	return phoneIdxPrefix + validation.NormalizePhone(phone)
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	// Claim both unique indexes before writing the document. A lost claim
	// is a duplicate; a half-claim is released before returning.
	ok, err := r.client.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrDuplicateEmail
	}

	ok, err = r.client.SetNX(ctx, phoneKey(user.Phone), user.ID, 0).Result()
	if err != nil {
		r.client.Del(ctx, emailKey(user.Email))
		return err
	}
	if !ok {
		r.client.Del(ctx, emailKey(user.Email))
		return repository.ErrDuplicatePhone
	}

	return r.set(ctx, user)
}

func (r *userRepository) set(ctx context.Context, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, userKey(user.ID), raw, 0).Err()
}

// getRaw returns the stored record as-is, password hash included.
func (r *userRepository) getRaw(ctx context.Context, id string) (*models.User, error) {
	raw, err := r.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decode user %s: %w", id, err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := r.getRaw(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (r *userRepository) lookupEmail(ctx context.Context, email string) (string, error) {
	id, err := r.client.Get(ctx, emailKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return id, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	id, err := r.lookupEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) GetByEmailWithPassword(ctx context.Context, email string) (*models.User, error) {
	id, err := r.lookupEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return r.getRaw(ctx, id)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	stored, err := r.getRaw(ctx, user.ID)
	if err != nil {
		return err
	}

	// Empty hash means the password was not touched on this save.
	if user.PasswordHash == "" {
		user.PasswordHash = stored.PasswordHash
	}

	// Claim every new index key before touching anything else, releasing
	// fresh claims on failure, and drop the old keys only once the document
	// write has succeeded. A failed update must leave the old email/phone
	// lookups intact.
	emailChanged := emailKey(user.Email) != emailKey(stored.Email)
	phoneChanged := phoneKey(user.Phone) != phoneKey(stored.Phone)

	if emailChanged {
		ok, err := r.client.SetNX(ctx, emailKey(user.Email), user.ID, 0).Result()
		if err != nil {
			return err
		}
		if !ok {
			return repository.ErrDuplicateEmail
		}
	}

	if phoneChanged {
		ok, err := r.client.SetNX(ctx, phoneKey(user.Phone), user.ID, 0).Result()
		if err != nil || !ok {
			if emailChanged {
				r.client.Del(ctx, emailKey(user.Email))
			}
			if err != nil {
				return err
			}
			return repository.ErrDuplicatePhone
		}
	}

	user.UpdatedAt = time.Now()
	if err := r.set(ctx, user); err != nil {
		if emailChanged {
			r.client.Del(ctx, emailKey(user.Email))
		}
		if phoneChanged {
			r.client.Del(ctx, phoneKey(user.Phone))
		}
		return err
	}

	if emailChanged {
		r.client.Del(ctx, emailKey(stored.Email))
	}
	if phoneChanged {
		r.client.Del(ctx, phoneKey(stored.Phone))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	stored, err := r.getRaw(ctx, id)
	if err != nil {
		return err
	}

	if err := r.client.Del(ctx, userKey(id)).Err(); err != nil {
		return err
	}
	r.client.Del(ctx, emailKey(stored.Email), phoneKey(stored.Phone))
	return nil
}

func (r *userRepository) List(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	iter := r.client.Scan(ctx, 0, userKeyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		raw, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}

		var user models.User
		if err := json.Unmarshal(raw, &user); err != nil {
			continue
		}

		user.PasswordHash = ""
		users = append(users, &user)
	}

	return users, iter.Err()
}
