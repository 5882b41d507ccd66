package store

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/georeconexion/campo-api/models"
)

// UpsertUser differs from every other write: identity changes must not
// silently diverge from the backend, so the mutation goes upstream first and
// the local collection is replaced with the authoritative post-write listing.
// Any failure is returned to the caller with no local change.
func (s *Store) UpsertUser(ctx context.Context, user models.UserAccount) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if !s.gw.Enabled() {
		return fmt.Errorf("user management requires an upstream connection")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Secret), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}
	user.Secret = string(hash)

	if err := s.gw.SaveUser(ctx, user); err != nil {
		return err
	}
	users, err := s.gw.FetchUsers(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	s.notify()
	return nil
}

// Users returns a snapshot of the user collection
func (s *Store) Users() []models.UserAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.UserAccount, len(s.users))
	copy(out, s.users)
	return out
}

// FindUserByUsername looks up one account by exact username
func (s *Store) FindUserByUsername(username string) (models.UserAccount, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return models.UserAccount{}, false
}

// VerifyUserSecret checks a plaintext secret against the stored bcrypt hash
// for an active account
func (s *Store) VerifyUserSecret(username, secret string) (models.UserAccount, error) {
	u, ok := s.FindUserByUsername(username)
	if !ok || !u.Active {
		return models.UserAccount{}, fmt.Errorf("unknown or inactive user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Secret), []byte(secret)); err != nil {
		return models.UserAccount{}, fmt.Errorf("invalid credentials")
	}
	return u, nil
}

// SeedUsers loads an initial user collection, hashing any plaintext secrets.
// Used at startup before the first authoritative refetch, and by local-only
// deployments.
func (s *Store) SeedUsers(users []models.UserAccount) error {
	seeded := make([]models.UserAccount, 0, len(users))
	for _, u := range users {
		if len(u.Secret) > 0 && u.Secret[0] != '$' {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Secret), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash secret for %s: %w", u.Username, err)
			}
			u.Secret = string(hash)
		}
		seeded = append(seeded, u)
	}
	s.mu.Lock()
	s.users = seeded
	s.mu.Unlock()
	return nil
}

// RefreshUsers pulls the authoritative user listing, replacing the local
// collection. Failure leaves the collection unchanged.
func (s *Store) RefreshUsers(ctx context.Context) error {
	if !s.gw.Enabled() {
		return nil
	}
	users, err := s.gw.FetchUsers(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}
