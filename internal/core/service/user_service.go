package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/minishop/store-api/internal/core/domain"
	"github.com/minishop/store-api/internal/core/ports"
)

// UserService implements signup, signin, logout, and profile mutation.
// Sessions are single-per-user: issuing a token overwrites the stored hash
// of any previous one.
type UserService struct {
	repo     ports.UserRepository
	hasher   *PasswordHasher
	tokens   *TokenService
	sessions ports.SessionCache
	audit    ports.AuditTrail
	logger   zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	hasher *PasswordHasher,
	tokens *TokenService,
	sessions ports.SessionCache,
	audit ports.AuditTrail,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		sessions: sessions,
		audit:    audit,
		logger:   logger,
	}
}

// Signup registers a new account and immediately opens a session for it.
// The email uniqueness check here is best-effort; the repository's unique
// index is the authoritative guard against a concurrent duplicate.
func (s *UserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, string, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user signed up")
	s.record(user, domain.AuditSignup)
	return user, token, nil
}

// Signin verifies credentials and opens a new session. The previously
// stored token hash is overwritten; the old token keeps verifying until its
// own expiry but can no longer be matched for logout.
func (s *UserService) Signin(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", domain.ErrBadCredential
	}

	user.IsActive = true
	token, err := s.openSession(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	s.record(user, domain.AuditSignin)
	return user, token, nil
}

// Logout closes the session whose stored hash matches the presented token.
// The cache is consulted first; a miss or a stale entry falls back to the
// repository lookup.
func (s *UserService) Logout(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	tokenHash := TokenHash(token)

	user, err := s.findSession(ctx, tokenHash)
	if err != nil {
		return nil, err
	}

	cleared, err := s.repo.ClearSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Delete(ctx, tokenHash); err != nil {
		s.logger.Warn().Err(err).Msg("session cache delete failed")
	}

	s.logger.Info().Str("user_id", cleared.ID).Msg("user logged out")
	s.record(cleared, domain.AuditLogout)
	return cleared, nil
}

// Update applies the non-empty fields of input to the account. An email
// change goes through the same uniqueness check as signup.
func (s *UserService) Update(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if email := normalizeEmail(input.Email); email != "" && email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != user.ID {
			return nil, domain.ErrEmailTaken
		} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		user.Email = email
	}
	if input.Password != "" {
		hash, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", updated.ID).Msg("user updated")
	s.record(updated, domain.AuditUpdate)
	return updated, nil
}

// Delete removes the account. The caller's ownership of id has already been
// established by the authorization gate.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if user.TokenHash != "" {
		if err := s.sessions.Delete(ctx, user.TokenHash); err != nil {
			s.logger.Warn().Err(err).Msg("session cache delete failed")
		}
	}

	s.logger.Info().Str("user_id", id).Msg("user deleted")
	s.record(user, domain.AuditDelete)
	return nil
}

// openSession issues a token for user and persists its hash on the record.
func (s *UserService) openSession(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", err
	}

	tokenHash := TokenHash(token)
	if err := s.repo.SetSession(ctx, user.ID, tokenHash); err != nil {
		return "", err
	}
	user.TokenHash = tokenHash

	if err := s.sessions.Put(ctx, tokenHash, user.ID); err != nil {
		s.logger.Warn().Err(err).Msg("session cache put failed")
	}
	return token, nil
}

// findSession resolves a token hash to the user holding it as their live
// session, or ErrInvalidToken.
func (s *UserService) findSession(ctx context.Context, tokenHash string) (*domain.User, error) {
	if userID, ok, err := s.sessions.Get(ctx, tokenHash); err != nil {
		s.logger.Warn().Err(err).Msg("session cache get failed")
	} else if ok {
		user, err := s.repo.FindByID(ctx, userID)
		// the cache can lag a concurrent logout; trust only a matching hash
		if err == nil && user.TokenHash == tokenHash {
			return user, nil
		}
	}

	user, err := s.repo.FindByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) record(user *domain.User, action string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		UserID:     user.ID,
		Email:      user.Email,
		Action:     action,
		OccurredAt: time.Now().UTC(),
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
