package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/minishop/store-api/internal/core/domain"
	"github.com/minishop/store-api/internal/core/ports"
)

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = "user_" + strconv.Itoa(r.nextID)
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByTokenHash(_ context.Context, tokenHash string) (*domain.User, error) {
	for _, u := range r.users {
		if u.TokenHash != "" && u.TokenHash == tokenHash {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) SetSession(_ context.Context, id, tokenHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.TokenHash = tokenHash
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *stubUserRepo) ClearSession(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.TokenHash = ""
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionCache struct {
	entries map[string]string
}

func newStubSessionCache() *stubSessionCache {
	return &stubSessionCache{entries: make(map[string]string)}
}

func (c *stubSessionCache) Put(_ context.Context, tokenHash, userID string) error {
	c.entries[tokenHash] = userID
	return nil
}

func (c *stubSessionCache) Get(_ context.Context, tokenHash string) (string, bool, error) {
	id, ok := c.entries[tokenHash]
	return id, ok, nil
}

func (c *stubSessionCache) Delete(_ context.Context, tokenHash string) error {
	delete(c.entries, tokenHash)
	return nil
}

type recordingAudit struct {
	events []domain.AuditEvent
}

func (a *recordingAudit) Record(event domain.AuditEvent) {
	a.events = append(a.events, event)
}

func newTestUserService() (*UserService, *stubUserRepo, *stubSessionCache, *recordingAudit) {
	repo := newStubUserRepo()
	cache := newStubSessionCache()
	audit := &recordingAudit{}
	svc := NewUserService(
		repo,
		NewPasswordHasher(bcrypt.MinCost),
		NewTokenService("test-key", time.Hour),
		cache,
		audit,
		zerolog.Nop(),
	)
	return svc, repo, cache, audit
}

func TestUserService_Signup_Success(t *testing.T) {
	svc, repo, cache, audit := newTestUserService()

	user, token, err := svc.Signup(context.Background(), ports.SignupInput{
		FullName: "Alice Example",
		Email:    "Alice@Example.com",
		Password: "p1",
	})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token")
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("email not lowercased: %s", user.Email)
	}
	if !user.IsActive {
		t.Fatalf("expected active session after signup")
	}
	if user.PasswordHash == "p1" || user.PasswordHash == "" {
		t.Fatalf("password not hashed: %q", user.PasswordHash)
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.TokenHash != TokenHash(token) {
		t.Fatalf("stored token hash does not match issued token")
	}
	if id, ok, _ := cache.Get(context.Background(), TokenHash(token)); !ok || id != user.ID {
		t.Fatalf("session cache not populated")
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditSignup {
		t.Fatalf("expected one signup audit event, got %+v", audit.events)
	}
}

func TestUserService_Signup_DuplicateEmail(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, _, err := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"}); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	// same email, different case, different password and name
	_, _, err := svc.Signup(context.Background(), ports.SignupInput{FullName: "B", Email: "A@X.COM", Password: "p2"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Signin_Success(t *testing.T) {
	svc, repo, _, _ := newTestUserService()

	user, t1, err := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	signed, t2, err := svc.Signin(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("Signin returned error: %v", err)
	}
	if t2 == "" || t2 == t1 {
		t.Fatalf("expected a fresh token, got %q", t2)
	}
	if signed.ID != user.ID {
		t.Fatalf("signin returned wrong user")
	}

	// the stored hash now matches the new token only
	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.TokenHash != TokenHash(t2) {
		t.Fatalf("stored hash not replaced by signin")
	}
}

func TestUserService_Signin_UnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, _, err := svc.Signin(context.Background(), "ghost@x.com", "pw")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Signin_BadPassword(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, _, _ = svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})

	_, _, err := svc.Signin(context.Background(), "a@x.com", "wrong")
	if !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential, got %v", err)
	}
}

func TestUserService_Logout_Lifecycle(t *testing.T) {
	svc, repo, _, _ := newTestUserService()

	user, _, err := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	_, t2, err := svc.Signin(context.Background(), "a@x.com", "p1")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}

	out, err := svc.Logout(context.Background(), t2)
	if err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if out.IsActive {
		t.Fatalf("expected inactive after logout")
	}

	stored, _ := repo.FindByID(context.Background(), user.ID)
	if stored.TokenHash != "" || stored.IsActive {
		t.Fatalf("session not cleared: hash=%q active=%v", stored.TokenHash, stored.IsActive)
	}

	// replaying the same token must now fail
	if _, err := svc.Logout(context.Background(), t2); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on replay, got %v", err)
	}
}

func TestUserService_Logout_MissingToken(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, err := svc.Logout(context.Background(), ""); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
}

func TestUserService_Logout_StaleCacheEntry(t *testing.T) {
	svc, _, cache, _ := newTestUserService()

	user, token, err := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	// poison the cache with an entry pointing at a user whose stored hash
	// no longer matches
	_ = cache.Put(context.Background(), TokenHash("old-token"), user.ID)

	if _, err := svc.Logout(context.Background(), "old-token"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for stale cache entry, got %v", err)
	}

	// the live token still works
	if _, err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout with live token failed: %v", err)
	}
}

func TestUserService_Update_Fields(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	user, _, _ := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})

	updated, err := svc.Update(context.Background(), user.ID, ports.UpdateUserInput{
		FullName: "Alice B",
		Email:    "NEW@X.com",
		Password: "p2",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.FullName != "Alice B" || updated.Email != "new@x.com" {
		t.Fatalf("fields not applied: %+v", updated)
	}

	// new password verifies, old one does not
	if _, _, err := svc.Signin(context.Background(), "new@x.com", "p2"); err != nil {
		t.Fatalf("signin with new password failed: %v", err)
	}
	if _, _, err := svc.Signin(context.Background(), "new@x.com", "p1"); !errors.Is(err, domain.ErrBadCredential) {
		t.Fatalf("expected ErrBadCredential with old password, got %v", err)
	}
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	_, _, _ = svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})
	other, _, _ := svc.Signup(context.Background(), ports.SignupInput{FullName: "B", Email: "b@x.com", Password: "p1"})

	_, err := svc.Update(context.Background(), other.ID, ports.UpdateUserInput{Email: "a@x.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	svc, repo, _, audit := newTestUserService()

	user, _, _ := svc.Signup(context.Background(), ports.SignupInput{FullName: "A", Email: "a@x.com", Password: "p1"})

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user still present after delete")
	}
	if err := svc.Delete(context.Background(), user.ID); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound on second delete, got %v", err)
	}

	last := audit.events[len(audit.events)-1]
	if last.Action != domain.AuditDelete {
		t.Fatalf("expected delete audit event, got %+v", last)
	}
}
