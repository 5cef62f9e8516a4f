package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/ndkhang/hirestage/config"
	"github.com/ndkhang/hirestage/internal/apperror"
	"github.com/ndkhang/hirestage/internal/auth"
	"github.com/ndkhang/hirestage/internal/dto"
	"github.com/ndkhang/hirestage/internal/model"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = uint(len(r.users) + 1)
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newAuthFixture() (AuthService, *fakeUserRepo) {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.TokenTTLMinutes = 60
	users := newFakeUserRepo()
	return NewAuthService(users, auth.NewTokenService(cfg)), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, users := newAuthFixture()

	err := svc.Register(dto.RegisterRequest{
		Name:     "Khang",
		Email:    "khang@example.com",
		Password: "s3cret-pass",
		Role:     model.RoleHR,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	stored, err := users.FindByEmail("khang@example.com")
	if err != nil {
		t.Fatalf("find user: %v", err)
	}
	if stored.PasswordHash == "s3cret-pass" {
		t.Fatal("password stored in plaintext")
	}

	resp, err := svc.Login(dto.LoginRequest{Email: "khang@example.com", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
	if resp.Role != model.RoleHR || resp.Name != "Khang" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthFixture()

	req := dto.RegisterRequest{Name: "Khang", Email: "khang@example.com", Password: "s3cret-pass", Role: model.RoleHR}
	if err := svc.Register(req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := svc.Register(req); !apperror.IsValidation(err) {
		t.Fatalf("expected ValidationError for duplicate email, got %v", err)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newAuthFixture()

	if err := svc.Register(dto.RegisterRequest{
		Name: "Khang", Email: "khang@example.com", Password: "s3cret-pass", Role: model.RoleHR,
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password produce the same opaque error.
	if _, err := svc.Login(dto.LoginRequest{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Login(dto.LoginRequest{Email: "khang@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}
