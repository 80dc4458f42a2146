package service

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/zwelix28/canna-bomb-sub001/internal/models"
	"github.com/zwelix28/canna-bomb-sub001/internal/repository"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type ProfilePatch struct {
	Name  *string
	Phone *string
}

type AuthResult struct {
	User        *models.User
	AccessToken string
	ExpiresAt   time.Time
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, patch ProfilePatch) (*models.User, error)
}

type authService struct {
	repo      *repository.Repository
	tokens    TokenProvider
	hasher    PasswordHasher
	accessTTL time.Duration
}

func NewAuthService(repo *repository.Repository, tokens TokenProvider, hasher PasswordHasher, accessTTL time.Duration) AuthService {
	return &authService{repo: repo, tokens: tokens, hasher: hasher, accessTTL: accessTTL}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, ErrInvalidCredentials
	}
	if strings.TrimSpace(in.Name) == "" || len(in.Password) < 8 {
		return nil, ErrInvalidCredentials
	}

	existing, err := s.repo.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         models.RoleCustomer,
	}
	if err := s.repo.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return s.issue(ctx, u)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.repo.Users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, u)
}

func (s *authService) issue(ctx context.Context, u *models.User) (*AuthResult, error) {
	token, exp, err := s.tokens.SignAccess(ctx, u.ID, string(u.Role), s.accessTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: u, AccessToken: token, ExpiresAt: exp}, nil
}

func (s *authService) Profile(ctx context.Context) (*models.User, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *authService) UpdateProfile(ctx context.Context, patch ProfilePatch) (*models.User, error) {
	uid, _, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) != "" {
		fields["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Phone != nil {
		fields["phone"] = strings.TrimSpace(*patch.Phone)
	}
	if err := s.repo.Users.UpdateFields(ctx, uid, fields); err != nil {
		return nil, err
	}
	return s.Profile(ctx)
}
