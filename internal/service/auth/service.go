package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/sharpcut/booking-backend-go/internal/domain/auth"
	"github.com/sharpcut/booking-backend-go/internal/domain/client"
	"github.com/sharpcut/booking-backend-go/internal/domain/user"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
	"github.com/sharpcut/booking-backend-go/internal/pkg/jwt"
	"github.com/sharpcut/booking-backend-go/internal/pkg/password"
	"github.com/sharpcut/booking-backend-go/internal/repository/postgresql"
)

type authServiceImpl struct {
	db         *database.DB
	userRepo   user.UserRepository
	clientRepo client.ClientRepository
	jwtService jwt.Service
}

func NewAuthService(db *database.DB, userRepo user.UserRepository, clientRepo client.ClientRepository, jwtService jwt.Service) auth.AuthService {
	return &authServiceImpl{
		db:         db,
		userRepo:   userRepo,
		clientRepo: clientRepo,
		jwtService: jwtService,
	}
}

// Register implements auth.AuthService. The user account and its client
// profile are created in one transaction so a booking-capable account never
// exists half-made.
func (s *authServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return auth.AuthResponse{}, err
	}

	var created user.User
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		created, err = s.userRepo.Create(txCtx, user.User{
			Email:        strings.ToLower(req.Email),
			PasswordHash: hash,
			Role:         user.RoleClient,
		})
		if err != nil {
			return err
		}
		_, err = s.clientRepo.Create(txCtx, client.Client{
			UserID: created.ID,
			Name:   req.Name,
			Phone:  req.Phone,
		})
		return err
	})
	if err != nil {
		return auth.AuthResponse{}, err
	}

	return s.respond(created)
}

// Login implements auth.AuthService.
func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AuthResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidCredentials
		}
		return auth.AuthResponse{}, err
	}
	if !password.Compare(u.PasswordHash, req.Password) {
		return auth.AuthResponse{}, auth.ErrInvalidCredentials
	}

	return s.respond(u)
}

// Refresh implements auth.AuthService.
func (s *authServiceImpl) Refresh(ctx context.Context, userID string) (auth.AuthResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AuthResponse{}, auth.ErrInvalidToken
		}
		return auth.AuthResponse{}, err
	}
	return s.respond(u)
}

func (s *authServiceImpl) respond(u user.User) (auth.AuthResponse, error) {
	token, expiresAt, err := s.jwtService.GenerateAccessToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return auth.AuthResponse{}, err
	}
	return auth.AuthResponse{
		UserID:      u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
