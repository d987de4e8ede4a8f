package usecase

import (
	"context"
	"errors"
	"strings"

	"internhub/internal/domain/candidate"
	"internhub/internal/domain/user"
	"internhub/internal/pkg/jwt"
	"internhub/internal/repository"
	ucauth "internhub/internal/usecase/auth"

	"go.uber.org/zap"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type RegisterInput struct {
	Email    string
	Password string
	Kind     user.Kind
	FullName string
}

type AuthUsecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc    *ucauth.Service
	users      user.Repository
	candidates repository.CandidateRepository
	jwt        jwt.Service
	logger     *zap.Logger
}

func NewAuthUsecase(users user.Repository, candidates repository.CandidateRepository, jwtSvc jwt.Service, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{
		authSvc:    ucauth.NewService(users),
		users:      users,
		candidates: candidates,
		jwt:        jwtSvc,
		logger:     logger,
	}
}

// Register creates the account and, for candidates, an empty matching
// profile keyed by the account id.
func (u *Auth) Register(ctx context.Context, in RegisterInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Register(ctx, ucauth.RegisterInput{Email: in.Email, Password: in.Password, Kind: in.Kind})
	if err != nil {
		return user.User{}, "", "", err
	}

	if usr.Kind == user.KindCandidate && u.candidates != nil {
		profile := candidate.Candidate{ID: usr.ID, FullName: strings.TrimSpace(in.FullName), Email: usr.Email}
		if err := u.candidates.Upsert(ctx, profile); err != nil {
			u.logger.Error("candidate profile not created", zap.Stringer("user_id", usr.ID), zap.Error(err))
			return user.User{}, "", "", ErrInternal
		}
	}

	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, string, string, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, "", "", err
	}

	access, refresh, err := u.issue(usr)
	if err != nil {
		return user.User{}, "", "", err
	}
	return usr, access, refresh, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}

	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	usr, err := u.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", "", ErrInvalidRefreshToken
		}
		return "", "", ErrInternal
	}

	return u.issue(usr)
}

func (u *Auth) issue(usr user.User) (string, string, error) {
	access, err := u.jwt.GenerateAccessToken(usr.ID, string(usr.Kind))
	if err != nil {
		return "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(usr.ID, string(usr.Kind))
	if err != nil {
		return "", "", ErrInternal
	}
	return access, refresh, nil
}
