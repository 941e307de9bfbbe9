package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"blog-fusion/cmd/api/auth"
	"blog-fusion/models"
	"blog-fusion/repositories"
)

// UserStore 는 AuthService 가 필요로 하는 사용자 저장소 동작이다.
type UserStore interface {
	UpsertByProvider(ctx context.Context, provider, sub, displayName, email, photoURL string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type AuthService struct {
	googleOAuth *auth.GoogleOAuthClient
	users       UserStore
	jwtManager  *auth.JWTManager
	redirectURL string
}

func NewAuthService(googleOAuth *auth.GoogleOAuthClient, users UserStore, jwtManager *auth.JWTManager, redirectURL string) *AuthService {
	return &AuthService{
		googleOAuth: googleOAuth,
		users:       users,
		jwtManager:  jwtManager,
		redirectURL: redirectURL,
	}
}

func NewAuthServiceFromEnv(users UserStore) (*AuthService, error) {
	googleClient, err := auth.NewGoogleOAuthClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init GoogleOAuthClient: %w", err)
	}

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to init JWTManager: %w", err)
	}

	redirectURL := os.Getenv("AUTH_LOGIN_SUCCESS_REDIRECT_URL")
	if redirectURL == "" {
		return nil, fmt.Errorf("AUTH_LOGIN_SUCCESS_REDIRECT_URL is blank")
	}

	return NewAuthService(googleClient, users, jwtManager, redirectURL), nil
}

func (s *AuthService) BuildGoogleLoginURL(state string) string {
	return s.googleOAuth.AuthCodeURL(state)
}

// HandleGoogleCallback 은 코드 교환, 사용자 정보 조회, 사용자 업서트, JWT 발급을 수행한다.
func (s *AuthService) HandleGoogleCallback(ctx context.Context, code string) (string, error) {
	token, err := s.googleOAuth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("google oauth exchange: %w", err)
	}

	info, err := s.googleOAuth.FetchUserInfo(ctx, token)
	if err != nil {
		return "", fmt.Errorf("google userinfo: %w", err)
	}

	user, err := s.users.UpsertByProvider(ctx, "google", info.Sub, info.Name, info.Email, info.Picture)
	if err != nil {
		return "", fmt.Errorf("user upsert: %w", err)
	}

	accessToken, err := s.jwtManager.Sign(user.ID, auth.RoleUser, user.DisplayName)
	if err != nil {
		return "", fmt.Errorf("jwt sign: %w", err)
	}

	return accessToken, nil
}

// GetRedirectURL 는 Google OAuth 플로우 최종 리다이렉트 대상 URL을 반환한다.
// 성공 시에는 GetRedirectURLWithToken 으로 토큰을 붙여 사용하고,
// 실패 시에는 이 URL로 토큰 없이 리다이렉트한다.
func (s *AuthService) GetRedirectURL() string {
	return s.redirectURL
}

func (s *AuthService) GetRedirectURLWithToken(token string) string {
	return fmt.Sprintf("%s?token=%s", s.redirectURL, token)
}

func (s *AuthService) ParseAccessToken(token string) (auth.Claims, error) {
	return s.jwtManager.Parse(token)
}

// GetUserProfile 는 로그인한 사용자의 프로필을 조회한다.
func (s *AuthService) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
