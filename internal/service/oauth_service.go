// FILE: internal/service/oauth_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type IOAuthService interface {
	GetLoginURL(provider string) (string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory unitofwork.RepositoryFactory
	googleConf *oauth2.Config
	httpClient *http.Client
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory) IOAuthService {
	return &oauthService{
		uowFactory: uowFactory,
		googleConf: &oauth2.Config{
			ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
			ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
			RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *oauthService) GetLoginURL(provider string) (string, error) {
	if provider != "google" {
		return "", errors.New("unsupported provider")
	}

	// TODO: verify state on the callback via a cookie once the SPA
	// handles the redirect itself.
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), nil
}

// HandleCallback finishes the Google flow: code for token, token for
// profile, then either a first-login signup or a plain lookup. OAuth
// accounts skip email verification since Google already did it.
func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != "google" {
		return nil, errors.New("unsupported provider")
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %v", err)
	}

	profile, err := s.fetchGoogleProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: profile.Email})
	if err != nil {
		log.Printf("[OAuth] user lookup: %v", err)
		return nil, err
	}
	if user == nil {
		if user, err = s.registerOAuthUser(ctx, uow, profile); err != nil {
			return nil, err
		}
	}

	// Upsert keyed on (user, provider): re-login refreshes the avatar.
	link := &entity.UserProvider{
		Id:             uuid.New(),
		UserId:         user.Id,
		ProviderName:   "google",
		ProviderUserId: profile.ID,
		AvatarURL:      profile.Picture,
		CreatedAt:      time.Now(),
	}
	if err := uow.UserRepository().SaveUserProvider(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to save provider info: %v", err)
	}

	signedToken, err := signAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: signedToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			Username: user.Username,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}, nil
}

type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *oauthService) fetchGoogleProfile(ctx context.Context, accessToken string) (*googleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo returned %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *oauthService) registerOAuthUser(ctx context.Context, uow unitofwork.UnitOfWork, profile *googleProfile) (*entity.User, error) {
	newUser := &entity.User{
		Id:            uuid.New(),
		Email:         profile.Email,
		Username:      usernameFromEmail(profile.Email),
		FullName:      profile.Name,
		PasswordHash:  nil,
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusActive,
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().Create(ctx, newUser); err != nil {
		uow.Rollback()
		log.Printf("[OAuth] create user: %v", err)
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return newUser, nil
}

// usernameFromEmail derives a starter username for OAuth signups; the
// uuid suffix avoids collisions until the user picks their own.
func usernameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	return fmt.Sprintf("%s%s", local, uuid.New().String()[:8])
}

// signAccessToken mints the same access token authService does; the secret
// fallback mirrors serverutils.JwtKeyFunc so the middleware can verify it.
func signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default_secret"
	}
	return token.SignedString([]byte(secret))
}
