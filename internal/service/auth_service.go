// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/entity"
	"github.com/Tarunsai01/ARIA/internal/pkg/mailer"
	"github.com/Tarunsai01/ARIA/internal/repository/specification"
	"github.com/Tarunsai01/ARIA/internal/repository/unitofwork"

	"github.com/Tarunsai01/ARIA/pkg/events"
	pktNats "github.com/Tarunsai01/ARIA/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token lifetimes. The access token is deliberately short next to the
// refresh token, which only exists for remember-me sessions.
const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
	otpTTL          = 15 * time.Minute
	resetTokenTTL   = time.Hour
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest, ipAddress, userAgent string) (*dto.LoginResponse, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	jwtSecret      []byte
}

func NewAuthService(uowFactory unitofwork.RepositoryFactory, emailService mailer.IEmailService, eventPublisher *pktNats.Publisher, jwtSecret string) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		jwtSecret:      []byte(jwtSecret),
	}
}

// generateOTP draws a zero-padded six digit code from crypto/rand.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n), nil
}

func hashRefreshToken(raw string) string {
	hasher := sha256.New()
	hasher.Write([]byte(raw))
	return hex.EncodeToString(hasher.Sum(nil))
}

func (s *authService) signAccessToken(user *entity.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.Id.String(),
		"role":    user.Role,
		"exp":     time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// newRefreshToken builds the stored form of a refresh token. Only the
// sha256 hash is persisted; the raw value goes back to the client once.
func newRefreshToken(userId uuid.UUID, raw, ipAddress, userAgent string) *entity.UserRefreshToken {
	return &entity.UserRefreshToken{
		Id:        uuid.New(),
		UserId:    userId,
		TokenHash: hashRefreshToken(raw),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
		Revoked:   false,
		CreatedAt: time.Now(),
		IpAddress: ipAddress,
		UserAgent: userAgent,
	}
}

func loginResponse(user *entity.User, accessToken, refreshToken string) *dto.LoginResponse {
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserDTO{
			Id:       user.Id,
			Email:    user.Email,
			Username: user.Username,
			FullName: user.FullName,
			Role:     string(user.Role),
		},
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, _ := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	existing, _ = uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if existing != nil {
		return nil, errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hashStr := string(hash)

	user := &entity.User{
		Id:            uuid.New(),
		Email:         req.Email,
		Username:      req.Username,
		FullName:      req.FullName,
		PasswordHash:  &hashStr,
		Role:          entity.UserRoleUser,
		Status:        entity.UserStatusPending,
		EmailVerified: false,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// User and OTP land together or not at all.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	otpCode, err := generateOTP()
	if err != nil {
		return nil, err
	}

	verificationToken := &entity.EmailVerificationToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     otpCode,
		ExpiresAt: time.Now().Add(otpTTL),
		CreatedAt: time.Now(),
	}

	if err := uow.UserRepository().CreateEmailVerificationToken(ctx, verificationToken); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Delivery happens off the request path; a mail outage must not
	// fail the signup.
	go func() {
		if err := s.emailService.SendOTP(user.Email, otpCode); err != nil {
			fmt.Printf("Error sending registration email: %v\n", err)
		}
	}()

	if s.eventPublisher != nil {
		evt := events.New("USER_REGISTERED", map[string]interface{}{
			"user_id":  user.Id,
			"email":    user.Email,
			"username": user.Username,
		})
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_REGISTERED event: %v\n", err)
		}
	}

	return &dto.RegisterResponse{Id: user.Id, Email: user.Email, Username: user.Username}, nil
}

// VerifyEmail checks the OTP sent at registration and activates the
// account. Verifying an already-active account is a no-op, not an error,
// so a double-submitted form still lands on success.
func (s *authService) VerifyEmail(ctx context.Context, req *dto.VerifyEmailRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return errors.New("user not found")
	}
	if user.Status == entity.UserStatusActive {
		return nil
	}

	tokenEntity, err := uow.UserRepository().FindEmailVerificationToken(ctx,
		specification.UserOwnedBy{UserID: user.Id},
		specification.ByToken{Token: req.Token},
	)
	if err != nil || tokenEntity == nil {
		return errors.New("invalid otp code")
	}
	if time.Now().After(tokenEntity.ExpiresAt) {
		return errors.New("otp code expired")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().ActivateUser(ctx, user.Id); err != nil {
		return err
	}

	// Codes are single-use.
	_ = uow.UserRepository().DeleteEmailVerificationToken(ctx, tokenEntity.Id)

	return uow.Commit()
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The same message for every failure mode, so responses cannot be
	// used to enumerate accounts.
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil, errors.New("invalid credentials")
	}

	// OAuth-only accounts have no hash to compare against.
	if user.PasswordHash == nil {
		return nil, errors.New("user registered via OAuth")
	}

	if user.Status == entity.UserStatusPending || !user.EmailVerified {
		return nil, errors.New("email not verified. please check your inbox for the otp code")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	if user.Status == entity.UserStatusSuspended {
		return nil, errors.New("user account is suspended")
	}

	signedToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	var rawRefreshToken string

	// A refresh token only exists when the client asks to stay signed in.
	if req.RememberMe {
		rawRefreshToken = uuid.New().String()
		if err := uow.UserRepository().CreateRefreshToken(ctx, newRefreshToken(user.Id, rawRefreshToken, ipAddress, userAgent)); err != nil {
			return nil, fmt.Errorf("failed to create session: %v", err)
		}
	}

	if s.eventPublisher != nil {
		event := events.New("USER_LOGIN", map[string]interface{}{
			"user_id": user.Id,
			"device":  userAgent,
			"time":    time.Now().Format(time.RFC822),
		})
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to publish USER_LOGIN event: %v\n", err)
		}
	}

	return loginResponse(user, signedToken, rawRefreshToken), nil
}

// Refresh rotates a refresh token: the presented token is revoked and a
// fresh access + refresh pair is issued. A revoked or expired token
// fails closed.
func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest, ipAddress, userAgent string) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenHash := hashRefreshToken(req.RefreshToken)
	stored, err := uow.UserRepository().FindRefreshToken(ctx, specification.ByTokenHash{Hash: tokenHash})
	if err != nil || stored == nil {
		return nil, errors.New("invalid refresh token")
	}
	if stored.Revoked {
		return nil, errors.New("refresh token revoked")
	}
	if time.Now().After(stored.ExpiresAt) {
		return nil, errors.New("refresh token expired")
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: stored.UserId})
	if err != nil || user == nil {
		return nil, errors.New("invalid refresh token")
	}
	if user.Status == entity.UserStatusSuspended {
		return nil, errors.New("user account is suspended")
	}

	signedToken, err := s.signAccessToken(user)
	if err != nil {
		return nil, err
	}

	rawRefreshToken := uuid.New().String()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().RevokeRefreshToken(ctx, tokenHash); err != nil {
		return nil, err
	}
	if err := uow.UserRepository().CreateRefreshToken(ctx, newRefreshToken(user.Id, rawRefreshToken, ipAddress, userAgent)); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return loginResponse(user, signedToken, rawRefreshToken), nil
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserRepository().RevokeRefreshToken(ctx, hashRefreshToken(refreshToken))
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	avatarURL := ""
	if user.AvatarURL != nil {
		avatarURL = *user.AvatarURL
	}

	return &dto.UserProfileResponse{
		Id:        user.Id,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      string(user.Role),
		Status:    string(user.Status),
		AvatarURL: avatarURL,
		CreatedAt: user.CreatedAt,
	}, nil
}

// ForgotPassword issues a reset link. The response is identical whether
// or not the address belongs to an account.
func (s *authService) ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil || user == nil {
		return nil
	}

	token := uuid.New().String()
	resetToken := &entity.PasswordResetToken{
		Id:        uuid.New(),
		UserId:    user.Id,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
		CreatedAt: time.Now(),
		Used:      false,
	}

	if err := uow.UserRepository().CreatePasswordResetToken(ctx, resetToken); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendResetToken(user.Email, token); err != nil {
			fmt.Printf("Error sending reset password email: %v\n", err)
		}
	}()

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	tokenEntity, err := uow.UserRepository().FindPasswordResetToken(ctx, specification.ByToken{Token: req.Token})
	if err != nil || tokenEntity == nil {
		return errors.New("invalid or expired token")
	}

	if tokenEntity.Used {
		return errors.New("this password reset link has already been used")
	}

	if time.Now().After(tokenEntity.ExpiresAt) {
		return errors.New("this password reset link has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().UpdatePassword(ctx, tokenEntity.UserId, string(hash)); err != nil {
		return err
	}
	if err := uow.UserRepository().MarkTokenUsed(ctx, tokenEntity.Id); err != nil {
		return err
	}

	return uow.Commit()
}
