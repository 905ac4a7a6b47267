package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/logger"
	"github.com/Rakhulsr/go-cosmetics/app/metrics"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type VerifySignupInput struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AuthResult struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

type AuthService struct {
	userRepo repositories.UserRepository
	otps     OTPStore
	mailer   EmailSender
	tokens   *helpers.TokenManager
	now      func() time.Time
	newOTP   func() (string, error)
}

func NewAuthService(userRepo repositories.UserRepository, otps OTPStore, mailer EmailSender, tokens *helpers.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		otps:     otps,
		mailer:   mailer,
		tokens:   tokens,
		now:      time.Now,
		newOTP:   generateOTP,
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// issueOTP stores a fresh code for email and mails it. When delivery fails
// the stored code is removed again.
func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	code, err := s.newOTP()
	if err != nil {
		return apperr.Internal("Failed to send verification code", err)
	}
	if err := s.otps.Save(ctx, email, OTPEntry{OTP: code, Timestamp: s.now(), Attempts: 0}); err != nil {
		return apperr.Internal("Failed to send verification code", err)
	}
	metrics.OTPIssued.Inc()

	body := BuildOTPEmailBody(code, int(OTPTTL.Minutes()))
	if err := s.mailer.SendHTMLEmail(email, "Your verification code", body); err != nil {
		if delErr := s.otps.Delete(ctx, email); delErr != nil {
			logger.WithCtx(ctx).Warn("AuthService.issueOTP: failed to discard otp", "email", email, "error", delErr)
		}
		return apperr.Internal("Failed to send verification code", err)
	}
	return nil
}

func (s *AuthService) RequestSignupOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperr.Validation("Email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperr.Validation("Invalid email format")
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return apperr.Conflict("User already exists")
	}

	return s.issueOTP(ctx, email)
}

// checkOTP enforces the TTL and the attempt budget. Expired or exhausted
// entries are deleted so the caller must request a new code.
func (s *AuthService) checkOTP(ctx context.Context, email, otp string) error {
	entry, err := s.otps.Get(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to read otp: %w", err)
	}
	if entry == nil {
		return apperr.Validation("Verification code expired or not requested")
	}

	if s.now().Sub(entry.Timestamp) > OTPTTL {
		_ = s.otps.Delete(ctx, email)
		return apperr.Validation("Verification code expired")
	}

	if entry.OTP != strings.TrimSpace(otp) {
		attempts, err := s.otps.IncrementAttempts(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to record otp attempt: %w", err)
		}
		if attempts >= OTPMaxAttempts {
			_ = s.otps.Delete(ctx, email)
			return apperr.Validation("Too many failed attempts. Please request a new code.")
		}
		return apperr.Validation("Invalid verification code")
	}
	return nil
}

func (s *AuthService) VerifySignupOTP(ctx context.Context, in VerifySignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.OTP == "" || strings.TrimSpace(in.Name) == "" || in.Password == "" {
		return nil, apperr.Validation("All fields are required")
	}

	if err := s.checkOTP(ctx, email, in.OTP); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		_ = s.otps.Delete(ctx, email)
		return nil, apperr.Conflict("User already exists")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		Password:   hash,
		Role:       models.RoleCustomer,
		IsVerified: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	if err := s.otps.Delete(ctx, email); err != nil {
		logger.WithCtx(ctx).Warn("AuthService.VerifySignupOTP: failed to discard otp", "email", email, "error", err)
	}

	if err := s.mailer.SendHTMLEmail(email, "Welcome!", BuildWelcomeEmailBody(user.Name)); err != nil {
		logger.WithCtx(ctx).Warn("AuthService.VerifySignupOTP: welcome email not sent", "email", email, "error", err)
	}

	return &AuthResult{Token: token, User: user, Message: "Email verified and registration completed successfully"}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(password)) {
		return nil, apperr.Validation("Invalid credentials")
	}

	if !user.IsAdmin() && !user.IsVerified {
		if err := s.issueOTP(ctx, email); err != nil {
			return nil, err
		}
		return nil, apperr.Validation("Email not verified. A new verification code has been sent to your email.").
			With("needsVerification", true)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	email = normalizeEmail(email)
	if email == "" {
		return apperr.Validation("Email is required")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}
	return s.issueOTP(ctx, email)
}

// VerifyExistingAccount confirms a registered but unverified account with a
// code sent by Login or ResendOTP.
func (s *AuthService) VerifyExistingAccount(ctx context.Context, email, otp string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || otp == "" {
		return nil, apperr.Validation("Email and verification code are required")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	if err := s.checkOTP(ctx, email, otp); err != nil {
		return nil, err
	}

	user.IsVerified = true
	user.VerificationToken = nil
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}
	_ = s.otps.Delete(ctx, email)

	token, err := s.tokens.Generate(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user, Message: "Email verified successfully"}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}
