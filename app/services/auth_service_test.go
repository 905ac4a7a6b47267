package services

import (
	"context"
	"testing"
	"time"

	"github.com/Rakhulsr/go-cosmetics/app/apperr"
	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/models"
	"github.com/Rakhulsr/go-cosmetics/app/repositories"
	"github.com/Rakhulsr/go-cosmetics/app/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	svc    *AuthService
	store  *MemoryOTPStore
	mailer *fakeMailer
	users  repositories.UserRepository
	tokens *helpers.TokenManager
	now    time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &authFixture{
		store:  NewMemoryOTPStore(),
		mailer: &fakeMailer{},
		users:  repositories.NewUserRepository(db),
		tokens: helpers.NewTokenManager("test-secret"),
		now:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewAuthService(f.users, f.store, f.mailer, f.tokens)
	f.svc.now = func() time.Time { return f.now }
	f.svc.newOTP = func() (string, error) { return "424242", nil }
	return f
}

func assertKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	ae, ok := apperr.As(err)
	require.True(t, ok, "expected *apperr.Error, got %v", err)
	assert.Equal(t, kind, ae.Kind)
	assert.Equal(t, msg, ae.Message)
}

func TestSignupFlow(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestSignupOTP(ctx, "Priya@Example.com"))
	require.Equal(t, 1, f.mailer.count())
	assert.Contains(t, f.mailer.sent[0].Body, "424242")

	res, err := f.svc.VerifySignupOTP(ctx, VerifySignupInput{Email: "priya@example.com", OTP: "424242", Name: "Priya", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.True(t, res.User.IsVerified)

	claims, err := f.tokens.Validate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.ID)
	assert.Equal(t, "priya@example.com", claims.Email)

	entry, err := f.store.Get(ctx, "priya@example.com")
	require.NoError(t, err)
	assert.Nil(t, entry)

	err = f.svc.RequestSignupOTP(ctx, "priya@example.com")
	assertKind(t, err, apperr.KindConflict, "User already exists")
}

func TestRequestSignupOTPValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	assertKind(t, f.svc.RequestSignupOTP(ctx, ""), apperr.KindValidation, "Email is required")
	assertKind(t, f.svc.RequestSignupOTP(ctx, "not-an-email"), apperr.KindValidation, "Invalid email format")
}

func TestRequestSignupOTPMailFailureClearsCode(t *testing.T) {
	f := newAuthFixture(t)
	f.mailer.fail = true

	err := f.svc.RequestSignupOTP(context.Background(), "a@example.com")
	assertKind(t, err, apperr.KindInternal, "Failed to send verification code")
	assert.Equal(t, 0, f.store.Len())
}

func TestVerifySignupOTPThreeWrongAttempts(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestSignupOTP(ctx, "a@example.com"))

	in := VerifySignupInput{Email: "a@example.com", OTP: "000000", Name: "A", Password: "pw"}
	_, err := f.svc.VerifySignupOTP(ctx, in)
	assertKind(t, err, apperr.KindValidation, "Invalid verification code")
	_, err = f.svc.VerifySignupOTP(ctx, in)
	assertKind(t, err, apperr.KindValidation, "Invalid verification code")
	_, err = f.svc.VerifySignupOTP(ctx, in)
	assertKind(t, err, apperr.KindValidation, "Too many failed attempts. Please request a new code.")

	in.OTP = "424242"
	_, err = f.svc.VerifySignupOTP(ctx, in)
	assertKind(t, err, apperr.KindValidation, "Verification code expired or not requested")
}

func TestVerifySignupOTPExpires(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestSignupOTP(ctx, "a@example.com"))

	f.now = f.now.Add(10*time.Minute + time.Second)
	_, err := f.svc.VerifySignupOTP(ctx, VerifySignupInput{Email: "a@example.com", OTP: "424242", Name: "A", Password: "pw"})
	assertKind(t, err, apperr.KindValidation, "Verification code expired")
	assert.Equal(t, 0, f.store.Len())
}

func TestVerifySignupOTPRequiresAllFields(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.VerifySignupOTP(context.Background(), VerifySignupInput{Email: "a@example.com", OTP: "424242"})
	assertKind(t, err, apperr.KindValidation, "All fields are required")
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	hash, err := helpers.HashPassword("pw-123")
	require.NoError(t, err)
	verified := &models.User{Name: "V", Email: "v@example.com", Password: hash, IsVerified: true}
	require.NoError(t, f.users.Create(ctx, verified))
	pending := &models.User{Name: "P", Email: "p@example.com", Password: hash}
	require.NoError(t, f.users.Create(ctx, pending))
	admin := &models.User{Name: "Admin", Email: "admin@example.com", Password: hash, Role: models.RoleAdmin}
	require.NoError(t, f.users.Create(ctx, admin))

	res, err := f.svc.Login(ctx, "v@example.com", "pw-123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	_, err = f.svc.Login(ctx, "v@example.com", "wrong")
	assertKind(t, err, apperr.KindValidation, "Invalid credentials")
	_, err = f.svc.Login(ctx, "nobody@example.com", "pw-123")
	assertKind(t, err, apperr.KindValidation, "Invalid credentials")

	_, err = f.svc.Login(ctx, "p@example.com", "pw-123")
	assertKind(t, err, apperr.KindValidation, "Email not verified. A new verification code has been sent to your email.")
	ae, _ := apperr.As(err)
	assert.Equal(t, true, ae.Extra["needsVerification"])
	assert.Equal(t, 1, f.mailer.count())

	res, err = f.svc.Login(ctx, "admin@example.com", "pw-123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
}

func TestVerifyExistingAccountAndResend(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	assertKind(t, f.svc.ResendOTP(ctx, "ghost@example.com"), apperr.KindNotFound, "User not found")

	hash, err := helpers.HashPassword("pw")
	require.NoError(t, err)
	pending := &models.User{Name: "P", Email: "p@example.com", Password: hash}
	require.NoError(t, f.users.Create(ctx, pending))

	require.NoError(t, f.svc.ResendOTP(ctx, "p@example.com"))
	res, err := f.svc.VerifyExistingAccount(ctx, "p@example.com", "424242")
	require.NoError(t, err)
	assert.True(t, res.User.IsVerified)

	me, err := f.svc.Me(ctx, pending.ID)
	require.NoError(t, err)
	assert.True(t, me.IsVerified)
}
