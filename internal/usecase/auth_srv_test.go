package usecase

import (
	"context"
	"testing"
	"time"

	"billing-habit/internal/dto/request"
	"billing-habit/pkg/auth"
	"billing-habit/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig() *utils.Config {
	return &utils.Config{
		OTP:     utils.OTPConfig{ExpiryMinutes: 5, Length: 6},
		Billing: utils.BillingConfig{DefaultCredit: 100},
		Sweep:   utils.SweepConfig{UnverifiedTTLHour: 24},
	}
}

type authFixture struct {
	store     *memStore
	sender    *recordingSender
	blacklist *auth.InMemoryTokenBlacklist
	svc       AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	store := newMemStore()
	sender := &recordingSender{}
	blacklist := auth.NewInMemoryTokenBlacklist()
	tokens := auth.NewTokenManager("test-secret", time.Hour, "billing-habit")
	svc := NewAuthService(store.repository().Account, tokens, blacklist, sender, testConfig(), zaptest.NewLogger(t))
	return &authFixture{store: store, sender: sender, blacklist: blacklist, svc: svc}
}

func TestAuthService_SendOTP_CreatesAccount(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.SendOTP(context.Background(), &request.SendOTPRequest{Number: "9876543210"})
	require.NoError(t, err)

	code := f.sender.last("9876543210")
	assert.Len(t, code, 6)

	account, err := f.store.repository().Account.FindByNumber(context.Background(), "9876543210")
	require.NoError(t, err)
	require.NotNil(t, account)
	assert.Equal(t, 100, account.Credit)
	assert.False(t, account.IsVerified)
	require.NotNil(t, account.OTP)
	assert.Equal(t, code, *account.OTP)
}

func TestAuthService_SendOTP_InvalidNumber(t *testing.T) {
	f := newAuthFixture(t)

	for _, number := range []string{"", "12345", "98765432ab", "98765432101"} {
		err := f.svc.SendOTP(context.Background(), &request.SendOTPRequest{Number: number})
		assert.ErrorIs(t, err, utils.ErrValidation, number)
	}
}

func TestAuthService_VerifyOTP(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.SendOTP(ctx, &request.SendOTPRequest{Number: "9876543210"}))
	code := f.sender.last("9876543210")

	wrong := "000000"
	if code == wrong {
		wrong = "111111"
	}
	_, err := f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Number: "9876543210", OTP: wrong})
	require.ErrorIs(t, err, utils.ErrUnauthenticated)

	// a mismatch must not burn the pending code
	account, _ := f.store.repository().Account.FindByNumber(ctx, "9876543210")
	require.NotNil(t, account.OTP)
	assert.Equal(t, code, *account.OTP)

	resp, err := f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Number: "9876543210", OTP: code})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.True(t, resp.IsNewUser)
	assert.True(t, resp.User.IsVerified)
	assert.WithinDuration(t, time.Now().Add(time.Hour), resp.ExpiresAt, time.Minute)

	_, err = f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Number: "9876543210", OTP: code})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated, "code is single use")
}

func TestAuthService_VerifyOTP_UnknownNumber(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.VerifyOTP(context.Background(), &request.VerifyOTPRequest{Number: "9000000000", OTP: "123456"})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestAuthService_VerifyOTP_Expired(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Minute)
	_, err := f.store.repository().Account.UpsertOTP(ctx, "9876543210", "424242", past, 100)
	require.NoError(t, err)

	_, err = f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Number: "9876543210", OTP: "424242"})
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)
}

func TestAuthService_AuthenticateAndLogout(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.SendOTP(ctx, &request.SendOTPRequest{Number: "9876543210"}))
	resp, err := f.svc.VerifyOTP(ctx, &request.VerifyOTPRequest{Number: "9876543210", OTP: f.sender.last("9876543210")})
	require.NoError(t, err)

	claims, err := f.svc.Authenticate(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.AccountID)

	require.NoError(t, f.svc.Logout(ctx, resp.Token))

	_, err = f.svc.Authenticate(ctx, resp.Token)
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	_, err = f.svc.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, utils.ErrUnauthenticated)

	assert.NoError(t, f.svc.Logout(ctx, "garbage"))
}
