package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/jwt"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/password"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) RegisterAccountWithPayment(ctx context.Context, account models.Account, payment models.Payment) (string, error) {
	args := m.Called(ctx, account, payment)
	return args.String(0), args.Error(1)
}

func (m *mockAccountRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if acc, ok := args.Get(0).(*models.Account); ok {
		return acc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAccountRepository) CancelSubscription(ctx context.Context, accountUID string) error {
	args := m.Called(ctx, accountUID)
	return args.Error(0)
}

func testPayFastConfig() config.PayFast {
	return config.PayFast{
		Passphrase:         "jt7NOE43FZPn",
		ReturnURL:          "https://kaulela.example/return",
		CancelURL:          "https://kaulela.example/cancel",
		NotifyURL:          "https://kaulela.example/api/payfast/notify",
		Sandbox:            true,
		SubscriptionAmount: "450.00",
		ItemName:           "Kaulela System Monthly Subscription",
	}
}

func TestRegister_CreatesPendingAccountAndCheckout(t *testing.T) {
	repo := new(mockAccountRepository)
	repo.On("RegisterAccountWithPayment", mock.Anything,
		mock.MatchedBy(func(a models.Account) bool {
			return a.SubscriptionStatus == models.SubscriptionPending &&
				a.Email == "firm@example.com" &&
				a.PasswordHash != "" && a.PasswordHash != "s3cret"
		}),
		mock.MatchedBy(func(p models.Payment) bool {
			return p.Status == models.PaymentCreated &&
				p.AmountCents == 45000 &&
				p.MPaymentID != ""
		}),
	).Return("uid-1", nil)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	result, err := svc.Register(context.Background(), "Dlamini Attorneys", "firm@example.com", "+27820000000", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", result.AccountUID)
	assert.NotEmpty(t, result.PaymentID)

	payload := result.Checkout.Map()
	assert.Equal(t, result.PaymentID, payload["m_payment_id"])
	assert.Equal(t, "450.00", payload["amount"])
	assert.Equal(t, "1", payload["subscription_type"])
	assert.NotEmpty(t, payload["signature"])
	assert.Contains(t, result.Checkout.ProcessURL, "sandbox")

	repo.AssertExpectations(t)
}

func TestRegister_RepositoryError(t *testing.T) {
	repo := new(mockAccountRepository)
	repo.On("RegisterAccountWithPayment", mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	_, err := svc.Register(context.Background(), "Firm", "firm@example.com", "", "s3cret")
	require.ErrorIs(t, err, assert.AnError)
}

func TestLogin_Success(t *testing.T) {
	hashed, err := password.GetHash("s3cret")
	require.NoError(t, err)

	repo := new(mockAccountRepository)
	repo.On("GetAccountByEmail", mock.Anything, "firm@example.com").Return(&models.Account{
		UID:          "uid-1",
		Email:        "firm@example.com",
		PasswordHash: hashed,
		Role:         "firm",
	}, nil)

	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	svc := New(repo, maker, testPayFastConfig())

	token, role, err := svc.Login(context.Background(), "firm@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "firm", role)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.AccountUID)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := password.GetHash("s3cret")
	require.NoError(t, err)

	repo := new(mockAccountRepository)
	repo.On("GetAccountByEmail", mock.Anything, "firm@example.com").Return(&models.Account{
		UID:          "uid-1",
		PasswordHash: hashed,
	}, nil)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	_, _, err = svc.Login(context.Background(), "firm@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	repo := new(mockAccountRepository)
	repo.On("GetAccountByEmail", mock.Anything, "nobody@example.com").
		Return(nil, repository.ErrNotFound)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_StorageFailureIsNotInvalidCredentials(t *testing.T) {
	// An unreachable database must surface as a server error, not a 401.
	repo := new(mockAccountRepository)
	repo.On("GetAccountByEmail", mock.Anything, "firm@example.com").
		Return(nil, assert.AnError)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	_, _, err := svc.Login(context.Background(), "firm@example.com", "s3cret")
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestCancel(t *testing.T) {
	repo := new(mockAccountRepository)
	repo.On("CancelSubscription", mock.Anything, "uid-1").Return(nil)

	svc := New(repo, jwt.NewJWTMaker("test-secret", time.Hour), testPayFastConfig())

	require.NoError(t, svc.Cancel(context.Background(), "uid-1"))
	repo.AssertExpectations(t)
}
