// Package auth contains registration, login and subscription cancellation.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/jwt"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/password"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
	"github.com/Tebogokaulela455/kaulela-backend/internal/payfast"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

// ErrInvalidCredentials is returned on a failed login attempt. The same error
// covers unknown email and wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AccountRepository describes the account operations the service needs.
type AccountRepository interface {
	// RegisterAccountWithPayment inserts the account and its first payment
	// attempt in one transaction and returns the account uid.
	RegisterAccountWithPayment(ctx context.Context, account models.Account, payment models.Payment) (string, error)

	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CancelSubscription(ctx context.Context, accountUID string) error
}

// Service handles accounts and their JWT sessions.
type Service struct {
	accounts   AccountRepository
	jwtMaker   jwt.Maker
	payfastCfg config.PayFast
}

// New creates the auth service.
func New(accounts AccountRepository, jwtMaker jwt.Maker, payfastCfg config.PayFast) *Service {
	return &Service{
		accounts:   accounts,
		jwtMaker:   jwtMaker,
		payfastCfg: payfastCfg,
	}
}

// RegisterResult is the outcome of a successful registration: the new account,
// its payment reference and the signed checkout to hand to the frontend.
type RegisterResult struct {
	AccountUID string
	PaymentID  string
	Checkout   *payfast.Checkout
}

// Register creates a pending account with a hashed password, records the first
// payment attempt in the same transaction and assembles the signed checkout.
// The account stays pending until the gateway confirms the payment.
func (s *Service) Register(ctx context.Context, firmName, email, phone, rawPassword string) (*RegisterResult, error) {
	const op = "services.auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	amountCents, err := payfast.ParseAmount(s.payfastCfg.SubscriptionAmount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	account := models.Account{
		FirmName:           firmName,
		Email:              email,
		Phone:              phone,
		PasswordHash:       hashed,
		Role:               "firm",
		SubscriptionStatus: models.SubscriptionPending,
	}
	payment := models.Payment{
		MPaymentID:  uuid.NewString(),
		AmountCents: amountCents,
		ItemName:    s.payfastCfg.ItemName,
		Status:      models.PaymentCreated,
	}

	accountUID, err := s.accounts.RegisterAccountWithPayment(ctx, account, payment)
	if err != nil {
		return nil, err
	}

	checkout, err := payfast.BuildCheckout(payfast.CheckoutParams{
		MerchantID:   s.payfastCfg.MerchantID,
		MerchantKey:  s.payfastCfg.MerchantKey,
		Passphrase:   s.payfastCfg.Passphrase,
		ReturnURL:    s.payfastCfg.ReturnURL,
		CancelURL:    s.payfastCfg.CancelURL,
		NotifyURL:    s.payfastCfg.NotifyURL,
		NameFirst:    firmName,
		EmailAddress: email,
		PaymentID:    payment.MPaymentID,
		Amount:       payfast.FormatAmount(amountCents),
		ItemName:     s.payfastCfg.ItemName,
		Recurring:    true,
		Frequency:    payfast.FrequencyMonthly,
		Sandbox:      s.payfastCfg.Sandbox,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RegisterResult{
		AccountUID: accountUID,
		PaymentID:  payment.MPaymentID,
		Checkout:   checkout,
	}, nil
}

// Login checks the password and issues a JWT. An unknown email and a wrong
// password both come back as ErrInvalidCredentials; storage failures surface
// as wrapped errors so the handler can answer with a server error.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (token, role string, err error) {
	const op = "services.auth.Login"

	account, err := s.accounts.GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(account.UID, account.Email, account.Role)
	if err != nil {
		return "", "", err
	}
	return token, account.Role, nil
}

// ValidateToken parses the JWT and returns its claims.
func (s *Service) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

// Cancel marks the account's subscription cancelled. The account and its
// history stay in place.
func (s *Service) Cancel(ctx context.Context, accountUID string) error {
	return s.accounts.CancelSubscription(ctx, accountUID)
}
