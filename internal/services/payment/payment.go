// Package payment contains checkout initiation and the gateway notification
// pipeline that moves subscriptions from pending to active.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Tebogokaulela455/kaulela-backend/internal/config"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
	"github.com/Tebogokaulela455/kaulela-backend/internal/payfast"
	"github.com/Tebogokaulela455/kaulela-backend/internal/storage/repository"
)

// Outcome classifies how a gateway notification was handled. Every rejected
// notification still gets a 200 from the webhook; the outcome feeds logs and
// metrics only. Storage failures are the one exception and surface as errors.
type Outcome string

const (
	OutcomeActivated        Outcome = "activated"
	OutcomeCancelled        Outcome = "cancelled"
	OutcomeIgnoredStatus    Outcome = "ignored_status"
	OutcomeMalformed        Outcome = "malformed"
	OutcomeBadSignature     Outcome = "bad_signature"
	OutcomeNotValidated     Outcome = "not_validated"
	OutcomeUnknownReference Outcome = "unknown_reference"
	OutcomeAmountMismatch   Outcome = "amount_mismatch"
)

// Repository describes the storage operations of the notification pipeline.
// The only account-state write is ActivateSubscription: the pipeline never
// cancels an account.
type Repository interface {
	FindPaymentByReference(ctx context.Context, mPaymentID string) (*models.Payment, error)
	CreatePayment(ctx context.Context, payment models.Payment) error
	CompletePayment(ctx context.Context, mPaymentID, pfPaymentID string) error
	FailPayment(ctx context.Context, mPaymentID string) error
	ActivateSubscription(ctx context.Context, accountUID string) error
	GetAccount(ctx context.Context, accountUID string) (*models.Account, error)
}

// Validator confirms a notification with the gateway server-to-server.
type Validator interface {
	ValidateNotification(ctx context.Context, n *payfast.Notification) error
}

// EventPublisher pushes domain events onto the message queue.
type EventPublisher interface {
	PublishSMS(event models.SMSEvent) error
}

// Service runs the notification pipeline.
type Service struct {
	log        *slog.Logger
	repo       Repository
	validator  Validator
	publisher  EventPublisher
	payfastCfg config.PayFast
}

// New creates the payment service. validator may be nil when server-to-server
// validation is disabled; publisher may be nil when the queue is not wired.
func New(log *slog.Logger, repo Repository, validator Validator, publisher EventPublisher, payfastCfg config.PayFast) *Service {
	return &Service{
		log:        log,
		repo:       repo,
		validator:  validator,
		publisher:  publisher,
		payfastCfg: payfastCfg,
	}
}

// InitiateCheckout opens a fresh payment attempt for an existing account and
// returns the signed checkout. Used when the first attempt was abandoned.
func (s *Service) InitiateCheckout(ctx context.Context, accountUID string) (*payfast.Checkout, string, error) {
	const op = "services.payment.InitiateCheckout"

	account, err := s.repo.GetAccount(ctx, accountUID)
	if err != nil {
		return nil, "", err
	}

	amountCents, err := payfast.ParseAmount(s.payfastCfg.SubscriptionAmount)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	payment := models.Payment{
		MPaymentID:  uuid.NewString(),
		AccountUID:  account.UID,
		AmountCents: amountCents,
		ItemName:    s.payfastCfg.ItemName,
		Status:      models.PaymentCreated,
	}
	if err := s.repo.CreatePayment(ctx, payment); err != nil {
		return nil, "", err
	}

	checkout, err := payfast.BuildCheckout(payfast.CheckoutParams{
		MerchantID:   s.payfastCfg.MerchantID,
		MerchantKey:  s.payfastCfg.MerchantKey,
		Passphrase:   s.payfastCfg.Passphrase,
		ReturnURL:    s.payfastCfg.ReturnURL,
		CancelURL:    s.payfastCfg.CancelURL,
		NotifyURL:    s.payfastCfg.NotifyURL,
		NameFirst:    account.FirmName,
		EmailAddress: account.Email,
		PaymentID:    payment.MPaymentID,
		Amount:       payfast.FormatAmount(amountCents),
		ItemName:     s.payfastCfg.ItemName,
		Recurring:    true,
		Frequency:    payfast.FrequencyMonthly,
		Sandbox:      s.payfastCfg.Sandbox,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return checkout, payment.MPaymentID, nil
}

// ProcessNotification runs the full verification pipeline over a raw ITN body:
// parse, signature check, optional server-to-server validation, reference
// lookup, amount cross-check, then the status transition. A non-nil error
// means storage failed and the gateway should retry; every other result is
// final and reported through the outcome.
func (s *Service) ProcessNotification(ctx context.Context, body []byte) (Outcome, error) {
	const op = "services.payment.ProcessNotification"
	log := s.log.With(slog.String("op", op))

	n, err := payfast.ParseNotification(body)
	if err != nil {
		log.Warn("malformed notification", sl.Err(err))
		return OutcomeMalformed, nil
	}
	log = log.With(
		slog.String("m_payment_id", n.PaymentID()),
		slog.String("payment_status", n.PaymentStatus()),
	)

	if !n.VerifySignature(s.payfastCfg.Passphrase) {
		log.Warn("notification signature mismatch")
		return OutcomeBadSignature, nil
	}

	if s.validator != nil {
		if err := s.validator.ValidateNotification(ctx, n); err != nil {
			log.Warn("gateway validation failed", sl.Err(err))
			return OutcomeNotValidated, nil
		}
	}

	paymentAttempt, err := s.repo.FindPaymentByReference(ctx, n.PaymentID())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn("notification references unknown payment")
			return OutcomeUnknownReference, nil
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if gross := n.AmountGross(); gross != "" {
		cents, err := payfast.ParseAmount(gross)
		if err != nil || cents != paymentAttempt.AmountCents {
			log.Warn("notification amount mismatch",
				slog.String("amount_gross", gross),
				slog.Int64("expected_cents", paymentAttempt.AmountCents))
			return OutcomeAmountMismatch, nil
		}
	} else if n.PaymentStatus() == payfast.StatusComplete {
		// A COMPLETE notification must carry the amount; without it the
		// cross-check cannot run, so the activation is refused.
		log.Warn("complete notification without amount_gross",
			slog.Int64("expected_cents", paymentAttempt.AmountCents))
		return OutcomeAmountMismatch, nil
	}

	switch n.PaymentStatus() {
	case payfast.StatusComplete:
		return s.activate(ctx, log, n, paymentAttempt)
	case payfast.StatusCancelled:
		return s.cancel(ctx, log, paymentAttempt)
	default:
		log.Info("notification status ignored")
		return OutcomeIgnoredStatus, nil
	}
}

func (s *Service) activate(ctx context.Context, log *slog.Logger, n *payfast.Notification, paymentAttempt *models.Payment) (Outcome, error) {
	const op = "services.payment.activate"

	if err := s.repo.CompletePayment(ctx, paymentAttempt.MPaymentID, n.PFPaymentID()); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.ActivateSubscription(ctx, paymentAttempt.AccountUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	log.Info("subscription activated", slog.String("account_uid", paymentAttempt.AccountUID))

	s.notify(ctx, log, paymentAttempt.AccountUID,
		"Your Kaulela subscription is now active. Welcome aboard.")
	return OutcomeActivated, nil
}

// cancel marks the payment attempt failed. The account row is never touched
// here: only a COMPLETE notification moves pending to active, and explicit
// cancellation stays on the authenticated endpoint. A stray CANCELLED
// notification for an old attempt must not affect a paying account.
func (s *Service) cancel(ctx context.Context, log *slog.Logger, paymentAttempt *models.Payment) (Outcome, error) {
	const op = "services.payment.cancel"

	if err := s.repo.FailPayment(ctx, paymentAttempt.MPaymentID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	log.Info("payment attempt cancelled by gateway", slog.String("account_uid", paymentAttempt.AccountUID))
	return OutcomeCancelled, nil
}

// notify publishes the activation SMS. Delivery is best effort: queue trouble
// must not fail a notification that already updated storage.
func (s *Service) notify(ctx context.Context, log *slog.Logger, accountUID, text string) {
	if s.publisher == nil {
		return
	}
	account, err := s.repo.GetAccount(ctx, accountUID)
	if err != nil || account.Phone == "" {
		return
	}
	event := models.SMSEvent{
		AccountUID: account.UID,
		Phone:      account.Phone,
		Body:       text,
	}
	if err := s.publisher.PublishSMS(event); err != nil {
		log.Error("failed to publish sms event", sl.Err(err))
	}
}
