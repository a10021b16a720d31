// Package matter contains the legal-matter operations of a firm.
package matter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
	"github.com/Tebogokaulela455/kaulela-backend/internal/quickbooks"
)

// Repository describes the matter storage operations.
type Repository interface {
	CreateMatter(ctx context.Context, matter models.Matter) (int, error)
	SetMatterLedgerRef(ctx context.Context, matterID int, ledgerRef string) error
	ListMattersByAccount(ctx context.Context, accountUID string) ([]*models.Matter, error)
}

// Ledger opens accounting ledger accounts for matters.
type Ledger interface {
	CreateLedgerAccount(ctx context.Context, name string) (*quickbooks.LedgerAccount, error)
}

// AccountGetter resolves an account uid to the stored account.
type AccountGetter interface {
	GetAccount(ctx context.Context, accountUID string) (*models.Account, error)
}

// EventPublisher pushes domain events onto the message queue.
type EventPublisher interface {
	PublishSMS(event models.SMSEvent) error
}

// Service manages matters and their accounting ledger accounts.
type Service struct {
	log       *slog.Logger
	repo      Repository
	ledger    Ledger
	accounts  AccountGetter
	publisher EventPublisher
}

// New creates the matter service. ledger may be nil when accounting is not
// configured; matters are then created without a ledger reference. publisher
// may be nil when the queue is not wired.
func New(log *slog.Logger, repo Repository, ledger Ledger, accounts AccountGetter, publisher EventPublisher) *Service {
	return &Service{log: log, repo: repo, ledger: ledger, accounts: accounts, publisher: publisher}
}

// Create stores a matter and opens its income ledger account. A ledger
// failure does not roll the matter back; the reference stays empty and the
// failure is logged.
func (s *Service) Create(ctx context.Context, accountUID string, dummy models.DummyMatter) (*models.Matter, error) {
	const op = "services.matter.Create"

	matter := models.Matter{
		AccountUID:  accountUID,
		Title:       dummy.Title,
		ClientName:  dummy.ClientName,
		Description: dummy.Description,
	}
	id, err := s.repo.CreateMatter(ctx, matter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	matter.ID = id

	if s.ledger != nil {
		ledgerName := fmt.Sprintf("Matter %d - %s", id, dummy.Title)
		account, err := s.ledger.CreateLedgerAccount(ctx, ledgerName)
		if err != nil {
			s.log.Error("failed to open ledger account for matter",
				slog.Int("matter_id", id), sl.Err(err))
		} else if err := s.repo.SetMatterLedgerRef(ctx, id, account.ID); err != nil {
			s.log.Error("failed to store ledger ref",
				slog.Int("matter_id", id), sl.Err(err))
		} else {
			matter.LedgerRef = account.ID
		}
	}

	s.notify(ctx, accountUID, fmt.Sprintf("New matter opened: %s", dummy.Title))

	return &matter, nil
}

// notify publishes the matter-opened SMS. Best effort: queue trouble never
// fails a matter that is already stored.
func (s *Service) notify(ctx context.Context, accountUID, text string) {
	if s.publisher == nil || s.accounts == nil {
		return
	}
	account, err := s.accounts.GetAccount(ctx, accountUID)
	if err != nil || account.Phone == "" {
		return
	}
	event := models.SMSEvent{
		AccountUID: account.UID,
		Phone:      account.Phone,
		Body:       text,
	}
	if err := s.publisher.PublishSMS(event); err != nil {
		s.log.Error("failed to publish sms event", sl.Err(err))
	}
}

// List returns all matters of the account.
func (s *Service) List(ctx context.Context, accountUID string) ([]*models.Matter, error) {
	return s.repo.ListMattersByAccount(ctx, accountUID)
}
