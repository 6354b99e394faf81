// Package notification fans out the side effects of successful money
// movement: in-app notification rows, emails, and beneficiary bookkeeping.
// Events are queued after the authoritative transaction commits and processed
// by a worker goroutine; a failure here is logged and swallowed, never
// surfaced to the operation that produced it.
package notification

import (
	"fmt"
	"sync"

	"paygo/internal/models"
	"paygo/internal/repositories"

	"github.com/sirupsen/logrus"
)

// Mailer is the outbound email surface the dispatcher needs.
type Mailer interface {
	SendWalletFunded(to string, amount float64) error
	SendTransferDebit(to, recipientName string, amount float64) error
	SendTransferCredit(to, senderName string, amount float64) error
	Send(to, subject, body string) error
}

// Dispatcher owns the fan-out queue. Dispatch never blocks the caller; when
// the buffer is full the event is dropped with a warning rather than slowing
// a money operation.
type Dispatcher struct {
	notifications repositories.NotificationRepository
	beneficiaries repositories.BeneficiaryRepository
	mailer        Mailer

	queue chan Event
	wg    sync.WaitGroup
	once  sync.Once
}

func NewDispatcher(
	notifications repositories.NotificationRepository,
	beneficiaries repositories.BeneficiaryRepository,
	mailer Mailer,
	buffer int,
) *Dispatcher {
	if buffer <= 0 {
		buffer = 256
	}
	d := &Dispatcher{
		notifications: notifications,
		beneficiaries: beneficiaries,
		mailer:        mailer,
		queue:         make(chan Event, buffer),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues an event without blocking.
func (d *Dispatcher) Dispatch(e Event) {
	select {
	case d.queue <- e:
	default:
		logrus.WithField("event", fmt.Sprintf("%T", e)).Warn("notification queue full, dropping event")
	}
}

// Close stops accepting events and drains the queue.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for event := range d.queue {
		d.handle(event)
	}
}

func (d *Dispatcher) handle(e Event) {
	switch ev := e.(type) {
	case WalletFunded:
		d.handleWalletFunded(ev)
	case TransferCompleted:
		d.handleTransferCompleted(ev)
	case SecurityAlert:
		d.handleSecurityAlert(ev)
	default:
		logrus.WithField("event", fmt.Sprintf("%T", e)).Warn("unknown notification event")
	}
}

func (d *Dispatcher) handleWalletFunded(ev WalletFunded) {
	txID := ev.TransactionID
	d.createRecord(&models.Notification{
		UserID:        ev.User.ID,
		Type:          models.NotificationTypeWalletFunded,
		Title:         "Wallet Funded",
		Message:       fmt.Sprintf("Your wallet has been funded with ₦%.2f.", ev.Amount),
		Amount:        ev.Amount,
		TransactionID: &txID,
	})

	if err := d.mailer.SendWalletFunded(ev.User.Email, ev.Amount); err != nil {
		logrus.WithError(err).WithField("user_id", ev.User.ID).Warn("funding email failed")
	}
}

func (d *Dispatcher) handleTransferCompleted(ev TransferCompleted) {
	if err := d.beneficiaries.UpsertFromTransfer(ev.Sender.ID, ev.Recipient); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"owner_id":     ev.Sender.ID,
			"recipient_id": ev.Recipient.ID,
		}).Warn("beneficiary upsert failed")
	}

	debitID, creditID := ev.DebitTxID, ev.CreditTxID
	d.createRecord(&models.Notification{
		UserID:        ev.Sender.ID,
		Type:          models.NotificationTypeDebit,
		Title:         "Transfer Sent",
		Message:       fmt.Sprintf("You sent ₦%.2f to %s.", ev.Amount, ev.Recipient.FullName()),
		Amount:        ev.Amount,
		TransactionID: &debitID,
	})
	d.createRecord(&models.Notification{
		UserID:        ev.Recipient.ID,
		Type:          models.NotificationTypeCredit,
		Title:         "Money Received",
		Message:       fmt.Sprintf("You received ₦%.2f from %s.", ev.Amount, ev.Sender.FullName()),
		Amount:        ev.Amount,
		TransactionID: &creditID,
	})

	if err := d.mailer.SendTransferDebit(ev.Sender.Email, ev.Recipient.FullName(), ev.Amount); err != nil {
		logrus.WithError(err).WithField("user_id", ev.Sender.ID).Warn("transfer email failed")
	}
	if err := d.mailer.SendTransferCredit(ev.Recipient.Email, ev.Sender.FullName(), ev.Amount); err != nil {
		logrus.WithError(err).WithField("user_id", ev.Recipient.ID).Warn("transfer email failed")
	}
}

func (d *Dispatcher) handleSecurityAlert(ev SecurityAlert) {
	d.createRecord(&models.Notification{
		UserID:  ev.User.ID,
		Type:    models.NotificationTypeSecurity,
		Title:   ev.Title,
		Message: ev.Message,
	})
	if err := d.mailer.Send(ev.User.Email, ev.Title, ev.Message); err != nil {
		logrus.WithError(err).WithField("user_id", ev.User.ID).Warn("security email failed")
	}
}

func (d *Dispatcher) createRecord(n *models.Notification) {
	if err := d.notifications.Create(n); err != nil {
		logrus.WithError(err).WithField("user_id", n.UserID).Warn("notification record failed")
	}
}
