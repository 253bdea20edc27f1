package support

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
)

type quickActionFixture struct {
	customers *MockCustomerRepository
	tickets   *MockTicketRepository
	audits    *MockAuditRepository
	notes     *MockNoteRepository
	email     *MockEmailSender
	notifier  *MockNotifier
	svc       *QuickActionService
}

func newQuickActionFixture() *quickActionFixture {
	f := &quickActionFixture{
		customers: new(MockCustomerRepository),
		tickets:   new(MockTicketRepository),
		audits:    new(MockAuditRepository),
		notes:     new(MockNoteRepository),
		email:     new(MockEmailSender),
		notifier:  new(MockNotifier),
	}
	loyalty := NewLoyaltyService(f.customers, new(MockLedgerRepository), zap.NewNop())
	noteSvc := NewNoteService(f.notes, f.customers, zap.NewNop())
	f.svc = NewQuickActionService(f.customers, f.tickets, f.audits, loyalty, noteSvc, f.email, f.notifier, zap.NewNop())
	return f
}

func TestQuickActionExecute(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	actorID := uuid.New()

	t.Run("send_email renders template and audits", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)

		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		f.email.On("Send", ctx, "jane@example.com", "Hello", "Hi Jane Doe!").Return(nil)
		f.audits.On("Save", ctx, mock.AnythingOfType("*customer.AuditEntry")).Return(nil)
		f.notifier.On("Publish", ctx, mock.AnythingOfType("support.Notification")).Return(nil)

		result, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind:  ActionSendEmail,
			Email: &EmailPayload{Subject: "Hello", Body: "Hi {{full_name}}!"},
		})
		require.NoError(t, err)
		assert.Equal(t, ActionSendEmail, result.Kind)
		f.email.AssertExpectations(t)
		f.audits.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("create_ticket persists an open ticket", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)

		var saved *customer.Ticket
		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		f.tickets.On("Save", ctx, mock.AnythingOfType("*customer.Ticket")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*customer.Ticket) }).Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(nil)
		f.notifier.On("Publish", ctx, mock.Anything).Return(nil)

		_, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind:   ActionCreateTicket,
			Ticket: &TicketPayload{Subject: "Refund request", Priority: "HIGH"},
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "open", saved.Status)
		assert.Equal(t, "high", saved.Priority)
		assert.Equal(t, actorID, saved.CreatedBy)
	})

	t.Run("adjust_points goes through the loyalty transaction", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)
		c.ApplyPointsDelta(500)

		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		f.customers.On("SaveWithLedger", ctx, c, mock.Anything).Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(nil)
		f.notifier.On("Publish", ctx, mock.Anything).Return(nil)

		result, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind:   ActionAdjustPoints,
			Points: &PointsPayload{Delta: -200, Reason: "correction"},
		})
		require.NoError(t, err)
		detail := result.Detail.(*AdjustPointsResult)
		assert.Equal(t, int64(-200), detail.AppliedDelta)
		assert.Equal(t, int64(300), detail.Balance)
	})

	t.Run("add_note validates before writing", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)

		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)

		_, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind: ActionAddNote,
			Note: &NotePayload{Content: "   "},
		})
		assert.Error(t, err)
		f.notes.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.audits.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)
		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)

		_, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind: "delete_everything",
		})
		assert.Error(t, err)
	})

	t.Run("audit and notify failures never fail the action", func(t *testing.T) {
		f := newQuickActionFixture()
		c := newTestCustomer(t, tenantID)

		f.customers.On("FindByID", ctx, tenantID, c.ID).Return(c, nil)
		f.email.On("Send", ctx, c.Email, "S", "B").Return(nil)
		f.audits.On("Save", ctx, mock.Anything).Return(assert.AnError)
		f.notifier.On("Publish", ctx, mock.Anything).Return(assert.AnError)

		_, err := f.svc.Execute(ctx, QuickActionInput{
			TenantID: tenantID, CustomerID: c.ID, ActorID: actorID,
			Kind:  ActionSendEmail,
			Email: &EmailPayload{Subject: "S", Body: "B"},
		})
		assert.NoError(t, err)
	})
}
