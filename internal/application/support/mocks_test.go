package support

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByEmail(ctx context.Context, tenantID uuid.UUID, email string) (*customer.Customer, error) {
	args := m.Called(ctx, tenantID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) SaveWithLedger(ctx context.Context, c *customer.Customer, tx *customer.LoyaltyTransaction) error {
	args := m.Called(ctx, c, tx)
	return args.Error(0)
}

// MockNoteRepository is a mock implementation of customer.NoteRepository
type MockNoteRepository struct {
	mock.Mock
}

func (m *MockNoteRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.Note, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Note), args.Error(1)
}

func (m *MockNoteRepository) CountByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNoteRepository) Save(ctx context.Context, note *customer.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// MockTagRepository is a mock implementation of customer.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Tag, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*customer.Tag, error) {
	args := m.Called(ctx, tenantID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]customer.Tag, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Tag), args.Error(1)
}

func (m *MockTagRepository) Save(ctx context.Context, tag *customer.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockTagRepository) FindAssignments(ctx context.Context, tenantID, customerID uuid.UUID) ([]customer.TagAssignment, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.TagAssignment), args.Error(1)
}

func (m *MockTagRepository) AssignmentExists(ctx context.Context, tenantID, customerID, tagID uuid.UUID) (bool, error) {
	args := m.Called(ctx, tenantID, customerID, tagID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) SaveAssignment(ctx context.Context, assignment *customer.TagAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockTagRepository) DeleteAssignment(ctx context.Context, tenantID, customerID, tagID uuid.UUID) error {
	args := m.Called(ctx, tenantID, customerID, tagID)
	return args.Error(0)
}

// MockSegmentRepository is a mock implementation of customer.SegmentRepository
type MockSegmentRepository struct {
	mock.Mock
}

func (m *MockSegmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*customer.Segment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Segment), args.Error(1)
}

func (m *MockSegmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]customer.Segment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Segment), args.Error(1)
}

func (m *MockSegmentRepository) Save(ctx context.Context, segment *customer.Segment) error {
	args := m.Called(ctx, segment)
	return args.Error(0)
}

func (m *MockSegmentRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockSegmentRepository) FindMemberships(ctx context.Context, tenantID, customerID uuid.UUID) ([]customer.SegmentAssignment, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.SegmentAssignment), args.Error(1)
}

func (m *MockSegmentRepository) ReplaceMemberships(ctx context.Context, tenantID, customerID uuid.UUID, assignments []customer.SegmentAssignment) error {
	args := m.Called(ctx, tenantID, customerID, assignments)
	return args.Error(0)
}

// MockLedgerRepository is a mock implementation of customer.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.LoyaltyTransaction, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.LoyaltyTransaction), args.Error(1)
}

func (m *MockLedgerRepository) FindSince(ctx context.Context, tenantID, customerID uuid.UUID, since time.Time) ([]customer.LoyaltyTransaction, error) {
	args := m.Called(ctx, tenantID, customerID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.LoyaltyTransaction), args.Error(1)
}

// MockAuditRepository is a mock implementation of customer.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.AuditEntry, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.AuditEntry), args.Error(1)
}

func (m *MockAuditRepository) Save(ctx context.Context, entry *customer.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockTicketRepository is a mock implementation of customer.TicketRepository
type MockTicketRepository struct {
	mock.Mock
}

func (m *MockTicketRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.Ticket, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Ticket), args.Error(1)
}

func (m *MockTicketRepository) Save(ctx context.Context, ticket *customer.Ticket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, n Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

// MockTagCache is a mock implementation of TagCache
type MockTagCache struct {
	mock.Mock
}

func (m *MockTagCache) Get(ctx context.Context, tenantID, customerID uuid.UUID) ([]TagView, bool, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]TagView), args.Bool(1), args.Error(2)
}

func (m *MockTagCache) Set(ctx context.Context, tenantID, customerID uuid.UUID, tags []TagView) error {
	args := m.Called(ctx, tenantID, customerID, tags)
	return args.Error(0)
}

func (m *MockTagCache) Invalidate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	args := m.Called(ctx, tenantID, customerID)
	return args.Error(0)
}
