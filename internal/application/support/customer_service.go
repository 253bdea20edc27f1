package support

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/identity"
	"github.com/marketplace/backend/internal/domain/shared"
)

// CustomerService serves the console's customer list and timeline
type CustomerService struct {
	customers customer.Repository
	audits    customer.AuditRepository
	tickets   customer.TicketRepository
	logger    *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(customers customer.Repository, audits customer.AuditRepository, tickets customer.TicketRepository, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		audits:    audits,
		tickets:   tickets,
		logger:    logger,
	}
}

// List returns a page of customers. Viewers get masked contact fields.
func (s *CustomerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter, viewer *identity.AdminUser) (*shared.Paginated[CustomerView], error) {
	customers, err := s.customers.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customers.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}

	masked := viewer != nil && viewer.Role == identity.RoleViewer
	views := make([]CustomerView, len(customers))
	for i := range customers {
		views[i] = NewCustomerView(&customers[i])
		if masked {
			views[i].Email = maskEmail(views[i].Email)
			views[i].Phone = maskPhone(views[i].Phone)
		}
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Timeline returns a page of the customer's audit entries, newest first
func (s *CustomerService) Timeline(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.AuditEntry, error) {
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"
	return s.audits.FindByCustomer(ctx, tenantID, customerID, filter)
}

// Tickets returns a page of the customer's support tickets
func (s *CustomerService) Tickets(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]customer.Ticket, error) {
	return s.tickets.FindByCustomer(ctx, tenantID, customerID, filter)
}

// Block suspends a customer account
func (s *CustomerService) Block(ctx context.Context, tenantID, customerID uuid.UUID) error {
	c, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	c.Block()
	return s.customers.Save(ctx, c)
}

// Unblock reactivates a blocked customer account
func (s *CustomerService) Unblock(ctx context.Context, tenantID, customerID uuid.UUID) error {
	c, err := s.customers.FindByID(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	c.Unblock()
	return s.customers.Save(ctx, c)
}
