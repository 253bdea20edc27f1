package support

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// NoteService creates and lists customer notes
type NoteService struct {
	notes     customer.NoteRepository
	customers customer.Repository
	logger    *zap.Logger
}

// NewNoteService creates a new note service
func NewNoteService(notes customer.NoteRepository, customers customer.Repository, logger *zap.Logger) *NoteService {
	return &NoteService{
		notes:     notes,
		customers: customers,
		logger:    logger,
	}
}

// Create validates and stores a note. Validation happens before any
// write so an invalid note leaves no trace.
func (s *NoteService) Create(ctx context.Context, input CreateNoteInput) (*NoteView, error) {
	note, err := customer.NewNote(input.TenantID, input.CustomerID, input.AuthorID, input.Content)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByID(ctx, input.TenantID, input.CustomerID); err != nil {
		return nil, err
	}

	if err := s.notes.Save(ctx, note); err != nil {
		s.logger.Error("Failed to save note", zap.Error(err))
		return nil, err
	}

	return &NoteView{
		ID:        note.ID,
		AuthorID:  note.AuthorID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}, nil
}

// List returns a page of notes, newest first
func (s *NoteService) List(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[NoteView], error) {
	filter.OrderBy = "created_at"
	filter.OrderDir = "desc"

	notes, err := s.notes.FindByCustomer(ctx, tenantID, customerID, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.notes.CountByCustomer(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	views := make([]NoteView, len(notes))
	for i, n := range notes {
		views[i] = NoteView{
			ID:        n.ID,
			AuthorID:  n.AuthorID,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		}
	}
	page := shared.NewPaginated(views, total, filter.Page, filter.PageSize)
	return &page, nil
}
