package support

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ActionKind discriminates quick action payloads
type ActionKind string

const (
	ActionSendEmail    ActionKind = "send_email"
	ActionCreateTicket ActionKind = "create_ticket"
	ActionAdjustPoints ActionKind = "adjust_points"
	ActionAddNote      ActionKind = "add_note"
)

// QuickActionInput is a discriminated quick action request. Only the
// payload matching Kind is read.
type QuickActionInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	ActorID    uuid.UUID
	Kind       ActionKind

	Email  *EmailPayload
	Ticket *TicketPayload
	Points *PointsPayload
	Note   *NotePayload
}

// EmailPayload is the payload for send_email
type EmailPayload struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TicketPayload is the payload for create_ticket
type TicketPayload struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Priority string `json:"priority"`
}

// PointsPayload is the payload for adjust_points
type PointsPayload struct {
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

// NotePayload is the payload for add_note
type NotePayload struct {
	Content string `json:"content"`
}

// QuickActionResult reports what the action produced
type QuickActionResult struct {
	Kind   ActionKind  `json:"kind"`
	Detail interface{} `json:"detail,omitempty"`
}

// QuickActionService dispatches console quick actions. Every executed
// action appends an audit entry and publishes an admin notification;
// both are best-effort and never fail the action.
type QuickActionService struct {
	customers customer.Repository
	tickets   customer.TicketRepository
	audits    customer.AuditRepository
	loyalty   *LoyaltyService
	notesSvc  *NoteService
	email     EmailSender
	notifier  Notifier
	logger    *zap.Logger
}

// NewQuickActionService creates a new quick action service
func NewQuickActionService(
	customers customer.Repository,
	tickets customer.TicketRepository,
	audits customer.AuditRepository,
	loyalty *LoyaltyService,
	notesSvc *NoteService,
	email EmailSender,
	notifier Notifier,
	logger *zap.Logger,
) *QuickActionService {
	return &QuickActionService{
		customers: customers,
		tickets:   tickets,
		audits:    audits,
		loyalty:   loyalty,
		notesSvc:  notesSvc,
		email:     email,
		notifier:  notifier,
		logger:    logger,
	}
}

// Execute validates and runs one quick action
func (s *QuickActionService) Execute(ctx context.Context, input QuickActionInput) (*QuickActionResult, error) {
	c, err := s.customers.FindByID(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	var (
		result *QuickActionResult
		action customer.AuditAction
		detail string
	)

	switch input.Kind {
	case ActionSendEmail:
		result, detail, err = s.sendEmail(ctx, c, input)
		action = customer.AuditEmailSent
	case ActionCreateTicket:
		result, detail, err = s.createTicket(ctx, input)
		action = customer.AuditTicketCreated
	case ActionAdjustPoints:
		result, detail, err = s.adjustPoints(ctx, input)
		action = customer.AuditPointsAdjusted
	case ActionAddNote:
		result, detail, err = s.addNote(ctx, input)
		action = customer.AuditNoteAdded
	default:
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown quick action kind: "+string(input.Kind))
	}
	if err != nil {
		return nil, err
	}

	s.recordSideEffects(ctx, input, action, detail)
	return result, nil
}

func (s *QuickActionService) sendEmail(ctx context.Context, c *customer.Customer, input QuickActionInput) (*QuickActionResult, string, error) {
	p := input.Email
	if p == nil || strings.TrimSpace(p.Subject) == "" {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Email subject is required")
	}
	if strings.TrimSpace(p.Body) == "" {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Email body is required")
	}

	body := renderTemplate(p.Body, c)
	if err := s.email.Send(ctx, c.Email, p.Subject, body); err != nil {
		s.logger.Error("Quick action email failed", zap.Error(err))
		return nil, "", shared.NewDomainError("EMAIL_FAILED", "Failed to send email")
	}
	return &QuickActionResult{Kind: ActionSendEmail}, "subject: " + p.Subject, nil
}

func (s *QuickActionService) createTicket(ctx context.Context, input QuickActionInput) (*QuickActionResult, string, error) {
	p := input.Ticket
	if p == nil || strings.TrimSpace(p.Subject) == "" {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Ticket subject is required")
	}
	priority := strings.ToLower(strings.TrimSpace(p.Priority))
	switch priority {
	case "":
		priority = "normal"
	case "low", "normal", "high":
	default:
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Ticket priority must be low, normal or high")
	}

	ticket := &customer.Ticket{
		ID:         uuid.New(),
		TenantID:   input.TenantID,
		CustomerID: input.CustomerID,
		CreatedBy:  input.ActorID,
		Subject:    strings.TrimSpace(p.Subject),
		Body:       p.Body,
		Priority:   priority,
		Status:     "open",
	}
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return nil, "", err
	}
	return &QuickActionResult{Kind: ActionCreateTicket, Detail: ticket.ID}, "ticket: " + ticket.Subject, nil
}

func (s *QuickActionService) adjustPoints(ctx context.Context, input QuickActionInput) (*QuickActionResult, string, error) {
	p := input.Points
	if p == nil || p.Delta == 0 {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Point delta cannot be zero")
	}
	if strings.TrimSpace(p.Reason) == "" {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Adjustment reason is required")
	}

	result, err := s.loyalty.Adjust(ctx, AdjustPointsInput{
		TenantID:   input.TenantID,
		CustomerID: input.CustomerID,
		ActorID:    input.ActorID,
		Delta:      p.Delta,
		Reason:     p.Reason,
	})
	if err != nil {
		return nil, "", err
	}
	return &QuickActionResult{Kind: ActionAdjustPoints, Detail: result},
		fmt.Sprintf("delta: %d, balance: %d", result.AppliedDelta, result.Balance), nil
}

func (s *QuickActionService) addNote(ctx context.Context, input QuickActionInput) (*QuickActionResult, string, error) {
	p := input.Note
	if p == nil {
		return nil, "", shared.NewDomainError("INVALID_ACTION", "Note content is required")
	}
	note, err := s.notesSvc.Create(ctx, CreateNoteInput{
		TenantID:   input.TenantID,
		CustomerID: input.CustomerID,
		AuthorID:   input.ActorID,
		Content:    p.Content,
	})
	if err != nil {
		return nil, "", err
	}
	return &QuickActionResult{Kind: ActionAddNote, Detail: note.ID}, "", nil
}

// recordSideEffects appends the audit entry and publishes the admin
// notification. Failures are logged, never propagated.
func (s *QuickActionService) recordSideEffects(ctx context.Context, input QuickActionInput, action customer.AuditAction, detail string) {
	entry := customer.NewAuditEntry(input.TenantID, input.CustomerID, input.ActorID, action, detail)
	if err := s.audits.Save(ctx, entry); err != nil {
		s.logger.Warn("Failed to record quick action audit entry",
			zap.String("action", string(action)),
			zap.Error(err))
	}

	n := Notification{
		ID:         uuid.New(),
		TenantID:   input.TenantID,
		Kind:       string(action),
		CustomerID: input.CustomerID,
		ActorID:    input.ActorID,
		Message:    detail,
		CreatedAt:  entry.CreatedAt,
	}
	if err := s.notifier.Publish(ctx, n); err != nil {
		s.logger.Warn("Failed to publish quick action notification",
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// renderTemplate substitutes customer placeholders in an email body
func renderTemplate(body string, c *customer.Customer) string {
	r := strings.NewReplacer(
		"{{first_name}}", c.FirstName,
		"{{last_name}}", c.LastName,
		"{{full_name}}", c.FullName(),
		"{{email}}", c.Email,
		"{{loyalty_tier}}", string(c.LoyaltyTier),
	)
	return r.Replace(body)
}
