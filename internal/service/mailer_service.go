package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/amity-app/amity-service/internal/config"
	"github.com/amity-app/amity-service/internal/events"
)

// MailerService handles out-of-band message dispatch for domain events.
// Dispatch is fire-and-forget: failures are logged here and never surface
// to the operation that triggered them.
type MailerService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.MailerConfig
}

// NewMailerService creates the service.
func NewMailerService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.MailerConfig) *MailerService {
	return &MailerService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (m *MailerService) RegisterHandlers() {
	if m.dispatcher == nil {
		return
	}
	m.dispatcher.Subscribe(events.EventMemberInvited, m.handleMemberInvited)
	m.dispatcher.Subscribe(events.EventSecurityCodeIssued, m.handleSecurityCodeIssued)
	m.dispatcher.Subscribe(events.EventMemberDeactivated, m.handleMemberDeactivated)
}

func (m *MailerService) handleMemberInvited(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MemberInvitedPayload)
	if !ok {
		return nil
	}
	m.sendMessage(ctx, payload.Email, "invitation", map[string]string{
		"first_name": payload.FirstName,
		"role":       payload.Role,
		"link":       m.cfg.InviteURL + payload.TokenValue,
	})
	return nil
}

func (m *MailerService) handleSecurityCodeIssued(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SecurityCodeIssuedPayload)
	if !ok {
		return nil
	}
	m.sendMessage(ctx, payload.Email, "security_code", map[string]string{
		"first_name":    payload.FirstName,
		"security_code": payload.SecurityCode,
	})
	return nil
}

func (m *MailerService) handleMemberDeactivated(ctx context.Context, event events.Event) error {
	m.logger.Info("member deactivated", zap.String("identity_id", event.IdentityID))
	return nil
}

// sendMessage delivers a templated message to a single destination. The SMTP
// integration is environment-specific; the stub logs the dispatch so the
// surrounding flow can be exercised end to end.
func (m *MailerService) sendMessage(_ context.Context, destination, template string, context map[string]string) {
	if strings.TrimSpace(m.cfg.EmailFrom) == "" {
		return
	}
	m.logger.Info("dispatching message",
		zap.String("from", m.cfg.EmailFrom),
		zap.String("to", destination),
		zap.String("template", template),
		zap.Int("context_keys", len(context)))
}
