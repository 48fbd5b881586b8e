package worker

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/config"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/service"
)

// StartNotificationWorker attaches ticket notifications to the event bus and
// reports which outbound channels are live. It returns nil when there is no
// bus to listen on.
func StartNotificationWorker(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *service.NotificationService {
	if dispatcher == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	notifications := service.NewNotificationService(dispatcher, logger, cfg)
	notifications.RegisterHandlers()

	logger.Info("ticket notifications enabled",
		zap.Bool("email", strings.TrimSpace(cfg.EmailFrom) != ""),
		zap.Bool("webhook", strings.TrimSpace(cfg.WebhookURL) != ""))
	return notifications
}
