package worker

import (
	"github.com/amity-app/amity-service/internal/service"
)

// StartMailerWorker registers mail dispatch handlers.
func StartMailerWorker(mailerService *service.MailerService) {
	if mailerService == nil {
		return
	}
	mailerService.RegisterHandlers()
}
