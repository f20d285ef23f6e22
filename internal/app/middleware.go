package app

import (
	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/middleware"
)

type Middleware struct {
	RequestID *middleware.RequestIDMiddleware
}

func wireMiddleware(log *logger.Logger) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequestID: middleware.NewRequestIDMiddleware(log),
	}
}
