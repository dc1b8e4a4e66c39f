package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/internal/apierr"
)

// CleanupNotifications triggers the retention sweep outside its daily
// schedule.
func (s *Service) CleanupNotifications(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := s.Cleaner.Run(ctx)
	if err != nil {
		errMsg := "failed to clean up notifications"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.Internal(errMsg, err))
		return
	}

	respondJSON(c, &CleanupResponse{Deleted: deleted}, "Success")
}
