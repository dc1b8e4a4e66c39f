package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/internal/apierr"
	"github.com/itwasdom/portfolio-service/internal/model"
)

func (s *Service) NotifyLike(c *gin.Context) {
	ctx := c.Request.Context()

	var req NotifyLikeRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode like notification request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	result, err := s.Notifier.Like(ctx, &model.NotifyArgs{
		ActorID:    c.GetString(ctxKeyUserID),
		ActorName:  req.UserName,
		ActorEmail: req.UserEmail,
		PhotoID:    req.PhotoID,
	})
	if err != nil {
		errMsg := "failed to send like notification"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &NotifyResponse{Success: result.Sent, Reason: result.Reason}, "Success")
}

func (s *Service) NotifyFollow(c *gin.Context) {
	ctx := c.Request.Context()

	var req NotifyFollowRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode follow notification request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	result, err := s.Notifier.Follow(ctx, &model.NotifyArgs{
		ActorID:    c.GetString(ctxKeyUserID),
		ActorName:  req.UserName,
		ActorEmail: req.UserEmail,
	})
	if err != nil {
		errMsg := "failed to send follow notification"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &NotifyResponse{Success: result.Sent, Reason: result.Reason}, "Success")
}
