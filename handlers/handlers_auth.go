package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/internal/apierr"
	"github.com/itwasdom/portfolio-service/internal/model"
)

var pinPattern = regexp.MustCompile(`^\d{6}$`)

func (s *Service) Health(c *gin.Context) {
	respondJSON(c, nil, "Success")
}

func (s *Service) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode register request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}
	err = validatePassword(req.Password)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}

	uid, err := s.AuthService.Register(ctx, model.RegisterArgs{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		errMsg := "failed to register user"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &RegisterResponse{Success: true, UID: uid}, "User created successfully.")
}

func (s *Service) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateProfileRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode update profile request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	if req.Password != "" {
		err = validatePassword(req.Password)
		if err != nil {
			apierr.Handle(c, apierr.InvalidArgument(err.Error()))
			return
		}
	}

	err = s.AuthService.UpdateProfile(ctx, model.UpdateProfileArgs{
		UserID:      c.GetString(ctxKeyUserID),
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		errMsg := "failed to update profile"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &SuccessResponse{Success: true}, "Profile updated successfully.")
}

func (s *Service) RequestPasswordResetPin(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetPinRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode password reset pin request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}

	err = s.AuthService.RequestPasswordResetPin(ctx, &model.ResetRequestArgs{
		Email: req.Email,
	})
	if err != nil {
		errMsg := "failed to send password reset pin"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &SuccessResponse{Success: true}, "Password reset PIN sent. Please check your inbox.")
}

func (s *Service) VerifyPasswordResetPin(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetVerifyRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode password reset verify request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}
	err = validatePin(req.Pin)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}
	err = validatePassword(req.NewPassword)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}

	err = s.AuthService.VerifyPasswordResetPin(ctx, &model.ResetVerifyArgs{
		Email:       req.Email,
		Pin:         req.Pin,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		errMsg := "failed to verify password reset pin"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &SuccessResponse{Success: true}, "Password has been successfully reset.")
}

func (s *Service) SendPasswordResetLink(c *gin.Context) {
	ctx := c.Request.Context()

	var req ResetLinkRequest
	err := c.BindJSON(&req)
	if err != nil {
		errMsg := "failed to decode password reset link request"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, apierr.InvalidArgument(errMsg))
		return
	}

	err = validateEmail(req.Email)
	if err != nil {
		apierr.Handle(c, apierr.InvalidArgument(err.Error()))
		return
	}

	err = s.AuthService.SendPasswordResetLink(ctx, &model.ResetRequestArgs{
		Email: req.Email,
	})
	if err != nil {
		errMsg := "failed to send password reset link"
		s.Logger.Error(errMsg, zap.Error(err))
		apierr.Handle(c, err)
		return
	}

	respondJSON(c, &SuccessResponse{Success: true}, "Password reset link sent. Please check your inbox.")
}

func validateEmail(email string) error {
	return validation.Validate(
		email,
		validation.Required.Error("email is required"),
		is.Email.Error("valid email is required"))
}

func validatePin(pin string) error {
	return validation.Validate(
		pin,
		validation.Required.Error("pin is required"),
		validation.Match(pinPattern).Error("pin must be 6 digits"))
}

func validatePassword(password string) error {
	return validation.Validate(
		password,
		validation.Required.Error("password is required"),
		validation.Length(6, 0).Error("password must be at least 6 characters"))
}
