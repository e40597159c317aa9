package account

import (
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

type emailRequest struct {
	Email string `json:"email"`
}

type verifyCodeRequest struct {
	Email        string `json:"email"`
	ProvidedCode string `json:"providedCode"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type resetByCodeRequest struct {
	Email        string `json:"email"`
	ProvidedCode string `json:"providedCode"`
	NewPassword  string `json:"newPassword"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (m *Module) sendVerificationCode(ctx handler.Context, req emailRequest) handler.Response {
	if err := m.svc.SendVerificationCode(ctx, req.Email); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Verification code sent")
}

func (m *Module) verifyVerificationCode(ctx handler.Context, req verifyCodeRequest) handler.Response {
	if err := m.svc.VerifyVerificationCode(ctx, req.Email, req.ProvidedCode); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Your account has been verified")
}

func (m *Module) changePassword(ctx handler.Context, req changePasswordRequest) handler.Response {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	if err := m.svc.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Password updated successfully")
}

func (m *Module) forgotPassword(ctx handler.Context, req emailRequest) handler.Response {
	if err := m.svc.ForgotPassword(ctx, req.Email); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Password reset link sent to email")
}

func (m *Module) resetPassword(ctx handler.Context, req resetPasswordRequest) handler.Response {
	if err := m.svc.ResetPassword(ctx, req.Email, req.Token, req.NewPassword); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Password reset successfully")
}

func (m *Module) forgotPasswordByCode(ctx handler.Context, req emailRequest) handler.Response {
	if err := m.svc.ForgotPasswordByCode(ctx, req.Email); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Password reset code sent")
}

func (m *Module) verifyForgotPasswordCode(ctx handler.Context, req resetByCodeRequest) handler.Response {
	if err := m.svc.VerifyForgotPasswordCode(ctx, req.Email, req.ProvidedCode, req.NewPassword); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Password reset successfully")
}

func (m *Module) contact(ctx handler.Context, req contactRequest) handler.Response {
	err := m.svc.ContactMessage(ctx, auth.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Message sent successfully")
}
