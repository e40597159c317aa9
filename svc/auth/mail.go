package auth

import (
	"context"
	"fmt"
	"net/url"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/pkg/email/templates"
)

// Message tags, used by the transport for delivery statistics.
const (
	tagVerification  = "verification-code"
	tagResetLink     = "password-reset-link"
	tagResetCode     = "password-reset-code"
	tagResetComplete = "password-reset-complete"
	tagContact       = "contact"
)

type message struct {
	to      string
	subject string
	tag     string
	text    string
	body    []templ.Component
}

func (s *Service) send(ctx context.Context, m message) (email.Receipt, error) {
	html, err := templates.Render(ctx, templates.Layout(m.subject, m.body...))
	if err != nil {
		return email.Receipt{}, fmt.Errorf("failed to render %s email: %w", m.tag, err)
	}
	return s.mailer.SendEmail(ctx, email.SendEmailParams{
		SendTo:   m.to,
		Subject:  m.subject,
		BodyHTML: html,
		BodyText: m.text,
		Tag:      m.tag,
	})
}

func (s *Service) verificationMessage(user *User, code string) message {
	return message{
		to:      user.Email,
		subject: "Verify your email",
		tag:     tagVerification,
		text: fmt.Sprintf("Hi %s,\n\nYour %s verification code is %s. It expires in %s.\n",
			user.Name, s.cfg.AppName, code, s.cfg.CodeTTL),
		body: []templ.Component{
			templates.Text("Hi " + user.Name + ","),
			templates.Text("Use this code to verify your " + s.cfg.AppName + " account:"),
			templates.Code(code),
			templates.Muted("The code expires in " + s.cfg.CodeTTL.String() + ". If you did not request it, ignore this email."),
		},
	}
}

func (s *Service) resetLinkMessage(user *User, token string) message {
	link := s.resetLink(user.Email, token)
	return message{
		to:      user.Email,
		subject: "Reset your password",
		tag:     tagResetLink,
		text: fmt.Sprintf("Hi %s,\n\nOpen this link to choose a new password: %s\nThe link expires in %s.\n",
			user.Name, link, s.cfg.ResetTokenTTL),
		body: []templ.Component{
			templates.Text("Hi " + user.Name + ","),
			templates.Text("We received a request to reset the password of your " + s.cfg.AppName + " account."),
			templates.Button("Reset password", link),
			templates.Muted("The link expires in " + s.cfg.ResetTokenTTL.String() + ". If you did not request it, ignore this email."),
		},
	}
}

func (s *Service) resetCodeMessage(user *User, code string) message {
	return message{
		to:      user.Email,
		subject: "Your password reset code",
		tag:     tagResetCode,
		text: fmt.Sprintf("Hi %s,\n\nYour password reset code is %s. It expires in %s.\n",
			user.Name, code, s.cfg.CodeTTL),
		body: []templ.Component{
			templates.Text("Hi " + user.Name + ","),
			templates.Text("Use this code to reset your " + s.cfg.AppName + " password:"),
			templates.Code(code),
			templates.Muted("The code expires in " + s.cfg.CodeTTL.String() + "."),
		},
	}
}

func (s *Service) resetCompleteMessage(user *User) message {
	return message{
		to:      user.Email,
		subject: "Your password was changed",
		tag:     tagResetComplete,
		text:    fmt.Sprintf("Hi %s,\n\nYour %s password was changed. If this was not you, contact %s.\n", user.Name, s.cfg.AppName, s.cfg.SupportEmail),
		body: []templ.Component{
			templates.Text("Hi " + user.Name + ","),
			templates.Text("Your " + s.cfg.AppName + " password was changed."),
			templates.Muted("If this was not you, contact " + s.cfg.SupportEmail + "."),
		},
	}
}

func (s *Service) contactMessage(in ContactInput) message {
	return message{
		to:      s.cfg.SupportEmail,
		subject: "[Contact] " + in.Subject,
		tag:     tagContact,
		text:    fmt.Sprintf("From: %s <%s>\n\n%s\n", in.Name, in.Email, in.Message),
		body: []templ.Component{
			templates.Text("From: " + in.Name + " <" + in.Email + ">"),
			templates.Text(in.Message),
		},
	}
}

func (s *Service) resetLink(addr, token string) string {
	q := url.Values{}
	q.Set("token", token)
	q.Set("email", addr)
	return s.cfg.ResetURL + "?" + q.Encode()
}
