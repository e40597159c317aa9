package email_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/foodorder/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "Verify your account",
		BodyHTML: "<p>123456</p>",
	}

	tests := []struct {
		name    string
		mutate  func(p *email.SendEmailParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(*email.SendEmailParams) {}},
		{name: "text only body", mutate: func(p *email.SendEmailParams) { p.BodyHTML = ""; p.BodyText = "123456" }},
		{name: "missing recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = " " }, wantErr: true},
		{name: "invalid recipient", mutate: func(p *email.SendEmailParams) { p.SendTo = "not-an-email" }, wantErr: true},
		{name: "missing subject", mutate: func(p *email.SendEmailParams) { p.Subject = "" }, wantErr: true},
		{name: "missing body", mutate: func(p *email.SendEmailParams) { p.BodyHTML = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, email.ErrInvalidParams)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestReceipt_AcceptedFor(t *testing.T) {
	t.Parallel()

	r := email.Receipt{Accepted: []string{"Alice@Example.com", " bob@example.com"}}

	assert.True(t, r.AcceptedFor("alice@example.com"))
	assert.True(t, r.AcceptedFor("bob@example.com"))
	assert.False(t, r.AcceptedFor("carol@example.com"))
	assert.False(t, email.Receipt{}.AcceptedFor("alice@example.com"))
}
