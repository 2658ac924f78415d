package email_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fahleh/alx-files-manager/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{
		SendTo:   "bob@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<p>Welcome to Files Manager</p>",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*email.SendEmailParams)
	}{
		{"missing recipient", func(p *email.SendEmailParams) { p.SendTo = "" }},
		{"malformed recipient", func(p *email.SendEmailParams) { p.SendTo = "not-an-email" }},
		{"missing subject", func(p *email.SendEmailParams) { p.Subject = "" }},
		{"missing body", func(p *email.SendEmailParams) { p.BodyHTML = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), email.ErrInvalidParams)
		})
	}
}

func TestDevSender_WritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "alice@example.com",
		Subject:  "Welcome!",
		BodyHTML: "<p>hi</p>",
		Tag:      "welcome",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var sawHTML, sawJSON bool
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			sawHTML = true
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			assert.Equal(t, "<p>hi</p>", string(data))
		case ".json":
			sawJSON = true
			data, err := os.ReadFile(filepath.Join(dir, e.Name()))
			require.NoError(t, err)
			assert.True(t, strings.Contains(string(data), "alice@example.com"))
		}
	}
	assert.True(t, sawHTML)
	assert.True(t, sawJSON)
}

func TestNewPostmarkSender_RequiresTokens(t *testing.T) {
	t.Parallel()

	_, err := email.NewPostmarkSender(email.Config{SenderEmail: "no-reply@example.com"})
	assert.ErrorIs(t, err, email.ErrInvalidConfig)
}

func TestNewFromConfig_FallsBackToDevSender(t *testing.T) {
	t.Parallel()

	sender, err := email.NewFromConfig(email.Config{DevOutputDir: t.TempDir()})
	require.NoError(t, err)
	_, ok := sender.(*email.DevSender)
	assert.True(t, ok)
}
