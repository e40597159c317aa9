package templates_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/email/templates"
)

func TestLayout(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Layout(
		"Verify <your> account",
		templates.Text("Hi Tom & Jerry"),
		templates.Code("123456"),
		templates.Button("Reset password", "https://app.example.com/reset?token=abc"),
		templates.Muted("Ignore this email if you did not ask for it."),
	))
	require.NoError(t, err)

	assert.Contains(t, html, "<title>Verify &lt;your&gt; account</title>")
	assert.Contains(t, html, "Hi Tom &amp; Jerry")
	assert.Contains(t, html, ">123456<")
	assert.Contains(t, html, `href="https://app.example.com/reset?token=abc"`)
	assert.Contains(t, html, "Ignore this email")
	assert.True(t, len(html) > 0 && html[len(html)-7:] == "</html>")
}

func TestButton_UnsafeURL(t *testing.T) {
	t.Parallel()

	html, err := templates.Render(context.Background(), templates.Button("Click", "javascript:alert(1)"))
	require.NoError(t, err)
	assert.NotContains(t, html, "javascript:")
}
