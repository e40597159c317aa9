package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const (
	bodyStyle   = "margin:0;padding:0;background:#f6f6f6;font-family:Helvetica,Arial,sans-serif;color:#333"
	cardStyle   = "max-width:560px;margin:24px auto;background:#ffffff;border-radius:8px;padding:32px"
	textStyle   = "font-size:15px;line-height:22px;margin:0 0 16px"
	mutedStyle  = "font-size:13px;line-height:18px;color:#888;margin:16px 0 0"
	buttonStyle = "display:inline-block;background:#e8590c;color:#ffffff;text-decoration:none;padding:12px 24px;border-radius:6px;font-weight:bold"
	codeStyle   = "font-size:32px;letter-spacing:8px;font-weight:bold;text-align:center;margin:24px 0"
)

// Layout wraps children in the common email shell.
func Layout(title string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+
			templ.EscapeString(title)+`</title></head><body style="`+bodyStyle+`"><div style="`+cardStyle+`">`); err != nil {
			return err
		}
		if err := Heading(title).Render(ctx, w); err != nil {
			return err
		}
		for _, c := range children {
			if err := c.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

// Heading renders an h1.
func Heading(text string) templ.Component {
	return raw(`<h1 style="font-size:22px;margin:0 0 24px">` + templ.EscapeString(text) + `</h1>`)
}

// Text renders an escaped paragraph.
func Text(text string) templ.Component {
	return raw(`<p style="` + textStyle + `">` + templ.EscapeString(text) + `</p>`)
}

// Muted renders a small grey paragraph, used for footers and disclaimers.
func Muted(text string) templ.Component {
	return raw(`<p style="` + mutedStyle + `">` + templ.EscapeString(text) + `</p>`)
}

// Button renders a call-to-action link. Unsafe URLs are replaced by templ's
// sanitized placeholder.
func Button(label, href string) templ.Component {
	return raw(`<p style="text-align:center;margin:24px 0"><a href="` +
		templ.EscapeString(string(templ.URL(href))) + `" style="` + buttonStyle + `">` +
		templ.EscapeString(label) + `</a></p>`)
}

// Code renders a one-time code in large type.
func Code(code string) templ.Component {
	return raw(`<p style="` + codeStyle + `">` + templ.EscapeString(code) + `</p>`)
}

func raw(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html)
		return err
	})
}
