package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Built-in email templates keyed by EmailJob.Template.

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to SportGear, {{.Name}}!</h2>
    <p>Your account was created successfully. You can sign in with your
    email address right away.</p>
    <p>See you on the trails,<br/>The SportGear team</p>
  </body>
</html>
`))

var templatesByName = map[string]*template.Template{
	"welcome": welcomeHTML,
}

var subjectsByName = map[string]string{
	"welcome": "Welcome to SportGear",
}

// Render returns the subject, text fallback, and HTML body for a template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	tpl, ok := templatesByName[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	subject = subjectsByName[name]
	text = fmt.Sprintf("%v", data["Name"])
	if name == "welcome" {
		text = fmt.Sprintf("Welcome to SportGear, %v! Your account was created successfully.", data["Name"])
	}
	return subject, text, buf.String(), nil
}
