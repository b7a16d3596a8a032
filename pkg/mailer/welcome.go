package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Welcome to {{.AppName}}, {{.Name}}!</h2>
    <p>Your account for <strong>{{.Email}}</strong> is ready.</p>
    <p>Log in and publish your first post whenever you like.</p>
  </body>
</html>`))

// RenderWelcome renders the registration welcome email from job data.
// Missing fields render as empty strings rather than failing the job.
func RenderWelcome(data map[string]any) (subject, html string, err error) {
	vars := struct {
		AppName, Name, Email string
	}{
		AppName: str(data, "app_name"),
		Name:    str(data, "name"),
		Email:   str(data, "email"),
	}
	if vars.AppName == "" {
		vars.AppName = "go-blog-api"
	}

	var buf bytes.Buffer
	if err := welcomeTmpl.Execute(&buf, vars); err != nil {
		return "", "", err
	}
	return fmt.Sprintf("Welcome to %s", vars.AppName), buf.String(), nil
}

func str(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return ""
}
