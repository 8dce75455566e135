package usecase

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	welcomeText = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/welcome.txt.tmpl"))
	welcomeHTML = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/welcome.html.tmpl"))
)

type welcomeData struct {
	FirstName    string
	AppName      string
	SupportEmail string
	IsAuthor     bool
	Year         string
}

// renderWelcome returns the plain text and HTML bodies. User supplied values
// are escaped in the HTML body only.
func renderWelcome(data welcomeData) (text, html string, err error) {
	var tb, hb bytes.Buffer
	if err := welcomeText.Execute(&tb, data); err != nil {
		return "", "", err
	}
	if err := welcomeHTML.Execute(&hb, data); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}
