package handler

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ShellHandler serves the single-page shell for every SPA route, including
// the catch-all. The shell reads the theme headers stamped by the guard
// chain so the first paint is already styled.
type ShellHandler struct {
	tmpl *template.Template
}

var shellTemplate = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html data-theme="{{.ThemeColor}}" class="{{if .DarkMode}}dark-mode{{end}}">
<head>
<meta charset="utf-8">
<title>Prompt Market</title>
</head>
<body>
<div id="app" data-route="{{.Route}}"></div>
</body>
</html>
`))

func NewShellHandler() *ShellHandler {
	return &ShellHandler{tmpl: shellTemplate}
}

type shellData struct {
	Route      string
	ThemeColor string
	DarkMode   bool
}

func (h *ShellHandler) Shell(c echo.Context) error {
	head := c.Response().Header()
	data := shellData{
		Route:      c.Request().URL.Path,
		ThemeColor: head.Get("X-Theme-Color"),
		DarkMode:   head.Get("X-Dark-Mode") == "true",
	}
	if data.ThemeColor == "" {
		data.ThemeColor = "blue"
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return h.tmpl.Execute(c.Response(), data)
}
