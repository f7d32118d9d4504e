package templates

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"softmatrices_site_go/models"
)

//go:embed landing.html
var files embed.FS

var landing = template.Must(template.New("landing.html").Funcs(template.FuncMap{
	"join": strings.Join,
}).ParseFS(files, "landing.html"))

// LandingPage is the data rendered by the landing page
type LandingPage struct {
	SEO     *models.SEO
	Content models.SiteContent
	Nonce   string
	Year    int
}

// RenderLanding writes the landing page to w
func RenderLanding(w io.Writer, page LandingPage) error {
	return landing.Execute(w, page)
}
