package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

// NewEngine constrói a engine de templates a partir dos arquivos embutidos,
// para que o binário não dependa do diretório de trabalho.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic("templates embutidos: " + err.Error())
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}
