package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"weather-widget/internal/domain/entity"
)

// WidgetTemplate is the name of the widget page template
const WidgetTemplate = "widget"

//go:embed templates/*.html
var templateFS embed.FS

// WidgetPage is the data rendered by the widget template
type WidgetPage struct {
	State    entity.WidgetState
	BasePath string
}

// Renderer implements echo.Renderer over the embedded templates
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
