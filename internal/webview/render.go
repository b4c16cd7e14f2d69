package webview

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/output/dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template function helpers.
var templateFuncs = template.FuncMap{
	"percent": func(value, total int) float64 {
		if total <= 0 {
			return 0
		}

		return float64(value) / float64(total) * 100
	},
	"labelClass": func(label domain.SentimentLabel) string {
		if !label.Known() {
			return "unknown"
		}

		return label.Key()
	},
}

// Renderer handles HTML template rendering.
type Renderer struct {
	dashboardTmpl *template.Template
	errorTmpl     *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	dashboardTmpl, err := template.New("dashboard.html").
		Funcs(templateFuncs).
		ParseFS(templateFS, "templates/dashboard.html")
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}

	errorTmpl, err := template.New("error.html").
		ParseFS(templateFS, "templates/error.html")
	if err != nil {
		return nil, fmt.Errorf("parse error template: %w", err)
	}

	return &Renderer{
		dashboardTmpl: dashboardTmpl,
		errorTmpl:     errorTmpl,
	}, nil
}

// PageData is everything the dashboard page shows.
type PageData struct {
	// View is nil until a result is installed.
	View *dashboard.View
	// Selected is the drilldown; nil renders the Idle state.
	Selected      *domain.SelectedTopic
	SelectedIndex int
	// StaleSelection is set when the requested selection no longer applies.
	StaleSelection bool
	TextResult     *TextResult
	GeneratedAt    time.Time
}

// TextResult is the outcome of the single-text form.
type TextResult struct {
	Text      string
	Sentiment domain.SentimentLabel
}

// TopicLink builds the query string selecting row index of the current view.
func (p *PageData) TopicLink(resultID uuid.UUID, index int) string {
	return fmt.Sprintf("/?%s=%s&%s=%d", queryResult, resultID, queryTopic, index)
}

// ErrorData contains data for rendering error pages.
type ErrorData struct {
	Code    int
	Title   string
	Message string
}

// RenderDashboard renders the dashboard page.
func (r *Renderer) RenderDashboard(w io.Writer, data *PageData) error {
	if err := r.dashboardTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute dashboard template: %w", err)
	}

	return nil
}

// RenderError renders an error page.
func (r *Renderer) RenderError(w io.Writer, data *ErrorData) error {
	if err := r.errorTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute error template: %w", err)
	}

	return nil
}
