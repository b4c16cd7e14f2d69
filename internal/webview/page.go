package webview

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	"github.com/Am1anB/Sentiment-analysis-project/internal/output/dashboard"
)

func (h *Handler) servePage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	data := &PageData{GeneratedAt: time.Now()}

	if text := query.Get(queryText); text != "" {
		data.TextResult = &TextResult{Text: text, Sentiment: domain.NormalizeLabel(query.Get(querySentiment))}
	}

	selection := parseSelection(query.Get(queryResult), query.Get(queryTopic))

	if snap, ok := h.store.Current(); ok {
		view := dashboard.BuildView(snap)
		data.View = &view

		if selected, ok := selection.Resolve(snap); ok {
			data.Selected = &selected
			data.SelectedIndex = selection.Index()
		}
	}

	data.StaleSelection = selection.State() == dashboard.SelectionSelected && data.Selected == nil

	// Render into a buffer so a template failure can still produce an error page.
	var buf bytes.Buffer
	if err := h.renderer.RenderDashboard(&buf, data); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render dashboard")
		ErrorsTotal.WithLabelValues(ErrorTypeRender).Inc()
		h.renderError(w, http.StatusInternalServerError, "Error", "Failed to render the dashboard.")

		return
	}

	w.Header().Set(headerContentType, contentTypeHTML)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// parseSelection restores a selection from query parameters. Anything
// unparsable is Idle.
func parseSelection(rawResult, rawTopic string) dashboard.Selection {
	if rawResult == "" || rawTopic == "" {
		return dashboard.Idle()
	}

	resultID, err := uuid.Parse(rawResult)
	if err != nil {
		return dashboard.Idle()
	}

	index, err := strconv.Atoi(rawTopic)
	if err != nil {
		return dashboard.Idle()
	}

	return dashboard.Restore(resultID, index)
}

func (h *Handler) renderError(w http.ResponseWriter, code int, title, message string) {
	w.Header().Set(headerContentType, contentTypeHTML)
	w.WriteHeader(code)

	if err := h.renderer.RenderError(w, &ErrorData{
		Code:    code,
		Title:   title,
		Message: message,
	}); err != nil {
		h.logger.Error().Err(err).Msg("Failed to render error page")
	}
}
