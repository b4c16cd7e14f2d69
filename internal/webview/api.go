package webview

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Am1anB/Sentiment-analysis-project/internal/core/domain"
	apperrors "github.com/Am1anB/Sentiment-analysis-project/internal/core/errors"
	"github.com/Am1anB/Sentiment-analysis-project/internal/output/dashboard"
	"github.com/Am1anB/Sentiment-analysis-project/internal/storage"
)

const (
	maxTextBodyBytes  = 1 << 20
	multipartOverhead = 1 << 20
	multipartMemory   = 32 << 20
	formFieldFile     = "file"
	formFieldText     = "text"
	queryResult       = "result"
	queryTopic        = "topic"
	queryText         = "text"
	querySentiment    = "sentiment"
	pathIndex         = "index"

	msgAnalysisFailed = "Analysis failed. Please try again later."
	msgUnavailable    = "The analysis service is temporarily unavailable."
	msgNoResult       = "No analysis result is available."
)

type errorResponse struct {
	Error string `json:"error"`
}

type textResponse struct {
	Text      string                `json:"text"`
	Sentiment domain.SentimentLabel `json:"sentiment"`
}

func (h *Handler) serveAnalyzeText(w http.ResponseWriter, r *http.Request) {
	text, err := readText(w, r)
	if err != nil || strings.TrimSpace(text) == "" {
		ErrorsTotal.WithLabelValues(ErrorTypeRequest).Inc()
		h.respondError(w, r, http.StatusBadRequest, "Bad Request", "Please provide some text to analyze.")

		return
	}

	label, err := h.analyzer.AnalyzeText(r.Context(), text)
	if err != nil {
		h.logger.Warn().Err(err).Str(logFieldRoute, RouteAnalyzeText).Msg("text analysis failed")
		ErrorsTotal.WithLabelValues(ErrorTypeBackend).Inc()
		h.respondBackendError(w, r, err)

		return
	}

	if wantsHTML(r) {
		q := url.Values{}
		q.Set(queryText, text)
		q.Set(querySentiment, label.String())
		http.Redirect(w, r, "/?"+q.Encode(), http.StatusSeeOther)

		return
	}

	writeJSON(w, http.StatusOK, textResponse{Text: text, Sentiment: label})
}

func readText(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxTextBodyBytes)

	if strings.HasPrefix(r.Header.Get(headerContentType), contentTypeForm) {
		if err := r.ParseForm(); err != nil {
			return "", fmt.Errorf("parse form: %w", err)
		}

		return r.PostForm.Get(formFieldText), nil
	}

	var req struct {
		Text string `json:"text"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("decode text request: %w", err)
	}

	return req.Text, nil
}

func (h *Handler) serveAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	if limit := h.cfg.MaxUploadBytes; limit > 0 {
		if r.ContentLength > limit+multipartOverhead {
			h.rejectUpload(w, r, &http.MaxBytesError{Limit: limit + multipartOverhead})

			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.rejectUpload(w, r, err)

		return
	}

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		h.rejectUpload(w, r, err)

		return
	}
	defer file.Close()

	upload := h.store.BeginUpload()

	result, err := h.analyzer.AnalyzeFile(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Warn().Err(err).Str(logFieldFilename, header.Filename).Msg("file analysis failed")
		ErrorsTotal.WithLabelValues(ErrorTypeBackend).Inc()
		h.respondBackendError(w, r, err)

		return
	}

	snap, err := h.store.Install(upload, result, header.Filename)
	if err != nil {
		h.logger.Warn().Err(err).Str(logFieldFilename, header.Filename).Msg("analysis result not installed")
		ErrorsTotal.WithLabelValues(ErrorTypeInstall).Inc()

		if errors.Is(err, apperrors.ErrUploadSuperseded) {
			h.respondError(w, r, http.StatusConflict, "Conflict", "A newer upload replaced this one.")

			return
		}

		h.respondError(w, r, http.StatusInternalServerError, "Error", msgAnalysisFailed)

		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)

		return
	}

	writeJSON(w, http.StatusOK, dashboard.BuildView(snap))
}

func (h *Handler) rejectUpload(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		ErrorsTotal.WithLabelValues(ErrorTypeTooLarge).Inc()
		h.respondError(w, r, http.StatusRequestEntityTooLarge, "File Too Large", "The uploaded file is too large.")

		return
	}

	ErrorsTotal.WithLabelValues(ErrorTypeRequest).Inc()
	h.respondError(w, r, http.StatusBadRequest, "Bad Request", "Please choose a file to upload.")
}

func (h *Handler) respondBackendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPayloadTooLarge):
		h.respondError(w, r, http.StatusRequestEntityTooLarge, "File Too Large", "The uploaded file is too large.")
	case errors.Is(err, apperrors.ErrCircuitBreakerOpen):
		h.respondError(w, r, http.StatusServiceUnavailable, "Unavailable", msgUnavailable)
	case errors.Is(err, apperrors.ErrInvalidInput):
		h.respondError(w, r, http.StatusBadRequest, "Bad Request", msgAnalysisFailed)
	default:
		h.respondError(w, r, http.StatusBadGateway, "Analysis Failed", msgAnalysisFailed)
	}
}

func (h *Handler) serveResult(w http.ResponseWriter, _ *http.Request) {
	snap, ok := h.store.Current()
	if !ok {
		writeJSONError(w, http.StatusNotFound, msgNoResult)

		return
	}

	writeJSON(w, http.StatusOK, dashboard.BuildView(snap))
}

func (h *Handler) serveTopicComments(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue(pathIndex))
	if err != nil {
		ErrorsTotal.WithLabelValues(ErrorTypeRequest).Inc()
		writeJSONError(w, http.StatusBadRequest, "Topic index must be a number.")

		return
	}

	resultID, err := uuid.Parse(r.URL.Query().Get(queryResult))
	if err != nil {
		ErrorsTotal.WithLabelValues(ErrorTypeRequest).Inc()
		writeJSONError(w, http.StatusBadRequest, "A valid result id is required.")

		return
	}

	snap, ok := h.store.Current()
	if !ok {
		writeJSONError(w, http.StatusNotFound, msgNoResult)

		return
	}

	selected, err := resolveSelection(snap, resultID, index)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrStaleResult):
			writeJSONError(w, http.StatusConflict, "The result has been replaced; reload the dashboard.")
		default:
			writeJSONError(w, http.StatusNotFound, "No such topic.")
		}

		return
	}

	writeJSON(w, http.StatusOK, selected)
}

// resolveSelection selects row index of snap, provided resultID still names it.
func resolveSelection(snap storage.Snapshot, resultID uuid.UUID, index int) (domain.SelectedTopic, error) {
	if snap.ID != resultID {
		return domain.SelectedTopic{}, fmt.Errorf("result %s: %w", resultID, apperrors.ErrStaleResult)
	}

	sel, err := dashboard.Select(snap, index)
	if err != nil {
		return domain.SelectedTopic{}, err
	}

	selected, ok := sel.Resolve(snap)
	if !ok {
		return domain.SelectedTopic{}, fmt.Errorf("resolve row %d: %w", index, apperrors.ErrTopicOutOfRange)
	}

	return selected, nil
}

// respondError answers with JSON for API clients and an error page for
// browser form submissions.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, code int, title, message string) {
	if wantsHTML(r) {
		h.renderError(w, code, title, message)

		return
	}

	writeJSONError(w, code, message)
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(code)

	//nolint:errchkjson // client disconnects are not actionable
	_ = json.NewEncoder(w).Encode(v)
}
