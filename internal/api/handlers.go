package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/noteservice"
	"github.com/starford/vaultgraph/internal/report"
)

// Handler holds API route handlers.
type Handler struct {
	svc    *noteservice.Service
	logger *slog.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *noteservice.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{svc: svc, logger: logger}
}

// Stats handles GET /api/stats.
//
//	@Summary		Vault summary statistics
//	@Tags			graph
//	@Produce		json
//	@Success		200	{object}	models.Stats
//	@Security		BearerAuth
//	@Router			/stats [get]
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.Request{Kind: report.Stats})
}

// Tags handles GET /api/tags.
//
//	@Summary		Tag frequency table
//	@Tags			tags
//	@Produce		json
//	@Success		200	{object}	models.TagsReport
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.Request{Kind: report.Tags})
}

// Files handles GET /api/files.
//
//	@Summary		Per-note metadata
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	models.FilesReport
//	@Security		BearerAuth
//	@Router			/files [get]
func (h *Handler) Files(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.Request{Kind: report.Files})
}

// Links handles GET /api/links.
//
//	@Summary		Every wiki link with its resolution
//	@Tags			graph
//	@Produce		json
//	@Success		200	{object}	models.LinksReport
//	@Security		BearerAuth
//	@Router			/links [get]
func (h *Handler) Links(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.Request{Kind: report.Links})
}

// Orphans handles GET /api/orphans.
//
//	@Summary		Notes with no incoming or outgoing links
//	@Tags			graph
//	@Produce		json
//	@Success		200	{object}	models.OrphansReport
//	@Security		BearerAuth
//	@Router			/orphans [get]
func (h *Handler) Orphans(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, report.Request{Kind: report.Orphans})
}

// NotesWithTag handles GET /api/notes?tag=T.
//
//	@Summary		Notes declaring a tag
//	@Tags			tags
//	@Produce		json
//	@Param			tag	query		string	true	"Exact, case-sensitive tag"
//	@Success		200	{object}	models.TagSearchReport
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) NotesWithTag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("missing query parameter: tag"))
		return
	}
	h.serve(w, r, report.Request{Kind: report.Tag, Arg: tag})
}

// Backlinks handles GET /api/backlinks?file=F.
//
//	@Summary		Notes linking to a note
//	@Tags			graph
//	@Produce		json
//	@Param			file	query		string	true	"Note path, partial path, or bare name"
//	@Success		200		{object}	models.BacklinksReport
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/backlinks [get]
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	file := r.URL.Query().Get("file")
	if file == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("missing query parameter: file"))
		return
	}
	h.serve(w, r, report.Request{Kind: report.Backlinks, Arg: file})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, req report.Request) {
	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	v, err := report.Build(r.Context(), h.svc, req)
	if err != nil {
		h.writeError(w, r, req, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, req report.Request, err error) {
	switch {
	case errors.Is(err, context.Canceled):
		// Client went away; nobody is left to read a response.
		return
	case errors.Is(err, apperr.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, apperr.ErrInvalidVault):
		h.logger.Error("vault unavailable", slog.String("report", string(req.Kind)), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("vault unavailable"))
	default:
		h.logger.Error("report failed",
			slog.String("report", string(req.Kind)),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
