// Package report turns a report request into the JSON envelope shared by the
// command line, the HTTP API, and the MCP tools.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/vaultgraph/internal/apperr"
	"github.com/starford/vaultgraph/internal/graph"
	"github.com/starford/vaultgraph/internal/models"
	"github.com/starford/vaultgraph/internal/noteservice"
)

// Kind names one report mode.
type Kind string

// Report modes. The zero Kind means Stats.
const (
	Stats     Kind = "stats"
	Tags      Kind = "tags"
	Files     Kind = "files"
	Links     Kind = "links"
	Orphans   Kind = "orphans"
	Tag       Kind = "tag"
	Backlinks Kind = "backlinks"
)

// Request selects a report. Arg is the tag for Tag and the note for Backlinks.
type Request struct {
	Kind Kind
	Arg  string
}

// Validate checks that modes needing an argument have one.
func (r Request) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Kind, validation.In(Kind(""), Stats, Tags, Files, Links, Orphans, Tag, Backlinks)),
		validation.Field(&r.Arg, validation.When(r.Kind == Tag || r.Kind == Backlinks, validation.Required)),
	)
}

// Select picks the single requested report. No selection means Stats; more
// than one is an error wrapping apperr.ErrInvalidArgument.
func Select(selected []Request) (Request, error) {
	switch len(selected) {
	case 0:
		return Request{Kind: Stats}, nil
	case 1:
		if err := selected[0].Validate(); err != nil {
			return Request{}, fmt.Errorf("report: %w: %w", apperr.ErrInvalidArgument, err)
		}
		return selected[0], nil
	default:
		names := make([]string, len(selected))
		for i, r := range selected {
			names[i] = "--" + string(r.Kind)
		}
		return Request{}, fmt.Errorf("report: %w: only one mode may be given, got %s",
			apperr.ErrInvalidArgument, strings.Join(names, ", "))
	}
}

// Build runs the query behind r and wraps the result in its envelope.
func Build(ctx context.Context, svc *noteservice.Service, r Request) (any, error) {
	switch r.Kind {
	case "", Stats:
		return svc.ComputeStats(ctx)
	case Tags:
		tags, err := svc.CollectTags(ctx)
		if err != nil {
			return nil, err
		}
		return models.TagsReport{Tags: tags}, nil
	case Files:
		files, err := svc.CollectFiles(ctx)
		if err != nil {
			return nil, err
		}
		return models.FilesReport{Files: files}, nil
	case Links:
		links, _, err := svc.CollectLinks(ctx)
		if err != nil {
			return nil, err
		}
		return models.LinksReport{Links: links, BrokenCount: graph.BrokenCount(links)}, nil
	case Orphans:
		orphans, err := svc.FindOrphans(ctx)
		if err != nil {
			return nil, err
		}
		return models.OrphansReport{Orphans: orphans}, nil
	case Tag:
		files, err := svc.FindNotesWithTag(ctx, r.Arg)
		if err != nil {
			return nil, err
		}
		return models.TagSearchReport{Tag: r.Arg, Files: files}, nil
	case Backlinks:
		sources, err := svc.FindBacklinks(ctx, r.Arg)
		if err != nil {
			return nil, err
		}
		return models.BacklinksReport{File: r.Arg, Backlinks: sources}, nil
	default:
		return nil, fmt.Errorf("report: %w: unknown mode %q", apperr.ErrInvalidArgument, r.Kind)
	}
}

// WriteJSON writes v as indented JSON followed by a newline. HTML characters
// are not escaped so note paths print as they are on disk.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}
