package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/metpath/studio/pkg/errors"
	"github.com/metpath/studio/pkg/overlay"
	"github.com/metpath/studio/pkg/pathway"
	"github.com/metpath/studio/pkg/pathway/sbml"
	"github.com/metpath/studio/pkg/pipeline"
)

// maxBodySize caps uploaded SBML models and overlay tables at 16 MiB.
const maxBodySize = 16 << 20

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// pathwayResponse is the JSON body for endpoints that return a graph.
type pathwayResponse struct {
	Document pathway.Document     `json:"document"`
	Legend   pathway.LegendCounts `json:"legend"`
	Overlay  *overlay.Summary     `json:"overlay,omitempty"`
}

func (s *Server) graphResponse(g *pathway.Graph, summary *overlay.Summary) pathwayResponse {
	doc := pathway.FromGraph(g)
	doc.DocumentID = uuid.NewString()
	return pathwayResponse{
		Document: doc,
		Legend:   pathway.Summarize(g),
		Overlay:  summary,
	}
}

// GET /api/pathway/{id}?hide_cofactors=1&refresh=1
func (s *Server) handleGetPathway(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		PathwayID:     chi.URLParam(r, "id"),
		HideCofactors: boolParam(r, "hide_cofactors"),
		Refresh:       boolParam(r, "refresh"),
	}

	g, err := s.runner.Fetch(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.graphResponse(g, nil))
}

// POST /api/import/sbml with a raw SBML body.
func (s *Server) handleImportSBML(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	g, err := sbml.Import(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.graphResponse(g, nil))
}

// overlayRequest applies a tab or comma separated table to a document.
type overlayRequest struct {
	Document pathway.Document `json:"document"`
	Table    string           `json:"table"`
}

// POST /api/overlay
func (s *Server) handleOverlay(w http.ResponseWriter, r *http.Request) {
	var req overlayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid payload"))
		return
	}

	g, err := pathway.ToGraph(req.Document)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid document"))
		return
	}

	summary := s.runner.Annotate(r.Context(), g, req.Table)
	if summary == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidOverlay, "overlay table has no usable rows"))
		return
	}
	writeJSON(w, http.StatusOK, s.graphResponse(g, summary))
}

var artifactContentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatDOT:  "text/vnd.graphviz",
	pipeline.FormatJSON: "application/json",
}

// POST /api/render with pipeline options; returns the artifact for the
// single requested format.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid payload"))
		return
	}
	if len(opts.Formats) != 1 {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "exactly one format is required"))
		return
	}
	format := opts.Formats[0]

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifactContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
