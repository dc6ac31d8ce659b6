package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/AnkushinDaniil/shgcavity/app"
	"github.com/AnkushinDaniil/shgcavity/cavity"
	"github.com/AnkushinDaniil/shgcavity/entity"
	"github.com/AnkushinDaniil/shgcavity/entity/format"
	"github.com/AnkushinDaniil/shgcavity/entity/parameters"
	"github.com/AnkushinDaniil/shgcavity/store"
)

// maxSamples caps the sweep grid a single request may ask for.
const maxSamples = 10000

type solveResponse struct {
	ID     string                `json:"id,omitempty"`
	Params parameters.Parameters `json:"params"`
	Result entity.ModeResult     `json:"result"`
}

type sweepResponse struct {
	Params parameters.Parameters  `json:"params"`
	Sweep  entity.SweptModeResult `json:"sweep"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.solve(w, r, "", p)
}

func (s *Server) handleSolvePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	preset, err := s.store.Preset(r.Context(), name)
	if err != nil {
		writeFailure(w, err)
		return
	}
	s.solve(w, r, name, preset.Params)
}

func (s *Server) solve(w http.ResponseWriter, r *http.Request, preset string, p parameters.Parameters) {
	result, err := cavity.Solve(p)
	if err != nil {
		logger(r.Context()).WithError(err).Debug("Solve failed")
		writeFailure(w, err)
		return
	}
	resp := solveResponse{Params: p, Result: result}
	if s.store != nil {
		sol, err := s.store.RecordSolution(r.Context(), preset, p, result)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.ID = sol.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	samples, err := s.querySamples(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, sweep, err := app.Sweep(r.Context(), p, samples)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{Params: p, Sweep: sweep})
}

func (s *Server) handleBounds(w http.ResponseWriter, r *http.Request) {
	p, err := decodeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	report, err := app.Bounds(p)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	presets, err := s.store.ListPresets(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, presets)
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	preset, err := s.store.Preset(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handlePutPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p, err := decodeParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if _, err := cavity.SBounds(p); err != nil {
		writeFailure(w, err)
		return
	}
	if err := s.store.SavePreset(r.Context(), name, p); err != nil {
		writeFailure(w, err)
		return
	}
	preset, err := s.store.Preset(r.Context(), name)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, preset)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePreset(r.Context(), chi.URLParam(r, "name")); err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSolutions(w http.ResponseWriter, r *http.Request) {
	solutions, err := s.store.Solutions(r.Context(), r.URL.Query().Get("preset"), queryInt(r, "limit", 100))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeJSON(w, http.StatusOK, solutions)
}

// handleChart renders the sweep of a preset, or of the bundled cavity when
// no preset is named, in the requested format (html by default).
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	f := format.HTML
	if text := r.URL.Query().Get("format"); text != "" {
		var err error
		if f, err = format.UnmarshalText(text); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}

	p := parameters.Default()
	if name := r.URL.Query().Get("preset"); name != "" {
		if s.store == nil {
			writeError(w, http.StatusNotFound, fmt.Errorf("%w: preset %q", store.ErrNotFound, name))
			return
		}
		preset, err := s.store.Preset(r.Context(), name)
		if err != nil {
			writeFailure(w, err)
			return
		}
		p = preset.Params
	}

	samples, err := s.querySamples(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, sweep, err := app.Sweep(r.Context(), p, samples)
	if err != nil {
		writeFailure(w, err)
		return
	}
	var buf bytes.Buffer
	if err := app.Render(&buf, f, sweep, p.S); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// decodeParams reads a parameter record from the body. Missing keys keep
// their default values; an empty body yields the defaults.
func decodeParams(r *http.Request) (parameters.Parameters, error) {
	p := parameters.Default()
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return parameters.Parameters{}, fmt.Errorf("invalid parameter record: %w", err)
	}
	return p, nil
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// writeFailure maps solver and store errors to a status code.
func writeFailure(w http.ResponseWriter, err error) {
	var unstable *cavity.UnstableError
	switch {
	case errors.As(err, &unstable):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  err.Error(),
			"s":      unstable.S,
			"bounds": unstable.Bounds,
		})
	case errors.Is(err, cavity.ErrUnstableForAllS), errors.Is(err, cavity.ErrUnstable):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, cavity.ErrInvalidConfiguration), errors.Is(err, store.ErrInvalidName):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// querySamples reads the sweep grid size, falling back to the server default.
func (s *Server) querySamples(r *http.Request) (int, error) {
	text := r.URL.Query().Get("samples")
	if text == "" {
		return s.samples, nil
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > maxSamples {
		return 0, fmt.Errorf("invalid samples %q: want an integer in [1, %d]", text, maxSamples)
	}
	return n, nil
}

func queryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
