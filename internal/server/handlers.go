package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/intern-ease/internal/export"
	"github.com/jonathan/intern-ease/internal/handoff"
	"github.com/jonathan/intern-ease/internal/ingestion"
	"github.com/jonathan/intern-ease/internal/pipeline"
	"github.com/jonathan/intern-ease/internal/rendering"
	"github.com/jonathan/intern-ease/internal/types"
)

const (
	// maxRequestBytes bounds a submission including the base64 resume
	maxRequestBytes = 25 << 20
	// maxFormMemory is held in memory before multipart parts spill to disk
	maxFormMemory = 10 << 20
)

// handleForm renders the applicant form, with a banner after a failed redirect
func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	page := rendering.FormPage{Notice: rendering.NoticeFor(r.URL.Query().Get("notice"))}
	s.htmlResponse(w, http.StatusOK, func(out io.Writer) error {
		return s.renderer.Form(out, page)
	})
}

// handleGenerate runs a submission. JSON clients get the uniform result;
// browsers are redirected to the results page or shown the form again.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseApplicant(w, r)
	if err != nil {
		s.generateFailed(w, r, form, err)
		return
	}

	runID := uuid.NewString()
	data, err := s.pipeline.Execute(r.Context(), form, pipeline.RunOptions{RunID: runID})
	if err != nil {
		s.generateFailed(w, r, form, err)
		return
	}

	if wantsJSON(r) {
		s.jsonResponse(w, http.StatusOK, types.Success(data))
		return
	}

	if err := s.storeResult(r.Context(), w, data); err != nil {
		s.log.Error("failed to store result", "run_id", runID, "error", err)
		s.generateFailed(w, r, form, err)
		return
	}
	http.Redirect(w, r, "/results", http.StatusSeeOther)
}

// generateFailed answers a failed submission in the client's preferred format
func (s *Server) generateFailed(w http.ResponseWriter, r *http.Request, form types.ApplicantInput, err error) {
	status := HTTPStatus(err)
	message := failureMessage(err)

	if wantsJSON(r) {
		s.errorResponse(w, status, message)
		return
	}

	page := rendering.FormPage{Values: form, Notice: rendering.ErrorNotice(message)}
	s.htmlResponse(w, status, func(out io.Writer) error {
		return s.renderer.Form(out, page)
	})
}

// handleGenerateStream runs a submission and reports each stage as an SSE event
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseApplicant(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), failureMessage(err))
		return
	}

	// The cookie must go out before the first event. An existing session key
	// is kept so a failed run leaves the previous result reachable.
	key, err := s.sessions.KeyFromRequest(r)
	if err != nil {
		key = uuid.New()
	}
	cookieSet := true
	if err := s.sessions.SetCookie(w, key); err != nil {
		s.log.Error("failed to set session cookie", "error", err)
		cookieSet = false
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, pipeline.MsgUnexpected)
		return
	}

	runID := uuid.NewString()
	data, err := s.pipeline.Execute(r.Context(), form, pipeline.RunOptions{
		RunID: runID,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("progress", event); err != nil {
				s.log.Debug("progress event not delivered", "run_id", runID, "error", err)
			}
		},
	})
	result := pipeline.ResultOf(data, err)
	if err != nil {
		sse.WriteError(result.ErrorMessage())
		sse.WriteComplete(runID, result, "")
		return
	}

	redirect := ""
	if cookieSet {
		if err := s.store.Put(r.Context(), key.String(), data); err != nil {
			s.log.Error("failed to store result", "run_id", runID, "error", err)
		} else {
			redirect = "/results"
		}
	}
	sse.WriteComplete(runID, result, redirect)
}

// handleResults renders the three-tab results page for the session's result.
// The entry is left in the store so a refresh shows the same page.
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	result, err := s.loadResult(r)
	if err != nil {
		s.redirectToForm(w, r, err)
		return
	}

	page := rendering.NewResultsPage(result)
	s.htmlResponse(w, http.StatusOK, func(out io.Writer) error {
		return s.renderer.Results(out, page)
	})
}

// handleDownload serves /results/{doc}.txt and /results/{doc}.pdf
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	ext := path.Ext(file)
	doc, ok := rendering.ParseDocument(strings.TrimSuffix(file, ext))
	if !ok || (ext != ".txt" && ext != ".pdf") {
		http.NotFound(w, r)
		return
	}

	result, err := s.loadResult(r)
	if err != nil {
		s.redirectToForm(w, r, err)
		return
	}

	var download export.File
	switch ext {
	case ".txt":
		download = export.DocumentTextFile(doc, result)
	case ".pdf":
		if s.pdf == nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "PDF export is not available.")
			return
		}
		download, err = export.DocumentPDFFile(r.Context(), s.pdf, doc, result)
		if err != nil {
			s.log.Error("pdf export failed", "document", string(doc), "error", err)
			s.errorResponse(w, HTTPStatus(err), "Could not export the document.")
			return
		}
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": download.Name}))
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(download.Data); err != nil {
		s.log.Debug("download interrupted", "file", download.Name, "error", err)
	}
}

// parseApplicant reads a JSON, urlencoded or multipart submission. A
// non-empty "resume" file part replaces any carried-over resumeDataUri.
func (s *Server) parseApplicant(w http.ResponseWriter, r *http.Request) (types.ApplicantInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var form types.ApplicantInput
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			return form, &RequestError{Message: "Invalid request body.", Cause: err}
		}
		return form, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return form, &RequestError{Message: "Invalid form data. Please check your inputs.", Cause: err}
		}
	default:
		if err := r.ParseForm(); err != nil {
			return form, &RequestError{Message: "Invalid form data. Please check your inputs.", Cause: err}
		}
	}

	form = types.ApplicantInput{
		Name:           r.PostFormValue("name"),
		Email:          r.PostFormValue("email"),
		Phone:          r.PostFormValue("phone"),
		GraduationYear: r.PostFormValue("graduationYear"),
		Region:         r.PostFormValue("region"),
		Skills:         r.PostFormValue("skills"),
		Projects:       r.PostFormValue("projects"),
		ResumeDataURI:  r.PostFormValue("resumeDataUri"),
		JobDescription: r.PostFormValue("jobDescription"),
	}

	if r.MultipartForm == nil {
		return form, nil
	}
	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return form, nil
	}
	if err != nil {
		return form, &RequestError{Message: "Resume could not be read. Please upload your resume again.", Cause: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return form, &RequestError{Message: "Resume could not be read. Please upload your resume again.", Cause: err}
	}
	if len(data) > 0 {
		form.ResumeDataURI = ingestion.EncodeDataURI(header.Header.Get("Content-Type"), data)
	}
	return form, nil
}

// storeResult saves the result under a fresh key and sets the session cookie
func (s *Server) storeResult(ctx context.Context, w http.ResponseWriter, data *types.GenerationResult) error {
	key := uuid.New()
	if err := s.store.Put(ctx, key.String(), data); err != nil {
		return err
	}
	return s.sessions.SetCookie(w, key)
}

// loadResult reads the hand-off entry named by the session cookie
func (s *Server) loadResult(r *http.Request) (*types.GenerationResult, error) {
	key, err := s.sessions.KeyFromRequest(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(r.Context(), key.String())
}

// redirectToForm sends the browser home with the matching notice
func (s *Server) redirectToForm(w http.ResponseWriter, r *http.Request, err error) {
	code := rendering.NoticeCodeMissing
	var decodeErr *handoff.DecodeError
	if errors.As(err, &decodeErr) {
		code = rendering.NoticeCodeBroken
	}
	if !errors.Is(err, handoff.ErrNotFound) {
		s.log.Info("results unavailable", "error", err)
	}
	http.Redirect(w, r, "/?notice="+code, http.StatusSeeOther)
}

// htmlResponse renders into a buffer so a template failure can still become a 500
func (s *Server) htmlResponse(w http.ResponseWriter, status int, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		s.log.Error("failed to render page", "error", err)
		http.Error(w, pipeline.MsgUnexpected, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Debug("response interrupted", "error", err)
	}
}

// failureMessage is the user-facing text for a failed submission
func failureMessage(err error) string {
	var requestErr *RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Message
	}
	return pipeline.ResultOf(nil, err).ErrorMessage()
}

// wantsJSON reports whether the client asked for the JSON API
func wantsJSON(r *http.Request) bool {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == "application/json"
}
