package web

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/mikey/pd-screen/internal/core"
	"go.uber.org/zap"
)

type navPage struct {
	name  string
	href  string
	label string
	title string
}

var navPages = []navPage{
	{name: "home", href: "/", label: "Home", title: "Parkinson's Disease Detection Model"},
	{name: "about", href: "/about", label: "About", title: "About Parkinson's Disease"},
	{name: "test", href: "/test", label: "Test", title: "Parkinson's Disease Test Section"},
}

// form column layout: PPE/Fo/spread1, Flo/Jitter:DDP/Fhi, spread2
var columnBreaks = []int{0, 3, 6, core.FeatureCount}

type navLink struct {
	Href   string
	Label  string
	Active bool
}

type diagnostic struct {
	OK   bool
	Text string
}

type fieldView struct {
	Key   string
	Name  string
	Value string
	Error string
}

type resultView struct {
	State   string
	Message string
}

type pageData struct {
	Title       string
	Nav         []navLink
	Diagnostics []diagnostic
	Ready       bool
	MinValue    string
	Columns     [][]fieldView
	Result      *resultView
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /about", s.handleAbout)
	mux.HandleFunc("GET /test", s.handleTestForm)
	mux.HandleFunc("POST /test", s.handleTestSubmit)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "home", s.newPageData("home"), http.StatusOK)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.render(w, "about", s.newPageData("about"), http.StatusOK)
}

// handleTestForm shows the empty form, or the sample values when ?sample=1
func (s *Server) handleTestForm(w http.ResponseWriter, r *http.Request) {
	var vector core.FeatureVector
	if r.URL.Query().Get("sample") == "1" {
		vector = core.SampleFeatureVector()
	}

	values := vector.Values()

	data := s.newPageData("test")
	data.Columns = columns(func(i int, _ core.Feature) fieldView {
		return fieldView{Value: core.FormatValue(values[i])}
	})
	s.render(w, "test", data, http.StatusOK)
}

// handleTestSubmit validates the form, runs one screening and re-renders the
// form with the submitted values and the result
func (s *Server) handleTestSubmit(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData("test")

	if err := r.ParseForm(); err != nil {
		s.logger.Debug("Failed to parse form", zap.Error(err))
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	vector, err := core.ParseFeatureVector(r.PostForm.Get, s.allowNegative)
	if err != nil {
		var verr *core.ValidationError
		if !errors.As(err, &verr) {
			verr = &core.ValidationError{}
		}
		data.Columns = columns(func(_ int, f core.Feature) fieldView {
			return fieldView{Value: r.PostForm.Get(f.Key), Error: verr.Fields[f.Key]}
		})
		s.render(w, "test", data, http.StatusUnprocessableEntity)
		return
	}

	p := s.Screen(r.Context(), vector)
	values := vector.Values()
	data.Columns = columns(func(i int, _ core.Feature) fieldView {
		return fieldView{Value: core.FormatValue(values[i])}
	})
	data.Result = &resultView{State: string(p.State), Message: p.Message}
	s.render(w, "test", data, http.StatusOK)
}

func (s *Server) newPageData(page string) pageData {
	data := pageData{Ready: s.service.Ready()}
	for _, p := range navPages {
		if p.name == page {
			data.Title = p.title
		}
		data.Nav = append(data.Nav, navLink{Href: p.href, Label: p.label, Active: p.name == page})
	}
	for _, st := range s.service.Artifacts().Statuses() {
		data.Diagnostics = append(data.Diagnostics, diagnostic{OK: st.Loaded(), Text: st.Diagnostic()})
	}
	if !s.allowNegative {
		data.MinValue = "0"
	}
	return data
}

// columns lays the schema out in form columns, filling each field through fill
func columns(fill func(i int, f core.Feature) fieldView) [][]fieldView {
	schema := core.FeatureSchema()
	out := make([][]fieldView, 0, len(columnBreaks)-1)
	for c := 0; c+1 < len(columnBreaks); c++ {
		var col []fieldView
		for i := columnBreaks[c]; i < columnBreaks[c+1]; i++ {
			fv := fill(i, schema[i])
			fv.Key = schema[i].Key
			fv.Name = schema[i].Name
			col = append(col, fv)
		}
		out = append(out, col)
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, page string, data pageData, status int) {
	var buf bytes.Buffer
	if err := s.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("Failed to render page", zap.String("page", page), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
