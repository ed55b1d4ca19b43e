package web

import (
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"zerohero/internal/expiry"
	"zerohero/internal/outcome"
	"zerohero/internal/signal"
	"zerohero/models"
)

// HandleDashboard renders the signal dashboard. Without an index selected
// it shows only the selector; with one, it runs a single synchronous
// fetch -> classify -> score pass and renders the results.
func (s *Server) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	// Only handle exact root path
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	index := r.URL.Query().Get("index")
	showAll := r.URL.Query().Get("all") == "1"

	pageData := PageData{
		Title:         "Zero Hero Dashboard",
		CurrentPage:   "dashboard",
		IndexNames:    s.cfg.IndexNames,
		SelectedIndex: index,
		ShowAll:       showAll,
	}

	if index != "" {
		info, ok := s.cfg.Indexes[index]
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.runScan(r, index, info, &pageData)
	}

	s.renderPage(w, "dashboard", pageData)
}

// runScan performs the fetch/classify/score pass for one index and fills
// the page data. A fetch failure becomes an error banner, never a 5xx.
func (s *Server) runScan(r *http.Request, index string, info models.IndexInfo, pageData *PageData) {
	today := time.Now()
	expiryDate := expiry.Next(info.ExpiryWeekday, today)
	daysToExpiry := expiry.DaysTo(info.ExpiryWeekday, today)

	snap, err := s.fetcher.GetOptionChain(r.Context(), info.Symbol, expiryDate)
	if err != nil {
		s.logger.Error().Err(err).Str("index", index).Msg("Fetch failed")
		pageData.ErrorMsg = "Failed to fetch option chain data. Try again later."
		return
	}

	candidates := signal.Classify(snap, index, s.cfg.PriceCeiling, s.cfg.OTMOffset)
	candidates = signal.ScoreAll(candidates, snap.UnderlyingValue, daysToExpiry, s.cfg.OTMOffset)

	pageData.Fetched = true
	pageData.Underlying = snap.UnderlyingValue
	pageData.ExpiryDate = expiryDate.Format("2006-01-02")
	pageData.DaysToExpiry = daysToExpiry
	pageData.Candidates = candidates
	pageData.ReturnTo = returnURL(index, pageData.ShowAll)
	if pageData.ShowAll {
		pageData.Strikes = snap.Strikes
	}

	if s.archive != nil {
		if err := s.archive.SaveCandidates(today, snap.UnderlyingValue, candidates); err != nil {
			s.logger.Error().Err(err).Msg("Archiving candidates failed")
		}
	}
	if s.notifier != nil {
		if err := s.notifier.AlertCandidates(index, candidates); err != nil {
			s.logger.Error().Err(err).Msg("Sending alert failed")
		}
	}
}

// HandleOutcome records one tagged signal result and redirects back to the
// dashboard view it came from.
func (s *Server) HandleOutcome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	result := r.PostFormValue("result")
	if result != models.ResultSuccess && result != models.ResultFail {
		http.Error(w, "bad result", http.StatusBadRequest)
		return
	}

	rec := models.OutcomeRecord{
		Candidate: models.Candidate{
			Index:        r.PostFormValue("index"),
			OptionType:   r.PostFormValue("type"),
			Strike:       formFloat(r, "strike"),
			LastPrice:    formFloat(r, "ltp"),
			OpenInterest: formFloat(r, "oi"),
			Volume:       formFloat(r, "volume"),
			Confidence:   formFloat(r, "confidence"),
		},
		Result: result,
		Date:   time.Now().Format("2006-01-02"),
	}

	if err := s.store.Append(rec); err != nil {
		s.logger.Error().Err(err).Msg("Recording outcome failed")
		http.Error(w, "recording outcome failed", http.StatusInternalServerError)
		return
	}

	returnTo := r.PostFormValue("return")
	if returnTo == "" {
		returnTo = "/"
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// HandleReport renders the win-rate summary over the outcome log.
func (s *Server) HandleReport(w http.ResponseWriter, r *http.Request) {
	pageData := PageData{
		Title:       "Zero Hero Report",
		CurrentPage: "report",
	}

	records, err := s.store.LoadAll()
	if err != nil {
		s.logger.Error().Err(err).Msg("Loading outcome log failed")
		pageData.ErrorMsg = "Failed to load the outcome log."
		s.renderPage(w, "report", pageData)
		return
	}

	pageData.Summary = outcome.Summarize(records)
	s.renderPage(w, "report", pageData)
}

// renderPage renders an HTML template with the given page data
func (s *Server) renderPage(w http.ResponseWriter, page string, data PageData) {
	tmplFiles := []string{
		filepath.Join(s.cfg.TemplatesDir, "layouts", "main.html"),
		filepath.Join(s.cfg.TemplatesDir, "pages", page+".html"),
	}

	funcMap := template.FuncMap{
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(tmplFiles...)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func returnURL(index string, showAll bool) string {
	u := "/?index=" + url.QueryEscape(index)
	if showAll {
		u += "&all=1"
	}
	return u
}

func formFloat(r *http.Request, field string) float64 {
	v, _ := strconv.ParseFloat(r.PostFormValue(field), 64)
	return v
}
