package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/parse"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/search"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/source"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/stats"
)

type sessionInfo struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Messages int       `json:"messages"`
	Senders  []string  `json:"senders"` // selector options, Overall first
	Warnings []string  `json:"warnings"`
	First    string    `json:"first,omitempty"`
	Last     string    `json:"last,omitempty"`
}

func infoOf(s *session) sessionInfo {
	info := sessionInfo{
		ID:       s.id,
		Name:     s.name,
		Created:  s.created,
		Messages: s.table.Len(),
		Senders:  stats.SelectorOptions(s.table),
		Warnings: s.table.Warnings,
	}
	if info.Warnings == nil {
		info.Warnings = []string{}
	}
	if first, last, ok := s.table.Span(); ok {
		info.First = first.Format(index.TimeLayout)
		info.Last = last.Format(index.TimeLayout)
	}
	return info
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		MaxUploadMB int64
		TopUsers    int
	}{s.cfg.MaxUploadMB, s.cfg.TopUsers}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		s.logger.Error("Failed to render template", "error", err)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Errorf("upload larger than %d MB", s.cfg.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, fmt.Errorf("missing form file \"file\": %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("read upload: %w", err))
		return
	}

	name := filepath.Base(header.Filename)
	text, err := source.Decode(name, data)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, source.ErrUnsupported) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, err)
		return
	}

	table, err := parse.Parse(text, s.cfg.ParseOptions())
	if err != nil {
		var perr *parse.ParseError
		if errors.As(err, &perr) || errors.Is(err, parse.ErrLineTooLong) {
			writeError(w, http.StatusUnprocessableEntity, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	db, err := index.Build(table)
	if err != nil {
		s.logger.Error("Failed to index upload", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to index messages"))
		return
	}

	sess := s.sessions.add(name, table, db)
	s.logger.Info("Session created",
		"session", sess.id,
		"name", name,
		"messages", table.Len(),
		"warnings", len(table.Warnings))

	writeJSON(w, http.StatusCreated, infoOf(sess))
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, infoOf(sess))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(r.PathValue("id")) {
		writeError(w, http.StatusNotFound, ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	f := stats.ForSender(r.URL.Query().Get("user"))
	writeJSON(w, http.StatusOK, stats.Build(sess.table, f, s.sopts))
}

// handleStat serves one statistic of the report, for pages that chart one
// section at a time.
func (s *Server) handleStat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	t := sess.table
	f := stats.ForSender(r.URL.Query().Get("user"))

	var v any
	switch r.PathValue("name") {
	case "summary":
		v = stats.FetchStats(t, f)
	case "monthly":
		v = stats.MonthlyTimeline(t, f)
	case "daily":
		v = stats.DailyTimeline(t, f)
	case "weekdays":
		v = stats.WeekActivity(t, f)
	case "months":
		v = stats.MonthActivity(t, f)
	case "heatmap":
		v = stats.ActivityHeatmap(t, f, s.sopts.BucketHours)
	case "users":
		if !f.IsOverall() {
			writeError(w, http.StatusBadRequest, errors.New("most busy users is only available for Overall"))
			return
		}
		v = stats.MostBusyUsers(t, s.sopts.TopUsers)
	case "words":
		v = stats.MostCommonWords(t, f, s.sopts.StopWords, s.sopts.TopWords)
	case "wordcloud":
		v = stats.WordCloudInput(t, f, s.sopts.StopWords)
	case "emoji":
		v = stats.EmojiFrequency(t, f)
	default:
		writeError(w, http.StatusNotFound, fmt.Errorf("unknown statistic %q", r.PathValue("name")))
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	if q.Get("q") == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing query parameter q"))
		return
	}
	limit := 50
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", l))
			return
		}
		limit = n
	}

	sender := q.Get("user")
	if stats.ForSender(sender).IsOverall() {
		sender = ""
	}

	var results []search.Result
	err := sess.withDB(func(db *index.DB) error {
		var err error
		results, err = search.Search(db, search.Options{Query: q.Get("q"), Sender: sender, Limit: limit})
		return err
	})
	if errors.Is(err, ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.logger.Warn("Search failed", "session", sess.id, "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("search: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
