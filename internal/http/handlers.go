package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"budgetbook/internal/core"
	"budgetbook/internal/log"
	"budgetbook/internal/prefs"
	"budgetbook/internal/store"
)

// Import bodies are whole CSV files; cap them well above any realistic size.
const maxImportBytes = 8 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	saved := prefs.Preferences{}
	if s.prefs != nil {
		if p, err := s.prefs.Load(r.Context()); err == nil {
			saved = p
		} else {
			slog.ErrorContext(r.Context(), "Preferences load error", "error", err)
		}
	}

	activeTab := saved.ActiveTab
	if activeTab == "" {
		activeTab = core.KindBills.String()
	}
	month := saved.CurrentMonth
	if month == "" {
		month = core.CurrentMonth(time.Now())
	}

	data := struct {
		Tabs      []string
		ActiveTab string
		Month     string
	}{
		ActiveTab: activeTab,
		Month:     month,
	}
	for _, kind := range core.Kinds() {
		data.Tabs = append(data.Tabs, kind.String())
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	params := ParseViewParams(r.URL.Query())
	records := s.ledger.Records(kind, params)

	payload := map[string]any{
		"records": records,
		"count":   len(records),
	}
	if core.SchemaFor(kind).HasAmounts() {
		payload["summary"] = s.ledger.Summarize(kind, records)
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleCreateRecord(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	record, err := DecodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.ledger.Add(r.Context(), kind, record)
	if err != nil {
		slog.ErrorContext(r.Context(), "Record create error",
			log.FieldRequestID, RequestIDFromContext(r.Context()),
			log.FieldCollection, kind.String(),
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to create record")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateRecord(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	record, err := DecodeRecord(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	record["id"] = r.PathValue("id")

	if _, found := s.ledger.FindByID(kind, r.PathValue("id")); !found {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}

	updated, err := s.ledger.Update(r.Context(), kind, record)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	if err := s.ledger.Delete(r.Context(), kind, r.PathValue("id")); err != nil {
		slog.ErrorContext(r.Context(), "Record delete error",
			log.FieldRequestID, RequestIDFromContext(r.Context()),
			log.FieldCollection, kind.String(),
			log.FieldError, err)
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	removed, err := s.ledger.DeleteMany(r.Context(), kind, payload.IDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete records")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"removed": removed})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	kind, err := s.ledger.Undo(r.Context())
	if err != nil {
		if errors.Is(err, store.ErrNothingToUndo) {
			writeError(w, http.StatusConflict, "nothing to undo")
			return
		}
		writeError(w, http.StatusInternalServerError, "undo failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"collection": kind.String(),
		"remaining":  s.ledger.UndoDepth(),
	})
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		month = core.CurrentMonth(time.Now())
	}
	writeJSON(w, http.StatusOK, s.ledger.KPIs(month))
}

func (s *Server) handleImportCSV(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	count, err := s.ledger.ImportCSV(r.Context(), kind, string(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"imported": count})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	kind, ok := core.ParseKind(r.PathValue("kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}

	fileName := core.SchemaFor(kind).FileName
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	_, _ = w.Write([]byte(s.ledger.ExportCSV(kind)))
}

func (s *Server) handleMarkBillPaid(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month == "" {
		month = core.CurrentMonth(time.Now())
	}

	bill, err := s.ledger.MarkBillPaid(r.Context(), r.PathValue("id"), month)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleMarkBillUnpaid(w http.ResponseWriter, r *http.Request) {
	bill, err := s.ledger.MarkBillUnpaid(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleToggleAutoPay(w http.ResponseWriter, r *http.Request) {
	bill, err := s.ledger.ToggleAutoPay(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		writeJSON(w, http.StatusOK, prefs.Preferences{})
		return
	}

	saved, err := s.prefs.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Preferences load error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load preferences")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload prefs.Preferences
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Without a repository preferences quietly stay in the browser session.
	if s.prefs == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := s.prefs.Save(r.Context(), payload); err != nil {
		slog.ErrorContext(r.Context(), "Preferences save error", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save preferences")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
