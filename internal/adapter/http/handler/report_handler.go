package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/paybatch/internal/domain"
	"github.com/iho/paybatch/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Accounts() []*domain.Account
	Account(clientID uint16) (*domain.Account, error)
	Stats() usecase.ProcessStats
}

// ReportHandler serves the finished run's account table.
type ReportHandler struct {
	report ReportService
	runID  string
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(report ReportService, runID string) *ReportHandler {
	return &ReportHandler{report: report, runID: runID}
}

// AccountResponse is the JSON shape of a single account. Balances use
// the same fixed four fractional digits as the CSV output.
type AccountResponse struct {
	Client    uint16 `json:"client"`
	Available string `json:"available"`
	Held      string `json:"held"`
	Total     string `json:"total"`
	Locked    bool   `json:"locked"`
}

// ListAccountsResponse wraps the account list.
type ListAccountsResponse struct {
	RunID    string            `json:"run_id"`
	Accounts []AccountResponse `json:"accounts"`
	Total    int               `json:"total"`
}

// StatsResponse is the JSON shape of run statistics.
type StatsResponse struct {
	RunID           string `json:"run_id"`
	Applied         int64  `json:"applied"`
	Ignored         int64  `json:"ignored"`
	AccountsCreated int    `json:"accounts_created"`
	AccountsLocked  int    `json:"accounts_locked"`
}

// List returns every account in the run.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts := h.report.Accounts()

	out := make([]AccountResponse, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, accountResponse(acc))
	}

	writeJSON(w, http.StatusOK, ListAccountsResponse{
		RunID:    h.runID,
		Accounts: out,
		Total:    len(out),
	})
}

// Get returns a single client's account.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "client")

	client, err := strconv.ParseUint(raw, 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	acc, err := h.report.Account(uint16(client))
	if err != nil {
		writeError(w, http.StatusNotFound, "account not found", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, accountResponse(acc))
}

// Stats returns run counters.
func (h *ReportHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats := h.report.Stats()

	writeJSON(w, http.StatusOK, StatsResponse{
		RunID:           h.runID,
		Applied:         stats.Applied,
		Ignored:         stats.Ignored,
		AccountsCreated: stats.AccountsCreated,
		AccountsLocked:  stats.AccountsLocked,
	})
}

// Health reports liveness.
func (h *ReportHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "run_id": h.runID})
}

func accountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Client:    acc.ClientID,
		Available: acc.Available.StringFixed(4),
		Held:      acc.Held.StringFixed(4),
		Total:     acc.Total.StringFixed(4),
		Locked:    acc.Locked,
	}
}
