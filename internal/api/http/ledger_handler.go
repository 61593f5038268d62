package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"trooptreasury-engine/internal/ledger"
	"trooptreasury-engine/internal/service"
)

const dateLayout = "2006-01-02"

type LedgerHandler struct {
	treasurySvc service.TreasuryService
	reportSvc   service.ReportService
}

func NewLedgerHandler(treasurySvc service.TreasuryService, reportSvc service.ReportService) *LedgerHandler {
	return &LedgerHandler{treasurySvc: treasurySvc, reportSvc: reportSvc}
}

func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	troopID := mux.Vars(r)["troopID"]
	summary, err := h.treasurySvc.GetLedgerSummary(r.Context(), troopID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *LedgerHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	troopID := mux.Vars(r)["troopID"]
	q := r.URL.Query()

	period, err := parsePeriod(q.Get("from"), q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var policy ledger.StatusPolicy
	if raw := q.Get("status"); raw != "" {
		if policy, err = ledger.ParseStatusPolicy(raw); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	report, err := h.reportSvc.GetPeriodReport(r.Context(), troopID, period, policy)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func parsePeriod(from, to string) (ledger.Period, error) {
	var p ledger.Period
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return p, fmt.Errorf("invalid from date %q, expected YYYY-MM-DD", from)
		}
		p.From = &t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return p, fmt.Errorf("invalid to date %q, expected YYYY-MM-DD", to)
		}
		p.To = &t
	}
	if p.From != nil && p.To != nil && p.To.Before(*p.From) {
		return p, fmt.Errorf("to date %s is before from date %s", to, from)
	}
	return p, nil
}
