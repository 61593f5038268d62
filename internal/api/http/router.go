package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"trooptreasury-engine/internal/service"
)

// NewRouter registers the read-only API. Every route is GET.
func NewRouter(svcs service.Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(RecoveryMiddleware, LoggingMiddleware)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	ledgerHandler := NewLedgerHandler(svcs.Treasury, svcs.Reports)
	fundraisingHandler := NewFundraisingHandler(svcs.Fundraising)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/troops/{troopID}/ledger", ledgerHandler.GetLedger).Methods("GET")
	api.HandleFunc("/troops/{troopID}/reports", ledgerHandler.GetReport).Methods("GET")
	api.HandleFunc("/troops/{troopID}/campaigns", fundraisingHandler.ListCampaigns).Methods("GET")
	api.HandleFunc("/campaigns/{campaignID}/distribution", fundraisingHandler.GetDistribution).Methods("GET")
	api.HandleFunc("/campaigns/{campaignID}/distribution/deposits", fundraisingHandler.GetDeposits).Methods("GET")

	return router
}
