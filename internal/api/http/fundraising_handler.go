package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/service"
)

type FundraisingHandler struct {
	fundraisingSvc service.FundraisingService
}

func NewFundraisingHandler(fundraisingSvc service.FundraisingService) *FundraisingHandler {
	return &FundraisingHandler{fundraisingSvc: fundraisingSvc}
}

type depositsResponse struct {
	CampaignID string               `json:"campaign_id"`
	Deposits   []domain.Transaction `json:"deposits"`
}

type campaignsResponse struct {
	Campaigns []domain.FundraisingCampaign `json:"campaigns"`
}

func (h *FundraisingHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	troopID := mux.Vars(r)["troopID"]

	var status domain.CampaignStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		var err error
		if status, err = domain.ParseCampaignStatus(raw); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	campaigns, err := h.fundraisingSvc.ListCampaigns(r.Context(), troopID, status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if campaigns == nil {
		campaigns = []domain.FundraisingCampaign{}
	}
	writeJSON(w, http.StatusOK, campaignsResponse{Campaigns: campaigns})
}

func (h *FundraisingHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["campaignID"]
	dist, err := h.fundraisingSvc.GetDistribution(r.Context(), campaignID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dist)
}

func (h *FundraisingHandler) GetDeposits(w http.ResponseWriter, r *http.Request) {
	campaignID := mux.Vars(r)["campaignID"]
	deposits, err := h.fundraisingSvc.ProposeDistributionDeposits(r.Context(), campaignID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, depositsResponse{CampaignID: campaignID, Deposits: deposits})
}
