package api

import "github.com/mholloway/matchbook/internal/model"

// VerdictResponse is the JSON shape of one verdict row.
type VerdictResponse struct {
	Status       string `json:"status"`
	Date         string `json:"date"`
	Amount       string `json:"amount"`
	DocumentPath string `json:"document_path,omitempty"`
	MatchedDate  string `json:"matched_date,omitempty"`
	Notes        string `json:"notes"`
}

func toVerdictResponses(verdicts []model.Verdict) []VerdictResponse {
	responses := make([]VerdictResponse, 0, len(verdicts))
	for _, v := range verdicts {
		resp := VerdictResponse{
			Status: string(v.Status),
			Date:   v.RawDate,
			Amount: v.RawAmount,
			Notes:  v.Notes,
		}
		if v.Matched() {
			resp.DocumentPath = v.DocumentPath
			resp.MatchedDate = v.MatchedDate.Format("2006-01-02")
		}
		responses = append(responses, resp)
	}
	return responses
}
