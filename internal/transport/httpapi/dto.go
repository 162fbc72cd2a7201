package httpapi

import (
	"strconv"
	"time"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInvalidConfig    = "configuration_invalid"
	codeRunNotFound      = "run_not_found"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Issues  []issuePayload `json:"issues,omitempty"`
}

type issuePayload struct {
	DocumentID string `json:"document_id,omitempty"`
	Reason     string `json:"reason"`
}

type documentPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type paramsPayload struct {
	NgramMin  int     `json:"ngram_min,omitempty"`
	NgramMax  int     `json:"ngram_max,omitempty"`
	Eps       float64 `json:"eps"`
	MinPoints int     `json:"min_points"`
}

type createRunRequest struct {
	Documents []documentPayload `json:"documents"`
	Params    paramsPayload     `json:"params"`
	K         int               `json:"k,omitempty"`
}

type runResponse struct {
	RunID         string              `json:"run_id"`
	CreatedAt     time.Time           `json:"created_at"`
	Params        paramsPayload       `json:"params"`
	DocumentCount int                 `json:"document_count"`
	ClusterCount  int                 `json:"cluster_count"`
	NoiseCount    int                 `json:"noise_count"`
	Clusters      map[string][]string `json:"clusters"`
}

type distanceRecordPayload struct {
	DocumentID string  `json:"document_id"`
	Distance   float64 `json:"distance"`
}

type distancesResponse struct {
	RunID   string                  `json:"run_id"`
	K       int                     `json:"k"`
	Records []distanceRecordPayload `json:"records"`
}

func paramsToPayload(p clustering.Params) paramsPayload {
	return paramsPayload{
		NgramMin:  p.NgramMin,
		NgramMax:  p.NgramMax,
		Eps:       p.Eps,
		MinPoints: p.MinPoints,
	}
}

func (p paramsPayload) toDomain() clustering.Params {
	return clustering.Params{
		NgramMin:  p.NgramMin,
		NgramMax:  p.NgramMax,
		Eps:       p.Eps,
		MinPoints: p.MinPoints,
	}
}

func runToResponse(r domrun.Run) runResponse {
	clusters := make(map[string][]string, len(r.Groups))
	for label, ids := range r.Groups {
		clusters[strconv.Itoa(label)] = ids
	}
	return runResponse{
		RunID:         r.ID,
		CreatedAt:     r.CreatedAt,
		Params:        paramsToPayload(r.Params),
		DocumentCount: len(r.Documents),
		ClusterCount:  r.ClusterCount(),
		NoiseCount:    r.NoiseCount(),
		Clusters:      clusters,
	}
}

func distancesToResponse(r domrun.Run) distancesResponse {
	records := make([]distanceRecordPayload, len(r.Distances))
	for i, rec := range r.Distances {
		records[i] = distanceRecordPayload{DocumentID: rec.DocumentID, Distance: rec.Distance}
	}
	return distancesResponse{RunID: r.ID, K: r.K, Records: records}
}
