package run

import (
	"strconv"
	"time"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// jsonRun is the storage representation of a run.
// Group keys are stringified labels because JSON objects require string keys.
type jsonRun struct {
	ID        string              `json:"id"`
	CreatedAt time.Time           `json:"created_at"`
	NgramMin  int                 `json:"ngram_min"`
	NgramMax  int                 `json:"ngram_max"`
	Eps       float64             `json:"eps"`
	MinPoints int                 `json:"min_points"`
	K         int                 `json:"k,omitempty"`
	Documents []jsonDocument      `json:"documents"`
	Groups    map[string][]string `json:"groups"`
	Distances []jsonDistance      `json:"distances,omitempty"`
}

type jsonDocument struct {
	ID    string `json:"id"`
	Raw   string `json:"raw"`
	Label int    `json:"label"`
}

type jsonDistance struct {
	DocumentID string  `json:"document_id"`
	Distance   float64 `json:"distance"`
}

func buildJSONRun(r domrun.Run) jsonRun {
	docs := make([]jsonDocument, len(r.Documents))
	for i, d := range r.Documents {
		docs[i] = jsonDocument{ID: d.ID, Raw: d.Raw, Label: d.Label}
	}

	groups := make(map[string][]string, len(r.Groups))
	for label, ids := range r.Groups {
		groups[strconv.Itoa(label)] = ids
	}

	var dists []jsonDistance
	for _, rec := range r.Distances {
		dists = append(dists, jsonDistance{DocumentID: rec.DocumentID, Distance: rec.Distance})
	}

	return jsonRun{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		NgramMin:  r.Params.NgramMin,
		NgramMax:  r.Params.NgramMax,
		Eps:       r.Params.Eps,
		MinPoints: r.Params.MinPoints,
		K:         r.K,
		Documents: docs,
		Groups:    groups,
		Distances: dists,
	}
}

func (j jsonRun) toDomain() (domrun.Run, error) {
	docs := make([]domrun.DocumentRecord, len(j.Documents))
	for i, d := range j.Documents {
		docs[i] = domrun.DocumentRecord{ID: d.ID, Raw: d.Raw, Label: d.Label}
	}

	groups := make(map[int][]string, len(j.Groups))
	for key, ids := range j.Groups {
		label, err := strconv.Atoi(key)
		if err != nil {
			return domrun.Run{}, err
		}
		groups[label] = ids
	}

	var dists []clustering.DistanceRecord
	for _, rec := range j.Distances {
		dists = append(dists, clustering.DistanceRecord{DocumentID: rec.DocumentID, Distance: rec.Distance})
	}

	return domrun.Run{
		ID:        j.ID,
		CreatedAt: j.CreatedAt,
		Params: clustering.Params{
			NgramMin:  j.NgramMin,
			NgramMax:  j.NgramMax,
			Eps:       j.Eps,
			MinPoints: j.MinPoints,
		},
		K:         j.K,
		Documents: docs,
		Groups:    groups,
		Distances: dists,
	}, nil
}
