package clustex

import (
	"errors"
	"reflect"
	"testing"
)

func TestCluster_NearDuplicates(t *testing.T) {
	docs := []Document{
		{ID: "a", Text: "hello world"},
		{ID: "b", Text: "Hello World!"},
		{ID: "c", Text: "completely different content"},
	}

	res, err := Cluster(docs, Params{Eps: 0.3, MinPoints: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Labels["a"] != 0 || res.Labels["b"] != 0 {
		t.Errorf("case and punctuation variants split: %v", res.Labels)
	}
	if res.Labels["c"] != Noise {
		t.Errorf("label(c) = %d, want Noise", res.Labels["c"])
	}
	if !reflect.DeepEqual(res.Clusters[0], []string{"a", "b"}) {
		t.Errorf("cluster 0 = %v, want [a b]", res.Clusters[0])
	}
	if !reflect.DeepEqual(res.Clusters[Noise], []string{"c"}) {
		t.Errorf("noise = %v, want [c]", res.Clusters[Noise])
	}
}

func TestCluster_NormalizationCollapsesLayout(t *testing.T) {
	// Same content split over lines with stray whitespace must land in the
	// same cluster as its single-line twin even at a tight eps.
	docs := []Document{
		{ID: "multi", Text: "  Hello\n\n  World  \n"},
		{ID: "single", Text: "hello world"},
	}

	res, err := Cluster(docs, Params{Eps: 0.01, MinPoints: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Labels["multi"] != 0 || res.Labels["single"] != 0 {
		t.Errorf("layout variants split: %v", res.Labels)
	}
}

func TestCluster_MinPointsOne(t *testing.T) {
	docs := []Document{
		{ID: "a", Text: "first topic"},
		{ID: "b", Text: "second topic entirely zzz"},
		{ID: "blank", Text: "\n \n"},
	}

	res, err := Cluster(docs, Params{Eps: 0.2, MinPoints: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for id, label := range res.Labels {
		if label == Noise {
			t.Errorf("document %q is noise with MinPoints=1", id)
		}
	}
}

func TestCluster_EveryIDExactlyOnce(t *testing.T) {
	docs := []Document{
		{ID: "1", Text: "alpha beta"},
		{ID: "2", Text: "alpha beta"},
		{ID: "3", Text: "gamma delta"},
		{ID: "4", Text: "unrelated qqq www"},
	}

	res, err := Cluster(docs, Params{Eps: 0.3, MinPoints: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seen := make(map[string]int)
	for _, ids := range res.Clusters {
		for _, id := range ids {
			seen[id]++
		}
	}
	for _, d := range docs {
		if seen[d.ID] != 1 {
			t.Errorf("id %q appears %d times, want exactly 1", d.ID, seen[d.ID])
		}
	}
	if len(res.Labels) != len(docs) {
		t.Errorf("labels = %d entries, want %d", len(res.Labels), len(docs))
	}
}

func TestCluster_ConfigurationErrors(t *testing.T) {
	valid := []Document{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}}

	tests := []struct {
		name   string
		docs   []Document
		params Params
	}{
		{"eps zero", valid, Params{Eps: 0, MinPoints: 2}},
		{"eps negative", valid, Params{Eps: -0.5, MinPoints: 2}},
		{"min points zero", valid, Params{Eps: 0.3, MinPoints: 0}},
		{"empty corpus", nil, Params{Eps: 0.3, MinPoints: 2}},
		{"duplicate ids", []Document{{ID: "dup", Text: "x"}, {ID: "dup", Text: "y"}},
			Params{Eps: 0.3, MinPoints: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cluster(tt.docs, tt.params)
			if !IsConfiguration(err) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestCluster_EmptyIDsListedTogether(t *testing.T) {
	docs := []Document{
		{ID: "", Text: "one"},
		{ID: "ok", Text: "two"},
		{ID: "", Text: "three"},
	}

	_, err := Cluster(docs, Params{Eps: 0.3, MinPoints: 2})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Issues) != 2 {
		t.Errorf("issues = %d, want both empty ids reported at once", len(verr.Issues))
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("validation failure must match ErrInvalidInput")
	}
}

func TestKDistances_ElbowCurve(t *testing.T) {
	docs := []Document{
		{ID: "a", Text: "hello world"},
		{ID: "b", Text: "hello world"},
		{ID: "c", Text: "nothing in common here"},
	}

	records, err := KDistances(docs, 1, Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != len(docs) {
		t.Fatalf("records = %d, want %d", len(records), len(docs))
	}
	for i := 1; i < len(records); i++ {
		if records[i].Distance < records[i-1].Distance {
			t.Errorf("curve not ascending: %v", records)
		}
	}
	if records[0].Distance != 0 {
		t.Errorf("identical pair must report distance 0 first, got %v", records[0].Distance)
	}
}

func TestKDistances_KOutOfRange(t *testing.T) {
	docs := []Document{{ID: "a", Text: "x"}, {ID: "b", Text: "y"}}

	for _, k := range []int{0, 2, 5} {
		if _, err := KDistances(docs, k, Params{}); !IsConfiguration(err) {
			t.Errorf("k=%d: expected configuration error, got %v", k, err)
		}
	}
}

func TestCluster_Deterministic(t *testing.T) {
	docs := []Document{
		{ID: "a", Text: "connection timeout on host db01"},
		{ID: "b", Text: "connection timeout on host db02"},
		{ID: "c", Text: "user session expired"},
		{ID: "d", Text: "user session renewed"},
		{ID: "e", Text: "disk almost full on /var"},
	}
	params := Params{Eps: 0.4, MinPoints: 2}

	first, err := Cluster(docs, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Cluster(docs, params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs:\n%+v\nvs\n%+v", i, again, first)
		}
	}
}
