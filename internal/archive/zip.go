// Package archive packages a clustering run into a ZIP for download, one
// folder per cluster so an analyst can review similarity buckets file by
// file.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
)

// Build writes every document of a run into cluster_<label>/<id>, with
// noise/<id> for documents labeled noise. Documents keep their original raw
// text. Entries follow run input order, so archives are byte-identical for
// identical runs.
func Build(r domrun.Run) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, d := range r.Documents {
		w, err := zw.Create(folderName(d.Label) + "/" + d.ID)
		if err != nil {
			return nil, fmt.Errorf("create entry %s: %w", d.ID, err)
		}
		if _, err := w.Write([]byte(d.Raw)); err != nil {
			return nil, fmt.Errorf("write entry %s: %w", d.ID, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

func folderName(label int) string {
	if label == clustering.Noise {
		return "noise"
	}
	return "cluster_" + strconv.Itoa(label)
}
