package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clustex/internal/archive"
	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/domain/document"
	domrun "github.com/kailas-cloud/clustex/internal/domain/run"
	"github.com/kailas-cloud/clustex/internal/usecase/pipeline"
)

var (
	clusterEps       float64
	clusterMinPoints int
	clusterNgramMin  int
	clusterNgramMax  int
	clusterWorkers   int
	clusterOut       string
)

func init() {
	clusterCmd.Flags().Float64Var(&clusterEps, "eps", 0, "Neighborhood radius (cosine distance, required)")
	clusterCmd.Flags().IntVar(&clusterMinPoints, "min-points", 1, "Core point threshold")
	clusterCmd.Flags().IntVar(&clusterNgramMin, "ngram-min", clustering.DefaultNgramMin, "Minimum character n-gram length")
	clusterCmd.Flags().IntVar(&clusterNgramMax, "ngram-max", clustering.DefaultNgramMax, "Maximum character n-gram length")
	clusterCmd.Flags().IntVar(&clusterWorkers, "workers", 0, "Worker pool size (0 = all CPUs)")
	clusterCmd.Flags().StringVarP(&clusterOut, "out", "o", "", "Write a ZIP with one cluster_<label> folder per cluster")
	_ = clusterCmd.MarkFlagRequired("eps")
	rootCmd.AddCommand(clusterCmd)
}

var clusterCmd = &cobra.Command{
	Use:   "cluster <dir>",
	Short: "Cluster the text files of a directory offline",
	Long: `Cluster every regular file in a directory into buckets of structurally
similar documents. Files that are not valid UTF-8 are skipped with a warning.

Examples:
  clustex cluster ./dumps --eps 0.05
  clustex cluster ./logs --eps 0.3 --min-points 2 -o clustered.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runCluster,
}

func runCluster(cmd *cobra.Command, args []string) error {
	docs, err := readDirDocuments(args[0])
	if err != nil {
		return err
	}

	params := clustering.Params{
		NgramMin:  clusterNgramMin,
		NgramMax:  clusterNgramMax,
		Eps:       clusterEps,
		MinPoints: clusterMinPoints,
	}
	outcome, err := pipeline.Cluster(docs, params, pipeline.Options{Workers: clusterWorkers})
	if err != nil {
		return err
	}

	printGroups(outcome.Groups, len(docs))

	if clusterOut == "" {
		return nil
	}

	records := make([]domrun.DocumentRecord, len(docs))
	for i, d := range docs {
		records[i] = domrun.DocumentRecord{ID: d.ID(), Raw: d.Raw(), Label: outcome.Labels[i]}
	}
	data, err := archive.Build(domrun.Run{
		CreatedAt: time.Now().UTC(),
		Params:    params,
		Documents: records,
		Groups:    outcome.Groups,
	})
	if err != nil {
		return fmt.Errorf("build archive: %w", err)
	}
	if err := os.WriteFile(clusterOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", clusterOut, err)
	}
	fmt.Printf("archive written to %s\n", clusterOut)
	return nil
}

// readDirDocuments loads every regular file of dir as a document. Files that
// cannot be read or decoded are excluded, with the exclusion reported on
// stderr (the engine itself only ever sees valid text).
func readDirDocuments(dir string) ([]document.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var docs []document.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", entry.Name(), err)
			continue
		}
		if !utf8.Valid(data) {
			fmt.Fprintf(os.Stderr, "skipping %s: not valid UTF-8 text\n", entry.Name())
			continue
		}
		docs = append(docs, document.New(entry.Name(), string(data)))
	}
	return docs, nil
}

func printGroups(groups map[int][]string, total int) {
	labels := clustering.Labels(groups)
	fmt.Printf("%d documents, %d clusters\n\n", total, countClusters(groups))
	for _, label := range labels {
		name := fmt.Sprintf("cluster %d", label)
		if label == clustering.Noise {
			name = "noise"
		}
		ids := groups[label]
		fmt.Printf("%s (%d):\n", name, len(ids))
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
		fmt.Println()
	}
}

func countClusters(groups map[int][]string) int {
	n := len(groups)
	if _, ok := groups[clustering.Noise]; ok {
		n--
	}
	return n
}
