package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/clustex/internal/domain/clustering"
	"github.com/kailas-cloud/clustex/internal/usecase/pipeline"
)

var (
	kdistK        int
	kdistNgramMin int
	kdistNgramMax int
	kdistWorkers  int
)

func init() {
	kdistCmd.Flags().IntVarP(&kdistK, "k", "k", 1, "Which nearest neighbor to report (1 = closest)")
	kdistCmd.Flags().IntVar(&kdistNgramMin, "ngram-min", clustering.DefaultNgramMin, "Minimum character n-gram length")
	kdistCmd.Flags().IntVar(&kdistNgramMax, "ngram-max", clustering.DefaultNgramMax, "Maximum character n-gram length")
	kdistCmd.Flags().IntVar(&kdistWorkers, "workers", 0, "Worker pool size (0 = all CPUs)")
	rootCmd.AddCommand(kdistCmd)
}

var kdistCmd = &cobra.Command{
	Use:   "kdist <dir>",
	Short: "Print the sorted k-th neighbor distance curve for eps selection",
	Long: `Compute the cosine distance from every document to its k-th nearest
neighbor and print the records sorted ascending, as TSV. Plot the second
column to inspect the elbow and pick an eps for clustering.

Example:
  clustex kdist ./dumps -k 2 > curve.tsv`,
	Args: cobra.ExactArgs(1),
	RunE: runKdist,
}

func runKdist(cmd *cobra.Command, args []string) error {
	docs, err := readDirDocuments(args[0])
	if err != nil {
		return err
	}

	params := clustering.Params{NgramMin: kdistNgramMin, NgramMax: kdistNgramMax}
	records, err := pipeline.KDistances(docs, kdistK, params, pipeline.Options{Workers: kdistWorkers})
	if err != nil {
		return err
	}

	for _, rec := range records {
		fmt.Printf("%s\t%.6f\n", rec.DocumentID, rec.Distance)
	}
	return nil
}
