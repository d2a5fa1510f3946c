// Command bvcompress reads an uncompressed adjacency list and writes
// a WebGraph-style compressed graph triple (.graph/.offsets/.properties).
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webgraph-go/bvgraph/graph"
)

func main() {
	var (
		windowSize     int
		maxRefCount    int
		minIntervalLen int
		zetaK          int
		huffmanMode    bool
	)

	cmd := &cobra.Command{
		Use:   "bvcompress <source> <dest-basename>",
		Short: "Compress an uncompressed adjacency list into a WebGraph-style graph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			start := time.Now()

			g, err := graph.LoadUncompressed(src)
			if err != nil {
				logrus.WithError(err).Fatal("loading source graph")
			}

			params := graph.Params{
				WindowSize:     windowSize,
				MaxRefCount:    maxRefCount,
				MinIntervalLen: minIntervalLen,
				ZetaK:          zetaK,
			}
			if err := graph.Store(dst, g, params, huffmanMode); err != nil {
				logrus.WithError(err).Fatal("storing compressed graph")
			}

			logrus.WithFields(logrus.Fields{
				"nodes":   g.NumNodes(),
				"arcs":    g.NumArcs(),
				"elapsed": time.Since(start),
			}).Info("compression complete")
			return nil
		},
	}

	cmd.Flags().IntVarP(&windowSize, "window", "w", graph.DefaultParams().WindowSize, "reference window size")
	cmd.Flags().IntVarP(&maxRefCount, "max-ref-count", "r", graph.DefaultParams().MaxRefCount, "maximum reference chain depth")
	cmd.Flags().IntVarP(&minIntervalLen, "min-interval-len", "i", graph.DefaultParams().MinIntervalLen, "minimum run length worth intervalizing")
	cmd.Flags().IntVarP(&zetaK, "zeta-k", "k", graph.DefaultParams().ZetaK, "Zeta code parameter")
	cmd.Flags().BoolVar(&huffmanMode, "huffman", false, "use contextual Huffman coding instead of universal codes")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
