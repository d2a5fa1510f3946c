// Command bvdecompress reads a compressed graph triple and writes the
// fully materialized adjacency list back out in the uncompressed
// text format.
package main

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/webgraph-go/bvgraph/graph"
)

func main() {
	cmd := &cobra.Command{
		Use:   "bvdecompress <source-basename> <dest>",
		Short: "Decompress a WebGraph-style graph back into an uncompressed adjacency list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dst := args[0], args[1]
			start := time.Now()

			cg, err := graph.LoadCompressed(src)
			if err != nil {
				logrus.WithError(err).Fatal("loading compressed graph")
			}

			g, err := graph.Decompress(cg)
			if err != nil {
				logrus.WithError(err).Fatal("decompressing graph")
			}

			if err := graph.WriteUncompressed(g, dst); err != nil {
				logrus.WithError(err).Fatal("writing decompressed graph")
			}

			logrus.WithFields(logrus.Fields{
				"nodes":   g.NumNodes(),
				"arcs":    g.NumArcs(),
				"elapsed": time.Since(start),
			}).Info("decompression complete")
			return nil
		},
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
