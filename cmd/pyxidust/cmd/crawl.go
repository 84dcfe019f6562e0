package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	crawlExtension string
	crawlOutput    string
	crawlPersist   bool
	indexPersist   bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl <folder>",
	Short: "Write Catalog.csv for the files under a folder",
	Long: `Walk a folder for files with an extension and write their name, path and
modification time to Catalog.csv. IDs follow path order. With --persist the
files are also recorded in the metadata store, where they keep a stable
GUID across crawls.

Examples:
  pyxidust crawl /data/gis --ext .shp
  pyxidust crawl /data/gis --ext lyrx --persist`,
	Args: cobra.ExactArgs(1),
	RunE: run("crawl", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		crawl, err := GetServices().Crawl(ctx, args[0], crawlExtension, crawlPersist)
		if err != nil {
			return err
		}
		crawl.Output = crawlOutput

		result, err := crawl.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		if result.Sync != nil {
			fmt.Printf("store: %d added, %d updated, %d deleted\n",
				result.Sync.FilesAdded, result.Sync.FilesUpdated, result.Sync.FilesDeleted)
		}
		return nil
	}),
}

var indexCmd = &cobra.Command{
	Use:   "index <folder>",
	Short: "Index the maps, layers and layouts of every artifact under a folder",
	Long: `Crawl a folder for artifacts, then write Maps.csv, Layers.csv and
Layouts.csv with the names found in each artifact, and MapsJoined.csv,
LayersJoined.csv and LayoutsJoined.csv joining those names to Catalog.csv.`,
	Args: cobra.ExactArgs(1),
	RunE: run("index", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		index, err := GetServices().CreateIndex(ctx, args[0], indexPersist)
		if err != nil {
			return err
		}

		result, err := index.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for _, path := range result.Joined {
			fmt.Println(path)
		}
		return nil
	}),
}

var joinCmd = &cobra.Command{
	Use:   "join <folder>",
	Short: "Rejoin the attribute tables of a folder to its Catalog.csv",
	Args:  cobra.ExactArgs(1),
	RunE: run("join", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().JoinReports(args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		for kind, n := range result.Dropped {
			if n > 0 {
				fmt.Printf("%s: %d catalog rows without %s\n", kind, n, kind)
			}
		}
		return nil
	}),
}

func init() {
	crawlCmd.Flags().StringVarP(&crawlExtension, "ext", "e", ".aprx", "file extension to crawl")
	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "", "catalog file (default <folder>/Catalog.csv)")
	crawlCmd.Flags().BoolVar(&crawlPersist, "persist", false, "record the crawl in the metadata store")
	indexCmd.Flags().BoolVar(&indexPersist, "persist", false, "record the crawl in the metadata store")

	rootCmd.AddCommand(crawlCmd, indexCmd, joinCmd)
}
