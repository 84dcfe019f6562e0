package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Read the project catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List catalog entries, optionally filtered",
	Args:  cobra.MaximumNArgs(1),
	RunE: run("catalog", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}

		result, err := GetServices().ListCatalog(query).Execute(ctx)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, e := range result.Entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s %s\n", e.Serial, e.Name, e.Description, e.Creator, e.Date, e.Time)
		}
		return w.Flush()
	}),
}

var catalogEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the catalog in an editor",
	Args:  cobra.NoArgs,
	RunE: run("catalog-edit", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		s := GetServices()
		return s.Opener.OpenFile(s.Catalog.Path())
	}),
}

var renameExtension string

var renameCmd = &cobra.Command{
	Use:   "rename <folder>",
	Short: "Rename files to consecutive numbers from the rename counter",
	Long: `Rename the files of a folder, in name order, to consecutive numbers taken
from the rename counter file, keeping their extensions.

Examples:
  pyxidust rename ~/photos/site-visit --ext jpg`,
	Args: cobra.ExactArgs(1),
	RunE: run("rename", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().RenameFiles(args[0], renameExtension).Execute(ctx)
		if err != nil {
			return err
		}

		for _, r := range result.Renames {
			fmt.Printf("%s -> %s\n", r.From, r.To)
		}
		return nil
	}),
}

var filesCmd = &cobra.Command{
	Use:   "files",
	Short: "Query files recorded by persisted crawls",
}

var filesSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recorded files by name",
	Args:  cobra.ExactArgs(1),
	RunE: run("search", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		search, err := GetServices().SearchFiles(ctx, args[0])
		if err != nil {
			return err
		}

		result, err := search.Execute(ctx)
		if err != nil {
			return err
		}

		if len(result.Files) == 0 {
			fmt.Println("No results found")
			return nil
		}
		for _, f := range result.Files {
			fmt.Printf("%s %s\n", f.GUID, f.Path)
		}
		return nil
	}),
}

func init() {
	renameCmd.Flags().StringVarP(&renameExtension, "ext", "e", "", "only rename files with this extension")

	catalogCmd.AddCommand(catalogListCmd, catalogEditCmd)
	filesCmd.AddCommand(filesSearchCmd)
	rootCmd.AddCommand(catalogCmd, renameCmd, filesCmd)
}
