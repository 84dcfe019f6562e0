package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"pyxidust/internal/application"
)

var (
	projectDescription string
	projectName        string
	projectTemplate    string
	projectArchive     bool

	addMapMode     string
	addMapQuantity int
	addMapTemplate string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Create and maintain project folders",
}

var projectNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a project folder from a template",
	Long: `Create a project folder named {serial}_{name} with a copy of the template
as its first artifact, and record the new serial in the catalog.

Examples:
  pyxidust project new -d "County parcels" --name Survey -t P_11x17
  pyxidust project new -d "Flood study" --name Flood -t L_24x36 --archive`,
	Args: cobra.NoArgs,
	RunE: run("new-project", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		newCmd := GetServices().NewProject(projectDescription, projectName, projectTemplate)
		newCmd.ArchivePrevious = projectArchive

		result, err := newCmd.Execute(ctx)
		if err != nil {
			return err
		}

		for _, a := range result.Archived {
			fmt.Printf("archived %s\n", a)
		}
		fmt.Println(result.Message)
		fmt.Println(result.Project.ArtifactPath)
		return nil
	}),
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List project folders",
	Args:  cobra.NoArgs,
	RunE: run("projects", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().ListProjects().Execute(ctx)
		if err != nil {
			return err
		}

		for _, p := range result.Projects {
			marker := " "
			if p.Stale {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, p.Name)
		}
		return nil
	}),
}

var projectAddMapCmd = &cobra.Command{
	Use:   "add-map <project-folder> [artifact]",
	Short: "Add artifacts to a project folder",
	Long: `Add artifacts to a project folder. Clone mode copies an artifact of the
project (the one with the highest serial unless one is named); scratch mode
copies a layout template. New serials continue from the highest serial in
the folder.

Examples:
  pyxidust project add-map ~/pyxidust/projects/20250042_Survey -n 3
  pyxidust project add-map ~/pyxidust/projects/20250042_Survey --mode scratch -t L_11x17`,
	Args: cobra.RangeArgs(1, 2),
	RunE: run("add-map", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		mode, err := application.ParseAddMode(addMapMode)
		if err != nil {
			return err
		}
		filename := ""
		if len(args) == 2 {
			filename = args[1]
		}

		result, err := GetServices().AddMap(args[0], filename, mode, addMapQuantity, addMapTemplate).Execute(ctx)
		if err != nil {
			return err
		}

		for _, p := range result.Paths {
			fmt.Println(p)
		}
		return nil
	}),
}

var projectArchiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move projects of previous years into the archive",
	Args:  cobra.NoArgs,
	RunE: run("archive", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().ArchiveProjects().Execute(ctx)
		if err != nil {
			return err
		}

		for _, a := range result.Archived {
			fmt.Println(a)
		}
		fmt.Println(result.Message)
		return nil
	}),
}

var projectCleanCmd = &cobra.Command{
	Use:   "clean <project-folder>",
	Short: "Remove project documents and scratch folders",
	Long: `Remove files and folders matching the clean rules from a project folder,
keeping its data. By default .aprx, .temp and .tmp files are removed along
with hidden, Index, GPMessages and Raster folders.`,
	Args: cobra.ExactArgs(1),
	RunE: run("clean", func(ctx context.Context, cmd *cobra.Command, args []string) error {
		result, err := GetServices().CleanProject(args[0]).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		return nil
	}),
}

func init() {
	projectNewCmd.Flags().StringVarP(&projectDescription, "description", "d", "", "project description")
	projectNewCmd.Flags().StringVar(&projectName, "name", "", "project name, no spaces")
	projectNewCmd.Flags().StringVarP(&projectTemplate, "template", "t", "", "template size, e.g. P_11x17")
	projectNewCmd.Flags().BoolVar(&projectArchive, "archive", false, "archive projects of previous years first")
	projectNewCmd.MarkFlagRequired("name")
	projectNewCmd.MarkFlagRequired("template")

	projectAddMapCmd.Flags().StringVar(&addMapMode, "mode", "clone", "clone or scratch")
	projectAddMapCmd.Flags().IntVarP(&addMapQuantity, "quantity", "n", 1, "number of artifacts to add")
	projectAddMapCmd.Flags().StringVarP(&addMapTemplate, "template", "t", "", "layout template size (scratch mode)")

	projectCmd.AddCommand(projectNewCmd, projectListCmd, projectAddMapCmd, projectArchiveCmd, projectCleanCmd)
	rootCmd.AddCommand(projectCmd)
}
