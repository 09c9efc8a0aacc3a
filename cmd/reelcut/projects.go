package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipworks/reelcut/internal/api"
	"github.com/clipworks/reelcut/internal/cli"
	"github.com/clipworks/reelcut/internal/poller"
)

var (
	watchFlag bool

	createNameFlag     string
	createCutTypeFlag  string
	createLanguageFlag string
	createFilenameFlag string
	createDurationFlag float64
	createSizeFlag     int64
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Run:   runProjectsList,
}

var projectsShowCmd = &cobra.Command{
	Use:   "show <project-id>",
	Short: "Show project detail, jobs, and edit report",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectsShow,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and its artifacts",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectsDelete,
}

var projectsRetryCmd = &cobra.Command{
	Use:   "retry <project-id>",
	Short: "Re-queue processing for a failed project",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectsRetry,
}

var projectsMulticamCmd = &cobra.Command{
	Use:   "multicam <project-id>",
	Short: "Trigger multicam reprocessing with the project's extra sources",
	Args:  cobra.ExactArgs(1),
	Run:   runProjectsMulticam,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <source-key>",
	Short: "Create a project from an already-uploaded source key",
	Long: `Registers a previously uploaded source as a new project. Normally
` + "`reelcut upload`" + ` does this in one step; use create when the upload
finished but project creation failed.`,
	Args: cobra.ExactArgs(1),
	Run:  runProjectsCreate,
}

func init() {
	projectsCreateCmd.Flags().StringVarP(&createNameFlag, "name", "n", "", "Project name")
	projectsCreateCmd.Flags().StringVar(&createCutTypeFlag, "cut-type", "talk", "Cut style: talk, podcast, lecture")
	projectsCreateCmd.Flags().StringVarP(&createLanguageFlag, "language", "l", "ko", "Source language code")
	projectsCreateCmd.Flags().StringVar(&createFilenameFlag, "filename", "", "Original source filename")
	projectsCreateCmd.Flags().Float64VarP(&createDurationFlag, "duration", "d", 0, "Source duration in seconds")
	projectsCreateCmd.Flags().Int64Var(&createSizeFlag, "size", 0, "Source size in bytes")
	projectsShowCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Poll status until processing finishes")
	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsShowCmd, projectsDeleteCmd, projectsRetryCmd, projectsMulticamCmd)
	rootCmd.AddCommand(projectsCmd)
}

func runProjectsList(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()

	projects, err := client.ListProjects(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to list projects")
	}

	if len(projects) == 0 {
		fmt.Println("No projects yet. Create one with `reelcut upload`.")
		return
	}

	fmt.Printf("%-36s  %-12s  %-10s  %-8s  %s\n", "ID", "STATUS", "TYPE", "LENGTH", "NAME")
	for _, p := range projects {
		length := "-"
		if p.SourceDurationSeconds != nil {
			length = cli.FormatDurationShort(time.Duration(*p.SourceDurationSeconds) * time.Second)
		}
		fmt.Printf("%-36s  %-12s  %-10s  %-8s  %s\n", p.ID, p.Status, p.CutType, length, p.Name)
	}
}

func runProjectsShow(cmd *cobra.Command, args []string) {
	cfg, client := cli.InitAPIClient()
	projectID := args[0]
	ctx := context.Background()

	detail, err := client.GetProject(ctx, projectID)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get project")
	}
	printProjectDetail(detail)

	if watchFlag && poller.Eligible(detail.Status) {
		fmt.Println()
		p := poller.New(cfg.PollInterval(), func(ctx context.Context) (string, error) {
			d, err := client.GetProject(ctx, projectID)
			if err != nil {
				return "", err
			}
			printJobProgress(d)
			detail = d
			return d.Status, nil
		})
		status, err := p.Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("watch interrupted")
		}
		fmt.Println()
		log.Info().Str("status", status).Msg("Processing finished")
		printProjectDetail(detail)
	}
}

func printProjectDetail(d *api.ProjectDetail) {
	fmt.Printf("Project  %s\n", d.Name)
	fmt.Printf("  ID        %s\n", d.ID)
	fmt.Printf("  Status    %s\n", d.Status)
	fmt.Printf("  Cut type  %s  Language  %s\n", d.CutType, d.Language)
	if d.SourceFilename != nil {
		fmt.Printf("  Source    %s", *d.SourceFilename)
		if d.SourceSizeBytes != nil {
			fmt.Printf(" (%s)", cli.FormatBytes(*d.SourceSizeBytes))
		}
		fmt.Println()
	}
	if d.SourceDurationSeconds != nil {
		fmt.Printf("  Length    %s\n", cli.FormatDurationShort(time.Duration(*d.SourceDurationSeconds)*time.Second))
	}

	if len(d.Jobs) > 0 {
		fmt.Println("  Jobs")
		for _, j := range d.Jobs {
			line := fmt.Sprintf("    %-16s %-10s %3.0f%%", j.Type, j.Status, j.Progress)
			if j.ErrorMessage != nil {
				line += "  " + *j.ErrorMessage
			}
			fmt.Println(line)
		}
	}

	if d.Report != nil {
		fmt.Printf("  Edit result: %.0fs of %.0fs cut (%.1f%%)\n",
			d.Report.CutDurationSeconds, d.Report.TotalDurationSeconds, d.Report.CutPercentage)
	}
}

func printJobProgress(d *api.ProjectDetail) {
	for _, j := range d.Jobs {
		if j.Status == "running" || j.Status == "processing" {
			fmt.Printf("\r  %s: %.0f%%   ", j.Type, j.Progress)
			return
		}
	}
	fmt.Printf("\r  %s...   ", d.Status)
}

func runProjectsCreate(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()
	sourceKey := args[0]

	name := createNameFlag
	if name == "" {
		name = createFilenameFlag
	}
	if name == "" {
		name = sourceKey
	}

	p, err := client.CreateProject(context.Background(), api.CreateProjectRequest{
		Name:                  name,
		CutType:               createCutTypeFlag,
		Language:              createLanguageFlag,
		SourceKey:             sourceKey,
		SourceFilename:        createFilenameFlag,
		SourceDurationSeconds: createDurationFlag,
		SourceSizeBytes:       createSizeFlag,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("project creation failed")
	}
	log.Info().Str("projectId", p.ID).Str("status", p.Status).Msg("Project created")
}

func runProjectsDelete(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()

	if err := client.DeleteProject(context.Background(), args[0]); err != nil {
		log.Fatal().Err(err).Msg("failed to delete project")
	}
	log.Info().Str("projectId", args[0]).Msg("Project deleted")
}

func runProjectsRetry(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()

	p, err := client.RetryProject(context.Background(), args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to retry project")
	}
	log.Info().Str("projectId", p.ID).Str("status", p.Status).Msg("Project re-queued")
}

func runProjectsMulticam(cmd *cobra.Command, args []string) {
	_, client := cli.InitAPIClient()

	p, err := client.MulticamReprocess(context.Background(), args[0])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to trigger multicam reprocessing")
	}
	log.Info().Str("projectId", p.ID).Str("status", p.Status).Msg("Multicam reprocessing queued")
}
