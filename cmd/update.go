package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/o1x3/profile-stats/internal/gateway"
	"github.com/o1x3/profile-stats/internal/readme"
	"github.com/o1x3/profile-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rewrites the generated section of a profile README",
	Long: `Fetches merged pull requests to external repositories and the user's top languages,
renders them between the section markers of the README and refreshes the "Last updated" stamp.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		user, _ := cmd.Flags().GetString("username")
		path, _ := cmd.Flags().GetString("readme")
		section, _ := cmd.Flags().GetString("section")
		styleStr, _ := cmd.Flags().GetString("style")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		style, err := readme.ParseStyle(styleStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(githubToken(), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		updater := usecase.NewUpdater(usecase.NewCollector(githubGateway, logger), logger)

		result, err := updater.Update(ctx, usecase.UpdateOptions{
			User:    user,
			Path:    path,
			Section: section,
			Style:   style,
			DryRun:  dryRun,
			Out:     cmd.OutOrStdout(),
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to update README: %v\n", err)
			os.Exit(1)
		}
		if !dryRun {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d contributions, %d languages, written=%t\n",
				path, len(result.Profile.Contributions), len(result.Profile.Languages), result.Written)
		}
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().StringP("username", "u", "", "GitHub user name (required)")
	updateCmd.MarkFlagRequired("username")
	updateCmd.Flags().String("readme", "README.md", "Path to the README to update")
	updateCmd.Flags().String("section", readme.DefaultSection, "Name of the sentinel-delimited section to replace")
	updateCmd.Flags().String("style", string(readme.StyleList), "Section layout: list or table")
	updateCmd.Flags().Bool("dry-run", false, "Print the updated README instead of writing it")
}
