package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/o1x3/profile-stats/internal/gateway"
	"github.com/o1x3/profile-stats/internal/readme"
	"github.com/o1x3/profile-stats/internal/usecase"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Prints the generated section without touching any file",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		user, _ := cmd.Flags().GetString("username")
		styleStr, _ := cmd.Flags().GetString("style")
		asJSON, _ := cmd.Flags().GetBool("json")

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
		profile, err := usecase.NewCollector(githubGateway, logger).Collect(ctx, user)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to collect profile: %v\n", err)
			os.Exit(1)
		}

		if asJSON {
			jsonData, err := json.MarshalIndent(profile, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: Failed to marshal profile to JSON: %v\n", err)
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), readme.Render(profile, style))
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringP("username", "u", "", "GitHub user name (required)")
	renderCmd.MarkFlagRequired("username")
	renderCmd.Flags().String("style", string(readme.StyleList), "Section layout: list or table")
	renderCmd.Flags().Bool("json", false, "Print the collected profile as JSON instead of markdown")
}
