package cmd

import (
	"fmt"
	"os"

	"github.com/o1x3/profile-stats/internal/readme"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verifies that every sentinel marker in a README is correctly paired",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("readme")
		content, err := readme.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := readme.Validate(content); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s:\n%v\n", path, err)
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: sentinel markers OK\n", path)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().String("readme", "README.md", "Path to the README to check")
}
