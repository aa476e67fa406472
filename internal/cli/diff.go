package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nealxu/bicommit/internal/git"
	"github.com/spf13/cobra"
)

var diffStaged bool

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show pending changes",
	Long:  `Print the combined staged and unstaged diff, or only the staged diff with --staged.`,
	RunE:  runDiff,
}

func init() {
	diffCmd.Flags().BoolVar(&diffStaged, "staged", false, "Show staged changes only")
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	gitExec := git.NewExecutor(cwd)
	if !gitExec.IsRepository(ctx) {
		return fmt.Errorf("not a git repository; run 'git init' first")
	}

	var diff string
	if diffStaged {
		color.New(color.Bold, color.FgGreen).Println("Showing staged changes:")
		diff, err = gitExec.DiffCached(ctx)
	} else {
		color.New(color.Bold, color.FgGreen).Println("Showing all changes:")
		diff, err = gitExec.CombinedDiff(ctx)
	}
	if err != nil {
		return err
	}

	if diff == "" {
		color.New(color.FgYellow).Println("No changes to show")
		return nil
	}

	fmt.Println(diff)
	return nil
}
