package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nealxu/bicommit/internal/git"
	"github.com/spf13/cobra"
)

var statusVerbose bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check repository status",
	Long:  `Show pending changes and branch information for the current repository.`,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVarP(&statusVerbose, "verbose", "v", false, "Show usage tips")
	rootCmd.AddCommand(statusCmd)
}

var kindColors = map[git.ChangeKind]*color.Color{
	git.KindModified:  color.New(color.FgYellow),
	git.KindAdded:     color.New(color.FgGreen),
	git.KindUntracked: color.New(color.FgGreen),
	git.KindDeleted:   color.New(color.FgRed),
	git.KindRenamed:   color.New(color.FgBlue),
}

var kindMarkers = map[git.ChangeKind]string{
	git.KindModified:  "M",
	git.KindAdded:     "A",
	git.KindUntracked: "?",
	git.KindDeleted:   "D",
	git.KindRenamed:   "R",
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	bold.Printf("Checking: ")
	fmt.Println(cwd)
	fmt.Println()

	gitExec := git.NewExecutor(cwd)
	if !gitExec.IsRepository(ctx) {
		color.New(color.FgRed, color.Bold).Println("Not a Git repository ✗")
		fmt.Println()
		color.New(color.FgYellow).Println("Tip: Run 'git init' to initialize a Git repository")
		return nil
	}
	green.Println("Git repository detected ✓")

	changes, err := gitExec.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read repository status: %w", err)
	}

	if len(changes) == 0 {
		green.Println("Working tree clean ✓")
		fmt.Println("All changes have been committed.")
	} else {
		yellow.Println("Uncommitted changes detected ✗")
		fmt.Println()
		for _, change := range changes {
			c := kindColors[change.Kind]
			c.Printf("  %s ", kindMarkers[change.Kind])
			fmt.Println(change.Path)
		}
		fmt.Println()
		bold.Printf("Total uncommitted changes: ")
		yellow.Println(len(changes))

		if statusVerbose {
			fmt.Println()
			cyan := color.New(color.FgCyan)
			cyan.Println("Tip: Use 'bicommit commit' to generate an AI commit message")
			cyan.Println("     Use 'bicommit diff' to inspect the changes first")
		}
	}

	branch, err := gitExec.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read branch: %w", err)
	}
	fmt.Println()
	switch {
	case branch.Unborn:
		yellow.Printf("Branch: ")
		fmt.Printf("%s (no commits yet)\n", branch.Name)
	case branch.Detached:
		yellow.Println("HEAD state: detached")
	default:
		bold.Printf("Current branch: ")
		color.New(color.FgCyan).Println(branch.Name)
	}

	return nil
}
