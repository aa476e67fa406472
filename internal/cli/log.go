package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nealxu/bicommit/internal/git"
	"github.com/spf13/cobra"
)

var (
	logCount  int
	logAuthor string
	logSince  string
	logUntil  string
	logGrep   string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the commit log",
	Long:  `Show recent commits, optionally filtered by author, date range or message text.`,
	RunE:  runLog,
}

func init() {
	logCmd.Flags().IntVarP(&logCount, "count", "n", 10, "Number of commits to show")
	logCmd.Flags().StringVar(&logAuthor, "author", "", "Show commits by a specific author")
	logCmd.Flags().StringVar(&logSince, "since", "", "Show commits since date (e.g. '2026-01-01' or '1 week ago')")
	logCmd.Flags().StringVar(&logUntil, "until", "", "Show commits until date")
	logCmd.Flags().StringVar(&logGrep, "grep", "", "Show only commits containing this text")
	rootCmd.AddCommand(logCmd)
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	gitExec := git.NewExecutor(cwd)
	if !gitExec.IsRepository(ctx) {
		return fmt.Errorf("not a git repository; run 'git init' first")
	}

	output, err := gitExec.Log(ctx, git.LogOptions{
		Count:  logCount,
		Author: logAuthor,
		Since:  logSince,
		Until:  logUntil,
		Grep:   logGrep,
		Format: "%C(yellow)%h%Creset %ad - %s (%an)",
	})
	if err != nil {
		return err
	}

	if output == "" {
		color.New(color.FgYellow).Println("No commits found")
		return nil
	}

	fmt.Println(output)
	return nil
}
