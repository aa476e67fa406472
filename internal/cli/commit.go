package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/nealxu/bicommit/internal/commit"
	"github.com/nealxu/bicommit/internal/config"
	"github.com/nealxu/bicommit/internal/git"
	"github.com/nealxu/bicommit/internal/llm"
	"github.com/nealxu/bicommit/internal/log"
	"github.com/nealxu/bicommit/internal/ui"
	"github.com/spf13/cobra"
)

var (
	commitAPIKey   string
	commitBaseURL  string
	commitAuto     bool
	commitShowDiff bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Generate and create a commit",
	Long: `Generate a bilingual commit message from your pending changes.

This command will:
1. Collect branch, status and diff context from the repository
2. Ask the configured AI provider for a structured bilingual message
3. Let you accept, edit, regenerate or cancel before committing

Examples:
  bicommit commit
  bicommit commit --show-diff
  bicommit commit --auto
  bicommit commit -m claude-sonnet --base-url https://proxy.example.com/v1`,
	RunE: runCommit,
}

func init() {
	commitCmd.Flags().StringVar(&commitAPIKey, "api-key", "", "API key for the AI provider (overrides config and env)")
	commitCmd.Flags().StringVar(&commitBaseURL, "base-url", "", "Custom API base URL (overrides config)")
	commitCmd.Flags().BoolVar(&commitAuto, "auto", false, "Accept the first generated message without review")
	commitCmd.Flags().BoolVar(&commitShowDiff, "show-diff", false, "Preview the diff before generating")
	rootCmd.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	if commitBaseURL != "" {
		cfg.BaseURL = commitBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.DebugConfig("Configuration", cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	gitExec := git.NewExecutor(cwd)
	if !gitExec.IsRepository(ctx) {
		return fmt.Errorf("not a git repository; run 'git init' first")
	}

	changes, err := gitExec.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to read repository status: %w", err)
	}
	if len(changes) == 0 {
		fmt.Println("No changes to commit.")
		return nil
	}

	diff, err := gitExec.CombinedDiff(ctx)
	if err != nil {
		return fmt.Errorf("failed to read diff: %w", err)
	}
	if diff == "" {
		fmt.Println("No changes detected.")
		return nil
	}

	if commitShowDiff {
		proceed, err := ui.ShowDiffPreview(diff, 30, os.Stdin, os.Stdout)
		if err != nil {
			return err
		}
		if !proceed {
			fmt.Println("Commit generation cancelled.")
			return nil
		}
	}

	apiKey := cfg.ResolveAPIKey(commitAPIKey)
	if apiKey == "" {
		apiKey, err = ui.PromptAPIKey(cfg.Provider, os.Stdin, os.Stdout)
		if err != nil {
			return fmt.Errorf("no API key provided (set %s or add api_key to %s)",
				cfg.KeyEnvName(), config.ConfigFileName)
		}
	}

	provider, err := llm.NewProvider(cfg, apiKey)
	if err != nil {
		return err
	}

	branch, err := gitExec.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("failed to read branch: %w", err)
	}
	if branch.Unborn {
		log.Info("No commits yet on this branch; this will be the first one.")
	}

	// The change context is captured once; regenerations re-send the
	// identical prompt and rely on model randomness for variety.
	changeCtx := commit.BuildChangeContext(branch, changes, diff, cfg.MaxDiffSize)
	prompt := commit.BuildPrompt(changeCtx)
	log.Debug("Prompt built: %d bytes (diff truncated: %v)", len(prompt), changeCtx.Truncated)

	loop := &commit.ReviewLoop{
		Generate: func(ctx context.Context) (*commit.Message, error) {
			ui.ShowInfo("Generating commit message...", os.Stdout)
			raw, err := provider.Generate(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return commit.Normalize(raw)
		},
		Git:        gitExec,
		Input:      os.Stdin,
		Output:     os.Stdout,
		AutoAccept: commitAuto,
	}

	state, err := loop.Run(ctx)
	if err != nil {
		return err
	}
	if state == commit.StateDone {
		ui.ShowSuccess("Commit created successfully!", os.Stdout)
	}
	return nil
}
