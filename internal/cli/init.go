package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nealxu/bicommit/internal/config"
	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# bicommit Configuration File

# AI provider: "openai" or "anthropic"
provider: openai

# Model to use for generation
# OpenAI: gpt-4o, gpt-4-turbo, ...
# Anthropic: claude-sonnet-4-5, claude-haiku-4-5, ...
model: gpt-4o

# API key. Prefer an environment reference over a literal key:
#   ${OPENAI_API_KEY} or ${ANTHROPIC_API_KEY}
api_key: ${OPENAI_API_KEY}

# Custom API endpoint (optional; proxies, gateways, local servers)
# base_url: https://api.openai.com/v1

# Maximum tokens for the AI response
max_tokens: 2000

# Maximum diff size in characters to send to the AI; longer diffs are
# truncated and the model is told the diff is partial
max_diff_size: 4000
`

var (
	initLocal bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize bicommit configuration",
	Long: `Create a default configuration file (~/.bicommit.yaml, or ./.bicommit.yaml
with --local).

Edit the file to pick your provider and model, and set the API key through
an environment variable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var configPath string
		if initLocal {
			configPath = config.ConfigFileName
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}
			configPath = filepath.Join(homeDir, config.ConfigFileName)
		}

		// Check if file exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		// 0600: the file may hold an API key
		if err := os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("✅ Configuration file created: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file to pick a provider and model")
		fmt.Println("  2. Export your API key, e.g.:")
		fmt.Println("       export OPENAI_API_KEY=\"your-api-key\"")
		fmt.Println("  3. Run 'bicommit commit' to generate a commit message")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initLocal, "local", false, "Create config in the current directory instead of home")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
