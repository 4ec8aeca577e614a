package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/spellingwords/internal/cli"
	"codeberg.org/snonux/spellingwords/internal/processor"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, flags *cli.Flags) error {
	// No word list means there is nothing to do
	if flags.WordsFile == "" {
		return cmd.Help()
	}

	if err := validateWordsFile(flags.WordsFile); err != nil {
		return err
	}

	creds := cli.LoadCredentials()
	if creds.ElementaryKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: MW_ELEMENTARY_API_KEY is not set; no elementary dictionary lookups")
	}

	proc, err := processor.NewProcessor(flags, creds, cli.GetOpenAIKey())
	if err != nil {
		return err
	}
	defer proc.Close()

	return proc.Run(context.Background())
}

func validateWordsFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("word file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("path is not a file (it's a directory): %s", path)
	}
	return nil
}
