package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/spellingwords/internal"
	"codeberg.org/snonux/spellingwords/internal/dictionary"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spellingwords",
		Short: "Spelling Words Anki Deck Generator",
		Long: `spellingwords turns a plain word list into an Anki spelling deck.

For each word it fetches the definition, part of speech and pronunciation
audio from the Merriam-Webster Elementary Dictionary, falling back to the
Collegiate Dictionary for whatever is missing, and writes a report of the
words that could not be fully resolved.

Examples:
  spellingwords --words words.txt                       # Build output.apkg
  spellingwords --words words.txt --output grade3.apkg  # Custom output path
  spellingwords --words words.txt --tts-fallback        # Synthesize missing audio`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.spellingwords.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.WordsFile, "words", "w", "", "Path to word list file (one word per line)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", flags.OutputFile, "Output APKG file path")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug output")
	cmd.Flags().IntVar(&flags.Parallel, "parallel", flags.Parallel, "Number of words to resolve concurrently")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Disable the dictionary response cache")
	cmd.Flags().StringVar(&flags.CacheDir, "cache-dir", flags.CacheDir, "Directory for the dictionary response cache")

	// TTS fallback flags
	cmd.Flags().BoolVar(&flags.TTSFallback, "tts-fallback", false, "Synthesize audio via OpenAI TTS for words without dictionary audio")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")
	cmd.Flags().StringVar(&flags.OpenAIVoice, "openai-voice", flags.OpenAIVoice, "OpenAI voice: alloy, ash, ballad, coral, echo, fable, onyx, nova, sage, shimmer, verse")
	cmd.Flags().Float64Var(&flags.OpenAISpeed, "openai-speed", flags.OpenAISpeed, "OpenAI speech speed (0.25 to 4.0)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("cache.directory", cmd.Flags().Lookup("cache-dir"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("audio.openai_voice", cmd.Flags().Lookup("openai-voice"))
	viper.BindPFlag("audio.openai_speed", cmd.Flags().Lookup("openai-speed"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".spellingwords" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".spellingwords")
	}

	// Environment variables
	viper.SetEnvPrefix("SPELLINGWORDS")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// LoadCredentials collects the dictionary API keys from the environment
// or the config file into an explicit value. Nothing downstream of this
// function reads the environment.
func LoadCredentials() dictionary.Credentials {
	return dictionary.Credentials{
		ElementaryKey: getKey("MW_ELEMENTARY_API_KEY", "dictionary.elementary_key"),
		CollegiateKey: getKey("MW_COLLEGIATE_API_KEY", "dictionary.collegiate_key"),
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	return getKey("OPENAI_API_KEY", "audio.openai_key")
}

// getKey checks an environment variable first, then the config file
func getKey(envVar, configKey string) string {
	if key := os.Getenv(envVar); key != "" {
		return key
	}
	return viper.GetString(configKey)
}
