package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskhero.com/taskhero/internal/gateway"
)

var (
	generateModel  string
	generateStream bool
)

var generateCmd = &cobra.Command{
	Use:   "generate PROMPT",
	Short: "Send a prompt to the generation endpoint and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := gateway.New(gateway.Config{
			URL:          cfg.GenerateURL,
			DefaultModel: cfg.GenerateModel,
			Timeout:      cfg.GenerateTimeout,
		})

		prompt := strings.Join(args, " ")

		var text string
		if generateStream {
			text, err = client.GenerateStream(cmd.Context(), prompt, generateModel)
		} else {
			text, err = client.Generate(cmd.Context(), prompt, generateModel)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&generateModel, "model", "", "model name, defaults to GENERATE_MODEL")
	generateCmd.Flags().BoolVar(&generateStream, "stream", false, "use the streaming endpoint")
	rootCmd.AddCommand(generateCmd)
}
