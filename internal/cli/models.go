package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pverger/transcribe/internal/transcribe"
)

// ModelsCmd creates the models command.
// Lists transcription models accepted by --model.
func ModelsCmd(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List supported transcription models",
		Long: `List transcription models accepted by the --model flag.

The default model is used when neither --model nor the config file
sets one.`,
		Example: `  transcribe models
  transcribe talk.mp3 --model whisper-1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runListModels(env)
		},
	}
}

// runListModels prints the model allow-list to stdout, marking the default.
func runListModels(env *Env) error {
	for _, id := range transcribe.Models() {
		if id == transcribe.DefaultModel.String() {
			fmt.Fprintf(env.Stdout, "%s (default)\n", id)
			continue
		}
		fmt.Fprintln(env.Stdout, id)
	}
	return nil
}
