// Package briefcmd runs the brief generation pipeline from the command line, which
// is handy for testing prompts against real pages without booting the web server.
package briefcmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mkromann/ugc-builder/internal/ai"
	"github.com/mkromann/ugc-builder/internal/briefgen"
	"github.com/mkromann/ugc-builder/internal/webpage"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "brief",
	Title: "Brief operations",
}

func init() {
	Generate.Flags().Bool("verbose", false, "log pipeline progress to stderr")
}

var Generate = &cobra.Command{
	Use:     "brief [url]",
	GroupID: "brief",
	Short:   "Generate an ad brief",
	Long:    `Fetches the page at the given URL and generates a UGC ad brief from its content.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logOutput := io.Discard
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logOutput = os.Stderr
		}
		logger := slog.New(slog.NewTextHandler(logOutput, nil))

		client := ai.NewClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_ASSISTANT_ID"), logger)
		generator := briefgen.NewGenerator(webpage.NewFetcher(logger), client, logger)

		brief, err := generator.Generate(context.Background(), args[0])
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Brief generation error: %v\n", err)
			os.Exit(1)
		}

		out, err := json.MarshalIndent(brief, "", "  ")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Marshal error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	},
}
