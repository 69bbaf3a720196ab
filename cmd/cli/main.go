package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/mkromann/ugc-builder/cmd/cli/briefcmd"
	"github.com/mkromann/ugc-builder/cmd/cli/img"
	"github.com/spf13/cobra"
)

func init() {
	if err := godotenv.Load(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddGroup(briefcmd.Group)
	rootCmd.AddCommand(briefcmd.Generate)
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Generate)
}

var rootCmd = &cobra.Command{
	Use:  "ugcbuilder-cli",
	Long: `Command line utilities for UGC Builder`,
	Run: func(cmd *cobra.Command, args []string) {
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
