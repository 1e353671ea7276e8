package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var serverURL string

	root := &cobra.Command{
		Use:           "mockmate",
		Short:         "AI-simulated interview practice from your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&serverURL, "server", envOrDefault("MOCKMATE_SERVER", "http://localhost:8080"), "MockMate server base URL")

	root.AddCommand(newRegisterCmd(&serverURL))
	root.AddCommand(newLoginCmd(&serverURL))
	root.AddCommand(newRunCmd(&serverURL))
	root.AddCommand(newFeedbackCmd(&serverURL))
	root.AddCommand(newHistoryCmd(&serverURL))
	return root
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
