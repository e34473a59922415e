package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiFlag     string
	userFlag    string
	timeoutFlag time.Duration
	rootCmd     = &cobra.Command{
		Use:   "assistantctl",
		Short: "CLI client for the assistant backend",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8000", "Assistant service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "anonymous", "User ID")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Request timeout")

	sendCmd := &cobra.Command{
		Use:   "send [message]",
		Short: "Send a chat message and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctxJSON, _ := cmd.Flags().GetString("context")
			return runSend(newClient(apiFlag, timeoutFlag), userFlag, joinArgs(args), ctxJSON, cmd.OutOrStdout())
		},
	}
	sendCmd.Flags().StringP("context", "c", "", "Context as a JSON object")
	rootCmd.AddCommand(sendCmd)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Print recent conversation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			return runHistory(newClient(apiFlag, timeoutFlag), userFlag, limit, cmd.OutOrStdout())
		},
	}
	historyCmd.Flags().IntP("limit", "n", 10, "Number of records")
	rootCmd.AddCommand(historyCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete a user's conversation history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPurge(newClient(apiFlag, timeoutFlag), userFlag, cmd.OutOrStdout())
		},
	})

	classifyCmd := &cobra.Command{
		Use:   "classify [message]",
		Short: "Classify a message locally without contacting the service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, _ := cmd.Flags().GetString("rules")
			city, _ := cmd.Flags().GetString("default-city")
			return runClassify(joinArgs(args), rules, city, cmd.OutOrStdout())
		},
	}
	classifyCmd.Flags().String("rules", "", "Intent rules override file (YAML)")
	classifyCmd.Flags().String("default-city", "Київ", "City used when the message names none")
	rootCmd.AddCommand(classifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
