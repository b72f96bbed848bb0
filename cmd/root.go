package cmd

import (
	"fmt"
	"log"
	"os"

	"peako/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "peako",
	Short: "Peak'O Music site backend.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting Peak'O server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
