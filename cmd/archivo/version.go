package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ternarybob/archivo/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Version needs no config, skip the root setup
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Archivo version %s\n", common.GetFullVersion())
	},
}
