package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "workspace-server",
		Short: "Project management backend with natural-language orchestration",
	}

	root.PersistentFlags().String("config", "", "config file path (default ~/.config/workspace-management/config.yaml)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newSeedCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
