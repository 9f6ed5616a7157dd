// Command dancetree manages the dance tree file outside the terminal UI:
// strict import, export, and a library check reporting which tracks have
// no dance in the tree.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var treeFile string

var rootCmd = &cobra.Command{
	Use:   "dancetree",
	Short: "Manage the dancefloor dance tree",
	Long: `dancetree edits the dance tree used by dancefloor without starting the
terminal UI.

Examples:
  dancetree import dances.json
  dancetree export -o backup.json
  dancetree check --music ~/Music/dances`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&treeFile, "tree", "", "Dance tree file (default: tree_file from config, then XDG data dir)")
	rootCmd.AddCommand(importCmd, exportCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
