package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ivlev/sitemotion/internal/director"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example scene",
	Long: `Write the example landing page scene. Without a path the file goes to
scenes/ with a timestamped name, where the other commands find it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := director.GenerateScenePath(scenesDir)
	if len(args) > 0 {
		path = args[0]
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	if err := director.WriteScene(director.ExampleScene(), path); err != nil {
		return err
	}
	fmt.Printf("[+++] Scene written: %s\n", path)
	return nil
}
