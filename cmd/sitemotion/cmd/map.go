package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/scroll"
	"github.com/ivlev/sitemotion/internal/tui"
)

var mapCmd = &cobra.Command{
	Use:   "map [scene]",
	Short: "Print every scroll mapper's output at a progress value",
	Long: `Evaluate the scroll bindings of a scene at one progress value in [0,1].
Bindings without a mapper (enter effects, footer slides) are listed as
time-based.

Examples:
  sitemotion map --progress 0.5
  sitemotion map scenes/landing.yaml -p 1`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMap,
}

var mapProgress float64

func init() {
	rootCmd.AddCommand(mapCmd)
	mapCmd.Flags().Float64VarP(&mapProgress, "progress", "p", 0.5, "scroll progress, clamped to [0,1]")
}

func runMap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, _, err := loadScene(args)
	if err != nil {
		return err
	}
	bindings, rep, err := director.NewDirector(cfg.Seed).ScrollBindings(scene)
	if err != nil {
		return err
	}
	printSkipped(rep)

	p := min(max(mapProgress, 0), 1)
	rows := make([][]string, 0, len(bindings))
	for _, b := range bindings {
		values := "time-based"
		if b.Mapper != nil {
			values = formatFrame(b.Mapper.Map(p))
		}
		if b.Loop != nil {
			values += " +loop"
		}
		rows = append(rows, []string{b.Section, string(b.Unit),
			fmt.Sprintf("%g..%g", b.Range.Start, b.Range.End), values})
	}
	fmt.Println(tui.Table([]string{"SECTION", "UNIT", "RANGE", "VALUES"}, rows))
	return nil
}

func formatFrame(f scroll.Frame) string {
	props := make([]string, 0, len(f.Values))
	for p, v := range f.Values {
		props = append(props, fmt.Sprintf("%s=%.3f", p, v))
	}
	slices.Sort(props)
	if f.Path != "" {
		props = append(props, "d="+f.Path)
	}
	return strings.Join(props, " ")
}
