package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/track"
	"github.com/ivlev/sitemotion/internal/tui"
)

var planCmd = &cobra.Command{
	Use:   "plan [scene]",
	Short: "Print the masthead timeline",
	Long: `Compose the masthead sections of a scene and print where each section
landed, every event in start order and any property conflicts.

Examples:
  sitemotion plan scenes/landing.yaml
  sitemotion plan --seed 42 --events=false`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

var planEvents bool

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&planEvents, "events", true, "list every event")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, _, err := loadScene(args)
	if err != nil {
		return err
	}

	tr, rep, err := director.NewDirector(cfg.Seed).Masthead(scene)
	if err != nil {
		return err
	}
	printSkipped(rep)

	spans := make([][]string, 0, len(rep.Spans))
	for _, sp := range rep.Spans {
		spans = append(spans, []string{sp.Name, string(sp.Kind),
			fmt.Sprintf("%.3f", sp.Start), fmt.Sprintf("%.3f", sp.End), fmt.Sprint(sp.Events)})
	}
	fmt.Println(tui.Table([]string{"SECTION", "KIND", "START", "END", "EVENTS"}, spans))

	for _, c := range rep.Cycles {
		fmt.Printf("[*] %s keeps rolling from %.3fs every %.3fs\n", c.Section, c.Start, c.Loop.Pass())
	}

	if planEvents {
		events := make([][]string, 0, tr.Len())
		for _, e := range tr.Sorted() {
			events = append(events, []string{fmt.Sprintf("%.3f", e.Start), fmt.Sprintf("%.3f", e.Duration),
				string(e.Unit), string(e.Kind), e.Ease, formatChanges(e)})
		}
		fmt.Println(tui.Table([]string{"START", "DUR", "UNIT", "KIND", "EASE", "CHANGES"}, events))
	}

	conflicts := tr.Conflicts()
	for _, c := range conflicts {
		fmt.Printf("[!] Conflict: %s.%s written by %s@%.3f and %s@%.3f\n",
			c.Unit, c.Property, c.First.Kind, c.First.Start, c.Second.Kind, c.Second.Start)
	}
	fmt.Printf("[+++] %d events, %.3fs, %d conflicts\n", tr.Len(), tr.Duration(), len(conflicts))
	return nil
}

func formatChanges(e track.Event) string {
	props := make([]string, 0, len(e.Changes))
	for p := range e.Changes {
		props = append(props, string(p))
	}
	slices.Sort(props)

	parts := make([]string, len(props))
	for i, p := range props {
		c := e.Changes[track.Property(p)]
		from := "~"
		if c.From != nil {
			from = fmt.Sprintf("%g", *c.From)
		}
		parts[i] = fmt.Sprintf("%s %s→%g", p, from, c.To)
	}
	return strings.Join(parts, ", ")
}
