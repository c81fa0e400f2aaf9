// Package cmd contains the sitemotion commands.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/sitemotion/internal/config"
	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/logging"
)

const scenesDir = "scenes"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "sitemotion",
	Short: "Compose and preview the site's scroll and intro animations",
	Long: `sitemotion builds the animation timelines of the studio site from a
scene file: the masthead intro (typed text revisions, the "do over"
heading, clean typing and the rolling call to action) and the scroll
driven sections (parallax, radial wipes, ink, footer).

Scenes are YAML. Run 'sitemotion init' to write an example.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute(version string) error {
	rootCmd.Version = version
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	def := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML)")
	pf.Bool("verbose", false, "debug logging")
	pf.Int64("seed", 0, "typing randomness seed (0 = clock)")
	pf.Int("fps", def.FPS, "frames per second")
	pf.Float64("scrub", def.Scrub, "scroll smoothing lag in seconds")

	for _, name := range []string{"verbose", "seed", "fps", "scrub"} {
		viper.BindPFlag(name, pf.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintln(os.Stderr, "[!] Config file:", err)
		}
	}

	viper.SetEnvPrefix("SITEMOTION")
	viper.AutomaticEnv()
}

// loadConfig merges defaults, config file, env and flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.ApplyPreset(cfg.Preset); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadScene reads the scene named in args, or the newest one in scenes/.
func loadScene(args []string) (*director.Scene, string, error) {
	path := viper.GetString("scene")
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		latest, err := director.FindLatestScene(scenesDir)
		if err != nil {
			return nil, "", fmt.Errorf("%w. Run 'sitemotion init' first", err)
		}
		path = latest
		fmt.Printf("[*] Scene: %s\n", path)
	}
	s, err := director.ReadScene(path)
	if err != nil {
		return nil, "", err
	}
	return s, path, nil
}

func printSkipped(rep *director.Report) {
	for _, s := range rep.Skipped {
		fmt.Printf("[!] Skipped %s: %v\n", s.Name, s.Err)
	}
}
