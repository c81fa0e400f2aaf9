package cmd

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/sitemotion/internal/config"
	"github.com/ivlev/sitemotion/internal/director"
	"github.com/ivlev/sitemotion/internal/engine"
	"github.com/ivlev/sitemotion/internal/logging"
	"github.com/ivlev/sitemotion/internal/renderer"
	"github.com/ivlev/sitemotion/internal/source"
	"github.com/ivlev/sitemotion/internal/system"
	"github.com/ivlev/sitemotion/internal/track"
	"github.com/ivlev/sitemotion/internal/video"
)

var previewCmd = &cobra.Command{
	Use:   "preview [scene]",
	Short: "Render the masthead timeline to an MP4",
	Long: `Render the masthead intro of a scene to a video with ffmpeg. Units are
drawn as placeholder boxes over an optional backdrop (PDF page or image).

Examples:
  sitemotion preview --preset 9:16
  sitemotion preview scenes/landing.yaml --backdrop design.pdf --stats`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	def := config.Default()
	f := previewCmd.Flags()
	f.StringP("output", "o", "", "output video (default output/<scene>.mp4)")
	f.Int("width", def.Width, "frame width")
	f.Int("height", def.Height, "frame height")
	f.Int("workers", system.DefaultWorkers(), "render workers")
	f.Float64("tail", def.Tail, "seconds to hold the last frame")
	f.Float64("cycles", def.Cycles, "seconds of looping masthead motion after the intro")
	f.String("backdrop", "", "PDF or image painted behind the units")
	f.Int("dpi", def.DPI, "PDF backdrop DPI")
	f.String("preset", "", "format preset: 16:9, 9:16, 4:5")
	f.String("encoder", "auto", "ffmpeg video encoder, auto picks a hardware H.264 encoder")
	f.Int("quality", 0, "quality (0 = encoder default)")
	f.Bool("stats", false, "print host stats in the report")

	for _, name := range []string{"output", "width", "height", "workers", "tail", "cycles", "backdrop", "dpi", "preset", "encoder", "quality", "stats"} {
		viper.BindPFlag(name, f.Lookup(name))
	}
}

var encoderOnce engine.Once[string]

func resolveEncoder(name string) string {
	if name != "" && name != "auto" {
		return name
	}
	enc, _ := encoderOnce.Do(func() (string, error) {
		return system.BestH264Encoder(), nil
	})
	return enc
}

// lazyRenderer defers to a renderer built in the background. Frames are
// only requested after the project's ready gate opens.
type lazyRenderer struct {
	r   *renderer.Renderer
	err error
}

func (l *lazyRenderer) Frame(st track.State) (*image.RGBA, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.r.Frame(st)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, scenePath, err := loadScene(args)
	if err != nil {
		return err
	}

	cfg.VideoEncoder = resolveEncoder(cfg.VideoEncoder)
	if cfg.Quality == 0 {
		cfg.Quality = config.DefaultQuality(cfg.VideoEncoder)
	}
	if cfg.OutputVideo == "" {
		base := strings.TrimSuffix(filepath.Base(scenePath), filepath.Ext(scenePath))
		cfg.OutputVideo = filepath.Join("output", base+".mp4")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.OutputVideo), 0755); err != nil {
		return err
	}

	intro, rep, err := director.NewDirector(cfg.Seed).Masthead(scene)
	if err != nil {
		return err
	}
	printSkipped(rep)
	tr, err := rep.Unroll(intro, intro.Duration()+cfg.Cycles)
	if err != nil {
		return err
	}
	idx, err := scene.Index()
	if err != nil {
		return err
	}

	ready := engine.NewGate()
	lazy := &lazyRenderer{}
	go func() {
		defer ready.Open()
		lazy.r, lazy.err = buildRenderer(cfg, idx.RenderUnits())
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p := &engine.Project{
		Config:   cfg,
		Track:    tr,
		Renderer: lazy,
		Encoder:  &video.FFmpegEncoder{},
		Ready:    ready,
		Out:      os.Stdout,
	}
	report, err := p.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("[+++] Done: %s (%d frames)\n", cfg.OutputVideo, report.Frames)
	return nil
}

func buildRenderer(cfg *config.Config, units []renderer.Unit) (*renderer.Renderer, error) {
	var backdrop image.Image
	if cfg.Backdrop != "" {
		src, err := source.Open(cfg.Backdrop)
		if err != nil {
			return nil, fmt.Errorf("backdrop: %w", err)
		}
		defer src.Close()
		backdrop, err = src.Render(cfg.DPI)
		if err != nil {
			return nil, fmt.Errorf("backdrop: %w", err)
		}
		logging.Logger().Debug("backdrop loaded", "path", cfg.Backdrop, "size", backdrop.Bounds().Size())
	}
	return renderer.New(cfg.Width, cfg.Height, units, backdrop)
}
