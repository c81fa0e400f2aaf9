package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/sitemotion/internal/config"
	"github.com/ivlev/sitemotion/internal/system"
	"github.com/ivlev/sitemotion/internal/track"
	"github.com/ivlev/sitemotion/internal/video"
)

// FrameRenderer paints one sampled state. Implementations must be safe for
// concurrent use.
type FrameRenderer interface {
	Frame(st track.State) (*image.RGBA, error)
}

// Project renders a track to a video file.
type Project struct {
	Config   *config.Config
	Track    *track.Track
	Renderer FrameRenderer
	Encoder  video.VideoEncoder
	Ready    *Gate     // optional, waited on before the first frame
	Out      io.Writer // progress lines, discarded when nil
}

// Report summarises a run.
type Report struct {
	Frames   int
	Duration float64
	Render   time.Duration
	Total    time.Duration
	Host     *system.Stats
}

func (r Report) String() string {
	s := fmt.Sprintf(
		"--- [PREVIEW REPORT] ---\n"+
			"Frames: %d (%.2fs of timeline)\n"+
			"Rendering: %.2fs\n"+
			"Total Time: %.2fs\n"+
			"Effective FPS: %.2f\n",
		r.Frames, r.Duration, r.Render.Seconds(), r.Total.Seconds(), float64(r.Frames)/math.Max(r.Total.Seconds(), 1e-9))
	if r.Host != nil {
		s += "Host: " + r.Host.String() + "\n"
	}
	return s + "------------------------\n"
}

// FrameCount is the number of frames covering the track plus the tail hold.
func FrameCount(duration, tail float64, fps int) int {
	return max(1, int(math.Ceil((duration+tail)*float64(fps))))
}

func (p *Project) printf(format string, args ...any) {
	if p.Out != nil {
		fmt.Fprintf(p.Out, format, args...)
	}
}

// Run samples the track at the configured FPS, renders frames on a bounded
// worker pool and streams them to the encoder in order.
func (p *Project) Run(ctx context.Context) (*Report, error) {
	if p.Track == nil || p.Renderer == nil || p.Encoder == nil || p.Config == nil {
		return nil, errors.New("project is missing a track, renderer, encoder or config")
	}
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if p.Ready != nil {
		if err := p.Ready.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting for resources: %w", err)
		}
	}

	start := time.Now()
	cfg := p.Config
	duration := p.Track.Duration()
	total := FrameCount(duration, cfg.Tail, cfg.FPS)

	p.printf("--- [SITEMOTION PREVIEW] ---\n")
	p.printf("[*] Timeline: %.2fs, %d events | %d frames\n", duration, p.Track.Len(), total)
	p.printf("[*] Resolution: %dx%d @ %d FPS | Workers: %d | Encoder: %s\n", cfg.Width, cfg.Height, cfg.FPS, cfg.Workers, cfg.VideoEncoder)

	out, err := p.Encoder.Open(ctx, cfg.OutputVideo, video.Params{
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Encoder: cfg.VideoEncoder,
		Quality: cfg.Quality,
	})
	if err != nil {
		return nil, err
	}
	defer out.Close()

	var renderTime time.Duration
	batch := cfg.Workers * 4
	frames := make([]*image.RGBA, batch)
	for first := 0; first < total; first += batch {
		n := min(batch, total-first)

		renderStart := time.Now()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.Workers)
		for i := 0; i < n; i++ {
			idx := first + i
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := p.Renderer.Frame(p.Track.Sample(float64(idx) / float64(cfg.FPS)))
				if err != nil {
					return fmt.Errorf("frame %d: %w", idx, err)
				}
				frames[i] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		renderTime += time.Since(renderStart)

		for i := 0; i < n; i++ {
			if err := out.WriteFrame(frames[i]); err != nil {
				return nil, fmt.Errorf("frame %d: %w", first+i, err)
			}
			frames[i] = nil
		}
		p.printf("[>] Ready: %d/%d\n", first+n, total)
	}

	if err := out.Close(); err != nil {
		return nil, err
	}

	rep := &Report{Frames: total, Duration: duration, Render: renderTime, Total: time.Since(start)}
	if cfg.ShowStats {
		if s, err := system.HostStats(); err == nil {
			rep.Host = &s
		} else {
			p.printf("[!] Host stats unavailable: %v\n", err)
		}
		p.printf("%s", rep)
	}
	return rep, nil
}
