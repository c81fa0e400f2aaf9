// Package video streams rendered frames into ffmpeg.
package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// Params describes the output stream.
type Params struct {
	Width, Height int
	FPS           int
	Encoder       string
	Quality       int
}

// FrameWriter accepts frames in presentation order.
type FrameWriter interface {
	WriteFrame(img image.Image) error
	Close() error
}

// VideoEncoder opens a frame stream to path.
type VideoEncoder interface {
	Open(ctx context.Context, path string, p Params) (FrameWriter, error)
}

type FFmpegEncoder struct{}

func (e *FFmpegEncoder) Open(ctx context.Context, path string, p Params) (FrameWriter, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(path, p)...)
	s := &ffmpegStream{cmd: cmd, width: p.Width, height: p.Height}
	cmd.Stdout = &s.log
	cmd.Stderr = &s.log

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	s.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}
	return s, nil
}

func buildFFmpegArgs(path string, p Params) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", p.Width, p.Height),
		"-framerate", fmt.Sprintf("%d", p.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", p.Encoder,
	}
	args = append(args, qualityArgs(p.Encoder, p.Quality)...)
	return append(args, path)
}

func qualityArgs(encoder string, quality int) []string {
	switch encoder {
	case "h264_videotoolbox":
		// VideoToolbox takes a bitrate; 75 -> 7.5 Mbit/s
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

type ffmpegStream struct {
	cmd           *exec.Cmd
	stdin         io.WriteCloser
	log           bytes.Buffer
	width, height int
	closed        bool
}

func (s *ffmpegStream) WriteFrame(img image.Image) error {
	if b := img.Bounds(); b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("frame is %dx%d, stream is %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w", err)
	}
	return nil
}

// Close ends the stream and waits for ffmpeg. It is safe to call twice.
func (s *ffmpegStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\n%s", err, s.log.String())
	}
	return nil
}

func writeRawRGBA(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	// repack anything that is not a tightly strided RGBA at the origin
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Rect, img, bounds.Min, draw.Src)
	}
	_, err := w.Write(rgba.Pix)
	return err
}
