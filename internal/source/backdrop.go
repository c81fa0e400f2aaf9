package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Backdrop is a still image the preview frames are painted over.
type Backdrop interface {
	Render(dpi int) (image.Image, error)
	Close() error
}

// Open picks a backdrop implementation from the file extension.
func Open(path string) (Backdrop, error) {
	if strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return NewPDFBackdrop(path, 0)
	}
	return NewImageBackdrop(path)
}

// PDFBackdrop rasterises one page of a PDF, typically a design export.
type PDFBackdrop struct {
	doc  *fitz.Document
	page int
}

func NewPDFBackdrop(path string, page int) (*PDFBackdrop, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if page < 0 || page >= doc.NumPage() {
		doc.Close()
		return nil, fmt.Errorf("page %d out of range, %s has %d", page, path, doc.NumPage())
	}
	return &PDFBackdrop{doc: doc, page: page}, nil
}

func (p *PDFBackdrop) Render(dpi int) (image.Image, error) {
	return p.doc.ImageDPI(p.page, float64(dpi))
}

func (p *PDFBackdrop) Close() error {
	return p.doc.Close()
}

// ImageBackdrop is a PNG or JPEG file.
type ImageBackdrop struct {
	path string
}

func NewImageBackdrop(path string) (*ImageBackdrop, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return &ImageBackdrop{path: path}, nil
}

// Render decodes the file; dpi does not apply to raster images.
func (s *ImageBackdrop) Render(int) (image.Image, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return img, nil
}

func (s *ImageBackdrop) Close() error {
	return nil
}
