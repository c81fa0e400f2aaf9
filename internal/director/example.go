package director

import (
	"github.com/ivlev/sitemotion/internal/reveal"
	"github.com/ivlev/sitemotion/internal/sequencer"
)

// ExampleScene is the scene written by "sitemotion init": the studio
// landing page laid out on a 1280x720 canvas.
func ExampleScene() *Scene {
	headline := sequencer.TransitionConfig{
		Gap:             0.15,
		StrikeDuration:  0.15,
		FadeOutDuration: 0.1,
		Typing: reveal.Config{
			BaseDelay:      0.02,
			DelayVariation: 0.01,
			TypoChance:     0.05,
			Duration:       0.015,
		},
	}
	typing := reveal.DefaultClean()
	typing.Stagger = 0.005
	return &Scene{
		Version: "1.0",
		Units: []Unit{
			{ID: "rev-1", Kind: KindText, Text: "We build websites", Bounds: Rectangle{X: 120, Y: 80, W: 640, H: 48}},
			{ID: "rev-1-strike", Kind: "strike", Parent: "rev-1", Bounds: Rectangle{X: 120, Y: 102, W: 640, H: 4}},
			{ID: "rev-2", Kind: KindText, Text: "We craft websites", Bounds: Rectangle{X: 120, Y: 80, W: 640, H: 48}},
			{ID: "rev-2-strike", Kind: "strike", Parent: "rev-2", Bounds: Rectangle{X: 120, Y: 102, W: 640, H: 4}},
			{ID: "rev-3", Kind: KindText, Text: "We design experiences", Bounds: Rectangle{X: 120, Y: 80, W: 800, H: 48}},
			{ID: "do-over", Kind: KindText, Text: "do over", Bounds: Rectangle{X: 120, Y: 160, W: 560, H: 120}, Color: "#e4002b"},
			{ID: "tagline", Kind: KindText, Text: "Start fresh with us.", Bounds: Rectangle{X: 120, Y: 310, W: 480, H: 28}},
			{ID: "cta", Kind: KindText, Text: "Let's talk", Bounds: Rectangle{X: 120, Y: 370, W: 240, H: 36}},
			{ID: "cta-dup", Kind: KindText, Text: "Let's talk", Bounds: Rectangle{X: 120, Y: 370, W: 240, H: 36}},
			{ID: "cta-arrow", Kind: "box", Bounds: Rectangle{X: 380, Y: 374, W: 28, H: 28}},
			{ID: "scroll-hint", Kind: "box", Bounds: Rectangle{X: 420, Y: 374, W: 120, H: 28}},
			{ID: "work", Kind: KindText, Text: "Our work", Bounds: Rectangle{X: 760, Y: 300, W: 320, H: 60}},
			{ID: "work-mask", Kind: "mask", Bounds: Rectangle{X: 760, Y: 300, W: 320, H: 60}, StartAngle: -90},
			{ID: "ink", Kind: "box", Bounds: Rectangle{X: 560, Y: 460, W: 160, H: 80}, Color: "#1d1d1f"},
			{ID: "hello", Kind: KindText, Text: "say hello", Bounds: Rectangle{X: 120, Y: 560, W: 420, H: 64}},
			{ID: "email", Kind: "box", Bounds: Rectangle{X: 600, Y: 570, W: 260, H: 40}},
			{ID: "footer", Kind: "box", Bounds: Rectangle{X: 0, Y: 640, W: 1280, H: 80}, Color: "#1d1d1f"},
			{ID: "footer-qr", Kind: "qr", Parent: "footer", QR: "mailto:hello@example.com", Bounds: Rectangle{X: 1180, Y: 648, W: 64, H: 64}},
		},
		Sections: []Section{
			{Name: "headline", Kind: TextRevisions, Transition: &headline, Segments: []SegmentSpec{
				{Container: "rev-1", Strike: "rev-1-strike"},
				{Container: "rev-2", Strike: "rev-2-strike"},
				{Container: "rev-3", Final: true},
			}},
			{Name: "do-over", Kind: DoOver, Target: "do-over", Trigger: &Range{Start: 0, End: 600}},
			{Name: "tagline", Kind: CleanTyping, Target: "tagline", Typing: &typing, Delay: 0.25},
			{Name: "cta", Kind: RollingText, Target: "cta", Duplicate: "cta-dup", Arrow: "cta-arrow", Indicator: "scroll-hint"},
			{Name: "work", Kind: CircleWipe, Target: "work", Mask: "work-mask", Trigger: &Range{Start: 300, End: 900}, Scrub: 1},
			{Name: "ink", Kind: Ink, Target: "ink", Ink: "sway", Direction: LeftToRight, Trigger: &Range{Start: 600, End: 1400}},
			{Name: "hello", Kind: SayHelloText, Target: "hello", Trigger: &Range{Start: 900, End: 1600}, Scrub: 1},
			{Name: "email", Kind: Float, Target: "email", Trigger: &Range{Start: 1200, End: 1800}},
			{Name: "footer", Kind: Footer, Target: "footer", Trigger: &Range{Start: 1800, End: 2000}},
		},
	}
}
