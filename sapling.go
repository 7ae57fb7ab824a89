package sapling

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a surface submits the color.
type Color struct {
	R, G, B, A float64
}

var (
	// ColorWhite is the default fill and stroke color.
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is opaque black.
	ColorBlack = Color{0, 0, 0, 1}
	// ColorRed is used by the debug overlay.
	ColorRed = Color{1, 0, 0, 1}
)

// RGBA returns the premultiplied 8-bit form of c.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D point or offset.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// whitePixel is a 1x1 white image used as the source for filled paths.
// Created on first use so importing the package never touches the GPU.
var whitePixel *ebiten.Image

func whitePixelImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// EventType identifies a kind of interaction event forwarded to an EntityStore.
type EventType uint8

const (
	EventTrigger      EventType = iota // an instance's Trigger fired from TriggerReaction
	EventKeyDown                       // a key went down
	EventKeyUp                         // a key was released
	EventKeyPress                      // a character key produced input
	EventPointerStart                  // pointer or touch started
	EventPointerEnd                    // pointer or touch ended
	EventPointerMove                   // pointer or touch moved
)

// KeyEvent selects which key handler table a key event targets.
type KeyEvent uint8

const (
	KeyDown KeyEvent = iota
	KeyUp
	KeyPress
)

// PointerPhase identifies a stage of a pointer or touch interaction.
type PointerPhase uint8

const (
	PointerStart PointerPhase = iota
	PointerEnd
	PointerMove
)
