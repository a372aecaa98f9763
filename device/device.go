// Package device holds the reactive view of the screen the styles are resolved
// for. Media queries and runtime functions read it through signals so only the
// rules that actually depend on a metric are recomputed when it changes.
package device

import "github.com/AnatoleLucet/sigstyle/sig"

type ColorScheme string

const (
	Light ColorScheme = "light"
	Dark  ColorScheme = "dark"
)

type Metrics struct {
	Width       float64
	Height      float64
	PixelRatio  float64
	FontScale   float64
	OS          string
	ColorScheme ColorScheme
}

// DefaultMetrics is a 2x phone in light mode.
var DefaultMetrics = Metrics{
	Width:       390,
	Height:      844,
	PixelRatio:  2,
	FontScale:   1,
	OS:          "ios",
	ColorScheme: Light,
}

type Device struct {
	width       *sig.Signal[float64]
	height      *sig.Signal[float64]
	pixelRatio  *sig.Signal[float64]
	fontScale   *sig.Signal[float64]
	os          *sig.Signal[string]
	colorScheme *sig.Signal[ColorScheme]
}

func New(m Metrics) *Device {
	return &Device{
		width:       sig.NewSignal(m.Width),
		height:      sig.NewSignal(m.Height),
		pixelRatio:  sig.NewSignal(m.PixelRatio),
		fontScale:   sig.NewSignal(m.FontScale),
		os:          sig.NewSignal(m.OS),
		colorScheme: sig.NewSignal(m.ColorScheme),
	}
}

func (d *Device) Width(e *sig.Effect) float64      { return d.width.Get(e) }
func (d *Device) Height(e *sig.Effect) float64     { return d.height.Get(e) }
func (d *Device) PixelRatio(e *sig.Effect) float64 { return d.pixelRatio.Get(e) }
func (d *Device) FontScale(e *sig.Effect) float64  { return d.fontScale.Get(e) }
func (d *Device) OS(e *sig.Effect) string          { return d.os.Get(e) }

// ColorScheme is the system appearance, independent of any app override.
func (d *Device) ColorScheme(e *sig.Effect) ColorScheme { return d.colorScheme.Get(e) }

// SetWindow updates the window size, e.g. after a rotation.
func (d *Device) SetWindow(width, height float64) {
	sig.NewBatch(func() {
		d.width.Write(width)
		d.height.Write(height)
	})
}

func (d *Device) SetPixelRatio(ratio float64)       { d.pixelRatio.Write(ratio) }
func (d *Device) SetFontScale(scale float64)        { d.fontScale.Write(scale) }
func (d *Device) SetOS(os string)                   { d.os.Write(os) }
func (d *Device) SetColorScheme(scheme ColorScheme) { d.colorScheme.Write(scheme) }

// Snapshot reads every metric without subscribing.
func (d *Device) Snapshot() Metrics {
	return Metrics{
		Width:       d.width.Snapshot(),
		Height:      d.height.Snapshot(),
		PixelRatio:  d.pixelRatio.Snapshot(),
		FontScale:   d.fontScale.Snapshot(),
		OS:          d.os.Snapshot(),
		ColorScheme: d.colorScheme.Snapshot(),
	}
}

// Reset restores the given metrics in a single batch.
func (d *Device) Reset(m Metrics) {
	sig.NewBatch(func() {
		d.width.Write(m.Width)
		d.height.Write(m.Height)
		d.pixelRatio.Write(m.PixelRatio)
		d.fontScale.Write(m.FontScale)
		d.os.Write(m.OS)
		d.colorScheme.Write(m.ColorScheme)
	})
}
