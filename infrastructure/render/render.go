package render

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	"image/png"

	"github.com/prasetyowira/qrgen/constant"
	"github.com/skip2/go-qrcode"
)

// Level selects the QR error-correction level
type Level string

// Supported error-correction levels
const (
	LevelLow     Level = "L"
	LevelMedium  Level = "M"
	LevelQuarter Level = "Q"
	LevelHigh    Level = "H"
)

// Rendering bounds
const (
	MinSize     = 64
	MaxSize     = 2048
	DefaultSize = 256

	// DefaultMargin is the quiet zone width in modules
	DefaultMargin = 4
	MaxMargin     = 16

	// logoRatio divides the canvas dimension to size the centered logo
	logoRatio = 5
)

// Options are the cosmetic rendering parameters for a QR image
type Options struct {
	// Size is the requested image dimension in pixels
	Size int
	// Level is the error-correction level
	Level Level
	// Foreground and Background are hex colors ("#RRGGBB" or "#RGB")
	Foreground string
	Background string
	// Margin is the quiet zone width in modules; 0 disables the quiet zone
	Margin int
	// Logo is an optional PNG or JPEG image drawn over the center
	Logo []byte
}

// CacheKey returns a stable string identifying the option set, used together
// with the encoded content to key the render cache
func (o Options) CacheKey() string {
	logoDigest := ""
	if len(o.Logo) > 0 {
		sum := sha256.Sum256(o.Logo)
		logoDigest = hex.EncodeToString(sum[:])
	}
	return fmt.Sprintf("%d|%s|%s|%s|%d|%s", o.Size, o.Level, o.Foreground, o.Background, o.Margin, logoDigest)
}

// Renderer produces PNG images from encoded QR payloads
type Renderer struct {
	maxLogoBytes int
}

// NewRenderer creates a new renderer. maxLogoBytes caps the accepted logo
// upload size.
func NewRenderer(maxLogoBytes int) *Renderer {
	return &Renderer{
		maxLogoBytes: maxLogoBytes,
	}
}

// Render generates a QR symbol for content and composes the final PNG:
// background-filled canvas, quiet zone of Margin modules, colored modules
// and an optional centered logo. Identical inputs produce identical bytes.
func (r *Renderer) Render(content string, opts Options) ([]byte, error) {
	size := opts.Size
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	fg, err := parseHexColor(opts.Foreground, color.RGBA{0, 0, 0, 255})
	if err != nil {
		return nil, err
	}
	bg, err := parseHexColor(opts.Background, color.RGBA{255, 255, 255, 255})
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(content, opts.Level.recoveryLevel())
	if err != nil {
		return nil, fmt.Errorf("generate qr symbol: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg
	q.DisableBorder = true

	// Scale so that modules plus the quiet zone fit the requested size,
	// then compose onto the canvas ourselves; skip2's built-in border is
	// fixed at 4 modules and cannot be customized.
	modules := len(q.Bitmap())
	margin := opts.Margin
	moduleSize := size / (modules + 2*margin)
	if moduleSize < 1 {
		moduleSize = 1
	}

	symbol := q.Image(moduleSize * modules)

	canvasDim := moduleSize * (modules + 2*margin)
	canvas := image.NewRGBA(image.Rect(0, 0, canvasDim, canvasDim))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	offset := margin * moduleSize
	target := image.Rect(offset, offset, offset+moduleSize*modules, offset+moduleSize*modules)
	draw.Draw(canvas, target, symbol, symbol.Bounds().Min, draw.Src)

	if len(opts.Logo) > 0 {
		if err := r.overlayLogo(canvas, opts.Logo); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	return buf.Bytes(), nil
}

// overlayLogo decodes the logo, scales it to a fifth of the canvas and draws
// it over the center
func (r *Renderer) overlayLogo(canvas *image.RGBA, logo []byte) error {
	if r.maxLogoBytes > 0 && len(logo) > r.maxLogoBytes {
		return errors.New(constant.ErrLogoTooLarge)
	}

	src, _, err := image.Decode(bytes.NewReader(logo))
	if err != nil {
		return fmt.Errorf("decode logo: %w", err)
	}

	canvasDim := canvas.Bounds().Dx()
	maxDim := canvasDim / logoRatio
	if maxDim < 1 {
		maxDim = 1
	}

	scaled := scaleNearest(src, maxDim)

	offsetX := (canvasDim - scaled.Bounds().Dx()) / 2
	offsetY := (canvasDim - scaled.Bounds().Dy()) / 2
	target := scaled.Bounds().Add(image.Pt(offsetX, offsetY))
	draw.Draw(canvas, target, scaled, scaled.Bounds().Min, draw.Over)

	return nil
}

// scaleNearest resizes src with nearest-neighbour sampling so that its larger
// dimension equals maxDim, preserving aspect ratio
func scaleNearest(src image.Image, maxDim int) *image.RGBA {
	srcBounds := src.Bounds()
	srcW := srcBounds.Dx()
	srcH := srcBounds.Dy()

	dstW, dstH := maxDim, maxDim
	if srcW > srcH {
		dstH = srcH * maxDim / srcW
	} else if srcH > srcW {
		dstW = srcW * maxDim / srcH
	}
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	for y := 0; y < dstH; y++ {
		for x := 0; x < dstW; x++ {
			srcX := srcBounds.Min.X + x*srcW/dstW
			srcY := srcBounds.Min.Y + y*srcH/dstH
			dst.Set(x, y, src.At(srcX, srcY))
		}
	}

	return dst
}

// recoveryLevel maps the level to skip2's recovery constant. skip2 names the
// standard Q level "High" and H "Highest". Unset defaults to Medium.
func (l Level) recoveryLevel() qrcode.RecoveryLevel {
	switch l {
	case LevelLow:
		return qrcode.Low
	case LevelQuarter:
		return qrcode.High
	case LevelHigh:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// parseHexColor parses "#RRGGBB", "RRGGBB" or the short "#RGB" form. An empty
// string returns the fallback.
func parseHexColor(s string, fallback color.RGBA) (color.RGBA, error) {
	if s == "" {
		return fallback, nil
	}

	if s[0] == '#' {
		s = s[1:]
	}

	hexVal := func(c byte) (uint8, bool) {
		switch {
		case c >= '0' && c <= '9':
			return c - '0', true
		case c >= 'a' && c <= 'f':
			return c - 'a' + 10, true
		case c >= 'A' && c <= 'F':
			return c - 'A' + 10, true
		}
		return 0, false
	}

	switch len(s) {
	case 6:
		var vals [6]uint8
		for i := 0; i < 6; i++ {
			v, ok := hexVal(s[i])
			if !ok {
				return fallback, errors.New(constant.ErrInvalidHexColor)
			}
			vals[i] = v
		}
		return color.RGBA{
			R: vals[0]<<4 | vals[1],
			G: vals[2]<<4 | vals[3],
			B: vals[4]<<4 | vals[5],
			A: 255,
		}, nil
	case 3:
		var vals [3]uint8
		for i := 0; i < 3; i++ {
			v, ok := hexVal(s[i])
			if !ok {
				return fallback, errors.New(constant.ErrInvalidHexColor)
			}
			vals[i] = v
		}
		return color.RGBA{
			R: vals[0]<<4 | vals[0],
			G: vals[1]<<4 | vals[1],
			B: vals[2]<<4 | vals[2],
			A: 255,
		}, nil
	}

	return fallback, errors.New(constant.ErrInvalidHexColor)
}
