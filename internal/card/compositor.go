package card

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/8FAX/HoyoHelper/internal/model"
)

// CardGenerationError means no card could be produced. The caller is
// expected to continue without one.
type CardGenerationError struct {
	Reason string
}

func (e *CardGenerationError) Error() string {
	return "card generation failed: " + e.Reason
}

// Layout constants match the fixed-size card art; nothing is computed
// from the canvas.
var (
	frameOffsets   = []image.Point{image.Pt(20, 68), image.Pt(20, 284)}
	todayIconAt    = image.Pt(40, 88)
	tomorrowIconAt = image.Pt(40, 304)
	portraitAt     = image.Pt(630, 422)
)

// The day-streak number is centered inside this pixel band.
const (
	dayBandLeft  = 900
	dayBandRight = 924
)

var (
	shadowColor = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	mainColor   = color.RGBA{0xFF, 0xC0, 0xCB, 0xFF} // pink
	accentColor = color.RGBA{0x80, 0x00, 0x80, 0xFF} // purple
)

// fontSet is built once at startup and shared read-only afterwards.
type fontSet struct {
	reward    font.Face // 30pt
	title     font.Face // 20pt
	bigDay    font.Face // 35pt
	label     font.Face // 23pt
	multiline font.Face // 18pt
}

func newFontSet() (*fontSet, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := func(size float64) (font.Face, error) {
		return opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}

	fs := &fontSet{}
	for _, f := range []struct {
		dst  *font.Face
		size float64
	}{
		{&fs.reward, 30},
		{&fs.title, 20},
		{&fs.bigDay, 35},
		{&fs.label, 23},
		{&fs.multiline, 18},
	} {
		if *f.dst, err = face(f.size); err != nil {
			return nil, fmt.Errorf("load font face: %w", err)
		}
	}
	return fs, nil
}

// Compositor renders check-in cards from CDN art, portal reward icons
// and the parsed card data.
type Compositor struct {
	assets *Assets
	fonts  *fontSet
	log    *zap.Logger
	rand   *rand.Rand
}

func NewCompositor(log *zap.Logger, assets *Assets) (*Compositor, error) {
	fonts, err := newFontSet()
	if err != nil {
		return nil, err
	}
	return &Compositor{
		assets: assets,
		fonts:  fonts,
		log:    log,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Render composes the check-in card. Missing decorations degrade to a
// plainer card; only a missing base image makes the whole render fail.
// Panics inside composition are reported as a soft failure, never
// propagated: the sign-in flow must survive a broken card.
func (c *Compositor) Render(ctx context.Context, data *model.CardData, game string) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("card composition panicked", zap.Any("panic", r))
			img = nil
			err = &CardGenerationError{Reason: fmt.Sprintf("composition panic: %v", r)}
		}
	}()

	base := c.assets.GetWithFallback(ctx, "cards", c.rand.Intn(9)+1, game)
	if base == nil {
		return nil, &CardGenerationError{Reason: "no base card image available for " + game}
	}
	canvas := image.NewRGBA(image.Rectangle{Max: base.Bounds().Size()})
	draw.Draw(canvas, canvas.Bounds(), base, base.Bounds().Min, draw.Src)

	if frame := c.assets.GetFrame(ctx); frame != nil {
		for _, at := range frameOffsets {
			overlay(canvas, frame, at)
		}
	}

	c.pasteIcon(ctx, canvas, data.Today.Icon, todayIconAt)

	c.drawText(canvas, c.fonts.title, 180, 80, "Today you got:", shadowColor)
	rewardLine := fmt.Sprintf("%s x%d", data.Today.Name, data.Today.Count)
	c.drawText(canvas, c.fonts.reward, 179, 119, rewardLine, shadowColor)
	c.drawText(canvas, c.fonts.reward, 180, 120, rewardLine, accentColor)

	if data.EndOfMonth {
		c.drawEndOfMonth(ctx, canvas, data, game)
	} else if data.Tomorrow != nil {
		c.pasteIcon(ctx, canvas, data.Tomorrow.Icon, tomorrowIconAt)
		c.drawText(canvas, c.fonts.title, 180, 300,
			fmt.Sprintf("In %s you will get:", data.RefreshLabel), shadowColor)
		nextLine := fmt.Sprintf("%s x%d", data.Tomorrow.Name, data.Tomorrow.Count)
		c.drawText(canvas, c.fonts.reward, 179, 339, nextLine, shadowColor)
		c.drawText(canvas, c.fonts.reward, 180, 340, nextLine, accentColor)
	}

	c.drawDayStreak(canvas, data.DayNumber)

	// portrait ids 2-32
	if portrait := c.assets.GetWithFallback(ctx, "car_dec", c.rand.Intn(31)+2, game); portrait != nil {
		overlay(canvas, portrait, portraitAt)
	} else {
		c.log.Warn("portrait unavailable, card rendered without one", zap.String("game", game))
	}

	return canvas, nil
}

func (c *Compositor) drawEndOfMonth(ctx context.Context, canvas *image.RGBA, data *model.CardData, game string) {
	// sticker ids 2-153
	if sticker := c.assets.GetWithFallback(ctx, "stickers", c.rand.Intn(152)+2, game); sticker != nil {
		overlay(canvas, resizeSquare(sticker, iconSize), tomorrowIconAt)
	} else {
		c.log.Warn("sticker unavailable, card rendered without one", zap.String("game", game))
	}

	c.drawText(canvas, c.fonts.title, 180, 300, "No More rewards this month!", shadowColor)
	lines := []string{
		"You have claimed all rewards this month!",
		fmt.Sprintf("Come back in %s", data.RefreshLabel),
		"to see next month's rewards!",
	}
	c.drawLines(canvas, c.fonts.multiline, 179, 339, lines, mainColor)
	c.drawLines(canvas, c.fonts.multiline, 180, 340, lines, shadowColor)
}

func (c *Compositor) drawDayStreak(canvas *image.RGBA, dayNumber int) {
	days := strconv.Itoa(dayNumber)
	label := "days"
	if dayNumber == 1 {
		label = "day"
	}

	c.drawText(canvas, c.fonts.label, 865, 20, "Checked in", shadowColor)

	width := font.MeasureString(c.fonts.bigDay, days).Ceil()
	x := (dayBandLeft+dayBandRight-width)/2 - 1
	c.drawText(canvas, c.fonts.bigDay, x, 59, days, mainColor)
	c.drawText(canvas, c.fonts.bigDay, x+1, 60, days, shadowColor)

	c.drawText(canvas, c.fonts.label, 835, 100, label+" this month!", shadowColor)
}

func (c *Compositor) pasteIcon(ctx context.Context, canvas *image.RGBA, url string, at image.Point) {
	if url == "" {
		return
	}
	icon, err := c.assets.FetchIcon(ctx, url)
	if err != nil {
		c.log.Warn("reward icon unavailable", zap.String("url", url), zap.Error(err))
		return
	}
	overlay(canvas, icon, at)
}

func (c *Compositor) drawText(dst draw.Image, face font.Face, x, y int, text string, clr color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (c *Compositor) drawLines(dst draw.Image, face font.Face, x, y int, lines []string, clr color.Color) {
	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range lines {
		c.drawText(dst, face, x, y+i*lineHeight, line, clr)
	}
}

func overlay(dst *image.RGBA, src image.Image, at image.Point) {
	r := image.Rectangle{Min: at, Max: at.Add(src.Bounds().Size())}
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Over)
}
