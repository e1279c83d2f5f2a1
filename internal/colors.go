package internal

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Color interface defines how to colorize text
type Color interface {
	Sprint(text string) string
}

// ColorWrapper wraps fatih/color functionality
type ColorWrapper struct {
	colorFunc func(...interface{}) string
	isRGB     bool
	r, g, b   uint8
}

// Sprint returns text with the color applied. Output is left plain when
// fatih/color has decided the destination is not a terminal.
func (c ColorWrapper) Sprint(text string) string {
	if c.isRGB {
		if color.NoColor {
			return text
		}
		return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", c.r, c.g, c.b, text)
	}
	return c.colorFunc(text)
}

var rgbRegex = regexp.MustCompile(`^#([a-fA-F0-9]{2})([a-fA-F0-9]{2})([a-fA-F0-9]{2})$`)

var (
	colorCache = make(map[string]Color, 16)
	colorMutex sync.RWMutex
)

var predefinedColors = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
	"gray":    color.FgHiBlack,
	"default": color.Reset,
}

// GetColor parses a color name ("green") or RGB hex ("#1b1cbf").
func GetColor(name string) (Color, error) {
	colorMutex.RLock()
	if cached, exists := colorCache[name]; exists {
		colorMutex.RUnlock()
		return cached, nil
	}
	colorMutex.RUnlock()

	var result Color

	if m := rgbRegex.FindStringSubmatch(name); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		result = ColorWrapper{isRGB: true, r: uint8(r), g: uint8(g), b: uint8(b)}
	} else if attr, exists := predefinedColors[strings.ToLower(name)]; exists {
		result = ColorWrapper{colorFunc: color.New(attr).SprintFunc()}
	} else {
		return nil, fmt.Errorf("unknown color: %s", name)
	}

	colorMutex.Lock()
	colorCache[name] = result
	colorMutex.Unlock()

	return result, nil
}

// Palette holds the colors used when printing haiku to the terminal.
type Palette struct {
	Title Color
	Form  Color
	Line  Color
}

// NewPalette resolves the three configured color names.
func NewPalette(title, form, line string) (Palette, error) {
	var p Palette
	var err error
	if p.Title, err = GetColor(title); err != nil {
		return Palette{}, fmt.Errorf("title color: %w", err)
	}
	if p.Form, err = GetColor(form); err != nil {
		return Palette{}, fmt.Errorf("form color: %w", err)
	}
	if p.Line, err = GetColor(line); err != nil {
		return Palette{}, fmt.Errorf("line color: %w", err)
	}
	return p, nil
}

// FormatHaiku renders a found verse for terminal output.
func (p Palette) FormatHaiku(source, form string, lines []string) string {
	var b strings.Builder
	b.WriteString(p.Form.Sprint(form))
	if source != "" {
		b.WriteString(" ")
		b.WriteString(p.Title.Sprint(source))
	}
	b.WriteByte('\n')
	for _, ln := range lines {
		b.WriteString("  ")
		b.WriteString(p.Line.Sprint(ln))
		b.WriteByte('\n')
	}
	return b.String()
}
