package history

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/julianstephens/lunchwheel/internal/models"
)

// ShareText is a compact one-line-per-day summary of the weekly menu
func ShareText(weekly models.WeeklyHistory) string {
	lines := make([]string, 0, len(models.Weekdays)+1)
	lines = append(lines, "Lunch this week:")
	for _, row := range WeekRows(weekly, "", false) {
		lines = append(lines, fmt.Sprintf("%s: %s", row.Day, row.Value))
	}
	return strings.Join(lines, "\n")
}

// QR encodes text and draws it with half-block characters, two modules per line
func QR(text string) (string, error) {
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode qr: %w", err)
	}
	bits := code.Bitmap()

	var b strings.Builder
	for y := 0; y < len(bits); y += 2 {
		for x := range bits[y] {
			top := bits[y][x]
			bottom := y+1 < len(bits) && bits[y+1][x]
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// WriteQRPNG saves the QR code for text as a PNG image
func WriteQRPNG(text, path string, size int) error {
	if err := qrcode.WriteFile(text, qrcode.Medium, size, path); err != nil {
		return fmt.Errorf("write qr png: %w", err)
	}
	return nil
}
