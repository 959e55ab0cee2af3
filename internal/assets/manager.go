package assets

import (
	"embed"
	"image"
	"image/color"
	"strings"

	"bemine/internal/logging"
)

//go:embed text/*.txt
var projectAssets embed.FS

// Overlay copy
const (
	TextStart       = "start.txt"
	TextGameOver    = "gameover.txt"
	TextCelebration = "celebration.txt"
)

// LoadText reads an embedded overlay message.
func LoadText(name string) string {
	data, err := projectAssets.ReadFile("text/" + name)
	if err != nil {
		logging.Fatalf("Failed to read text '%s': %v", name, err)
	}
	return strings.TrimRight(string(data), "\n")
}

// HeartMask rasterizes a heart of size x size pixels using the implicit
// curve (x²+y²-1)³ - x²y³ <= 0.
func HeartMask(size int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, size, size))
	if size <= 0 {
		return img
	}
	scale := 2.6 / float64(size)
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			x := (float64(px)+0.5)*scale - 1.3
			y := 1.3 - (float64(py)+0.5)*scale + 0.1
			a := x*x + y*y - 1
			if a*a*a-x*x*y*y*y <= 0 {
				img.SetAlpha(px, py, color.Alpha{A: 0xff})
			}
		}
	}
	return img
}
