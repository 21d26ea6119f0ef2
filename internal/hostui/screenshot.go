package hostui

import (
	"bufio"
	"fmt"
	"os"
)

// SaveScreenshot writes the console's current frame as a binary PPM image.
func (a *App) SaveScreenshot(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "P6\n256 240\n255\n")
	var rgb [3]byte
	for _, pixel := range a.console.Framebuffer() {
		rgb[0] = byte(pixel >> 16)
		rgb[1] = byte(pixel >> 8)
		rgb[2] = byte(pixel)
		if _, err := w.Write(rgb[:]); err != nil {
			return err
		}
	}
	return w.Flush()
}
