package ui

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/temporalio/temporal-restaurant/imagecache"
)

// thumbnailMsg carries a finished image fetch back to the menu row that
// asked for it.
type thumbnailMsg struct {
	row   int
	token imagecache.Token
	data  []byte
	err   error
}

func fetchThumbnail(cache *imagecache.Cache, row int, token imagecache.Token) tea.Cmd {
	return func() tea.Msg {
		data, err := cache.Get(context.Background(), token.URL)
		return thumbnailMsg{row: row, token: token, data: data, err: err}
	}
}

// swatch reduces a thumbnail to the colour at its centre, which is all a
// terminal cell can show.
func swatch(data []byte) (lipgloss.Color, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	b := img.Bounds()
	r, g, bl, _ := img.At(b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2).RGBA()

	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, bl>>8)), nil
}
