package ui

import (
	"bytes"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Text faces, loaded on first use. A nil face just skips drawing.
var faces struct {
	regular *text.GoTextFace
	bold    *text.GoTextFace
}

var loadFaces = sync.OnceFunc(func() {
	faces.regular = newFace(goregular.TTF, 14)
	faces.bold = newFace(gobold.TTF, 18)
})

func newFace(ttf []byte, size float64) *text.GoTextFace {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		log.Printf("load font: %v", err)
		return nil
	}
	return &text.GoTextFace{Source: src, Size: size}
}

func regularFace() *text.GoTextFace {
	loadFaces()
	return faces.regular
}

func boldFace() *text.GoTextFace {
	loadFaces()
	return faces.bold
}
