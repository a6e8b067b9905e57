//
// Copyright (c) 2026 The webwrap Authors
// All rights reserved
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package scaffold

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"unicode"

	"github.com/juju/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	IconSize = 512

	// glyphScale blows the 7x13 bitmap glyph up to fill most of the icon.
	glyphScale = 24
)

var iconBackground = color.RGBA{0x21, 0x96, 0xf3, 0xff}

// IconLetter picks the letter drawn on a generated icon: the first ASCII
// letter or digit of host, upper-cased, or 'W'.
func IconLetter(host string) rune {
	for _, r := range host {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
	}
	return 'W'
}

// GenerateIcon draws a white letter on a blue square.
func GenerateIcon(letter rune) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
	draw.Draw(img, img.Bounds(), image.NewUniform(iconBackground), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	glyph := image.NewAlpha(image.Rect(0, 0, face.Advance, face.Height))
	d := &font.Drawer{
		Dst:  glyph,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.P(0, face.Ascent),
	}
	d.DrawString(string(letter))

	gw, gh := face.Advance*glyphScale, face.Height*glyphScale
	x0, y0 := (IconSize-gw)/2, (IconSize-gh)/2
	for y := 0; y < face.Height; y++ {
		for x := 0; x < face.Advance; x++ {
			if glyph.AlphaAt(x, y).A < 0x80 {
				continue
			}
			r := image.Rect(x0+x*glyphScale, y0+y*glyphScale, x0+(x+1)*glyphScale, y0+(y+1)*glyphScale)
			draw.Draw(img, r, image.White, image.Point{}, draw.Src)
		}
	}
	return img
}

// EncodeIcon scales img to IconSize x IconSize if needed and encodes it as
// PNG.
func EncodeIcon(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() != IconSize || b.Dy() != IconSize {
		dst := image.NewRGBA(image.Rect(0, 0, IconSize, IconSize))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Annotatef(err, "encoding icon")
	}
	return buf.Bytes(), nil
}
