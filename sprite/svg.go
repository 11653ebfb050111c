package sprite

import (
	"image"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// SVGToImage rasterizes a custom SVG marker at twice its viewbox size so it
// stays crisp on high-density displays.
func SVGToImage(svgFile string) (image.Image, error) {
	f, err := os.Open(svgFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f)
	if err != nil {
		return nil, err
	}

	w := int(icon.ViewBox.W) * 2
	h := int(icon.ViewBox.H) * 2
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	dasher.SetColor(nil) // keep the icon's own colors and transparency

	icon.Draw(dasher, 1)
	return img, nil
}
