package storage

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// maxImageDimension bounds uploaded logos and photos. Larger images are
// downscaled before storage; aspect ratio is preserved.
const maxImageDimension = 1024

// NormalizeImage decodes a JPEG or PNG and downscales it when either
// dimension exceeds the bound. Other formats, undecodable data, and images
// already within bounds pass through unchanged.
func NormalizeImage(ext string, data []byte) []byte {
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return data
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageDimension && h <= maxImageDimension {
		return data
	}

	if w >= h {
		h = h * maxImageDimension / w
		w = maxImageDimension
	} else {
		w = w * maxImageDimension / h
		h = maxImageDimension
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var out bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&out, dst)
	default:
		err = jpeg.Encode(&out, dst, &jpeg.Options{Quality: 85})
	}
	if err != nil {
		return data
	}
	return out.Bytes()
}
