// internal/extract/screenshot.go
package extract

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sort"

	xdraw "golang.org/x/image/draw"

	"github.com/mirror-makers/replica/pkg/models"
)

const (
	// maxDominantColors caps the dominant-color list.
	maxDominantColors = 5
	// maxSampleDim bounds the longer edge of the image used for color
	// counting; full-page captures can run to tens of millions of pixels.
	maxSampleDim = 512
)

// SummarizeScreenshot decodes a captured raster image and extracts its pixel
// dimensions and the five most frequent colors as hex strings. Large
// captures are downscaled before counting. Ties between equally frequent
// colors break in an unspecified order. A decode failure returns an error;
// callers treat it as non-fatal.
func SummarizeScreenshot(data []byte) (*models.ScreenshotSummary, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode screenshot: %w", err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("screenshot has empty bounds")
	}

	rgba := normalizeRGBA(img)

	counts := make(map[uint32]int)
	sample := rgba.Bounds()
	for y := sample.Min.Y; y < sample.Max.Y; y++ {
		for x := sample.Min.X; x < sample.Max.X; x++ {
			offset := rgba.PixOffset(x, y)
			r := uint32(rgba.Pix[offset])
			g := uint32(rgba.Pix[offset+1])
			b := uint32(rgba.Pix[offset+2])
			counts[r<<16|g<<8|b]++
		}
	}

	type colorCount struct {
		color uint32
		count int
	}
	ranked := make([]colorCount, 0, len(counts))
	for color, count := range counts {
		ranked = append(ranked, colorCount{color, count})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})

	dominant := []string{}
	for i := 0; i < len(ranked) && i < maxDominantColors; i++ {
		c := ranked[i].color
		dominant = append(dominant, fmt.Sprintf("#%02x%02x%02x", c>>16&0xff, c>>8&0xff, c&0xff))
	}

	return &models.ScreenshotSummary{
		Dimensions:     models.Dimensions{Width: width, Height: height},
		DominantColors: dominant,
		Base64Image:    base64.StdEncoding.EncodeToString(data),
	}, nil
}

// normalizeRGBA converts any decoded image to RGBA, downscaling captures
// whose longer edge exceeds the sampling bound.
func normalizeRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	longer := width
	if height > longer {
		longer = height
	}

	if longer > maxSampleDim {
		scale := float64(maxSampleDim) / float64(longer)
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
		return dst
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.Copy(dst, image.Point{}, img, bounds, xdraw.Src, nil)
	return dst
}
