package texture

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"

	"falkenstein/internal/threading/core"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

var extensions = []string{".png", ".bmp"}

// LoadDir builds an atlas from bitmaps named by id ("00.png", "07.bmp", ...).
// Any size of source image is accepted and scaled to size x size with nearest
// neighbour sampling. Missing files fall back to the built-in pattern. The
// ids read from disk are returned in ascending order.
func LoadDir(dir string, size int) (*Atlas, []int, error) {
	a, err := Generate(size)
	if err != nil {
		return nil, nil, err
	}
	if dir == "" {
		return a, nil, nil
	}

	ids := make([]int, Count)
	for id := range ids {
		ids[id] = id
	}
	files := core.ParallelMap(ids, func(id int) decoded {
		img, err := openTexture(dir, id)
		return decoded{img, err}
	})

	var loaded []int
	for id, d := range files {
		if errors.Is(d.err, fs.ErrNotExist) {
			continue
		}
		if d.err != nil {
			return nil, nil, d.err
		}
		a.Put(id, d.img)
		loaded = append(loaded, id)
	}
	return a, loaded, nil
}

type decoded struct {
	img image.Image
	err error
}

func openTexture(dir string, id int) (image.Image, error) {
	for _, ext := range extensions {
		path := filepath.Join(dir, fmt.Sprintf("%02d%s", id, ext))
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
		}
		return img, nil
	}
	return nil, fs.ErrNotExist
}

// Put copies img into texture id, scaling it to the atlas size. Pixels with
// less than half alpha become the transparency marker.
func (a *Atlas) Put(id int, img image.Image) {
	n := a.size
	dst := image.NewRGBA(image.Rect(0, 0, n, n))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := dst.RGBAAt(x, y)
			if c.A < 0x80 {
				a.Set(id, x, y, Transparent[0], Transparent[1], Transparent[2])
				continue
			}
			a.Set(id, x, y, c.R, c.G, c.B)
		}
	}
}
