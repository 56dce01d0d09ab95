package debugdraw

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/png"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// CubeFaceSuffixes name the six faces in GL order: +X, -X, +Y, -Y, +Z, -Z.
var CubeFaceSuffixes = [6]string{"_rt", "_lf", "_up", "_dn", "_bk", "_ft"}

// CubeFaceExts are tried in order for each face.
var CubeFaceExts = []string{".png", ".bmp", ".tiff", ".webp"}

// CubeImages holds the decoded faces of a cube map, all square and of equal
// size.
type CubeImages [6]*image.NRGBA

// Size returns the side length of each face.
func (c *CubeImages) Size() int {
	if c[0] == nil {
		return 0
	}
	return c[0].Rect.Dx()
}

// LoadCubeImages reads baseName+suffix+ext for every face suffix in
// CubeFaceSuffixes, using the first extension of CubeFaceExts that exists.
func LoadCubeImages(baseName string) (*CubeImages, error) {
	return LoadCubeImagesFS(osFS{}, baseName)
}

// LoadCubeImagesFS is LoadCubeImages reading from fsys.
func LoadCubeImagesFS(fsys fs.FS, baseName string) (*CubeImages, error) {
	var cube CubeImages
	for i, suffix := range CubeFaceSuffixes {
		img, err := loadFace(fsys, baseName+suffix)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		if b.Dx() != b.Dy() {
			return nil, fmt.Errorf("%w: %s%s is %dx%d, want square", ErrCubeFace, baseName, suffix, b.Dx(), b.Dy())
		}
		if i > 0 && b.Dx() != cube.Size() {
			return nil, fmt.Errorf("%w: %s%s is %d pixels, want %d", ErrCubeFace, baseName, suffix, b.Dx(), cube.Size())
		}
		cube[i] = toNRGBA(img)
	}
	Logger().Debug("loaded cube map", "base", baseName, "size", cube.Size())
	return &cube, nil
}

func loadFace(fsys fs.FS, name string) (image.Image, error) {
	for _, ext := range CubeFaceExts {
		f, err := fsys.Open(name + ext)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s%s: %v", ErrCubeFace, name, ext, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("%w: no image found for %s", ErrCubeFace, name)
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}

// osFS opens names as given, relative or absolute, unlike os.DirFS.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) { return os.Open(name) }
