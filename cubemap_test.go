package debugdraw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"
)

func faceImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func cubeFS(t *testing.T, size func(face int) (int, int)) fstest.MapFS {
	fsys := fstest.MapFS{}
	for i, suffix := range CubeFaceSuffixes {
		w, h := size(i)
		img := faceImage(w, h, color.NRGBA{R: uint8(40 * i), A: 255})
		fsys["sky/day"+suffix+".png"] = &fstest.MapFile{Data: encodePNG(t, img)}
	}
	return fsys
}

func TestLoadCubeImagesFS(t *testing.T) {
	fsys := cubeFS(t, func(int) (int, int) { return 4, 4 })
	cube, err := LoadCubeImagesFS(fsys, "sky/day")
	if err != nil {
		t.Fatal(err)
	}
	if cube.Size() != 4 {
		t.Errorf("Size() = %d, want 4", cube.Size())
	}
	for i, face := range cube {
		if got := face.NRGBAAt(1, 1).R; got != uint8(40*i) {
			t.Errorf("face %d red = %d, want %d", i, got, 40*i)
		}
	}
}

func TestLoadCubeImagesErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"not square", cubeFS(t, func(int) (int, int) { return 4, 2 })},
		{"size mismatch", cubeFS(t, func(i int) (int, int) {
			if i == 3 {
				return 8, 8
			}
			return 4, 4
		})},
		{"missing face", func() fstest.MapFS {
			fsys := cubeFS(t, func(int) (int, int) { return 4, 4 })
			delete(fsys, "sky/day_dn.png")
			return fsys
		}()},
		{"corrupt face", func() fstest.MapFS {
			fsys := cubeFS(t, func(int) (int, int) { return 4, 4 })
			fsys["sky/day_up.png"] = &fstest.MapFile{Data: []byte("not a png")}
			return fsys
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCubeImagesFS(tt.fsys, "sky/day")
			if !errors.Is(err, ErrCubeFace) {
				t.Errorf("err = %v, want ErrCubeFace", err)
			}
		})
	}
}

func TestLoadCubeImagesFallsBackToBMP(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "env")
	for i, suffix := range CubeFaceSuffixes {
		img := faceImage(2, 2, color.NRGBA{G: uint8(i), A: 255})
		f, err := os.Create(base + suffix + ".bmp")
		if err != nil {
			t.Fatal(err)
		}
		if err := bmp.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	cube, err := LoadCubeImages(base)
	if err != nil {
		t.Fatal(err)
	}
	if cube.Size() != 2 {
		t.Errorf("Size() = %d, want 2", cube.Size())
	}
	if got := cube[5].NRGBAAt(0, 0).G; got != 5 {
		t.Errorf("-Z face green = %d, want 5", got)
	}
}
