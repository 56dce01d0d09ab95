package gldraw

import (
	"image"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"

	"j4k.co/debugdraw"
)

type Sampler2D struct {
	tex uint32
}

// Image takes an image and returns a 2D Sampler. Currently only takes
// *image.NRGBA, *image.RGBA, *image.Alpha, and *image.Gray. No processing is
// done on the image data, such as premultiplying alpha or linearization.
func Image(img image.Image) (*Sampler2D, error) {
	s := newSampler2D()
	if err := s.SetImage(img); err != nil {
		s.Delete()
		return nil, err
	}
	return s, nil
}

func newSampler2D() *Sampler2D {
	s := &Sampler2D{}
	gl.GenTextures(1, &s.tex)
	s.bind()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	verify("glTexParameteri")
	runtime.SetFinalizer(s, (*Sampler2D).finalize)
	return s
}

// SetImage replaces the texture contents with img.
func (s *Sampler2D) SetImage(img image.Image) error {
	switch img := img.(type) {
	case *image.NRGBA:
		s.imageRGBA(img.Pix, img.Stride/4, img.Rect.Size())
	case *image.RGBA:
		s.imageRGBA(img.Pix, img.Stride/4, img.Rect.Size())
	case *image.Alpha:
		s.imageAlpha(img.Pix, img.Stride, img.Rect.Size())
	case *image.Gray:
		s.imageAlpha(img.Pix, img.Stride, img.Rect.Size())
	default:
		return image.ErrFormat
	}
	return nil
}

func (s *Sampler2D) finalize() {
	if s.tex != 0 {
		trashbin.addTexture(s.tex)
	}
}

// Delete queues the texture for deletion. It is safe to call from any
// goroutine.
func (s *Sampler2D) Delete() {
	runtime.SetFinalizer(s, nil)
	s.finalize()
	s.tex = 0
}

func (s *Sampler2D) bind() {
	gl.BindTexture(gl.TEXTURE_2D, s.tex)
}

func (s *Sampler2D) imageRGBA(pix []byte, rowLength int, size image.Point) {
	s.bind()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rowLength))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	verify("glTexImage2D")
}

func (s *Sampler2D) imageAlpha(pix []byte, rowLength int, size image.Point) {
	s.bind()
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(rowLength))
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.R8, int32(size.X), int32(size.Y), 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	verify("glTexImage2D")
}

// SamplerCube is a cube map texture.
type SamplerCube struct {
	tex uint32
}

// CubeImages uploads the six faces, in GL face order, as a cube map.
func CubeImages(cube *debugdraw.CubeImages) *SamplerCube {
	s := &SamplerCube{}
	gl.GenTextures(1, &s.tex)
	s.bind()
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
	for i, face := range cube {
		size := int32(face.Rect.Dx())
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8, size, size, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}
	verify("glTexImage2D cube")
	runtime.SetFinalizer(s, (*SamplerCube).finalize)
	return s
}

func (s *SamplerCube) bind() {
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.tex)
}

func (s *SamplerCube) finalize() {
	if s.tex != 0 {
		trashbin.addTexture(s.tex)
	}
}

// Delete queues the texture for deletion. It is safe to call from any
// goroutine.
func (s *SamplerCube) Delete() {
	runtime.SetFinalizer(s, nil)
	s.finalize()
	s.tex = 0
}
