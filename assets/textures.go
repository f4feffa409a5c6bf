package assets

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/mandykoh/prism"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type TextureWrap int32

const (
	TextureWrap_Repeat TextureWrap = iota
	TextureWrap_MirroredRepeat
	TextureWrap_ClampToEdge
)

func (w TextureWrap) ToGL() int32 {

	switch w {
	case TextureWrap_MirroredRepeat:
		return gl.MIRRORED_REPEAT
	case TextureWrap_ClampToEdge:
		return gl.CLAMP_TO_EDGE
	default:
		return gl.REPEAT
	}
}

type TextureFilter int32

const (
	TextureFilter_Linear TextureFilter = iota
	TextureFilter_Nearest
)

func (f TextureFilter) ToGL(withMipMaps bool) int32 {

	switch f {
	case TextureFilter_Nearest:
		if withMipMaps {
			return gl.NEAREST_MIPMAP_NEAREST
		}
		return gl.NEAREST
	default:
		if withMipMaps {
			return gl.LINEAR_MIPMAP_LINEAR
		}
		return gl.LINEAR
	}
}

type TextureLoadOptions struct {
	GenMipMaps      bool
	KeepPixelsInMem bool

	// NoSrgba uploads the pixels as linear RGBA instead of sRGB
	NoSrgba bool

	// FlipY puts the first image row at the bottom, which is where OpenGL expects uv.y=0
	FlipY bool

	Wrap   TextureWrap
	Filter TextureFilter
}

type Texture struct {
	// Path only exists for textures loaded from disk
	Path string

	TexID  uint32
	Width  int32
	Height int32

	// Pixels in RGBA order, only kept if TextureLoadOptions.KeepPixelsInMem is set
	Pixels []byte
}

// Bind binds the texture to the given texture unit (0 is GL_TEXTURE0)
func (t *Texture) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.TexID)
}

func (t *Texture) Delete() {

	if t.TexID == 0 {
		return
	}

	gl.DeleteTextures(1, &t.TexID)
	t.TexID = 0
}

// DecodeImage decodes a png, jpeg, bmp, tiff or webp file into NRGBA pixels
func DecodeImage(path string, flipY bool) (*image.NRGBA, error) {

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := DecodeImageReader(file, flipY)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image '%s': %w", path, err)
	}

	return img, nil
}

// DecodeImageReader is like DecodeImage but reads from r. It also returns the detected format name.
func DecodeImageReader(r io.Reader, flipY bool) (*image.NRGBA, string, error) {

	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}

	nrgbaImg := prism.ConvertImageToNRGBA(img, runtime.NumCPU())
	if flipY {
		FlipVertically(nrgbaImg)
	}

	return nrgbaImg, format, nil
}

// FlipVertically swaps the rows of img in place
func FlipVertically(img *image.NRGBA) {

	height := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)

	for y := 0; y < height/2; y++ {

		top := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		bottomY := height - 1 - y
		bottom := img.Pix[bottomY*img.Stride : bottomY*img.Stride+rowLen]

		copy(tmp, top)
		copy(top, bottom)
		copy(bottom, tmp)
	}
}

// LoadTexture decodes the image at path and uploads it as a 2D texture
func LoadTexture(path string, opts *TextureLoadOptions) (Texture, error) {

	if opts == nil {
		opts = &TextureLoadOptions{}
	}

	nrgbaImg, err := DecodeImage(path, opts.FlipY)
	if err != nil {
		return Texture{}, err
	}

	tex, err := NewTextureFromNRGBA(nrgbaImg, opts)
	if err != nil {
		return Texture{}, fmt.Errorf("failed to create texture from '%s': %w", path, err)
	}

	tex.Path = path
	return tex, nil
}

func NewTextureFromNRGBA(nrgbaImg *image.NRGBA, opts *TextureLoadOptions) (Texture, error) {

	if opts == nil {
		opts = &TextureLoadOptions{}
	}

	tex := Texture{
		Width:  int32(nrgbaImg.Rect.Dx()),
		Height: int32(nrgbaImg.Rect.Dy()),
	}

	if tex.Width == 0 || tex.Height == 0 {
		return Texture{}, fmt.Errorf("image has zero size (%dx%d)", tex.Width, tex.Height)
	}

	gl.GenTextures(1, &tex.TexID)
	if tex.TexID == 0 {
		return Texture{}, fmt.Errorf("failed to generate OpenGL texture. OpenGL Error=%d", gl.GetError())
	}

	gl.BindTexture(gl.TEXTURE_2D, tex.TexID)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, opts.Wrap.ToGL())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, opts.Wrap.ToGL())
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, opts.Filter.ToGL(opts.GenMipMaps))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, opts.Filter.ToGL(false))

	internalFormat := int32(gl.SRGB_ALPHA)
	if opts.NoSrgba {
		internalFormat = gl.RGBA8
	}

	// Rows of a sub-image may not be tightly packed
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(nrgbaImg.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, tex.Width, tex.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&nrgbaImg.Pix[0]))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if opts.GenMipMaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}

	if opts.KeepPixelsInMem {
		tex.Pixels = nrgbaImg.Pix
	}

	return tex, nil
}
