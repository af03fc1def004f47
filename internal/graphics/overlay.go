package graphics

import (
	"mini-voxel/internal/graphics/scene"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// unit quad, two triangles: x, y, u, v
var overlayQuad = []float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	1, 1, 1, 1,
	1, 1, 1, 1,
	0, 1, 0, 1,
	0, 0, 0, 0,
}

// Overlay draws a few lines of debug text in the top-left corner.
type Overlay struct {
	shader        *Shader
	vao           uint32
	vbo           uint32
	texture       uint32
	width, height int
}

func NewOverlay() (*Overlay, error) {
	shader, err := LoadShader("overlay")
	if err != nil {
		return nil, err
	}
	o := &Overlay{shader: shader}

	gl.GenVertexArrays(1, &o.vao)
	gl.GenBuffers(1, &o.vbo)
	gl.BindVertexArray(o.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(overlayQuad)*4, gl.Ptr(overlayQuad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, gl.PtrOffset(2*4))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	shader.Use()
	shader.SetInt("text", 0)
	return o, nil
}

// SetLines re-renders the text. No lines hides the overlay.
func (o *Overlay) SetLines(lines []string) {
	img := scene.TextImage(lines)
	if img == nil {
		o.width, o.height = 0, 0
		return
	}
	o.texture = UploadTexture(o.texture, img)
	o.width, o.height = img.Bounds().Dx(), img.Bounds().Dy()
}

// Draw renders the text at its pixel size in a window of winW x winH.
func (o *Overlay) Draw(winW, winH int) {
	if o.width == 0 || winW <= 0 || winH <= 0 {
		return
	}
	w := 2 * float32(o.width) / float32(winW)
	h := 2 * float32(o.height) / float32(winH)

	gl.Disable(gl.DEPTH_TEST)
	defer gl.Enable(gl.DEPTH_TEST)

	o.shader.Use()
	o.shader.SetVector4("rect", -1, 1-h, w, h)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, o.texture)
	gl.BindVertexArray(o.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (o *Overlay) Dispose() {
	gl.DeleteVertexArrays(1, &o.vao)
	gl.DeleteBuffers(1, &o.vbo)
	if o.texture != 0 {
		gl.DeleteTextures(1, &o.texture)
	}
	o.shader.Delete()
}
