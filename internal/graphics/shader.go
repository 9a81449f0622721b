package graphics

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// chunkProgram is the linked chunk shader with its uniforms resolved at
// link time, so a frame never looks them up by name.
type chunkProgram struct {
	id       uint32
	view     int32
	proj     int32
	lightDir int32
	ambient  int32
}

func newChunkProgram() (*chunkProgram, error) {
	id, err := link(chunkVertexShader, chunkFragmentShader)
	if err != nil {
		return nil, err
	}
	p := &chunkProgram{id: id}
	for name, loc := range map[string]*int32{
		"view":     &p.view,
		"proj":     &p.proj,
		"lightDir": &p.lightDir,
		"ambient":  &p.ambient,
	} {
		if *loc = gl.GetUniformLocation(id, gl.Str(name+"\x00")); *loc < 0 {
			gl.DeleteProgram(id)
			return nil, fmt.Errorf("chunk shader: uniform %q not found", name)
		}
	}
	return p, nil
}

// bind makes the program current and uploads the per-frame uniforms.
func (p *chunkProgram) bind(view, proj mgl32.Mat4, lightDir mgl32.Vec3, ambient float32) {
	gl.UseProgram(p.id)
	gl.UniformMatrix4fv(p.view, 1, false, &view[0])
	gl.UniformMatrix4fv(p.proj, 1, false, &proj[0])
	gl.Uniform3fv(p.lightDir, 1, &lightDir[0])
	gl.Uniform1f(p.ambient, ambient)
}

func (p *chunkProgram) delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// link compiles both stages and links them. Stage objects are released
// whether or not linking succeeds.
func link(vertexSrc, fragmentSrc string) (uint32, error) {
	vs, err := compile(gl.VERTEX_SHADER, vertexSrc)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)
	fs, err := compile(gl.FRAGMENT_SHADER, fragmentSrc)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.LinkProgram(id)

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetProgramInfoLog(id, n, nil, buf) })
		gl.DeleteProgram(id)
		return 0, fmt.Errorf("link: %s", msg)
	}
	gl.DetachShader(id, vs)
	gl.DetachShader(id, fs)
	return id, nil
}

func compile(kind uint32, src string) (uint32, error) {
	id := gl.CreateShader(kind)
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)

	var ok int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &ok)
	if ok == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		msg := infoLog(n, func(buf *uint8) { gl.GetShaderInfoLog(id, n, nil, buf) })
		gl.DeleteShader(id)
		return 0, fmt.Errorf("compile: %s", msg)
	}
	return id, nil
}

// infoLog reads a driver log of n bytes, including the trailing NUL.
func infoLog(n int32, read func(buf *uint8)) string {
	if n <= 0 {
		return "no log"
	}
	buf := make([]uint8, n)
	read(&buf[0])
	return gl.GoStr(&buf[0])
}
