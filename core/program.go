package core

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/ob6160/Bloch/utils"
)

// Program is a linked shader program with a cache of uniform locations.
type Program struct {
	ID       uint32
	uniforms map[string]int32 // name -> handle
}

func NewProgramFromPath(vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, err := utils.ReadTextFile(vertexPath)
	if err != nil {
		return nil, err
	}
	fragmentSource, err := utils.ReadTextFile(fragmentPath)
	if err != nil {
		return nil, err
	}
	program, err := NewProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("%s, %s: %w", vertexPath, fragmentPath, err)
	}
	return program, nil
}

func NewProgram(vertexSource, fragmentSource string) (*Program, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return nil, fmt.Errorf("link program: %v", strings.TrimRight(log, "\x00"))
	}

	return &Program{ID: program, uniforms: make(map[string]int32)}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %v", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform looks up a uniform location once and caches it. Unknown names
// map to -1, which GL ignores.
func (p *Program) Uniform(name string) int32 {
	if handle, ok := p.uniforms[name]; ok {
		return handle
	}
	handle := gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
	p.uniforms[name] = handle
	return handle
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.Uniform(name), 1, &v[0])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.Uniform(name), 1, &v[0])
}

func (p *Program) SetFloat(name string, f float32) {
	gl.Uniform1f(p.Uniform(name), f)
}

func (p *Program) Dispose() {
	gl.DeleteProgram(p.ID)
}
