// Package simrender draws the simulation state: particles as GL_POINTS and
// collision object world bounds as wireframe boxes. It owns no simulation
// state itself; every frame it is handed fresh slices to draw.
package simrender

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/O-LEX/SDFCollisionSimulation/internal/engine/debug"
	"github.com/O-LEX/SDFCollisionSimulation/internal/engine/shader"
	"github.com/O-LEX/SDFCollisionSimulation/internal/logger"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/collision"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/particle"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

const (
	particleVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uViewProj;
uniform float uPointSize;
void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	gl_PointSize = uPointSize;
}
`
	particleFragmentSrc = `#version 410 core
out vec4 FragColor;
uniform vec3 uColor;
void main() {
	FragColor = vec4(uColor, 1.0);
}
`
	wireVertexSrc = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 uViewProj;
void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
}
`
	wireFragmentSrc = `#version 410 core
out vec4 FragColor;
uniform vec3 uColor;
void main() {
	FragColor = vec4(uColor, 1.0);
}
`
)

// Config holds renderer-wide settings.
type Config struct {
	Width, Height int
}

// Renderer owns the GL programs and dynamic vertex buffers used to draw
// particles and collision object wireframes.
type Renderer struct {
	config Config

	particleProgram uint32
	particleVAO     uint32
	particleVBO     uint32

	wireProgram uint32
	wireVAO     uint32
	wireVBO     uint32
}

// New initializes GL state, compiles shader programs, and allocates the
// dynamic buffers used for per-frame particle and wireframe uploads.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}

	logger.Info(fmt.Sprintf("GL version: %s", gl.GoStr(gl.GetString(gl.VERSION))))
	logger.Info(fmt.Sprintf("GL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER))))

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.05, 0.05, 0.08, 1.0)

	r := &Renderer{config: cfg}

	particleProgram, err := shader.CompileProgram(particleVertexSrc, particleFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling particle shader: %w", err)
	}
	r.particleProgram = particleProgram

	wireProgram, err := shader.CompileProgram(wireVertexSrc, wireFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling wireframe shader: %w", err)
	}
	r.wireProgram = wireProgram

	gl.GenVertexArrays(1, &r.particleVAO)
	gl.GenBuffers(1, &r.particleVBO)
	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.GenVertexArrays(1, &r.wireVAO)
	gl.GenBuffers(1, &r.wireVBO)
	gl.BindVertexArray(r.wireVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.wireVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	gl.DeleteVertexArrays(1, &r.particleVAO)
	gl.DeleteBuffers(1, &r.particleVBO)
	gl.DeleteVertexArrays(1, &r.wireVAO)
	gl.DeleteBuffers(1, &r.wireVBO)
	gl.DeleteProgram(r.particleProgram)
	gl.DeleteProgram(r.wireProgram)
}

// Resize updates the stored viewport size.
func (r *Renderer) Resize(w, h int) {
	r.config.Width = w
	r.config.Height = h
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Begin clears the frame buffer.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DrawParticles uploads particle positions and draws them as GL_POINTS.
func (r *Renderer) DrawParticles(viewProj simmath.Mat4, particles []*particle.Particle, pointSize float32) {
	if len(particles) == 0 {
		return
	}
	verts := make([]float32, 0, len(particles)*3)
	for _, p := range particles {
		verts = append(verts, p.Position.X, p.Position.Y, p.Position.Z)
	}

	gl.UseProgram(r.particleProgram)
	gl.UniformMatrix4fv(shader.MustGetUniform(r.particleProgram, "uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform1f(shader.MustGetUniform(r.particleProgram, "uPointSize"), pointSize)
	gl.Uniform3f(shader.MustGetUniform(r.particleProgram, "uColor"), 0.3, 0.8, 1.0)

	gl.BindVertexArray(r.particleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.particleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(len(particles)))
	gl.BindVertexArray(0)
}

// DrawObjectBounds uploads and draws each object's world AABB as a
// wireframe box of line segments.
func (r *Renderer) DrawObjectBounds(viewProj simmath.Mat4, objects []*collision.Object) {
	if len(objects) == 0 {
		return
	}

	gl.UseProgram(r.wireProgram)
	gl.UniformMatrix4fv(shader.MustGetUniform(r.wireProgram, "uViewProj"), 1, false, viewProj.Ptr())
	gl.Uniform3f(shader.MustGetUniform(r.wireProgram, "uColor"), 1.0, 0.6, 0.1)

	gl.BindVertexArray(r.wireVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.wireVBO)

	for _, o := range objects {
		if !o.IsValid() {
			continue
		}
		b := o.WorldBounds()
		verts := debug.GenerateBBoxWireframeVertices(b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.DYNAMIC_DRAW)
		gl.DrawArrays(gl.LINES, 0, int32(debug.BBoxWireframeVertexCount))
	}

	gl.BindVertexArray(0)
}
