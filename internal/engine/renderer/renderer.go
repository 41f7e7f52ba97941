// Package renderer draws the orrery scene as OpenGL point sprites.
package renderer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/points"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/scene"
	"github.com/Faultbox/orrery/pkg/math"
)

const vertexShaderSource = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;
layout (location = 2) in float aSize;
layout (location = 3) in float aAlpha;

uniform mat4 uViewProj;
uniform mat4 uModel;
uniform float uOpacity;
uniform float uPointScale;
uniform bool uWorldSize;

out vec3 vColor;
out float vAlpha;

void main() {
	vec4 clip = uViewProj * uModel * vec4(aPos, 1.0);
	gl_Position = clip;

	float size = aSize;
	if (uWorldSize) {
		size = aSize * uPointScale / max(clip.w, 0.001);
	}
	gl_PointSize = clamp(size, 1.0, 512.0);

	vColor = aColor;
	vAlpha = aAlpha * uOpacity;
}
`

const fragmentShaderSource = `
#version 410 core

in vec3 vColor;
in float vAlpha;

uniform float uTime;
uniform bool uTwinkle;
uniform bool uSoft;

out vec4 FragColor;

void main() {
	float r = length(gl_PointCoord - vec2(0.5));
	if (r > 0.5) {
		discard;
	}

	float a = vAlpha;
	if (uSoft) {
		a *= 1.0 - smoothstep(0.0, 0.5, r);
	}

	vec3 color = vColor;
	if (uTwinkle) {
		color *= 0.8 + 0.2 * sin(uTime * 3.0 + gl_FragCoord.x * 0.01 + gl_FragCoord.y * 0.01);
	}
	FragColor = vec4(color, a);
}
`

// Frame is what one draw needs from the application.
type Frame struct {
	ViewProj math.Mat4
	FOV      float32 // Vertical, radians
	Time     float32 // Seconds since start
	Scene    *scene.Scene
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	width  int
	height int
	log    *zap.Logger

	program *shader.Program

	explosion *cloud
	stars     *cloud
	galaxy    *cloud
	nebula    *cloud
	entities  *cloud
	markers   *cloud

	// Static clouds are uploaded once per source object.
	starsFrom  *scene.Starfield
	galaxyFrom *scene.Galaxy
	nebulaFrom *scene.Nebula

	batch points.Batch
}

// New creates a renderer. It must be called after the OpenGL context exists.
func New(width, height int, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{width: width, height: height, log: log}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	// Everything is translucent and drawn back to front.
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0, 0, 0, 1)

	var err error
	r.program, err = shader.New("points", vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r.explosion = newCloud()
	r.stars = newCloud()
	r.galaxy = newCloud()
	r.nebula = newCloud()
	r.entities = newCloud()
	r.markers = newCloud()

	gl.Viewport(0, 0, int32(width), int32(height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for _, c := range []*cloud{r.explosion, r.stars, r.galaxy, r.nebula, r.entities, r.markers} {
		if c != nil {
			c.delete()
		}
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the viewport size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Draw clears the frame and renders the scene.
func (r *Renderer) Draw(f Frame) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	s := f.Scene
	if s == nil {
		return
	}

	p := r.program
	p.Use()
	p.SetMat4("uViewProj", f.ViewProj)
	p.SetFloat("uTime", f.Time)
	p.SetFloat("uPointScale", float32(r.height)/(2*math32.Tan(f.FOV/2)))

	// Stars
	if r.starsFrom != s.Stars {
		r.upload(r.stars, gl.STATIC_DRAW, func(b *points.Batch) { points.Stars(b, s.Stars) })
		r.starsFrom = s.Stars
	}
	r.pass(r.stars, math.Euler(s.Stars.Rotation), 1, false, true, false)

	// Backdrop
	if s.Galaxy != nil {
		if r.galaxyFrom != s.Galaxy {
			r.upload(r.galaxy, gl.STATIC_DRAW, func(b *points.Batch) { points.Galaxy(b, s.Galaxy) })
			r.galaxyFrom = s.Galaxy
		}
		r.pass(r.galaxy, math.Identity(), s.Galaxy.Opacity.Value(), false, false, false)
	}
	if s.Nebula != nil {
		if r.nebulaFrom != s.Nebula {
			r.upload(r.nebula, gl.STATIC_DRAW, func(b *points.Batch) { points.Nebula(b, s.Nebula) })
			r.nebulaFrom = s.Nebula
		}
		r.pass(r.nebula, math.Identity(), s.Nebula.Opacity.Value(), true, false, true)
	}

	// Burst
	r.upload(r.explosion, gl.STREAM_DRAW, func(b *points.Batch) { points.Explosion(b, s.Explosion) })
	r.pass(r.explosion, math.Identity(), 1, false, false, true)

	// Models
	r.upload(r.entities, gl.STREAM_DRAW, func(b *points.Batch) { points.Entities(b, s.Entities(), f.Time) })
	r.pass(r.entities, math.Identity(), 1, true, false, false)

	r.upload(r.markers, gl.STREAM_DRAW, func(b *points.Batch) { points.Markers(b, s.Markers(), f.Time) })
	r.pass(r.markers, math.Identity(), 1, false, false, true)

	gl.BindVertexArray(0)
}

func (r *Renderer) upload(c *cloud, usage uint32, fill func(*points.Batch)) {
	r.batch.Reset()
	fill(&r.batch)
	c.upload(r.batch.Data, usage)
}

func (r *Renderer) pass(c *cloud, model math.Mat4, opacity float32, worldSize, twinkle, soft bool) {
	if c.count == 0 || opacity <= 0 {
		return
	}
	p := r.program
	p.SetMat4("uModel", model)
	p.SetFloat("uOpacity", opacity)
	p.SetBool("uWorldSize", worldSize)
	p.SetBool("uTwinkle", twinkle)
	p.SetBool("uSoft", soft)
	c.draw()
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() []byte {
	pixels := make([]byte, r.width*r.height*4)
	if len(pixels) == 0 {
		return pixels
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels
}

// cloud is one VAO/VBO pair of interleaved point vertices.
type cloud struct {
	vao      uint32
	vbo      uint32
	count    int32
	capacity int
}

func newCloud() *cloud {
	c := &cloud{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)

	stride := int32(points.Stride * 4)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(3, 1, gl.FLOAT, false, stride, 7*4)
	gl.EnableVertexAttribArray(3)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return c
}

func (c *cloud) upload(data []float32, usage uint32) {
	c.count = int32(len(data) / points.Stride)
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	if len(data) > c.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
		c.capacity = len(data)
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (c *cloud) draw() {
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.POINTS, 0, c.count)
}

func (c *cloud) delete() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
}
