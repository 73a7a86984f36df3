// Command surfview renders extracted chunk surfaces with vertex pulling: the
// packed surface records live in a texture buffer, the vertex shader rebuilds
// each quad corner from gl_VertexID, and every chunk is drawn through its
// DrawArgs with glDrawArraysIndirect. No per-vertex attribute data is ever
// uploaded.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/cedric-h/hypermine/internal/config"
	"github.com/cedric-h/hypermine/internal/meshing"
	"github.com/cedric-h/hypermine/internal/profiling"
	"github.com/cedric-h/hypermine/internal/world"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 1100
	windowHeight = 700
)

func init() {
	runtime.LockOSThread()
}

// The vertex shader mirrors the CPU-side corner and winding tables in the
// meshing package: same cornerUV order, same per-direction tangents, same
// flipped triangle order for directions whose basis runs against the normal.
var vertexShaderSrc = `#version 410 core
uniform mat4 proj;
uniform mat4 view;
uniform vec3 chunkOrigin;
uniform usamplerBuffer surfaces;

out vec3 vNormal;
out float vShade;
flat out uint vMaterial;

const vec3 normals[6] = vec3[](
	vec3(1, 0, 0), vec3(-1, 0, 0),
	vec3(0, 1, 0), vec3(0, -1, 0),
	vec3(0, 0, 1), vec3(0, 0, -1));
const vec3 tangentsU[6] = vec3[](
	vec3(0, 1, 0), vec3(0, 1, 0),
	vec3(1, 0, 0), vec3(1, 0, 0),
	vec3(1, 0, 0), vec3(1, 0, 0));
const vec3 tangentsV[6] = vec3[](
	vec3(0, 0, 1), vec3(0, 0, 1),
	vec3(0, 0, 1), vec3(0, 0, 1),
	vec3(0, 1, 0), vec3(0, 1, 0));
const bool flips[6] = bool[](false, true, true, false, false, true);
const int cornerOrder[6] = int[](0, 1, 3, 0, 3, 2);
const int cornerOrderFlipped[6] = int[](0, 3, 1, 0, 2, 3);
const vec2 cornerUV[4] = vec2[](vec2(0, 0), vec2(1, 0), vec2(0, 1), vec2(1, 1));

void main() {
	int quad = gl_VertexID / 6;
	int vert = gl_VertexID % 6;

	uvec2 words = texelFetch(surfaces, quad).xy;
	uint w0 = words.x;

	vec3 voxel = vec3(float(w0 & 31u), float((w0 >> 5) & 31u), float((w0 >> 10) & 31u));
	int dir = int((w0 >> 15) & 7u);
	uint ao = (w0 >> 18) & 255u;

	int corner = flips[dir] ? cornerOrderFlipped[vert] : cornerOrder[vert];
	vec2 uv = cornerUV[corner];

	vec3 n = normals[dir];
	vec3 base = voxel + max(n, vec3(0.0));
	vec3 pos = chunkOrigin + base + uv.x * tangentsU[dir] + uv.y * tangentsV[dir];

	uint aoLevel = (ao >> uint(corner * 2)) & 3u;

	vNormal = n;
	vShade = 0.55 + 0.15 * float(aoLevel);
	vMaterial = words.y;

	gl_Position = proj * view * vec4(pos, 1.0);
}` + "\x00"

var fragmentShaderSrc = `#version 410 core
in vec3 vNormal;
in float vShade;
flat in uint vMaterial;

out vec4 fragColor;

const vec3 colors[4] = vec3[](
	vec3(1.0, 0.0, 1.0),
	vec3(0.55, 0.55, 0.58),
	vec3(0.78, 0.71, 0.50),
	vec3(0.45, 0.32, 0.22));

void main() {
	vec3 light = normalize(vec3(-0.5, -1.0, -0.3));
	vec3 n = normalize(vNormal);
	float diff = max(dot(n, -light), 0.35);
	vec3 base = colors[int(min(vMaterial, 3u))];
	fragColor = vec4(base * diff * vShade, 1.0);
}` + "\x00"

func main() {
	radius := flag.Int("radius", 3, "populated chunk radius around the origin")
	flag.Parse()

	meshing.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	w := buildWorld(*radius)
	coords := meshCoords(*radius + 1)
	sc := extractScene(w, coords)
	fmt.Printf("surfview: %d chunks, %d faces\n", len(coords), sc.faces)
	if top := profiling.TopN(3); top != "" {
		fmt.Println("extraction:", top)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "surfview", nil, nil)
	if err != nil {
		panic(err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		panic(err)
	}

	program, err := newProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		panic(err)
	}
	defer gl.DeleteProgram(program)

	// Surface records go into a texture buffer the shader indexes by quad.
	var surfaceTBO uint32
	gl.GenBuffers(1, &surfaceTBO)
	gl.BindBuffer(gl.TEXTURE_BUFFER, surfaceTBO)
	gl.BufferData(gl.TEXTURE_BUFFER, len(sc.packed)*4, gl.Ptr(sc.packed), gl.STATIC_DRAW)

	var surfaceTex uint32
	gl.GenTextures(1, &surfaceTex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_BUFFER, surfaceTex)
	gl.TexBuffer(gl.TEXTURE_BUFFER, gl.RG32UI, surfaceTBO)

	// One DrawArgs record per chunk, consumed directly by the GPU.
	var indirectBuf uint32
	gl.GenBuffers(1, &indirectBuf)
	gl.BindBuffer(gl.DRAW_INDIRECT_BUFFER, indirectBuf)
	gl.BufferData(gl.DRAW_INDIRECT_BUFFER, len(sc.indirect)*4, gl.Ptr(sc.indirect), gl.STATIC_DRAW)

	// Core profile requires a VAO even though every attribute is pulled.
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.UseProgram(program)
	projLoc := gl.GetUniformLocation(program, gl.Str("proj\x00"))
	viewLoc := gl.GetUniformLocation(program, gl.Str("view\x00"))
	originLoc := gl.GetUniformLocation(program, gl.Str("chunkOrigin\x00"))
	surfacesLoc := gl.GetUniformLocation(program, gl.Str("surfaces\x00"))
	gl.Uniform1i(surfacesLoc, 0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.53, 0.81, 0.92, 1.0)

	center := sceneCenter(coords)
	yaw := 45.0
	pitch := 30.0
	dist := float64(world.ChunkSize*(2*(*radius)+3)) * 0.9
	dragging := false
	lastX, lastY := 0.0, 0.0
	wireframe := false

	window.SetMouseButtonCallback(func(win *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			if action == glfw.Press {
				dragging = true
				lastX, lastY = win.GetCursorPos()
			} else if action == glfw.Release {
				dragging = false
			}
		}
	})

	window.SetCursorPosCallback(func(win *glfw.Window, xpos, ypos float64) {
		if !dragging {
			return
		}
		yaw += (xpos - lastX) * 0.3
		pitch += (ypos - lastY) * 0.3
		lastX, lastY = xpos, ypos
		if pitch > 89 {
			pitch = 89
		}
		if pitch < -89 {
			pitch = -89
		}
	})

	window.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		dist *= 1 - yoff*0.1
		if dist < 10 {
			dist = 10
		}
		if dist > 600 {
			dist = 600
		}
	})

	window.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
		if key == glfw.KeyF && action == glfw.Press {
			wireframe = !wireframe
			if wireframe {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
			} else {
				gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
			}
		}
	})

	proj := mgl32.Perspective(mgl32.DegToRad(60.0), float32(windowWidth)/float32(windowHeight), 0.1, 2000.0)
	gl.UniformMatrix4fv(projLoc, 1, false, &proj[0])

	frames := 0
	last := time.Now()
	fpsTicker := time.NewTicker(time.Second)
	defer fpsTicker.Stop()

	for !window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		eye := center.Add(orbitOffset(yaw, pitch, dist))
		view := mgl32.LookAtV(eye, center, mgl32.Vec3{0, 1, 0})
		gl.UniformMatrix4fv(viewLoc, 1, false, &view[0])

		// Empty chunks still get a command; their VertexCount of zero makes
		// the draw a no-op without any CPU-side branching.
		for i, coord := range coords {
			o := coord.Origin()
			gl.Uniform3f(originLoc, float32(o.X), float32(o.Y), float32(o.Z))
			gl.DrawArraysIndirect(gl.TRIANGLES, gl.PtrOffset(i*16))
		}

		window.SwapBuffers()
		glfw.PollEvents()

		frames++
		select {
		case <-fpsTicker.C:
			now := time.Now()
			elapsed := now.Sub(last).Seconds()
			if elapsed > 0 {
				fmt.Printf("FPS: %d\n", int(float64(frames)/elapsed+0.5))
			}
			frames = 0
			last = now
		default:
		}
	}

	gl.DeleteBuffers(1, &surfaceTBO)
	gl.DeleteBuffers(1, &indirectBuf)
	gl.DeleteTextures(1, &surfaceTex)
	gl.DeleteVertexArrays(1, &vao)
}

// buildWorld fills a flat layer of chunks around the origin with the test
// pattern.
func buildWorld(radius int) *world.World {
	w := world.New()
	var gen world.PatternGenerator
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			gen.Populate(w.Chunk(world.ChunkCoord{X: cx, Z: cz}, true))
		}
	}
	return w
}

func meshCoords(radius int) []world.ChunkCoord {
	coords := make([]world.ChunkCoord, 0, (2*radius+1)*(2*radius+1))
	for cz := -radius; cz <= radius; cz++ {
		for cx := -radius; cx <= radius; cx++ {
			coords = append(coords, world.ChunkCoord{X: cx, Z: cz})
		}
	}
	return coords
}

type scene struct {
	packed   []uint32
	indirect []uint32
	faces    int
}

// extractScene runs every chunk through the worker pool and lays the results
// out GPU-style: each chunk owns a fixed quad budget in the packed buffer and
// one DrawArgs slot in the indirect buffer.
func extractScene(w *world.World, coords []world.ChunkCoord) scene {
	dims := world.Cube(world.ChunkSize)
	budget := uint32(meshing.FaceSlots(dims))

	pool := meshing.NewWorkerPool(config.GetMeshWorkers(), config.GetMeshQueueSize())
	defer pool.Shutdown()

	results := make(chan meshing.MeshResult, len(coords))
	slotOf := make(map[world.ChunkCoord]int, len(coords))
	for i, coord := range coords {
		slotOf[coord] = i
		pool.SubmitJobBlocking(meshing.MeshJob{
			Src:        w.SamplerFor(coord),
			Dims:       dims,
			Coord:      coord,
			FirstQuad:  uint32(i) * budget,
			ResultChan: results,
		})
	}

	sc := scene{
		packed:   make([]uint32, 2*int(budget)*len(coords)),
		indirect: make([]uint32, 4*len(coords)),
	}
	for range coords {
		r := <-results
		if r.Error != nil {
			panic(r.Error)
		}
		slot := slotOf[r.Coord]
		first := slot * int(budget)
		for j, s := range r.Surfaces {
			w0, w1 := packSurface(s)
			sc.packed[(first+j)*2] = w0
			sc.packed[(first+j)*2+1] = w1
		}
		sc.indirect[slot*4+0] = r.Args.VertexCount
		sc.indirect[slot*4+1] = r.Args.InstanceCount
		sc.indirect[slot*4+2] = r.Args.FirstVertex
		sc.indirect[slot*4+3] = r.Args.FirstIndex
		sc.faces += len(r.Surfaces)
	}
	return sc
}

// packSurface encodes one surface into the two words the shader decodes:
// chunk-local voxel in 5 bits per axis, direction in 3, the four 2-bit
// occlusion levels in 8, and the material in the second word.
func packSurface(s meshing.Surface) (uint32, uint32) {
	var ao uint32
	for i, level := range s.Occlusion {
		ao |= uint32(level) << (2 * i)
	}
	w0 := uint32(s.Voxel.X) | uint32(s.Voxel.Y)<<5 | uint32(s.Voxel.Z)<<10 |
		uint32(s.Dir)<<15 | ao<<18
	return w0, uint32(s.Material)
}

func sceneCenter(coords []world.ChunkCoord) mgl32.Vec3 {
	if len(coords) == 0 {
		return mgl32.Vec3{}
	}
	lo, hi := coords[0], coords[0]
	for _, c := range coords[1:] {
		if c.X < lo.X {
			lo.X = c.X
		}
		if c.Y < lo.Y {
			lo.Y = c.Y
		}
		if c.Z < lo.Z {
			lo.Z = c.Z
		}
		if c.X > hi.X {
			hi.X = c.X
		}
		if c.Y > hi.Y {
			hi.Y = c.Y
		}
		if c.Z > hi.Z {
			hi.Z = c.Z
		}
	}
	span := hi.Origin().Add(world.Vec3i{X: world.ChunkSize, Y: world.ChunkSize, Z: world.ChunkSize})
	return lo.Origin().Vec3().Add(span.Vec3()).Mul(0.5)
}

func orbitOffset(yaw, pitch, dist float64) mgl32.Vec3 {
	y := yaw * math.Pi / 180
	p := pitch * math.Pi / 180
	return mgl32.Vec3{
		float32(math.Cos(p) * math.Cos(y)),
		float32(math.Sin(p)),
		float32(math.Cos(p) * math.Sin(y)),
	}.Mul(float32(dist))
}

// newProgram compiles shaders and links them into a program.
func newProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	v := gl.CreateShader(gl.VERTEX_SHADER)
	cvertex, freeVertex := gl.Strs(vertexSrc)
	gl.ShaderSource(v, 1, cvertex, nil)
	freeVertex()
	gl.CompileShader(v)

	var status int32
	gl.GetShaderiv(v, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(v, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(v, logLength, nil, &log[0])
		return 0, fmt.Errorf("vertex shader compile error: %s", string(log))
	}

	f := gl.CreateShader(gl.FRAGMENT_SHADER)
	cfragment, freeFragment := gl.Strs(fragmentSrc)
	gl.ShaderSource(f, 1, cfragment, nil)
	freeFragment()
	gl.CompileShader(f)
	gl.GetShaderiv(f, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(f, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(f, logLength, nil, &log[0])
		return 0, fmt.Errorf("fragment shader compile error: %s", string(log))
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, v)
	gl.AttachShader(program, f)
	gl.LinkProgram(program)
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("program link error: %s", string(log))
	}

	// shaders can be deleted after linking
	gl.DeleteShader(v)
	gl.DeleteShader(f)
	return program, nil
}
