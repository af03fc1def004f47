package main

import (
	"fmt"
	"image"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/input"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/registry"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
)

// maxFrameDelta bounds the simulated time of one frame after a stall.
const maxFrameDelta = 0.25

type game struct {
	cfg    config.Settings
	log    logrus.FieldLogger
	window *glfw.Window

	chunks     *graphics.ChunkRenderer
	overlay    *graphics.Overlay
	projection scene.Projection

	world  *world.World
	player *player.Player
	input  *input.InputManager
	place  registry.BlockType

	paused       bool
	showOverlay  bool
	fpsLimiter   *FPSLimiter
	frames       int
	fps          int
	lastFPSCheck time.Time
	lastTime     time.Time
}

func newGame(cfg config.Settings, log logrus.FieldLogger) (*game, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}
	window, err := setupWindow(cfg.Render)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}

	atlas, err := scene.LoadAtlas(cfg.Render.Atlas)
	if err != nil {
		log.WithError(err).Warn("using generated atlas")
		atlas = scene.FallbackAtlas()
	}
	g, err := newRenderers(window, atlas)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	g.cfg = cfg
	g.log = log
	fbW, fbH := window.GetFramebufferSize()
	g.projection = scene.NewProjection(fbW, fbH, cfg.Render.FOV)
	g.fpsLimiter = NewFPSLimiter(cfg.Render.MaxFPS)

	place, ok := registry.ByName(cfg.Body.PlaceBlock)
	if !ok || !registry.IsSolid(place) {
		log.WithField("block", cfg.Body.PlaceBlock).Warn("unknown place block, using cobblestone")
		place = registry.Cobblestone
	}
	g.place = place

	start := time.Now()
	g.world = world.New(cfg.World, world.WithLogger(log), world.WithMeshSink(g.chunks))
	log.WithFields(logrus.Fields{
		"seed":    g.world.Seed(),
		"chunks":  g.world.ChunkCount(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("world ready")

	g.player = player.New(cfg.Body, g.world, spawnPoint(g.world))
	g.input = defaultBindings()
	g.installCallbacks()

	g.lastTime = time.Now()
	g.lastFPSCheck = g.lastTime
	return g, nil
}

func setupWindow(cfg config.Render) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		window.Destroy()
		return nil, fmt.Errorf("init gl: %w", err)
	}

	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.ClearColor(0.53, 0.75, 0.95, 1)
	return window, nil
}

func newRenderers(window *glfw.Window, atlas *image.RGBA) (*game, error) {
	chunks, err := graphics.NewChunkRenderer(atlas)
	if err != nil {
		return nil, err
	}
	overlay, err := graphics.NewOverlay()
	if err != nil {
		chunks.Dispose()
		return nil, err
	}
	w, h := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(w), int32(h))
	return &game{window: window, chunks: chunks, overlay: overlay}, nil
}

// spawnPoint puts the body on the highest solid block of the centre column.
// A column carved out down to nothing gets a bedrock floor at y=0.
func spawnPoint(w *world.World) mgl32.Vec3 {
	y, ok := w.HighestSolid(0, 0)
	if !ok {
		w.Set(0, 0, 0, registry.Bedrock)
		y = 0
	}
	return mgl32.Vec3{0.5, float32(y + 1), 0.5}
}

func (g *game) dispose() {
	g.overlay.Dispose()
	g.chunks.Dispose()
	g.window.Destroy()
	glfw.Terminate()
}

func (g *game) run() {
	for !g.window.ShouldClose() {
		g.tick()
	}
}

func (g *game) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := min(now.Sub(g.lastTime).Seconds(), maxFrameDelta)
	g.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	g.handleActions()
	if !g.paused {
		g.player.Update(float32(dt))
	}

	g.render()

	func() { defer profiling.Track("glfw.SwapBuffers")(); g.window.SwapBuffers() }()
	g.input.PostUpdate()

	g.frames++
	if time.Since(g.lastFPSCheck) >= time.Second {
		g.fps = g.frames
		g.frames = 0
		g.lastFPSCheck = time.Now()
		g.log.WithFields(logrus.Fields{"fps": g.fps, "top": profiling.TopN(3)}).Debug("frame stats")
	}
	g.fpsLimiter.Wait(g.paused)
}

func (g *game) render() {
	defer profiling.Track("graphics.Render")()

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	g.chunks.Draw(g.player.ViewMatrix(), g.projection.Matrix())

	if g.showOverlay {
		g.overlay.SetLines(g.overlayLines())
		w, h := g.window.GetFramebufferSize()
		g.overlay.Draw(w, h)
	}
}

func (g *game) overlayLines() []string {
	p := g.player
	lines := []string{
		fmt.Sprintf("fps %d", g.fps),
		fmt.Sprintf("xyz %.2f %.2f %.2f", p.Position.X(), p.Position.Y(), p.Position.Z()),
		fmt.Sprintf("chunks %d/%d", g.chunks.Drawn(), g.chunks.Meshes()),
	}
	if p.Flying {
		lines = append(lines, "flying")
	}
	if r := p.Target(); r.Hit {
		pos := r.HitPosition
		lines = append(lines, fmt.Sprintf("target %d %d %d %s (%s)",
			pos.X(), pos.Y(), pos.Z(), r.Face, g.world.BlockAt(pos.X(), pos.Y(), pos.Z())))
	}
	if top := profiling.TopN(3); top != "" {
		lines = append(lines, top)
	}
	return lines
}
