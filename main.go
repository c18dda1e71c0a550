package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"

	"github.com/ob6160/Bloch/camera"
	"github.com/ob6160/Bloch/config"
	"github.com/ob6160/Bloch/core"
	"github.com/ob6160/Bloch/decoherence"
	"github.com/ob6160/Bloch/generators"
	"github.com/ob6160/Bloch/gui"
	"github.com/ob6160/Bloch/loop"
)

const (
	windowTitle    = "Bloch Sphere"
	markerRadius   = 0.05
	axisLength     = 1.4
	particleInner  = 1.15
	particleOuter  = 1.9
	particleSize   = 2.5
	markerSegments = 16
)

type State struct {
	SphereProgram, FlatProgram *core.Program
	Projection, Camera, Model  mgl32.Mat4
	FOV                        float32
	Orbit                      *camera.Orbit
	Controls                   *camera.Controls
	Simulator                  *decoherence.Simulator
	Cloud                      *generators.ParticleCloud
	Tip                        mgl32.Vec3
	//Meshes
	Sphere, Wireframe, Axes, Marker, StateVector, Particles *core.Mesh
	//UI
	PanelOpen                                          bool
	ShowWireframe, ShowAxes, ShowMarker, ShowParticles bool
	Kappa, Gamma, InitialCoherence                     float32
	FrameTime                                          float64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	level, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		slog.Error("bloch stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	newGUI, err := gui.NewGUI(cfg.WindowWidth, cfg.WindowHeight, windowTitle)
	if err != nil {
		return err
	}
	defer newGUI.Dispose()

	state, err := newState(cfg)
	if err != nil {
		return err
	}
	defer state.Dispose()

	width, height := newGUI.GetSize()
	state.Controls.Resize(width, height)
	newGUI.SetInputHandler(state.Controls)

	frames := &loop.Loop{
		Clock: loop.ClockFunc(newGUI.Time),
		Step:  state.update,
		Render: func() {
			newGUI.Update()
			render(newGUI, state)
		},
		ShouldStop: newGUI.ShouldClose,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	doneC := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-doneC
	})

	err = frames.Run(ctx, time.Second/time.Duration(cfg.TargetFPS))
	close(doneC)
	slog.Info("frame loop finished", "frames", frames.Frames(), "simTime", state.Simulator.State().Time)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newState(cfg config.Config) (*State, error) {
	model, err := cfg.Model()
	if err != nil {
		return nil, err
	}
	if model.Noise == decoherence.Gaussian {
		slog.Warn("gaussian noise selected: steps draw N(0,1) instead of U(-0.5,0.5)")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	params := cfg.Parameters()
	slog.Info("simulation configured",
		"kappa", params.Kappa,
		"gamma", params.Gamma,
		"initialCoherence", params.InitialCoherence,
		"maxCoherence", model.MaxCoherence,
		"precessionRate", model.PrecessionRate,
		"noise", model.Noise,
		"seed", seed,
	)

	sphereProgram, err := core.NewProgramFromPath(cfg.ShaderPath("sphere.vert"), cfg.ShaderPath("sphere.frag"))
	if err != nil {
		return nil, fmt.Errorf("sphere program: %w", err)
	}
	flatProgram, err := core.NewProgramFromPath(cfg.ShaderPath("flat.vert"), cfg.ShaderPath("flat.frag"))
	if err != nil {
		sphereProgram.Dispose()
		return nil, fmt.Errorf("flat program: %w", err)
	}

	orbit := camera.NewOrbit(cfg.CameraDistance)
	segments := cfg.SphereSegments
	simulator := decoherence.NewSimulator(model, params, rand.New(rand.NewSource(seed)))
	start := simulator.State()
	tip := decoherence.Project(start.Theta, start.Phi)

	var state = &State{
		SphereProgram:    sphereProgram,
		FlatProgram:      flatProgram,
		Model:            mgl32.Ident4(),
		FOV:              cfg.FOV,
		Orbit:            orbit,
		Controls:         camera.NewControls(orbit, cfg.WindowHeight),
		Simulator:        simulator,
		Sphere:           core.NewMesh(generators.Sphere(1, segments, segments), gl.TRIANGLES),
		Wireframe:        core.NewMesh(generators.SphereWireframe(1.001, segments/2, segments/2), gl.LINES),
		Axes:             core.NewMesh(generators.Axes(axisLength), gl.LINES),
		Marker:           core.NewMesh(generators.Sphere(1, markerSegments, markerSegments), gl.TRIANGLES),
		StateVector:      core.NewDynamicMesh(generators.StateVector([3]float32{float32(tip[0]), float32(tip[1]), float32(tip[2])}), gl.LINES),
		PanelOpen:        true,
		ShowWireframe:    true,
		ShowAxes:         true,
		ShowMarker:       true,
		ShowParticles:    cfg.ParticleCount > 0,
		Kappa:            float32(params.Kappa),
		Gamma:            float32(params.Gamma),
		InitialCoherence: float32(params.InitialCoherence),
	}
	if cfg.ParticleCount > 0 {
		state.Cloud = generators.NewParticleCloud(cfg.ParticleCount, particleInner, particleOuter, seed)
		state.Particles = core.NewDynamicMesh(generators.Geometry{
			Vertices: state.Cloud.Vertices(),
			Indices:  state.Cloud.Indices(),
		}, gl.POINTS)
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(0.02, 0.02, 0.05, 1)
	return state, nil
}

// update advances the simulation and moves everything that follows it.
func (s *State) update(dt float64) {
	s.FrameTime = dt
	st := s.Simulator.Tick(dt)

	tip := decoherence.Project(st.Theta, st.Phi)
	s.Tip = mgl32.Vec3{float32(tip.X()), float32(tip.Y()), float32(tip.Z())}
	generators.SetStateVector(s.StateVector.Vertices, s.Tip)
	s.StateVector.UpdateVertices()

	if s.Particles != nil && s.ShowParticles {
		decohered := 1 - st.Coherence/s.Simulator.Model().MaxCoherence
		s.Cloud.Update(st.Time, float32(decohered))
		s.Particles.UpdateVertices()
	}
}

func (s *State) updateUniforms(aspect float32) {
	s.Camera = s.Orbit.View()
	s.Projection = s.Orbit.Projection(s.FOV, aspect)
	st := s.Simulator.State()

	s.FlatProgram.Use()
	s.FlatProgram.SetMat4("projection", s.Projection)
	s.FlatProgram.SetMat4("camera", s.Camera)
	s.FlatProgram.SetMat4("model", s.Model)
	s.FlatProgram.SetFloat("time", float32(st.Time))

	s.SphereProgram.Use()
	s.SphereProgram.SetMat4("projection", s.Projection)
	s.SphereProgram.SetMat4("camera", s.Camera)
	s.SphereProgram.SetMat4("model", s.Model)
	s.SphereProgram.SetVec3("eye", s.Orbit.Eye())
	s.SphereProgram.SetFloat("time", float32(st.Time))
	s.SphereProgram.SetFloat("coherence", float32(st.Coherence))
	s.SphereProgram.SetFloat("maxCoherence", float32(s.Simulator.Model().MaxCoherence))
	s.SphereProgram.SetFloat("kappa", float32(s.Simulator.Parameters().Kappa))
}

func (s *State) drawFlat(mesh *core.Mesh, model mgl32.Mat4, color mgl32.Vec4) {
	s.FlatProgram.SetMat4("model", model)
	s.FlatProgram.SetVec4("color", color)
	mesh.Draw()
}

func render(g *gui.GUI, s *State) {
	width, height := g.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(1)
	if height > 0 {
		aspect = float32(width) / float32(height)
	}
	s.updateUniforms(aspect)

	s.FlatProgram.Use()
	s.FlatProgram.SetFloat("twinkle", 0)
	s.FlatProgram.SetFloat("pointSize", 1)
	if s.ShowAxes {
		s.drawFlat(s.Axes, s.Model, mgl32.Vec4{0.6, 0.6, 0.65, 1})
	}
	if s.ShowWireframe {
		s.drawFlat(s.Wireframe, s.Model, mgl32.Vec4{0.35, 0.45, 0.7, 1})
	}
	if s.ShowMarker {
		s.drawFlat(s.StateVector, s.Model, mgl32.Vec4{1, 0.85, 0.2, 1})
		markerModel := mgl32.Translate3D(s.Tip.X(), s.Tip.Y(), s.Tip.Z()).Mul4(mgl32.Scale3D(markerRadius, markerRadius, markerRadius))
		s.drawFlat(s.Marker, markerModel, mgl32.Vec4{1, 0.85, 0.2, 1})
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if s.ShowParticles && s.Particles != nil {
		s.FlatProgram.SetFloat("twinkle", 0.6)
		s.FlatProgram.SetFloat("pointSize", particleSize)
		s.drawFlat(s.Particles, s.Model, mgl32.Vec4{0.7, 0.8, 1, 0.8})
	}

	// The sphere is translucent and drawn last without writing depth.
	gl.DepthMask(false)
	s.SphereProgram.Use()
	s.Sphere.Draw()
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	g.Render(s.renderUI)
	g.SwapBuffers()
}

func (s *State) Dispose() {
	for _, mesh := range []*core.Mesh{s.Sphere, s.Wireframe, s.Axes, s.Marker, s.StateVector, s.Particles} {
		if mesh != nil {
			mesh.Dispose()
		}
	}
	s.SphereProgram.Dispose()
	s.FlatProgram.Dispose()
}
