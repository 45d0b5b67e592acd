// Command particle-simulation drops a swarm of particles into a box around
// a single collision mesh and lets them bounce around it.
package main

import (
	"fmt"
	"os"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/O-LEX/SDFCollisionSimulation/internal/engine/camera"
	"github.com/O-LEX/SDFCollisionSimulation/internal/engine/input"
	"github.com/O-LEX/SDFCollisionSimulation/internal/engine/window"
	"github.com/O-LEX/SDFCollisionSimulation/internal/logger"
	"github.com/O-LEX/SDFCollisionSimulation/internal/objloader"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simconfig"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/collision"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/mesh"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/sdf"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simcore/simulation"
	"github.com/O-LEX/SDFCollisionSimulation/internal/simrender"
	"github.com/O-LEX/SDFCollisionSimulation/pkg/simmath"
)

func main() {
	simconfig.ParseFlags()
	cfg, err := simconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "initializing logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("SDF collision simulation (particles)")

	m, err := mesh.New(objloader.Loader{Path: cfg.Mesh.Path})
	if err != nil {
		logger.Error(fmt.Sprintf("loading mesh: %v", err))
		os.Exit(1)
	}

	grid, err := sdf.Build(m.Triangles, cfg.Mesh.Resolution)
	if err != nil {
		logger.Error(fmt.Sprintf("building SDF: %v", err))
		os.Exit(1)
	}

	obj := collision.New(m, grid)
	objMin := obj.WorldBounds().Min
	objMax := obj.WorldBounds().Max

	padding := objMax.Sub(objMin).Scale(0.5)
	boxMin := objMin.Sub(padding)
	boxMax := objMax.Add(padding)

	obj.SetMass(50)
	center := boxMin.Add(boxMax).Scale(0.5)
	obj.SetPosition(center)
	obj.SetVelocity(simmath.Vec3{X: 1, Y: 0.5, Z: 0})

	sim := simulation.New(boxMin, boxMax, cfg.Particles.Seed)
	sim.AddObject(obj)

	objSize := objMax.Sub(objMin)
	maxDim := maxOf(objSize.X, objSize.Y, objSize.Z)
	particleSize := maxDim * 0.01
	particleSpeed := maxDim * 0.8
	sim.Particles.Initialize(boxMin, boxMax, cfg.Particles.Count, particleSpeed)
	sim.Particles.SetParticleSize(particleSize)

	win, err := window.New(window.Config{
		Title:      "SDF Collision Simulation — Particles",
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		logger.Error(fmt.Sprintf("creating window: %v", err))
		os.Exit(1)
	}
	defer win.Close()

	renderer, err := simrender.New(simrender.Config{Width: cfg.Window.Width, Height: cfg.Window.Height})
	if err != nil {
		logger.Error(fmt.Sprintf("creating renderer: %v", err))
		os.Exit(1)
	}
	defer renderer.Close()

	cam := camera.NewOrbitCamera()
	cam.CenterX, cam.CenterY, cam.CenterZ = center.X, center.Y, center.Z
	cam.Distance = boxMax.Sub(boxMin).Length()
	cam.MinDistance = cam.Distance * 0.1
	cam.MaxDistance = cam.Distance * 5

	in := input.New()
	lastTicks := sdl.GetTicks64()
	dragging := false

	for {
		if in.Update() {
			break
		}

		ticks := sdl.GetTicks64()
		dt := float32(ticks-lastTicks) / 1000.0
		lastTicks = ticks

		for _, ev := range in.Events() {
			switch ev.Type {
			case input.EventKeyDown:
				if ev.Key == sdl.SCANCODE_ESCAPE {
					return
				}
			case input.EventMouseDown:
				dragging = true
			case input.EventMouseUp:
				dragging = false
			case input.EventMouseMove:
				if dragging {
					cam.HandleDrag(float32(ev.MouseX), float32(ev.MouseY))
				}
			case input.EventWindowResize:
				renderer.Resize(ev.Width, ev.Height)
			}
		}

		sim.Update(dt)

		proj := simmath.Perspective(float32(1.0), float32(cfg.Window.Width)/float32(cfg.Window.Height), 0.1, 10000)
		viewProj := proj.Mul(cam.ViewMatrix())

		renderer.Begin()
		renderer.DrawObjectBounds(viewProj, sim.Objects)
		renderer.DrawParticles(viewProj, sim.Particles.Particles, 4.0)
		win.SwapBuffers()
	}

	logger.Info("simulation complete")
}

func maxOf(values ...float32) float32 {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
