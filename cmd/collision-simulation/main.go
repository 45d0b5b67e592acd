// Command collision-simulation loads one mesh, builds its SDF once, and
// places three bodies that share them — two dynamic bodies on a collision
// course and one static platform — then resolves their mesh-to-mesh contacts.
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

const maxDeltaTime = 0.008 // caps physics steps at ~120Hz for collision stability

func main() {
	simconfig.ParseFlags()
	cfg, err := simconfig.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading config:", err)
		os.Exit(1)
	}
	if cfg.Mesh.Resolution == simconfig.Default().Mesh.Resolution {
		cfg.Mesh.Resolution = 32 // lower default resolution for the collision demo
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintln(os.Stderr, "initializing logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("SDF collision simulation (mesh-to-mesh)")

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

	objSize := m.Bounds.Max.Sub(m.Bounds.Min)
	maxDim := maxOf(objSize.X, objSize.Y, objSize.Z)

	simSize := maxDim * 2.5
	boundsMin := simmath.Vec3{X: -simSize, Y: -simSize * 0.6, Z: -simSize}
	boundsMax := simmath.Vec3{X: simSize, Y: simSize * 0.6, Z: simSize}

	sim := simulation.New(boundsMin, boundsMax, cfg.Particles.Seed)

	spacing := maxDim * 1.5

	obj1 := collision.New(m, grid)
	obj1.SetMass(10)
	obj1.SetPosition(simmath.Vec3{X: -spacing})
	obj1.SetVelocity(simmath.Vec3{X: maxDim * 0.8})

	obj2 := collision.New(m, grid)
	obj2.SetMass(15)
	obj2.SetPosition(simmath.Vec3{X: spacing})
	obj2.SetVelocity(simmath.Vec3{X: -maxDim * 0.6})
	obj2.SetScale(simmath.Vec3{X: 2, Y: 2, Z: 2})

	obj3 := collision.New(m, grid)
	obj3.SetMass(0) // static platform
	obj3.SetPosition(simmath.Vec3{Y: maxDim * 0.5})
	obj3.SetScale(simmath.Vec3{X: 2, Y: 0.5, Z: 2})

	sim.AddObject(obj1)
	sim.AddObject(obj2)
	sim.AddObject(obj3)

	logger.Info(fmt.Sprintf("objects: 2 dynamic (masses %.1f, %.1f), 1 static platform", obj1.Mass, obj2.Mass))

	win, err := window.New(window.Config{
		Title:      "SDF Collision Simulation — Mesh Collisions",
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
	cam.Distance = simSize * 3
	cam.MinDistance = simSize * 0.5
	cam.MaxDistance = simSize * 10

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
		if dt > maxDeltaTime {
			dt = maxDeltaTime
		}

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
