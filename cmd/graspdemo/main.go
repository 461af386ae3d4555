// graspdemo drives a grasp.System from a live ebiten window. The mouse is a
// ray pointer (hold the left button to grab, scroll to push and pull), the
// first standard gamepad is a controller (left stick moves it, left trigger
// squeezes), and a scripted hand repeatedly pinches and carries a cube.
// Nothing is rendered beyond debug text.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/grasp"
	"github.com/phanxgames/grasp/ecs"
	"github.com/phanxgames/grasp/internal/logger"
)

const (
	windowTitle = "grasp demo"
	screenW     = 640
	screenH     = 480
	stickSpeed  = 1.5 // units per second

	mouseID      grasp.EntityID = 1
	controllerID grasp.EntityID = 2
	handID       grasp.EntityID = 3
	tableID      grasp.EntityID = 100
)

// Game implements ebiten.Game.
type Game struct {
	sys     *grasp.System
	world   donburi.World
	readers []grasp.Reader
	camera  *grasp.RayCamera
	source  *grasp.EbitenSource

	controllerPos mgl64.Vec3
	hand          *grasp.SimulatedHand
	handStep      int
	table         grasp.Transform

	recent []string
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	flag.Parse()

	cfg, err := grasp.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	lg := logger.New(logger.Config{Level: cfg.LogLevel})

	g, err := newGame(cfg, lg)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	ebiten.SetWindowSize(screenW, screenH)
	ebiten.SetWindowTitle(windowTitle)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newGame(cfg grasp.Config, lg *slog.Logger) (*Game, error) {
	sys := grasp.NewSystem(cfg)
	sys.SetLogger(lg)

	world := donburi.NewWorld()
	sys.SetEventSink(ecs.NewDonburiSink(world))

	g := &Game{
		sys:           sys,
		world:         world,
		camera:        grasp.NewRayCamera(screenW, screenH),
		source:        grasp.NewEbitenSource(),
		controllerPos: mgl64.Vec3{0, -0.5, 0.5},
		hand:          grasp.NewSimulatedHand(handID, mgl64.Vec3{-1.5, 0.5, 0}, 0.06),
		table:         grasp.TransformFromTranslation(0, -0.5, 0),
	}
	g.camera.Eye = grasp.TransformFromTranslation(0, 0, 4)

	cubes := []struct {
		id    grasp.EntityID
		name  string
		x     float64
		field grasp.Field
	}{
		{10, "red", -1, grasp.CuboidField{HalfExtents: mgl64.Vec3{0.2, 0.2, 0.2}}},
		{11, "blue", 0, grasp.SphereField{Radius: 0.25}},
		{12, "green", 1, grasp.CuboidField{HalfExtents: mgl64.Vec3{0.3, 0.1, 0.3}}},
	}
	for _, c := range cubes {
		h := grasp.NewHandler(c.id, c.name, c.field)
		h.Local = grasp.TransformFromTranslation(c.x, 0.5, 0)
		if err := sys.AddHandler(h); err != nil {
			return nil, err
		}
		if err := sys.SetParent(c.id, tableID); err != nil {
			return nil, err
		}
		ecs.SpawnGrabbable(world, sys, c.id)
	}

	// A lid riding on the blue cube.
	lid := grasp.NewHandler(13, "lid", grasp.CuboidField{HalfExtents: mgl64.Vec3{0.2, 0.05, 0.2}})
	lid.Local = grasp.TransformFromTranslation(0, 0.35, 0)
	if err := sys.AddHandler(lid); err != nil {
		return nil, err
	}
	if err := sys.SetParent(13, 11); err != nil {
		return nil, err
	}
	ecs.SpawnGrabbable(world, sys, 13)

	ecs.CaptureEventType.Subscribe(world, func(_ donburi.World, e grasp.Event) {
		line := fmt.Sprintf("#%d %s handler=%d method=%d (%s)", e.Frame, e.Type, e.Handler, e.Method, e.Kind)
		g.recent = append(g.recent, line)
		if len(g.recent) > 8 {
			g.recent = g.recent[1:]
		}
		lg.Info("capture event", "type", e.Type.String(), "handler", uint64(e.Handler), "method", uint64(e.Method))
	})

	g.readers = []grasp.Reader{
		&grasp.MouseReader{ID: mouseID, Camera: g.camera, Source: g.source},
		&grasp.ControllerReader{
			ID:     controllerID,
			Source: g.source,
			Pose: func() grasp.Transform {
				return grasp.TransformFromTranslation(g.controllerPos[0], g.controllerPos[1], g.controllerPos[2])
			},
		},
		g.hand,
	}
	g.nextHandStep()
	lg.Info("grasp demo ready", "handlers", len(sys.Handlers()), "debug", cfg.Debug)
	return g, nil
}

// nextHandStep queues the scripted hand's next tween: reach the red cube,
// pinch, carry it across, let go, return.
func (g *Game) nextHandStep() {
	switch g.handStep % 5 {
	case 0:
		g.hand.MoveTo(mgl64.Vec3{-1.05, 0, 0}, 1.5, ease.InOutQuad)
	case 1:
		g.hand.PinchTo(0.01, 0.4, nil)
	case 2:
		g.hand.MoveTo(mgl64.Vec3{-1.05, 0.6, 0.4}, 1.2, ease.InOutSine)
	case 3:
		g.hand.PinchTo(0.06, 0.4, nil)
	case 4:
		g.hand.MoveTo(mgl64.Vec3{-1.5, 0.5, 0}, 1, ease.OutQuad)
	}
	g.handStep++
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	sx, sy := g.source.Stick(0)
	g.controllerPos = g.controllerPos.Add(mgl64.Vec3{sx, -sy, 0}.Mul(stickSpeed * dt))

	if g.hand.Update(float32(dt)) {
		g.nextHandStep()
	}

	f := grasp.Collect(g.readers...)
	f.SetAnchor(tableID, g.table)
	g.sys.Update(f)

	ecs.CaptureEventType.ProcessEvents(g.world)
	ecs.SyncTransforms(g.world, g.sys)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.0f  TPS: %.0f  frame %d\n\n", ebiten.ActualFPS(), ebiten.ActualTPS(), g.sys.Frame())
	for _, h := range g.sys.Handlers() {
		p := h.WorldTransform().Translation
		fmt.Fprintf(&b, "%-6s %-8s by=%d  world=(%.2f, %.2f, %.2f)\n", h.Name, h.State(), h.CapturedBy(), p[0], p[1], p[2])
		if sx, sy, ok := g.project(p); ok {
			ebitenutil.DebugPrintAt(screen, "["+h.Name+"]", sx, sy)
		}
	}
	fmt.Fprintf(&b, "\ncontroller (%.2f, %.2f, %.2f)\n", g.controllerPos[0], g.controllerPos[1], g.controllerPos[2])
	b.WriteString("\n" + strings.Join(g.recent, "\n"))
	ebitenutil.DebugPrint(screen, b.String())
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}

// project maps a world point to screen pixels through the demo camera.
func (g *Game) project(p mgl64.Vec3) (int, int, bool) {
	c := g.camera
	proj := mgl64.Perspective(c.FovY, float64(c.Width)/float64(c.Height), c.Near, c.Far)
	view := c.Eye.Mat4().Inv()
	if view.Mul4x1(p.Vec4(1))[2] >= 0 {
		return 0, 0, false
	}
	w := mgl64.Project(p, view, proj, 0, 0, c.Width, c.Height)
	return int(w[0]), c.Height - int(w[1]), true
}
