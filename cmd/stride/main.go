package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"github.com/stride-sim/stride"
	"github.com/stride-sim/stride/config"
	"github.com/stride-sim/stride/event"
	"github.com/stride-sim/stride/motor"
	"github.com/stride-sim/stride/traversal"
)

const tickRate = 60

// The following program runs a scripted traversal session through a small
// demo course and logs every ability event the engine emits.
func main() {
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			fmt.Println("sentry init failed:", err)
		}
		defer sentry.Flush(time.Second * 2)
		defer sentry.Recover()
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})
	logger.SetLevel(logrus.DebugLevel)

	cfg := config.Default()
	if len(os.Args) > 1 {
		loaded, err := config.Load(os.Args[1])
		if err != nil {
			logger.WithError(err).Fatal("failed to load config")
		}
		cfg = loaded
	}

	world := demoCourse()
	m := motor.NewBoxMotor(world, motor.Capsule{
		Radius: cfg.CapsuleRadius,
		Height: cfg.CapsuleStandHeight,
	}, motor.DefaultOptions())
	m.SetPosition(mgl32.Vec3{0, 1, 0})

	engine, err := stride.New(logger, cfg, m)
	if err != nil {
		logger.WithError(err).Fatal("failed to build engine")
	}

	const dt = float32(1.0) / tickRate
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	for tick := 0; tick < tickRate*20; tick++ {
		<-ticker.C
		engine.QueueIntent(scriptedIntent(tick))

		for _, ev := range engine.Tick(dt) {
			logEvent(logger, ev)
		}
	}

	pos := m.Position()
	logger.WithFields(logrus.Fields{
		"pos":     fmt.Sprintf("(%.2f, %.2f, %.2f)", pos.X(), pos.Y(), pos.Z()),
		"charges": engine.Coordinator().DashCharges(),
	}).Info("run complete")
}

// demoCourse builds a small static course: a floor, a low step, a wall to
// jump off and a chest-high ledge to mantle.
func demoCourse() *motor.World {
	w := motor.NewWorld()
	w.Add(cube.Box(-50, -1, -50, 50, 0, 50), motor.MaskAll)   // floor
	w.Add(cube.Box(4, 0, -2, 6, 0.25, 2), motor.MaskAll)      // low step
	w.Add(cube.Box(10, 0, -4, 10.5, 4, 4), motor.MaskAll)     // wall
	w.Add(cube.Box(-6, 0, 3, -2, 1.6, 7), motor.MaskAll)      // mantle ledge
	return w
}

// scriptedIntent drives a fixed demo run: sprint forward, jump over the step,
// dash mid-air, then slide on landing.
func scriptedIntent(tick int) traversal.Intent {
	in := traversal.Intent{SprintHeld: true, Move: mgl32.Vec2{1, 0}}
	switch {
	case tick == tickRate*2:
		in.JumpRequested = true
	case tick == tickRate*2+10:
		in.DashRequested = true
	case tick == tickRate*4:
		in.SlideRequested = true
	case tick > tickRate*6:
		in.Move = mgl32.Vec2{-1, 0.5}
	}
	return in
}

func logEvent(logger *logrus.Logger, ev event.Event) {
	entry := logger.WithField("tick", ev.Tick())
	switch ev := ev.(type) {
	case *event.JumpEvent:
		entry.WithField("type", ev.JumpType.String()).Info("jump")
	case *event.DashEvent:
		entry.WithField("charges_left", ev.ChargesLeft).Info("dash")
	case *event.SlideEvent:
		entry.WithField("started", ev.Started).Info("slide")
	case *event.MantleEvent:
		entry.WithField("phase", ev.Phase.String()).Info("mantle")
	default:
		entry.WithField("type", ev.Type()).Info("event")
	}
}
