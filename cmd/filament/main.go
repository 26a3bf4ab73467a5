package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/filament/audio"
	"github.com/lixenwraith/filament/bridge"
	"github.com/lixenwraith/filament/component"
	"github.com/lixenwraith/filament/config"
	"github.com/lixenwraith/filament/core"
	"github.com/lixenwraith/filament/engine"
	"github.com/lixenwraith/filament/event"
	"github.com/lixenwraith/filament/input"
	"github.com/lixenwraith/filament/parameter"
	"github.com/lixenwraith/filament/render"
	"github.com/lixenwraith/filament/render/renderers"
	"github.com/lixenwraith/filament/system"
	"github.com/lixenwraith/filament/vmath"
)

var (
	configFlag = flag.String("config", "", "Configuration file path (default: ./installation.toml when present)")
	bridgeFlag = flag.String("bridge", "", "Override the bridge listen address (empty keeps the config value)")
	dumpFlag   = flag.Bool("dump-config", false, "Print the effective configuration as TOML and exit")
)

// quitWatcher surfaces queue-sourced quit requests (bridge "quit" op) to
// the main loop. Keyboard quit short-circuits through the input router
// and never reaches the queue.
type quitWatcher struct {
	quit chan struct{}
	once sync.Once
}

func (qw *quitWatcher) EventTypes() []event.EventType {
	return []event.EventType{event.EventQuit}
}

func (qw *quitWatcher) HandleEvent(_ *engine.World, _ event.Event) {
	qw.once.Do(func() { close(qw.quit) })
}

func main() {
	// Panic recovery: restore the terminal before the stack trace prints
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.LoadAuto(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *bridgeFlag != "" {
		cfg.Bridge.ListenAddr = *bridgeFlag
	}

	if *dumpFlag {
		data, err := cfg.Encode()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode configuration: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
		return
	}

	// Scene clock and pause flag shared by the scheduler and main loop
	clock := engine.NewPausableClock(engine.NewMonotonicTimeProvider())
	var paused atomic.Bool

	world := engine.NewWorld(cfg.Scene.Width, cfg.Scene.Height, cfg.Scene.Depth)
	queue := event.NewQueue()

	sceneRes := &engine.SceneResource{
		Width:  cfg.Scene.Width,
		Height: cfg.Scene.Height,
		Depth:  cfg.Scene.Depth,
	}
	timeRes := &engine.TimeResource{}
	timeRes.Update(clock.Now(), clock.RealTime(), 0, 0)

	engine.AddResource(world.Resources, sceneRes)
	engine.AddResource(world.Resources, timeRes)
	engine.AddResource(world.Resources, &engine.EventQueueResource{Queue: queue})
	engine.AddResource(world.Resources, &engine.RandResource{Rand: vmath.NewFastRand(uint64(cfg.Scene.Seed))})
	engine.AddResource(world.Resources, &engine.StatusResource{})

	// Audio is optional; the installation runs silent when the speaker
	// cannot initialize
	audioRes := &engine.AudioResource{}
	engine.AddResource(world.Resources, audioRes)
	var audioEngine *audio.Engine
	if cfg.Audio.Enabled {
		audioEngine = audio.New(cfg.Audio.Volume, uint64(cfg.Scene.Seed))
		if err := audioEngine.Start(); err != nil {
			fmt.Printf("Audio start failed: %v (continuing without audio)\n", err)
			audioEngine = nil
		} else {
			audioRes.Player = audioEngine
		}
	}

	// The hub anchors the volume center; the director system adopts it
	// on the first tick
	hub := world.CreateEntity()
	world.Positions.Set(hub, component.Position{Pos: sceneRes.Center()})
	world.Hubs.Set(hub, component.Hub{Label: "core"})
	world.Glyphs.Set(hub, component.Glyph{Rune: '◉', Color: tcell.ColorGold})

	registry := config.NewRegistry()

	directorSystem := system.NewDirectorSystem(registry, cfg.ConnectionConfig())
	world.AddSystem(directorSystem)

	pulseSystem := system.NewPulseSystem(registry, cfg.Pulse.BPM, cfg.Pulse.AutoSpawn, cfg.Pulse.TargetPopulation)
	world.AddSystem(pulseSystem)

	world.AddSystem(system.NewSpawnerSystem(cfg.Scene.MaxNodes, cfg.NodeTTL()))
	world.AddSystem(system.NewLifetimeSystem())
	world.AddSystem(system.NewDriftSystem())
	world.AddSystem(system.NewOrbitSystem())
	world.AddSystem(system.NewSpinSystem())
	world.AddSystem(system.NewAudioSystem(registry))

	bridgeCfg := bridge.DefaultConfig()
	bridgeCfg.ListenAddr = cfg.Bridge.ListenAddr
	bridgeServer := bridge.NewServer(bridgeCfg, queue)
	world.AddSystem(system.NewBridgeSystem(bridgeServer))

	if err := world.InitSystems(); err != nil {
		fmt.Fprintf(os.Stderr, "System init failed: %v\n", err)
		os.Exit(1)
	}

	frameReady := make(chan struct{}, 1)
	scheduler, updateDone := engine.NewClockScheduler(world, clock, &paused, parameter.SimUpdateInterval, frameReady)

	// Direct emission path for systems, tick stamps for event producers
	world.SetEventMetadata(queue, scheduler.TickCounter())
	bridgeServer.SetTickSource(scheduler.TickCounter())

	// Seed the scene: one playhead rides the ring from the first tick
	queue.Push(event.Event{
		Type:    event.EventSpawnRequest,
		Payload: &event.SpawnRequestPayload{Kind: event.NodePlayhead},
	})

	// Handler systems receive queue events in registration order
	for _, s := range world.Systems() {
		if h, ok := s.(engine.EventHandler); ok {
			scheduler.RegisterEventHandler(h)
		}
	}
	watcher := &quitWatcher{quit: make(chan struct{})}
	scheduler.RegisterEventHandler(watcher)

	// Bind before the screen takes over so the error stays readable
	if err := bridgeServer.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Bridge start failed: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Teardown runs in reverse registration order: scheduler stop,
	// director shutdown, bridge close, audio fade, terminal restore
	defer screen.Fini()
	if audioEngine != nil {
		defer audioEngine.Stop()
	}
	defer bridgeServer.Stop()
	defer directorSystem.Shutdown()

	screenWidth, screenHeight := screen.Size()
	orchestrator := render.NewOrchestrator(screen, screenWidth, screenHeight)
	orchestrator.Register(renderers.NewFilamentRenderer(directorSystem), render.PriorityFilament)
	orchestrator.Register(renderers.NewMarkerRenderer(world), render.PriorityMarker)
	orchestrator.Register(renderers.NewNodeRenderer(world), render.PriorityNode)
	orchestrator.Register(renderers.NewStatusBarRenderer(world, directorSystem, pulseSystem), render.PriorityUI)

	// Signal initial frame ready
	frameReady <- struct{}{}

	scheduler.Start()
	defer scheduler.Stop()

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return // Screen finalized
			}
			eventChan <- ev
		}
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	handler := input.NewHandler()
	router := input.NewRouter(queue, scheduler.TickCounter())

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	var updatePending bool

	for {
		select {
		case <-watcher.quit:
			return

		case <-sigChan:
			return

		case ev := <-eventChan:
			switch router.Apply(handler.Process(ev)) {
			case input.ActionQuit:
				return
			case input.ActionPauseToggle:
				if paused.Load() {
					paused.Store(false)
					clock.Resume()
				} else {
					paused.Store(true)
					clock.Pause()
				}
			case input.ActionResize:
				orchestrator.Resize(screen.Size())
			}

			// Queue events from this key land before the next tick
			scheduler.DispatchEventsImmediately()

		case <-frameTicker.C:
			isPaused := paused.Load()
			if !isPaused {
				select {
				case <-updateDone:
					updatePending = false
				default:
					updatePending = true
				}
			}

			sw, sh := screen.Size()
			var rctx render.Context
			world.RunSafe(func() {
				muted := audioRes.Player != nil && audioRes.Player.IsMuted()
				rctx = render.NewContext(sceneRes, timeRes, sw, sh, isPaused, muted)
			})
			orchestrator.RenderFrame(rctx, world)

			// Signal ready for next update (non-blocking)
			if !isPaused && !updatePending {
				select {
				case frameReady <- struct{}{}:
				default:
				}
			}
		}
	}
}
