package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/audio"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/classifier"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/interpreter"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	train := flag.Bool("train", false, "train a model from recorded samples and exit")
	flag.Parse()

	fmt.Println("Mudra - Sign Language Interpreter")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.Store.Path)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if *train {
		if err := trainModel(cfg, st); err != nil {
			log.Fatalf("Training failed: %v", err)
		}
		return
	}

	run(cfg, st)
}

// trainModel builds a model from the recorded samples in the store and
// writes it to the configured model path.
func trainModel(cfg config.Config, st *store.Store) error {
	samples, err := st.Samples().ListData()
	if err != nil {
		return fmt.Errorf("failed to load samples: %w", err)
	}
	if len(samples) == 0 {
		return fmt.Errorf("no recorded samples in %s", cfg.Store.Path)
	}

	model, err := classifier.NewTrainer().Train(samples)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Model.Path), 0755); err != nil {
		return fmt.Errorf("failed to create model directory: %w", err)
	}
	if err := model.Save(cfg.Model.Path); err != nil {
		return err
	}

	log.Printf("Trained %d labels from %d samples, model written to %s",
		len(model.Labels()), len(samples), cfg.Model.Path)
	return nil
}

// run wires the interpretation pipeline and blocks until the session ends.
func run(cfg config.Config, st *store.Store) {
	model, err := classifier.LoadModel(cfg.Model.Path)
	if err != nil {
		log.Fatalf("Failed to load model from %s: %v", cfg.Model.Path, err)
	}
	log.Printf("Loaded model with labels: %v", model.Labels())

	// Try MediaPipe first, fall back to mock detector
	var det detector.Detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		det = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		det = detector.NewMockDetector()
	}
	defer det.Close()

	var player audio.Player
	if cfg.Audio.Enabled {
		player, err = audio.NewExecPlayer(cfg.Audio.Dir, cfg.Audio.Command)
		if err != nil {
			log.Fatalf("Failed to create audio player: %v", err)
		}
		defer player.Close()
	}

	camera := capture.NewCamera(capture.Options{
		DeviceID: cfg.Camera.DeviceID,
		Width:    cfg.Camera.Width,
		Height:   cfg.Camera.Height,
		FPS:      cfg.Camera.FPS,
	})

	machine := interpreter.New(interpreter.Options{
		ConfirmStreak:     cfg.Interpreter.ConfirmStreak,
		MaxSentenceLength: cfg.Interpreter.MaxSentenceLength,
	})

	var display app.Display
	if cfg.Display.Enabled {
		display = app.NewWindowDisplay(cfg.Display.Window)
	}

	var tr *tray.Tray
	if cfg.Display.Tray {
		tr = tray.New()
	}

	appConfig := app.Config{
		Camera:     camera,
		Classifier: classifier.NewAdapter(det, model),
		Machine:    machine,
		Player:     player,
		Store:      st,
		Display:    display,
		FPS:        cfg.Camera.FPS,
	}
	if tr != nil {
		appConfig.OnState = func(s interpreter.State) {
			tr.SetPending(s.Pending)
		}
	}

	if cfg.HTTP.Enabled {
		// The loop publishes frames here; the stream endpoint reads copies
		// instead of competing for camera reads.
		frames := capture.NewFrameBuffer()
		defer frames.Close()
		appConfig.Frames = frames

		srv := server.New(server.Config{
			Store:  st,
			Frames: frames,
			State:  machine,
		})
		defer srv.Close()
		addr := net.JoinHostPort(cfg.HTTP.Bind, strconv.Itoa(cfg.HTTP.Port))
		go func() {
			log.Printf("Settings server listening on %s", addr)
			if err := srv.ListenAndServe(addr); err != nil {
				log.Printf("Settings server stopped: %v", err)
			}
		}()
	}

	a := app.New(appConfig)

	if tr != nil {
		// systray must own the main thread; the interpretation loop moves
		// to a goroutine and quitting either side ends the other.
		tr.OnToggle(a.SetEnabled)
		tr.OnQuit(a.Stop)

		go func() {
			if err := a.Run(); err != nil {
				log.Printf("Interpretation loop ended: %v", err)
			}
			tr.Quit()
		}()

		tr.Run()
		return
	}

	if err := a.Run(); err != nil {
		log.Fatalf("Interpretation loop ended: %v", err)
	}
}
