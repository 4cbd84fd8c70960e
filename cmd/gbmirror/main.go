// Command gbmirror runs a Game Boy session headless, printing the
// mirror snapshot, or serves it to a remote controller.
package main

import (
	"context"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/hashicorp/go-multierror"
	"github.com/thelolagemann/gbmirror/internal/config"
	"github.com/thelolagemann/gbmirror/internal/ppu"
	"github.com/thelolagemann/gbmirror/pkg/env"
	"github.com/thelolagemann/gbmirror/pkg/log"
	"github.com/thelolagemann/gbmirror/pkg/remote"
	"github.com/thelolagemann/gbmirror/pkg/script"
	"github.com/thelolagemann/gbmirror/pkg/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "gbmirror:", err)
		os.Exit(1)
	}
}

func run() error {
	configFile := flag.String("config", "", "YAML session config, overridden by flags")
	romFile := flag.String("rom", "", "The rom file to load")
	mode := flag.String("mode", "", "The hardware to emulate. Can be classic or color")
	skipChecksum := flag.Bool("skip-checksum", false, "Skip verifying the cartridge header checksum")
	state := flag.String("state", "", "The state file to resume from, and to save to on exit")
	battery := flag.String("battery", "", "The file battery backed cartridge RAM is kept in")
	audio := flag.Bool("audio", false, "Attach the sound registers")
	serial := flag.Bool("serial", false, "Print bytes sent over the serial port")
	hidden := flag.Bool("hidden", false, "Include the hidden fields of the mirror")
	listen := flag.String("listen", "", "Serve the session over websocket on this address")
	compress := flag.Bool("compress", false, "Compress remote replies")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	frames := flag.Int("frames", 60, "The number of frames to run headless")
	screenshot := flag.String("screenshot", "", "Save the last frame to this .bmp or .png file")
	scriptFile := flag.String("script", "", "Lua controller choosing the input mask for each frame")
	flag.Parse()

	cfg := &config.Config{}
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "rom":
			cfg.ROM = *romFile
		case "mode":
			cfg.Mode = *mode
		case "skip-checksum":
			cfg.SkipChecksum = *skipChecksum
		case "state":
			cfg.State = *state
		case "battery":
			cfg.Battery = *battery
		case "audio":
			cfg.Audio = *audio
		case "serial":
			cfg.Serial = *serial
		case "hidden":
			cfg.HiddenFields = *hidden
		case "listen":
			cfg.Listen = *listen
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if cfg.ROM == "" {
		return errors.New("no rom given")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Logger()

	rom, err := utils.LoadFile(cfg.ROM)
	if err != nil {
		return err
	}

	e, err := openEnv(rom, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Listen != "" {
		var opts []remote.Opt
		opts = append(opts, remote.WithLogger(logger))
		if *compress {
			opts = append(opts, remote.WithCompression())
		}
		return serve(remote.NewServer(e, opts...), cfg.Listen)
	}

	defer func() {
		if err := e.Close(); err != nil {
			logger.Errorf("closing session: %v", err)
		}
	}()
	return runHeadless(e, *frames, *scriptFile, *screenshot, logger)
}

func openEnv(rom []byte, cfg *config.Config, logger log.Logger) (*env.Env, error) {
	opts := []env.Option{
		env.HiddenFields(cfg.HiddenFields),
		env.Logger(logger),
		env.WithGameBoyOptions(cfg.Options()...),
	}
	if cfg.State != "" {
		if _, err := os.Stat(cfg.State); err == nil {
			logger.Infof("resuming from %s", cfg.State)
			return env.Restore(rom, cfg.State, opts...)
		}
	}
	return env.New(rom, opts...)
}

func runHeadless(e *env.Env, frames int, scriptFile, screenshot string, logger log.Logger) error {
	var ctrl *script.Controller
	if scriptFile != "" {
		source, err := os.ReadFile(scriptFile)
		if err != nil {
			return err
		}
		if ctrl, err = script.Load(string(source)); err != nil {
			return err
		}
		defer ctrl.Close()
	}

	for i := 0; i < frames; i++ {
		var mask uint8
		if ctrl != nil {
			var err error
			if mask, err = ctrl.Next(e.Frames(), e.Mirror()); err != nil {
				return err
			}
		}
		e.Step(mask)
	}
	log.WithFields(logger, log.Fields{"frames": e.Frames()}).Debugf("ran %s", e.Name())
	fmt.Println(hex.EncodeToString(e.Mirror()))

	if screenshot != "" {
		img, err := utils.FrameImage(e.Frame(), ppu.ScreenWidth, ppu.ScreenHeight)
		if err != nil {
			return err
		}
		if err := utils.SaveImage(screenshot, img); err != nil {
			return err
		}
		logger.Infof("saved screenshot to %s", screenshot)
	}
	return nil
}

func serve(s *remote.Server, addr string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: s.Handler()}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	var err error
	select {
	case err = <-errs:
	case <-ctx.Done():
		err = srv.Shutdown(context.Background())
	}
	return multierror.Append(err, s.Close()).ErrorOrNil()
}
