// Desktop entrypoint: spawns the API server as a child process, waits for it
// to come up, opens the default browser at the local URL, and tears the
// child down on interrupt.
package main

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/inesh111/pj-motors/internal/launcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const port = "8080"

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	serverBin := serverBinaryPath()
	baseURL := "http://localhost:" + port

	proc, err := launcher.Start(context.Background(), launcher.Options{
		Command:      serverBin,
		Env:          []string{"PORT=" + port},
		BaseURL:      baseURL,
		ReadyTimeout: 20 * time.Second,
	})
	if err != nil {
		// Startup failure is logged but the window is still attempted: the
		// page shows the connection error instead of nothing at all.
		log.Error().Err(err).Msg("desktop: server failed to start")
	}

	if err := openBrowser(baseURL + "/cars"); err != nil {
		log.Warn().Err(err).Msg("desktop: could not open browser")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	launcher.Stop(proc)
	log.Info().Msg("desktop: shut down")
}

func serverBinaryPath() string {
	self, err := os.Executable()
	if err != nil {
		return "pj-motors-server"
	}
	name := "pj-motors-server"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(filepath.Dir(self), name)
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
