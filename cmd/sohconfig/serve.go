package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/michaelquigley/df/dl"
	"github.com/pkg/errors"
	"github.com/soar/sohconfig/internal/config"
	"github.com/soar/sohconfig/internal/gamepad"
	"github.com/soar/sohconfig/internal/hub"
	"github.com/soar/sohconfig/internal/ini"
	"github.com/soar/sohconfig/internal/server"
	"github.com/soar/sohconfig/internal/session"
	"github.com/soar/sohconfig/internal/tray"
	"github.com/spf13/cobra"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func init() {
	rootCmd.AddCommand(newServeCommand().cmd)
}

type serveCommand struct {
	cmd *cobra.Command
}

func newServeCommand() *serveCommand {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Capture bindings from connected gamepads and serve the editor",
		Args:  cobra.NoArgs,
	}
	config.AddServeFlags(cmd.Flags())
	out := &serveCommand{cmd: cmd}
	cmd.RunE = out.run
	return out
}

func (cmd *serveCommand) run(_ *cobra.Command, _ []string) error {
	doc, err := ini.OpenFile(cfg.INI)
	if err != nil {
		return errors.Wrapf(err, "error opening '%s'", cfg.INI)
	}
	if _, err := session.CurrentBackend(doc); err != nil {
		dl.Warnf("%v; backend selection is unavailable", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, shutdownSignals...)
	defer signal.Stop(sigCh)

	h := hub.NewHub()
	go h.Run(ctx)

	broadcaster := hub.NewBroadcaster(h, nil)
	sess := session.New(doc, broadcaster.Notify)
	broadcaster.SetSource(sess)
	go broadcaster.Run(ctx)

	listener := gamepad.NewListener(cfg.AxisMargin)
	listenerErrCh := make(chan error, 1)
	go func() {
		listenerErrCh <- listener.Run(ctx)
	}()
	go sess.Run(ctx, listener.Events())

	srv := server.New(h, broadcaster, sess, cfg.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
	}()

	url := localURL(cfg.Addr)
	dl.Infof("editing '%s': %s", doc.Path(), url)

	shutdownRequested := make(chan struct{})
	var t *tray.Tray
	if cfg.Tray {
		t = tray.New(url, sess, func() {
			close(shutdownRequested)
		})
		go t.Run(tray.Icon())
	} else {
		dl.Info("press Ctrl+C to exit")
	}

	var runErr error
	select {
	case <-sigCh:
		dl.Info("shutting down")
	case <-shutdownRequested:
		dl.Info("shutdown requested from tray")
	case err := <-serverErrCh:
		runErr = errors.Wrap(err, "HTTP server error")
	case err := <-listenerErrCh:
		runErr = errors.Wrap(err, "gamepad listener error")
		listenerErrCh <- nil
	}
	cancel()
	if t != nil {
		t.Quit()
	}

	if err := <-listenerErrCh; err != nil && runErr == nil {
		runErr = err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		dl.Errorf("HTTP server shutdown error: %v", err)
	}

	for _, d := range sess.Devices() {
		if d.Dirty {
			dl.Warnf("unsaved changes for '%s' (%s) discarded", d.Name, d.GUID)
		}
	}
	dl.Info("stopped")
	return runErr
}

// localURL turns a listen address into a browsable URL.
func localURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
