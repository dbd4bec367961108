package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/setanarut/bvh"
	"github.com/setanarut/bvh/internal/overlay"
)

var (
	flagAddr string
	flagFPS  int
)

var serveCmd = &cobra.Command{
	Use:   "serve <scene.yaml>",
	Short: "Simulate a scene forever and stream debug frames to websocket viewers",
	Long: `Steps the scene at --fps and broadcasts every tick's debug drawing as a JSON
frame to the viewers connected on /ws.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address")
	serveCmd.Flags().IntVar(&flagFPS, "fps", 30, "Ticks per second")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	rec := overlay.NewRecorder()
	world, err := loadWorld(args[0], logger, bvh.WithDrawer(rec))
	if err != nil {
		return err
	}

	hub := overlay.NewHub(logger)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	srv := &http.Server{Addr: flagAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("listening", zap.String("addr", flagAddr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		ticker := time.NewTicker(time.Second / time.Duration(max(flagFPS, 1)))
		defer ticker.Stop()
		dt := world.Scene().DT
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
			rec.Begin(world.Tick() + 1)
			res := world.Step(dt)
			frame := rec.Frame()
			frame.Pairs = res.Pairs
			if err := hub.Broadcast(frame); err != nil {
				return err
			}
		}
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
