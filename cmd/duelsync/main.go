package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/network"
	"github.com/automoto/duelsync/session"
	"github.com/automoto/duelsync/shared/netconfig"
	"github.com/sirupsen/logrus"
)

func main() {
	role := flag.String("role", "host", "Local role: host or player")
	listen := flag.String("listen", ":7373", "Address the host listens on")
	connect := flag.String("connect", "ws://localhost:7373/duel", "Host URL the player dials")
	envFile := flag.String("env", ".env", "Optional .env file with DUELSYNC_* settings")
	bot := flag.String("bot", "normal", "Bot difficulty driving the local input (easy, normal, hard)")
	status := flag.Duration("status", 5*time.Second, "Interval between status lines (0 disables)")
	flag.Parse()

	if err := cfg.Load(*envFile); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	lg, err := session.NewLogger()
	if err != nil {
		log.Fatalf("Failed to configure logging: %v", err)
	}
	flush, err := session.InitSentry()
	if err != nil {
		lg.WithError(err).Warn("crash reporting disabled")
	}
	defer flush()

	r, err := netconfig.ParseRole(*role)
	if err != nil {
		lg.WithError(err).Fatal("invalid role")
	}
	difficulty, err := cfg.ParseBotDifficulty(*bot)
	if err != nil {
		lg.WithError(err).Fatal("invalid bot difficulty")
	}

	s, err := session.New(session.Options{
		Role:          r,
		Logger:        lg,
		Bot:           true,
		BotDifficulty: difficulty,
	})
	if err != nil {
		lg.WithError(err).Fatal("failed to create session")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var ch network.Channel
	if r == netconfig.RoleHost {
		ch, err = waitForPlayer(ctx, *listen, s, lg)
	} else {
		lg.WithField("url", *connect).Info("dialing host")
		ch, err = network.DialWS(ctx, *connect, cfg.Net.WriteTimeout)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		lg.WithError(err).Fatal("failed to open channel")
	}

	if *status > 0 {
		go reportStatus(ctx, s, *status, lg)
	}
	if err := session.Run(ctx, s, session.NewScheduler(s), ch); err != nil {
		lg.WithError(err).Error("session ended")
	}
	lg.Info("shutting down")
}

// waitForPlayer serves the duel endpoint until one player connects.
func waitForPlayer(ctx context.Context, addr string, s *session.Session, lg logrus.FieldLogger) (network.Channel, error) {
	accepted := make(chan *network.WSChannel, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /duel", Duel(accepted, lg))
	mux.HandleFunc("GET /health", Health(s, lg))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		lg.WithField("addr", addr).Info("waiting for player")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.WithError(err).Error("http server failed")
		}
	}()
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	select {
	case ch := <-accepted:
		return ch, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func reportStatus(ctx context.Context, s *session.Session, every time.Duration, lg logrus.FieldLogger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st := s.Snapshot()
			lg.WithFields(logrus.Fields{
				"connection":  st.Connection,
				"round":       st.Round,
				"latency":     st.Latency,
				"hostHP":      st.Host.Health,
				"playerHP":    st.Player.Health,
				"hostScore":   st.Host.Score,
				"playerScore": st.Player.Score,
			}).Info("status")
		}
	}
}
