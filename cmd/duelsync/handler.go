package main

import (
	"encoding/json"
	"net/http"
	"sync/atomic"

	cfg "github.com/automoto/duelsync/config"
	"github.com/automoto/duelsync/network"
	"github.com/automoto/duelsync/session"
	"github.com/sirupsen/logrus"
)

type healthResponse struct {
	Status     string `json:"status"`
	Session    string `json:"session"`
	Role       string `json:"role"`
	Connection string `json:"connection"`
	Round      int    `json:"round"`
}

// Duel upgrades the first request to a WebSocket and hands it over.
// Further players are turned away.
func Duel(accepted chan<- *network.WSChannel, lg logrus.FieldLogger) http.HandlerFunc {
	var taken atomic.Bool
	return func(w http.ResponseWriter, r *http.Request) {
		if !taken.CompareAndSwap(false, true) {
			lg.WithField("remote", r.RemoteAddr).Warn("rejecting extra player")
			http.Error(w, `{"error":"duel full"}`, http.StatusConflict)
			return
		}
		ch, err := network.AcceptWS(w, r, cfg.Net.WriteTimeout)
		if err != nil {
			taken.Store(false)
			lg.WithError(err).Warn("websocket accept failed")
			return
		}
		lg.WithField("remote", r.RemoteAddr).Info("player connected")
		accepted <- ch
	}
}

func Health(s *session.Session, lg logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		st := s.Snapshot()
		resp := healthResponse{
			Status:     "ok",
			Session:    st.ID,
			Role:       st.Local.String(),
			Connection: st.Connection.String(),
			Round:      st.Round,
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			lg.WithError(err).Warn("health encode error")
		}
	}
}
