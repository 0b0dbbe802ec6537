// internal/web/server.go
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/tamzrod/tracer-agent/internal/firmware"
	"github.com/tamzrod/tracer-agent/internal/publish"
	"github.com/tamzrod/tracer-agent/internal/status"
)

// Server is the administrative HTTP surface. It reads the ledger and
// never mutates engine state; the one exception is the reboot trigger,
// which escalates through the restart callback.
type Server struct {
	ledger  *status.Ledger
	ambient func() status.Ambient
	pub     publish.Publisher
	updater firmware.Updater
	restart func(reason string)

	router *mux.Router
	server *http.Server
}

// NewServer wires the admin surface. updater may be nil (upload
// endpoint answers 503); restart may be nil (reboot answers 503).
func NewServer(ledger *status.Ledger, ambient func() status.Ambient, pub publish.Publisher, updater firmware.Updater, restart func(string)) *Server {
	if ambient == nil {
		ambient = func() status.Ambient { return status.Ambient{} }
	}

	s := &Server{
		ledger:  ledger,
		ambient: ambient,
		pub:     pub,
		updater: updater,
		restart: restart,
		router:  mux.NewRouter(),
	}

	s.router.HandleFunc("/", s.handleIndex).Methods("GET")
	s.router.HandleFunc("/api/status", s.handleStatus).Methods("GET")
	s.router.HandleFunc("/reboot", s.handleReboot).Methods("POST")
	s.router.HandleFunc("/firmware", s.handleFirmware).Methods("POST")

	return s
}

// Start begins listening in the background.
func (s *Server) Start(listen string) {
	s.server = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("listen", listen).Info("admin http listening")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("admin http server error")
		}
	}()
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// ---- handlers ----

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	payload, err := status.Encode(s.ledger.View(), s.ambient(), time.Now())
	if err != nil {
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(payload)
}

func (s *Server) handleReboot(w http.ResponseWriter, r *http.Request) {
	if s.restart == nil {
		http.Error(w, "reboot not available", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprintln(w, "rebooting")

	// Let the response flush before the process goes away.
	go func() {
		time.Sleep(250 * time.Millisecond)
		s.restart("reboot requested via admin interface")
	}()
}

func (s *Server) handleFirmware(w http.ResponseWriter, r *http.Request) {
	if s.updater == nil {
		http.Error(w, "firmware upload not available", http.StatusServiceUnavailable)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := s.updater.Apply(file); err != nil {
		log.WithError(err).Error("firmware upload failed")
		http.Error(w, "staging failed", http.StatusInternalServerError)
		return
	}

	log.WithField("name", header.Filename).Info("firmware upload accepted")
	w.WriteHeader(http.StatusAccepted)
	_, _ = fmt.Fprintln(w, "image staged")
}
