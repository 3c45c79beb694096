package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/evergreen-ci/gimlet"
	"github.com/pkg/errors"

	biosync "github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization"
)

// Service exposes the waveform analyzer over HTTP. Every request builds
// its own analyzer so concurrent sessions never share ROI or rate state.
type Service struct {
	Port         int
	Prefix       string
	SamplingRate float64

	// internal settings
	app     *gimlet.APIApp
	started time.Time
}

func (s *Service) Validate() error {
	if s.app == nil {
		s.app = gimlet.NewApp()
	}

	if s.Port == 0 {
		s.Port = biosync.DefaultServicePort
	}

	if s.SamplingRate == 0 {
		s.SamplingRate = biosync.DefaultSamplingRate
	}
	if s.SamplingRate <= 0 {
		return errors.Errorf("invalid default sampling rate %f", s.SamplingRate)
	}

	if err := s.app.SetPort(s.Port); err != nil {
		return errors.WithStack(err)
	}

	if s.Prefix != "" {
		s.app.SetPrefix(s.Prefix)
	}

	return nil
}

func (s *Service) Start(ctx context.Context) error {
	if s.app == nil {
		return errors.New("application is not valid")
	}

	s.started = time.Now()
	s.addRoutes()

	if err := s.app.Resolve(); err != nil {
		return errors.Wrap(err, "problem resolving routes")
	}

	return s.app.Run(ctx)
}

func (s *Service) addRoutes() {
	s.app.AddRoute("/status").Version(1).Get().Handler(s.statusHandler)
	s.app.AddRoute("/analyze").Version(1).Post().RouteHandler(makeAnalyzeROI(s.SamplingRate))
}

////////////////////////////////////////////////////////////////////////
//
// GET /status

type StatusResponse struct {
	Service       string  `json:"service"`
	Revision      string  `json:"revision"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

func (s *Service) statusHandler(w http.ResponseWriter, r *http.Request) {
	resp := &StatusResponse{
		Service:       "biosync",
		Revision:      biosync.BuildRevision,
		UptimeSeconds: time.Since(s.started).Seconds(),
	}

	gimlet.WriteJSON(w, resp)
}
