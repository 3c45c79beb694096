package rest

import (
	"context"
	"net/http"

	"github.com/evergreen-ci/gimlet"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"

	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/analysis"
	"github.com/gntjr2-ops/Multisignal-Alignment-ROI-Synchronization/model"
)

///////////////////////////////////////////////////////////////////////////////
//
// POST /analyze

// AnalyzeRequest is the body accepted by the analyze route. The sampling
// rate and ROI bounds default to the service configuration when omitted.
type AnalyzeRequest struct {
	SamplingRate float64   `json:"fs"`
	ROIStart     float64   `json:"roi_start"`
	ROIEnd       float64   `json:"roi_end"`
	Time         []float64 `json:"t"`
	PPG          []float64 `json:"ppg"`
	ECG          []float64 `json:"ecg"`
	Detrend      *bool     `json:"detrend,omitempty"`
	FilterMode   string    `json:"filter_mode,omitempty"`
}

type analyzeROIHandler struct {
	defaultRate float64
	payload     AnalyzeRequest
}

func makeAnalyzeROI(defaultRate float64) gimlet.RouteHandler {
	return &analyzeROIHandler{
		defaultRate: defaultRate,
	}
}

// Factory returns a pointer to a new analyzeROIHandler.
func (h *analyzeROIHandler) Factory() gimlet.RouteHandler {
	return &analyzeROIHandler{
		defaultRate: h.defaultRate,
	}
}

// Parse decodes the analysis request from the http request body.
func (h *analyzeROIHandler) Parse(_ context.Context, r *http.Request) error {
	body := utility.NewRequestReader(r)
	defer body.Close()

	if err := utility.ReadJSON(body, &h.payload); err != nil {
		return errors.Wrap(err, "Argument read error")
	}

	if len(h.payload.PPG) == 0 || len(h.payload.ECG) == 0 {
		return errors.New("must provide ppg and ecg samples")
	}

	return nil
}

// Run builds a request-scoped analyzer and returns the ROI result.
func (h *analyzeROIHandler) Run(ctx context.Context) gimlet.Responder {
	fs := h.payload.SamplingRate
	if fs == 0 {
		fs = h.defaultRate
	}

	analyzer, err := analysis.NewAnalyzer(fs)
	if err == nil {
		err = analyzer.SetROI(h.payload.ROIStart, h.payload.ROIEnd)
	}
	if err != nil {
		err = errors.Wrap(err, "problem configuring analyzer")
		grip.Error(message.WrapError(err, message.Fields{
			"request": gimlet.GetRequestID(ctx),
			"method":  "POST",
			"route":   "/analyze",
		}))
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		})
	}

	opts := model.DefaultAnalyzeOptions()
	if h.payload.Detrend != nil {
		opts.Detrend = *h.payload.Detrend
	}
	if h.payload.FilterMode != "" {
		opts.FilterMode = h.payload.FilterMode
	}

	result, err := analyzer.AnalyzeROI(h.payload.Time, h.payload.PPG, h.payload.ECG, opts)
	if err != nil {
		err = errors.Wrap(err, "problem analyzing region of interest")
		grip.Error(message.WrapError(err, message.Fields{
			"request":   gimlet.GetRequestID(ctx),
			"method":    "POST",
			"route":     "/analyze",
			"fs":        fs,
			"roi_start": h.payload.ROIStart,
			"roi_end":   h.payload.ROIEnd,
		}))
		return gimlet.MakeJSONErrorResponder(gimlet.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    err.Error(),
		})
	}

	return gimlet.NewJSONResponse(result)
}
