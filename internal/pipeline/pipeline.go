// Package pipeline runs the validate, fetch, detect and notify steps for a
// single image and folds every failure into a uniform response.
package pipeline

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"imageprocessor/internal/detector"
	"imageprocessor/internal/domain"
	"imageprocessor/internal/infra"
	"imageprocessor/internal/notify"
)

const successMessage = "Image processed successfully"

// Fetcher retrieves the image referenced by a storage URL.
type Fetcher interface {
	Fetch(ctx context.Context, imageURL string) ([]byte, error)
}

// Options wires the collaborators of a Handler.
type Options struct {
	Fetcher  Fetcher
	Detector detector.Detector
	Notifier notify.Notifier
	Logger   *infra.Logger
	// Timeout bounds the whole pipeline when positive.
	Timeout time.Duration
	Now     func() time.Time
}

// Handler is safe for concurrent use; it holds no per-request state.
type Handler struct {
	fetcher  Fetcher
	detector detector.Detector
	notifier notify.Notifier
	logger   infra.Logger
	timeout  time.Duration
	now      func() time.Time
}

// New constructs a Handler. A nil notifier disables notifications.
func New(opts Options) *Handler {
	h := &Handler{
		fetcher:  opts.Fetcher,
		detector: opts.Detector,
		notifier: opts.Notifier,
		timeout:  opts.Timeout,
		now:      opts.Now,
	}
	if h.notifier == nil {
		h.notifier = notify.Noop{}
	}
	if h.now == nil {
		h.now = time.Now
	}
	if opts.Logger != nil {
		h.logger = *opts.Logger
	} else {
		h.logger = infra.NopLogger()
	}
	return h
}

// Process runs the pipeline. It never returns an error: failures become a
// response with Success=false, no detections and no image id.
func (h *Handler) Process(ctx context.Context, req domain.ProcessingRequest) (resp domain.ProcessingResponse) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic: %v", r)
			h.logger.Error().Err(err).Str("image_url", req.ImageURL).Msg("pipeline: recovered from panic")
			resp = failure(err)
		}
	}()

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	detections, err := h.run(ctx, req)
	if err != nil {
		h.logger.Error().Err(err).
			Str("image_url", req.ImageURL).
			Str("user_id", req.UserID).
			Msg("pipeline: processing failed")
		return failure(err)
	}

	id := ImageID(req.ImageURL, h.now())
	h.logger.Info().
		Str("image_id", id).
		Int("detections", len(detections)).
		Msg("pipeline: image processed")
	return domain.ProcessingResponse{
		Success:    true,
		Message:    successMessage,
		Detections: detections,
		ImageID:    &id,
	}
}

func (h *Handler) run(ctx context.Context, req domain.ProcessingRequest) ([]domain.DetectionResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	detections, err := h.Analyze(ctx, req.ImageURL)
	if err != nil {
		return nil, err
	}
	res := h.notify(ctx, req.UserID, detections)
	h.logNotification(req.UserID, res)
	return detections, nil
}

// notify isolates the notifier so that even a panic stays best-effort.
func (h *Handler) notify(ctx context.Context, userID string, detections []domain.DetectionResult) (res notify.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = notify.Failed(fmt.Errorf("notifier panic: %v", r))
		}
	}()
	return h.notifier.Notify(ctx, userID, domain.CloneDetections(detections))
}

// Analyze fetches and runs detection on a single image without notifying
// anyone. The job worker reuses it per image.
func (h *Handler) Analyze(ctx context.Context, imageURL string) ([]domain.DetectionResult, error) {
	if h.fetcher == nil {
		return nil, fmt.Errorf("%w: no fetcher configured", domain.ErrFetch)
	}
	if h.detector == nil {
		return nil, fmt.Errorf("%w: no detector configured", domain.ErrDetection)
	}
	h.logger.Debug().Str("image_url", imageURL).Msg("pipeline: downloading image")
	data, err := h.fetcher.Fetch(ctx, imageURL)
	if err != nil {
		if errors.Is(err, domain.ErrFetch) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	h.logger.Debug().Int("bytes", len(data)).Msg("pipeline: running detection")
	detections, err := h.detector.Detect(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrDetection) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrDetection, err)
	}
	return detections, nil
}

func (h *Handler) logNotification(userID string, res notify.Result) {
	switch {
	case !res.OK():
		h.logger.Error().Err(res.Err).Str("user_id", userID).Str("status", string(res.Status)).Msg("pipeline: notification failed")
	case res.Status == notify.StatusSkipped:
		h.logger.Warn().Str("user_id", userID).Str("reason", res.Reason).Msg("pipeline: notification skipped")
	default:
		h.logger.Info().Str("user_id", userID).Msg("pipeline: notification sent")
	}
}

func failure(err error) domain.ProcessingResponse {
	return domain.ProcessingResponse{
		Success:    false,
		Message:    "Error processing image: " + err.Error(),
		Detections: []domain.DetectionResult{},
	}
}

// ImageID derives an opaque correlation token from the url and a timestamp.
func ImageID(imageURL string, at time.Time) string {
	sum := md5.Sum([]byte(imageURL))
	return hex.EncodeToString(sum[:]) + "_" + strconv.FormatInt(at.UnixMilli(), 10)
}
