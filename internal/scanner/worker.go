package scanner

import (
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"WarehouseGolang/internal/entity"
	"WarehouseGolang/pkg/qr"
)

// QueueItem is one captured frame waiting for the worker, stamped with its
// capture time so the cooldown window follows capture order.
type QueueItem struct {
	Frame []byte
	At    time.Time
}

// Result is one verified payload, mode-independent.
type Result struct {
	QRData  string
	Status  string
	Message string
}

// Verifier turns fresh detections from one frame into verification results.
type Verifier interface {
	Verify(ctx context.Context, detections []entity.Detection) ([]Result, error)
}

// DecodeFunc extracts QR detections from raw frame bytes.
type DecodeFunc func(frame []byte) ([]entity.Detection, error)

// Worker drains the frame queue, decodes, applies the per-payload cooldown
// and hands fresh detections to the verifier. Only the worker touches the
// cooldown map, so it needs no lock.
type Worker struct {
	log      *logrus.Logger
	queue    <-chan QueueItem
	decode   DecodeFunc
	verifier Verifier
	cooldown time.Duration
	lastSeen map[string]time.Time
}

func NewWorker(log *logrus.Logger, queue <-chan QueueItem, decode DecodeFunc, verifier Verifier, cooldown time.Duration) *Worker {
	return &Worker{
		log:      log,
		queue:    queue,
		decode:   decode,
		verifier: verifier,
		cooldown: cooldown,
		lastSeen: make(map[string]time.Time),
	}
}

// Run processes items until the queue is closed. A failed decode or
// verification never stops the worker.
func (w *Worker) Run(ctx context.Context) {
	for item := range w.queue {
		detections, err := w.decode(item.Frame)
		if err != nil {
			w.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Debug("Frame decode failed")
			continue
		}

		fresh := w.filterCooldown(detections, item.At)
		if len(fresh) == 0 {
			continue
		}

		results, err := w.verifier.Verify(ctx, fresh)
		if err != nil {
			w.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Verification failed, will retry on next detection")
			continue
		}

		for _, result := range results {
			w.log.WithFields(logrus.Fields{
				"qr_data": result.QRData,
				"status":  result.Status,
				"message": result.Message,
			}).Info("Verification result")
		}
	}
}

func (w *Worker) filterCooldown(detections []entity.Detection, at time.Time) []entity.Detection {
	fresh := make([]entity.Detection, 0, len(detections))
	for _, detection := range detections {
		if last, seen := w.lastSeen[detection.Data]; seen && at.Sub(last) <= w.cooldown {
			continue
		}
		w.lastSeen[detection.Data] = at
		fresh = append(fresh, detection)
	}
	return fresh
}

// remoteVerifier asks the server for a verdict per decoded payload.
type remoteVerifier struct {
	client *VerifyClient
}

func NewRemoteVerifier(client *VerifyClient) Verifier {
	return &remoteVerifier{client: client}
}

func (v *remoteVerifier) Verify(ctx context.Context, detections []entity.Detection) ([]Result, error) {
	results := make([]Result, 0, len(detections))
	for _, detection := range detections {
		verdict, err := v.client.Verify(ctx, detection.Data)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			QRData:  detection.Data,
			Status:  verdict.Status,
			Message: verdict.Message,
		})
	}
	return results, nil
}

// spatialVerifier checks placements geometrically within the frame and keeps
// the history in the local store. It needs no server at all.
type spatialVerifier struct {
	matcher *qr.Matcher
	store   *LogStore
}

func NewSpatialVerifier(matcher *qr.Matcher, store *LogStore) Verifier {
	return &spatialVerifier{matcher: matcher, store: store}
}

func (v *spatialVerifier) Verify(ctx context.Context, detections []entity.Detection) ([]Result, error) {
	placements := v.matcher.Match(detections)

	results := make([]Result, 0, len(placements))
	for _, placement := range placements {
		detectedShelf := placement.DetectedShelf
		if detectedShelf == "" {
			detectedShelf = "-"
		}

		var status string
		switch placement.Status {
		case entity.PlacementCorrect:
			status = "Correct"
		case entity.PlacementMisplaced:
			status = "Misplaced"
		default:
			status = "No shelf detected"
		}

		if v.store != nil {
			if err := v.store.LogEvent(ctx, placement.ProductID, placement.ExpectedShelf, detectedShelf, status); err != nil {
				return nil, err
			}
		}

		results = append(results, Result{
			QRData:  placement.ProductID,
			Status:  status,
			Message: "Expected Shelf " + placement.ExpectedShelf + ", Detected " + detectedShelf,
		})
	}

	return results, nil
}
