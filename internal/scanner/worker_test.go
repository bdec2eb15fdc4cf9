package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WarehouseGolang/internal/entity"
	"WarehouseGolang/pkg/qr"
)

type recordingVerifier struct {
	calls [][]string
	err   error
}

func (v *recordingVerifier) Verify(_ context.Context, detections []entity.Detection) ([]Result, error) {
	if v.err != nil {
		err := v.err
		v.err = nil
		return nil, err
	}

	payloads := make([]string, 0, len(detections))
	results := make([]Result, 0, len(detections))
	for _, detection := range detections {
		payloads = append(payloads, detection.Data)
		results = append(results, Result{QRData: detection.Data, Status: "correct"})
	}
	v.calls = append(v.calls, payloads)
	return results, nil
}

// decodeFromPayloads treats the frame bytes as a comma-free payload list so
// tests control detections without real JPEG fixtures.
func decodeFromPayloads(frame []byte) ([]entity.Detection, error) {
	if len(frame) == 0 {
		return nil, errors.New("empty frame")
	}
	return []entity.Detection{{Data: string(frame)}}, nil
}

func runWorker(queue chan QueueItem, verifier Verifier) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	worker := NewWorker(log, queue, decodeFromPayloads, verifier, 3*time.Second)
	worker.Run(context.Background())
}

func TestWorkerCooldownSuppressesRepeats(t *testing.T) {
	verifier := &recordingVerifier{}
	queue := make(chan QueueItem, 4)

	base := time.Now()
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base}
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base.Add(time.Second)}
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base.Add(2 * time.Second)}
	close(queue)

	runWorker(queue, verifier)

	require.Len(t, verifier.calls, 1)
	assert.Equal(t, []string{"1/1/1"}, verifier.calls[0])
}

func TestWorkerCooldownRearms(t *testing.T) {
	verifier := &recordingVerifier{}
	queue := make(chan QueueItem, 4)

	base := time.Now()
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base}
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base.Add(4 * time.Second)}
	close(queue)

	runWorker(queue, verifier)

	assert.Len(t, verifier.calls, 2)
}

func TestWorkerCooldownIsPerPayload(t *testing.T) {
	verifier := &recordingVerifier{}
	queue := make(chan QueueItem, 4)

	base := time.Now()
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base}
	queue <- QueueItem{Frame: []byte("2/4/2"), At: base.Add(time.Second)}
	close(queue)

	runWorker(queue, verifier)

	require.Len(t, verifier.calls, 2)
	assert.Equal(t, []string{"1/1/1"}, verifier.calls[0])
	assert.Equal(t, []string{"2/4/2"}, verifier.calls[1])
}

func TestWorkerSurvivesVerifierFailure(t *testing.T) {
	verifier := &recordingVerifier{err: errors.New("connection refused")}
	queue := make(chan QueueItem, 4)

	base := time.Now()
	queue <- QueueItem{Frame: []byte("1/1/1"), At: base}
	queue <- QueueItem{Frame: []byte("2/4/2"), At: base.Add(time.Second)}
	close(queue)

	runWorker(queue, verifier)

	// The first item hit the failure; the worker must still verify the next.
	require.Len(t, verifier.calls, 1)
	assert.Equal(t, []string{"2/4/2"}, verifier.calls[0])
}

func TestWorkerSurvivesDecodeFailure(t *testing.T) {
	verifier := &recordingVerifier{}
	queue := make(chan QueueItem, 4)

	queue <- QueueItem{Frame: nil, At: time.Now()}
	queue <- QueueItem{Frame: []byte("1/1/1"), At: time.Now()}
	close(queue)

	runWorker(queue, verifier)

	assert.Len(t, verifier.calls, 1)
}

func TestTryEnqueueSkipsWhenFull(t *testing.T) {
	queue := make(chan QueueItem, 2)

	assert.True(t, tryEnqueue(queue, QueueItem{Frame: []byte("a")}))
	assert.True(t, tryEnqueue(queue, QueueItem{Frame: []byte("b")}))
	assert.False(t, tryEnqueue(queue, QueueItem{Frame: []byte("c")}))

	// Draining one slot re-opens the queue.
	<-queue
	assert.True(t, tryEnqueue(queue, QueueItem{Frame: []byte("d")}))
}

func TestSpatialVerifierStatuses(t *testing.T) {
	verifier := NewSpatialVerifier(qr.NewMatcher(qr.DefaultMatcherConfig()), nil)

	detections := []entity.Detection{
		{Data: "P1/7/5", Center: entity.Point{X: 100, Y: 320}},
		{Data: "S/0/5", Center: entity.Point{X: 110, Y: 400}},
	}

	results, err := verifier.Verify(context.Background(), detections)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "7", results[0].QRData)
	assert.Equal(t, "Correct", results[0].Status)
}
