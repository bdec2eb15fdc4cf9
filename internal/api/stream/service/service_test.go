package streamService

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStream() IStreamService {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewStreamService(log)
}

func TestLatestEmpty(t *testing.T) {
	svc := newTestStream()

	frame, ok := svc.Latest()
	assert.False(t, ok)
	assert.Nil(t, frame)
}

func TestLastWriteWins(t *testing.T) {
	svc := newTestStream()

	svc.UpdateFrame([]byte("frame-1"))
	svc.UpdateFrame([]byte("frame-2"))
	svc.UpdateFrame([]byte("frame-3"))

	frame, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, []byte("frame-3"), frame)
}

func TestLatestReturnsCopy(t *testing.T) {
	svc := newTestStream()

	original := []byte("frame-data")
	svc.UpdateFrame(original)

	frame, ok := svc.Latest()
	require.True(t, ok)

	frame[0] = 'X'
	again, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, []byte("frame-data"), again)
}

func TestUpdateFrameCopiesInput(t *testing.T) {
	svc := newTestStream()

	buf := []byte("frame-data")
	svc.UpdateFrame(buf)
	buf[0] = 'X'

	frame, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, []byte("frame-data"), frame)
}

func TestConcurrentFrameAccess(t *testing.T) {
	svc := newTestStream()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.UpdateFrame([]byte(fmt.Sprintf("writer-%d-frame-%04d", n, j)))
			}
		}(i)
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				frame, ok := svc.Latest()
				if !ok {
					continue
				}
				// A read must never observe a torn frame.
				assert.True(t, bytes.HasPrefix(frame, []byte("writer-")))
				assert.Len(t, frame, len("writer-0-frame-0000"))
			}
		}()
	}

	wg.Wait()
}
