package scanner

import (
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"WarehouseGolang/pkg/qr"
)

type Mode string

const (
	// ModeRemote sends every decoded payload to the server for a verdict.
	ModeRemote Mode = "remote"
	// ModeSpatial verifies placements geometrically within the frame and
	// logs locally, for runs without a reachable server.
	ModeSpatial Mode = "spatial"
)

type Config struct {
	ServerURL   string
	SnapshotURL string
	Mode        Mode

	CaptureInterval time.Duration
	UploadInterval  time.Duration
	QueueDepth      int
	FrameSkip       int
	Cooldown        time.Duration

	// LogPath is the sqlite file for spatial mode history.
	LogPath string
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeRemote
	}
	if c.CaptureInterval <= 0 {
		c.CaptureInterval = 100 * time.Millisecond
	}
	if c.UploadInterval <= 0 {
		c.UploadInterval = 100 * time.Millisecond
	}
	if c.QueueDepth <= 0 {
		c.QueueDepth = 2
	}
	if c.FrameSkip <= 0 {
		c.FrameSkip = 2
	}
	if c.Cooldown <= 0 {
		c.Cooldown = 3 * time.Second
	}
	if c.LogPath == "" {
		c.LogPath = "data/warehouse_log.db"
	}
}

// Scanner couples the capture loop, the frame uploader and the verification
// worker. One Scanner owns one camera.
type Scanner struct {
	cfg      Config
	log      *logrus.Logger
	source   FrameSource
	uploader *FrameUploader
	worker   *Worker
	queue    chan QueueItem
	store    *LogStore

	frameMu   sync.RWMutex
	lastFrame []byte
}

func New(cfg Config, log *logrus.Logger) (*Scanner, error) {
	cfg.applyDefaults()

	if cfg.SnapshotURL == "" {
		return nil, errors.New("snapshot URL is required")
	}
	if cfg.Mode == ModeRemote && cfg.ServerURL == "" {
		return nil, errors.New("server URL is required in remote mode")
	}

	queue := make(chan QueueItem, cfg.QueueDepth)

	s := &Scanner{
		cfg:    cfg,
		log:    log,
		source: NewSnapshotSource(cfg.SnapshotURL, log),
		queue:  queue,
	}

	var verifier Verifier
	switch cfg.Mode {
	case ModeSpatial:
		store, err := NewLogStore(cfg.LogPath, log)
		if err != nil {
			return nil, err
		}
		s.store = store
		verifier = NewSpatialVerifier(qr.NewMatcher(qr.DefaultMatcherConfig()), store)
	case ModeRemote:
		verifier = NewRemoteVerifier(NewVerifyClient(cfg.ServerURL, log))
	default:
		return nil, errors.New("unknown scanner mode: " + string(cfg.Mode))
	}

	if cfg.ServerURL != "" {
		s.uploader = NewFrameUploader(cfg.ServerURL, log)
	}

	s.worker = NewWorker(log, queue, qr.DecodeFrame, verifier, cfg.Cooldown)

	return s, nil
}

// Run blocks until ctx is cancelled. Closing the queue is the poison pill
// that lets the worker drain and exit.
func (s *Scanner) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.worker.Run(ctx)
	}()

	if s.uploader != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.uploadLoop(ctx)
		}()
	}

	s.captureLoop(ctx)
	close(s.queue)
	wg.Wait()

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to close verification log store")
		}
	}

	return ctx.Err()
}

func (s *Scanner) captureLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CaptureInterval)
	defer ticker.Stop()

	frameCount := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		frame, err := s.source.Next(ctx)
		if err != nil {
			// Camera hiccups are routine; drop the tick and poll again.
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Debug("Frame capture failed")
			continue
		}

		s.frameMu.Lock()
		s.lastFrame = frame
		s.frameMu.Unlock()

		frameCount++
		if frameCount%s.cfg.FrameSkip != 0 {
			continue
		}

		if !tryEnqueue(s.queue, QueueItem{Frame: frame, At: time.Now()}) {
			s.log.Debug("Frame queue full, skipping frame")
		}
	}
}

// tryEnqueue never blocks; a full queue means the worker is behind and the
// frame is simply dropped.
func tryEnqueue(queue chan QueueItem, item QueueItem) bool {
	select {
	case queue <- item:
		return true
	default:
		return false
	}
}

func (s *Scanner) uploadLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.UploadInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		s.frameMu.RLock()
		frame := s.lastFrame
		s.frameMu.RUnlock()

		if frame == nil {
			continue
		}

		if err := s.uploader.Upload(ctx, frame); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Debug("Frame upload failed")
		}
	}
}
