package streamService

import (
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"

	"WarehouseGolang/internal/api/inventory"
)

type IStreamService interface {
	UpdateFrame(data []byte)
	Latest() ([]byte, bool)
	Subscribe(conn *websocket.Conn)
	Unsubscribe(conn *websocket.Conn)
	PublishScan(event inventory.ScanEvent)
}

// streamService relays camera frames from the scanner to dashboard viewers
// and fans scan events out to websocket subscribers. The frame buffer holds
// a single slot; a new upload always replaces the previous frame.
type streamService struct {
	log *logrus.Logger

	frameMu sync.RWMutex
	frame   []byte

	subMu       sync.Mutex
	subscribers map[*websocket.Conn]struct{}
}

func NewStreamService(log *logrus.Logger) IStreamService {
	return &streamService{
		log:         log,
		subscribers: make(map[*websocket.Conn]struct{}),
	}
}

func (s *streamService) UpdateFrame(data []byte) {
	buf := make([]byte, len(data))
	copy(buf, data)

	s.frameMu.Lock()
	s.frame = buf
	s.frameMu.Unlock()
}

func (s *streamService) Latest() ([]byte, bool) {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()

	if s.frame == nil {
		return nil, false
	}

	buf := make([]byte, len(s.frame))
	copy(buf, s.frame)
	return buf, true
}

func (s *streamService) Subscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	s.subscribers[conn] = struct{}{}
	count := len(s.subscribers)
	s.subMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"subscribers": count,
	}).Info("Scan event subscriber connected")
}

func (s *streamService) Unsubscribe(conn *websocket.Conn) {
	s.subMu.Lock()
	delete(s.subscribers, conn)
	count := len(s.subscribers)
	s.subMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"subscribers": count,
	}).Info("Scan event subscriber disconnected")
}

// PublishScan writes the event to every subscriber. Connections that fail the
// write are dropped from the registry; their read loop notices the closed
// socket and exits.
func (s *streamService) PublishScan(event inventory.ScanEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	for conn := range s.subscribers {
		if err := conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
			delete(s.subscribers, conn)
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Dropping scan event subscriber")
			conn.Close()
			delete(s.subscribers, conn)
		}
	}
}
