package scanner

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// FrameSource yields raw frame bytes from a camera endpoint.
type FrameSource interface {
	Next(ctx context.Context) ([]byte, error)
}

// SnapshotSource polls an HTTP endpoint that returns a single JPEG per
// request, the way cheap IP cameras expose their capture URL.
type SnapshotSource struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

func NewSnapshotSource(url string, log *logrus.Logger) *SnapshotSource {
	return &SnapshotSource{
		url: url,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
		log: log,
	}
}

func (s *SnapshotSource) Next(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("snapshot endpoint returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
