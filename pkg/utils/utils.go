package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"time"

	"github.com/oklog/ulid/v2"
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateFrameBytes(data []byte) error
}

type utils struct {
	maxFileSize int64
}

func New() IUtils {
	return &utils{
		maxFileSize: 16 * 1024 * 1024,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// ValidateFrameBytes checks that the bytes are a decodable image without
// decoding the full pixel data.
func (u *utils) ValidateFrameBytes(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty frame")
	}

	if int64(len(data)) > u.maxFileSize {
		return errors.New("frame size exceeds limit")
	}

	if _, _, err := image.DecodeConfig(bytes.NewReader(data)); err != nil {
		return errors.New("frame is not a decodable image")
	}

	return nil
}
