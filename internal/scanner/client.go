package scanner

import (
	"bytes"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrServerUnavailable marks transport failures and 5xx answers from the
// verification server. The worker treats it as retryable and keeps going.
var ErrServerUnavailable = errors.New("verification server unavailable")

type verifyRequest struct {
	QRData string `json:"qr_data"`
}

// VerifyResult is the server verdict the scanner cares about. Reference
// objects in the response body are ignored.
type VerifyResult struct {
	Status    string `json:"status"`
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
}

// VerifyClient calls the server verification endpoint for decoded payloads.
type VerifyClient struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewVerifyClient(baseURL string, log *logrus.Logger) *VerifyClient {
	return &VerifyClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
		log: log,
	}
}

func (c *VerifyClient) Verify(ctx context.Context, qrData string) (VerifyResult, error) {
	body, err := json.Marshal(verifyRequest{QRData: qrData})
	if err != nil {
		return VerifyResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/verify_qr", bytes.NewReader(body))
	if err != nil {
		return VerifyResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return VerifyResult{}, fmt.Errorf("%w: %v", ErrServerUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return VerifyResult{}, fmt.Errorf("%w: status %d", ErrServerUnavailable, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return VerifyResult{}, fmt.Errorf("verification rejected with status %d", resp.StatusCode)
	}

	var result VerifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return VerifyResult{}, err
	}

	return result, nil
}

// FrameUploader pushes captured frames to the server relay so dashboard
// viewers can watch the feed.
type FrameUploader struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewFrameUploader(baseURL string, log *logrus.Logger) *FrameUploader {
	return &FrameUploader{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: time.Second,
		},
		log: log,
	}
}

func (u *FrameUploader) Upload(ctx context.Context, frame []byte) error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="frame"; filename="frame.jpg"`)
	header.Set("Content-Type", "image/jpeg")

	part, err := writer.CreatePart(header)
	if err != nil {
		return err
	}
	if _, err := part.Write(frame); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+"/api/v1/upload_frame", &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("frame upload returned status %d", resp.StatusCode)
	}

	return nil
}
