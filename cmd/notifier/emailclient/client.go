package emailclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"blog-fusion/cmd/api/httpclient"
)

// Client는 이메일 발송 서비스 HTTP API를 호출하는 얇은 클라이언트다.
//
// 템플릿 렌더링과 실제 발송은 업스트림 서비스가 담당하고,
// 이 클라이언트는 수신자와 메시지 구성만 전달한다.
//
// baseURL 예: http://email_service:8003

type Client struct {
	base *httpclient.BaseClient
}

func New() *Client {
	base := os.Getenv("EMAIL_SERVICE_BASE_URL")
	if base == "" {
		base = "http://email_service:8003"
	}

	return &Client{
		base: httpclient.NewBaseClient(base),
	}
}

type SendRequest struct {
	ToUserID string `json:"to_user_id"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
}

// Send는 POST /api/v1/emails 를 호출해 알림 이메일 발송을 요청한다.
func (c *Client) Send(ctx context.Context, msg SendRequest) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/api/v1/emails", nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("email-service Send: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
