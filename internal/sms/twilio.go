package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cafe-storefront/internal/domain"
	"cafe-storefront/internal/logger"
	"go.uber.org/zap"
)

const twilioBaseURL = "https://api.twilio.com"

type twilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
}

// NewTwilio returns a Sender that posts to the Twilio Messages API.
func NewTwilio(accountSID, authToken, from string) Sender {
	if accountSID == "" || authToken == "" {
		logger.L().Warn("twilio credentials are empty")
	}
	return &twilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    twilioBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *twilioSender) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.baseURL, t.accountSID)

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", t.from)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		logger.FromCtx(ctx).Error("twilio send failed", zap.String("to", to), zap.Error(err))
		return fmt.Errorf("%w: %v", domain.ErrDispatch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.FromCtx(ctx).Error("twilio rejected message",
			zap.String("to", to),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", payload),
		)
		return fmt.Errorf("%w: twilio status %d", domain.ErrDispatch, resp.StatusCode)
	}

	logger.FromCtx(ctx).Info("sms dispatched", zap.String("to", to))
	return nil
}
