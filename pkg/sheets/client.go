package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Mukeshkannan-R/ExpenseTrackerBot/internal/models"
)

// ErrNotConfigured is returned when no webhook URL was provided; submissions
// short-circuit without touching the network.
var ErrNotConfigured = errors.New("sheets webhook URL is not configured")

const requestTimeout = 10 * time.Second

// Client appends expense rows to the spreadsheet through its webhook.
type Client struct {
	webhookURL string
	httpClient *http.Client
	location   *time.Location
	now        func() time.Time
}

func NewClient(webhookURL string) *Client {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*3600+30*60)
	}

	return &Client{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		location:   loc,
		now:        time.Now,
	}
}

// Append posts one finished record to the webhook. The submission timestamp
// is stamped here, at send time, in 12-hour IST form.
func (c *Client) Append(ctx context.Context, rec models.ExpenseRecord) error {
	if c.webhookURL == "" {
		return ErrNotConfigured
	}

	rec.Timestamp = c.now().In(c.location).Format("03:04 PM") + " IST"

	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal expense record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post to sheets webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sheets webhook returned status %d", resp.StatusCode)
	}
	return nil
}
