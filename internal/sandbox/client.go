package sandbox

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"mockmate/interview/internal/utils"
)

// DefaultTimeout matches the run limit the sandbox enforces remotely.
const DefaultTimeout = 10 * time.Second

// timeoutExitCode mirrors the conventional shell exit status for a
// killed-by-timeout process.
const timeoutExitCode = 124

// Result is the sandbox's verdict on one execution. A sandbox-side
// timeout arrives as a textual message in Output, not as an error.
type Result struct {
	Output   string `json:"output"`
	ExitCode int    `json:"exitCode"`
}

type runRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// Client calls the third-party sandboxed code-execution API.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json"),
		log: log,
	}
}

// Run executes code in the sandbox. Client-side timeouts are folded
// into the same textual shape the sandbox uses for its own limit, so
// callers never branch on a distinct timeout error.
func (c *Client) Run(ctx context.Context, code, language string) (*Result, error) {
	language = utils.NormalizeLanguage(language)

	var result Result
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(runRequest{Code: code, Language: language}).
		SetResult(&result).
		Post("/run")
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			c.log.Warn("Sandbox execution timed out", zap.String("language", language))
			return &Result{
				Output:   "Execution timed out.",
				ExitCode: timeoutExitCode,
			}, nil
		}
		return nil, fmt.Errorf("sandbox request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("sandbox returned status %d: %s", resp.StatusCode(), resp.String())
	}
	return &result, nil
}
