package relay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/khatabook/number-change-portal/internal/upstream"
)

var (
	ErrMissingURL     = errors.New("URL parameter is required")
	ErrInvalidURL     = errors.New("URL must be an absolute http or https URL")
	ErrHostNotAllowed = errors.New("URL host is not allowed")
)

const maxBodySize = 1 << 20

type Config struct {
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
	// AllowedHosts restricts relayed hosts when non-empty.
	AllowedHosts []string `mapstructure:"allowed_hosts"`
}

// Result mirrors the relay's JSON answer. On success Data is the upstream
// body verbatim; on failure Error and ErrorCode describe the fault.
type Result struct {
	Success   bool
	Status    int
	Data      string
	Error     string
	ErrorCode string
}

type Relay struct {
	config Config
	client *http.Client
}

func New(config Config, client *http.Client) *Relay {
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.UserAgent == "" {
		config.UserAgent = "Khatabook-Proxy/1.0"
	}
	if client == nil {
		client = &http.Client{}
	}
	hosts := make([]string, 0, len(config.AllowedHosts))
	for _, h := range config.AllowedHosts {
		hosts = append(hosts, strings.ToLower(strings.TrimSpace(h)))
	}
	config.AllowedHosts = hosts
	return &Relay{
		config: config,
		client: client,
	}
}

// Validate checks target before any network call.
func (r *Relay) Validate(target string) (*url.URL, error) {
	if strings.TrimSpace(target) == "" {
		return nil, ErrMissingURL
	}
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	if len(r.config.AllowedHosts) > 0 && !slices.Contains(r.config.AllowedHosts, strings.ToLower(u.Hostname())) {
		return nil, ErrHostNotAllowed
	}
	return u, nil
}

// Do forwards a GET to target and returns the upstream body as text. It
// returns an error only for rejected targets; network faults are folded
// into the Result.
func (r *Relay) Do(ctx context.Context, target string) (Result, error) {
	u, err := r.Validate(target)
	if err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, ErrInvalidURL
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", r.config.UserAgent)

	slog.Info("Proxying request", "host", u.Host, "path", u.Path)

	resp, err := r.client.Do(req)
	if err != nil {
		return failure(err), nil
	}
	defer resp.Body.Close()

	body, err := upstream.ReadBody(resp.Body, maxBodySize)
	if err != nil {
		return failure(err), nil
	}

	slog.Info("Proxy response", "host", u.Host, "status", resp.StatusCode, "bytes", len(body))
	return Result{
		Success: true,
		Status:  resp.StatusCode,
		Data:    string(body),
	}, nil
}

func failure(err error) Result {
	slog.Error("Proxy error", "error", err)
	return Result{
		Success:   false,
		Error:     err.Error(),
		ErrorCode: upstream.Classify(err),
	}
}
