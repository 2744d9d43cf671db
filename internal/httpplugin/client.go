// Package httpplugin はフロントエンドから CORS の制約なしに外部 API を叩くための HTTP 機能。
package httpplugin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/publicsuffix"
)

var (
	ErrNotAllowed   = errors.New("url is not allowed by http scope")
	ErrScheme       = errors.New("only http and https are supported")
	ErrBodyTooLarge = errors.New("response body too large")
)

const DefaultMaxBodyBytes = 8 << 20

// Options は Client の設定。
type Options struct {
	Allow        []string // 許可ホストパターン
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Request はフロントエンドから渡されるリクエスト。
type Request struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Headers   map[string]string `json:"headers"`
	Body      string            `json:"body"`
	TimeoutMs int               `json:"timeoutMs"`
}

// Response は fetch の Response に近い形で返す。
type Response struct {
	Status     int               `json:"status"`
	StatusText string            `json:"statusText"`
	OK         bool              `json:"ok"`
	URL        string            `json:"url"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

// Client はフロントエンドにバインドされる HTTP クライアント。
type Client struct {
	http  *http.Client
	opts  Options
	scope *scope
}

func NewClient(opts Options) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	sc := newScope(opts.Allow)
	c := &Client{opts: opts, scope: sc}
	c.http = &http.Client{
		Jar:     jar,
		Timeout: opts.Timeout,
		// リダイレクト先もスコープ内であること
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return errors.New("stopped after 10 redirects")
			}
			if !sc.allows(req.URL) {
				return fmt.Errorf("%w: %s", ErrNotAllowed, req.URL.Redacted())
			}
			return nil
		},
	}
	return c, nil
}

// Fetch は req を実行してレスポンス全体を返す。HTTP エラーステータスはエラーにしない（OK=false）。
func (c *Client) Fetch(req Request) (*Response, error) {
	ctx := context.Background()
	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req Request) (*Response, error) {
	u, err := url.Parse(strings.TrimSpace(req.URL))
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrScheme, u.Scheme)
	}
	if !c.scope.allows(u) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, u.Redacted())
	}

	method := strings.ToUpper(strings.TrimSpace(req.Method))
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}
	hreq, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		hreq.Header.Set(k, v)
	}
	if hreq.Header.Get("User-Agent") == "" && c.opts.UserAgent != "" {
		hreq.Header.Set("User-Agent", c.opts.UserAgent)
	}

	start := time.Now()
	res, err := c.http.Do(hreq)
	if err != nil {
		log.WithFields(log.Fields{"method": method, "url": u.Redacted(), "err": err}).Warn("fetch failed")
		return nil, err
	}
	defer res.Body.Close()

	bt, err := io.ReadAll(io.LimitReader(res.Body, c.opts.MaxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(bt)) > c.opts.MaxBodyBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, c.opts.MaxBodyBytes)
	}
	log.WithFields(log.Fields{
		"method":   method,
		"url":      u.Redacted(),
		"status":   res.StatusCode,
		"duration": time.Since(start),
	}).Debug("fetch")

	headers := make(map[string]string, len(res.Header))
	for k, vs := range res.Header {
		headers[strings.ToLower(k)] = strings.Join(vs, ", ")
	}
	return &Response{
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		OK:         res.StatusCode >= 200 && res.StatusCode < 300,
		URL:        res.Request.URL.String(),
		Headers:    headers,
		Body:       string(bt),
	}, nil
}
