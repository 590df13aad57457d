// Package httpclient provides a shortclient.Client implementation that talks
// JSON over HTTP to a shorten endpoint.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"shortener/pkg/serrors"
	"shortener/pkg/shortclient"
	"strings"

	"github.com/go-faster/jx"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// Options configures a Client.
type Options struct {
	// Endpoint is the base URL of the shortener service, e.g. http://localhost:8080.
	// Requests go to <Endpoint>/shorten.
	Endpoint string
	// Token, when set, is sent as a bearer token in the Authorization header.
	Token string
}

// Client posts URLs to <Endpoint>/shorten. It is safe for concurrent use and
// keeps no state between calls: every Shorten is an independent request.
type Client struct {
	httpClient *http.Client // httpClient performs the requests; its Timeout bounds each call
	shortenURL string
	token      string
}

// Ensure Client conforms to the shortclient.Client interface at compile time.
var _ shortclient.Client = (*Client)(nil)

// New constructs a Client that uses the provided http.Client.
func New(httpClient *http.Client, opts Options) *Client {
	return &Client{
		httpClient: httpClient,
		shortenURL: strings.TrimRight(opts.Endpoint, "/") + "/shorten",
		token:      opts.Token,
	}
}

// EncodeRequest returns the request body for URL: exactly {"url":<URL>}.
func EncodeRequest(URL string) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("url", func(e *jx.Encoder) {
			e.Str(URL)
		})
	})

	return e.Bytes()
}

// response holds the string fields of a shorten response. Fields that are
// absent or not strings stay empty.
type response struct {
	ShortURL string
	Error    string
}

var errTrailingData = errors.New("unexpected data after JSON object")

// requireEOF fails unless only whitespace is left in d.
func requireEOF(d *jx.Decoder) error {
	if d.Next() != jx.Invalid {
		return errTrailingData
	}
	if err := d.Skip(); !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return errTrailingData
	}

	return nil
}

func decodeResponse(b []byte) (response, error) {
	var res response
	d := jx.DecodeBytes(b)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var field *string
		switch key {
		case "short_url":
			field = &res.ShortURL
		case "error":
			field = &res.Error
		default:
			return d.Skip()
		}
		if d.Next() != jx.String {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		*field = v

		return nil
	})
	if err == nil {
		err = requireEOF(d)
	}
	if err != nil {
		return response{}, fmt.Errorf("could not decode response: %w", err)
	}

	return res, nil
}

// Shorten posts URL to the shorten endpoint. A non-empty short_url wins over
// everything else, including a non-2xx status. Otherwise a non-empty error
// field becomes a *shortclient.ServerError.
func (c *Client) Shorten(ctx context.Context, URL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.shortenURL, bytes.NewReader(EncodeRequest(URL)))
	if err != nil {
		return "", fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrUnavailable, err, "could not send request")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrUnavailable, err, "could not read response body")
	}

	res, err := decodeResponse(b)
	if err != nil {
		return "", serrors.Wrap(shortclient.ErrMalformedResponse, err, "unexpected response (status %d)", resp.StatusCode)
	}
	if res.ShortURL != "" {
		return res.ShortURL, nil
	}
	if res.Error != "" {
		return "", serrors.Wrap(shortclient.KindForStatus(resp.StatusCode), &shortclient.ServerError{
			StatusCode: resp.StatusCode,
			Message:    res.Error,
		}, "shorten failed")
	}

	return "", serrors.With(shortclient.ErrMalformedResponse,
		"response (status %d) has neither short_url nor error", resp.StatusCode)
}
