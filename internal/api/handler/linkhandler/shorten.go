package linkhandler

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"shortener/pkg/serrors"
	"strings"

	"github.com/go-faster/jx"
)

const (
	// MsgContentType is returned when POST /shorten is not sent as JSON.
	MsgContentType = "Content-Type must be application/json"

	maxBodySize = 64 << 10
)

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

// isJSON reports whether mediaType is application/json or an
// application/*+json type.
func isJSON(mediaType string) bool {
	if mediaType == "application/json" {
		return true
	}
	sub, ok := strings.CutPrefix(mediaType, "application/")

	return ok && strings.HasSuffix(sub, "+json") && len(sub) > len("+json")
}

// decodeShortenRequest extracts the url field of body. A missing, null or
// non-string url yields "".
func decodeShortenRequest(body []byte) (string, error) {
	var URL string
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "url" || d.Next() != jx.String {
			return d.Skip()
		}
		v, err := d.Str()
		if err != nil {
			return err
		}
		URL = v

		return nil
	})
	if err == nil {
		err = requireEOF(d)
	}
	if err != nil {
		return "", fmt.Errorf("could not decode body: %w", err)
	}

	return URL, nil
}

// Shorten handles POST /shorten with body {"url": "..."} and answers
// {"short_url": "..."}.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !isJSON(mediaType) {
		writeError(ctx, w, serrors.With(serrors.ErrBadRequest, MsgContentType))

		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not read body"))

		return
	}
	URL, err := decodeShortenRequest(body)
	if err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "invalid JSON body"))

		return
	}

	link, err := h.links.Shorten(ctx, URL)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("short_url", func(e *jx.Encoder) {
			e.Str(h.links.ShortURL(link.Code))
		})
	})
	writeJSON(w, http.StatusOK, &e)
}
