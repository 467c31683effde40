// Package sheets decodes spreadsheet visualization-query responses and
// normalizes their cell grids into rows.
package sheets

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Wrapper emitted around gviz JSON responses.
const (
	wrapperPrefix = "/*O_o*/\ngoogle.visualization.Query.setResponse("
	wrapperSuffix = ");"
	callbackName  = "setResponse("
)

var (
	// ErrEmptyBody is returned for an empty response body.
	ErrEmptyBody = errors.New("empty response body")
	// ErrMalformedWrapper is returned when the body is neither a wrapped
	// gviz response nor plain JSON.
	ErrMalformedWrapper = errors.New("malformed response wrapper")
	// ErrQueryFailed is returned when the response reports status "error".
	ErrQueryFailed = errors.New("query failed")
)

// Response is a decoded visualization-query response.
type Response struct {
	Table   *Table       `json:"table"`
	Version string       `json:"version"`
	ReqID   string       `json:"reqId"`
	Status  string       `json:"status"`
	Errors  []QueryError `json:"errors"`
}

// QueryError describes one error reported by the query endpoint.
type QueryError struct {
	Reason          string `json:"reason"`
	Message         string `json:"message"`
	DetailedMessage string `json:"detailed_message"`
}

// Table is the cell grid of a response.
type Table struct {
	Cols []Column  `json:"cols"`
	Rows []GridRow `json:"rows"`
}

// Column describes one column of the grid.
type Column struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Type    string `json:"type"`
	Pattern string `json:"pattern"`
}

// GridRow is one row of cells. A nil C means the row has no cell array.
type GridRow struct {
	C []*Cell `json:"c"`
}

// Cell holds a raw value and an optional formatted representation.
// Both are kept as literal JSON so numbers are never rounded.
type Cell struct {
	V jsontext.Value `json:"v"`
	F jsontext.Value `json:"f"`
}

// QueryURL builds the gviz JSON endpoint for a sheet.
func QueryURL(sheetID, gid string) string {
	q := url.Values{}
	q.Set("tqx", "out:json")
	if gid != "" {
		q.Set("gid", gid)
	}
	return "https://docs.google.com/spreadsheets/d/" + url.PathEscape(sheetID) + "/gviz/tq?" + q.Encode()
}

// Unwrap strips the gviz callback wrapper from body and returns the JSON
// payload. Bodies that are already plain JSON are returned unchanged.
func Unwrap(body []byte) ([]byte, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, ErrEmptyBody
	}

	if bytes.HasPrefix(body, []byte(wrapperPrefix)) && bytes.HasSuffix(body, []byte(wrapperSuffix)) {
		return body[len(wrapperPrefix) : len(body)-len(wrapperSuffix)], nil
	}

	if body[0] == '{' {
		return body, nil
	}

	// Tolerate other callback names and comment prefixes.
	if i := bytes.Index(body, []byte(callbackName)); i >= 0 {
		end := bytes.LastIndexByte(body, ')')
		start := i + len(callbackName)
		if end < start {
			return nil, fmt.Errorf("%w: unterminated callback", ErrMalformedWrapper)
		}
		return body[start:end], nil
	}
	return nil, fmt.Errorf("%w: unexpected leading %q", ErrMalformedWrapper, body[0])
}

// Decode parses a gviz body, wrapped or not, or a {"data": ...} envelope
// whose data is either the response object or the wrapped response text.
func Decode(body []byte) (*Response, error) {
	return decode(body, true)
}

func decode(body []byte, allowEnvelope bool) (*Response, error) {
	payload, err := Unwrap(body)
	if err != nil {
		return nil, err
	}

	if allowEnvelope {
		var env struct {
			Data jsontext.Value `json:"data"`
		}
		if err := json.Unmarshal(payload, &env); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
		data := bytes.TrimSpace(env.Data)
		switch {
		case len(data) == 0 || string(data) == "null":
		case data[0] == '"':
			var text string
			if err := json.Unmarshal(data, &text); err != nil {
				return nil, fmt.Errorf("failed to parse envelope data: %w", err)
			}
			return decode([]byte(text), false)
		default:
			payload = data
		}
	}

	var resp Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "error" {
		msg := "unknown error"
		if len(resp.Errors) > 0 {
			msg = resp.Errors[0].Message
			if d := resp.Errors[0].DetailedMessage; d != "" {
				msg += ": " + d
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, msg)
	}

	return &resp, nil
}
