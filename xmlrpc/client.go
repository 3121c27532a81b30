package xmlrpc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"

	"github.com/mdzio/go-logging"
	"golang.org/x/net/html/charset"
	"golang.org/x/time/rate"
)

// max. size of a valid response, if not specified: 10 MB
const responseSizeLimit = 10 * 1024 * 1024

var encodingPattern = regexp.MustCompile(`^\s*<\?xml[^>]*\sencoding\s*=\s*["']([^"']+)["']`)

// Caller is an interface for calling XML-RPC functions.
type Caller interface {
	Call(ctx context.Context, method string, params Values) (*Value, error)
}

// Doer sends HTTP requests. *http.Client implements Doer.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

var clnLog = logging.Get("xmlrpc-client")

// Client provides access to an XML-RPC server. Timeouts and cancellation are
// controlled by the context of a call and by HTTPClient.
type Client struct {
	Addr string

	// HTTPClient sends the requests. If nil, http.DefaultClient is used.
	HTTPClient Doer

	// Limiter optionally limits the rate of outgoing calls.
	Limiter *rate.Limiter

	ResponseSizeLimit int64
}

// Call executes a remote procedure call with exactly one HTTP POST. Call
// implements Caller.
func (c *Client) Call(ctx context.Context, method string, params Values) (*Value, error) {
	clnLog.Tracef("Calling method %s on %s", method, c.Addr)

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("Rate limit wait for %s failed: %w", c.Addr, err)
		}
	}

	// the request contains credentials, only its size is logged
	reqXML := EncodeCall(method, params)
	clnLog.Tracef("Request size of method %s: %d bytes", method, len(reqXML))

	// http post
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Addr, strings.NewReader(reqXML))
	if err != nil {
		return nil, fmt.Errorf("Creating of HTTP request for %s failed: %w", c.Addr, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("Accept", "text/xml")
	doer := c.HTTPClient
	if doer == nil {
		doer = http.DefaultClient
	}
	httpResp, err := doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed on %s: %w", c.Addr, err)
	}
	defer httpResp.Body.Close()

	// check status
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: httpResp.StatusCode, Status: httpResp.Status}
	}

	// read response
	limit := c.ResponseSizeLimit
	if limit == 0 {
		limit = responseSizeLimit
	}
	respBuf, err := io.ReadAll(io.LimitReader(httpResp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("Reading of response failed from %s: %w", c.Addr, err)
	}
	respXML, err := toUTF8(respBuf, httpResp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("Decoding of response from %s failed: %w", c.Addr, err)
	}
	if clnLog.TraceEnabled() {
		clnLog.Tracef("Response XML: %s", respXML)
	}

	// decode response
	v, err := DecodeResponse(respXML)
	if err != nil {
		var fault *FaultError
		if errors.As(err, &fault) {
			clnLog.Debugf("Method %s on %s returned fault: %v", method, c.Addr, err)
		}
		return nil, err
	}
	return v, nil
}

// toUTF8 converts the response body to UTF-8. The character encoding is
// taken from the content type or the XML declaration, UTF-8 is assumed
// otherwise.
func toUTF8(buf []byte, contentType string) (string, error) {
	label := ""
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = params["charset"]
	}
	if label == "" {
		if m := encodingPattern.FindSubmatch(buf); m != nil {
			label = string(m[1])
		}
	}
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return string(buf), nil
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
