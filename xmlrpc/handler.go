package xmlrpc

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/mdzio/go-logging"
)

// max. size of a valid request, if not specified: 10 MB
const requestSizeLimit = 10 * 1024 * 1024

var svrLog = logging.Get("xmlrpc-server")

// Handler implements a http.Handler which can handle XML-RPC requests. Remote
// calls are dispatched to the registered Method's.
type Handler struct {
	RequestSizeLimit int64
	*Dispatcher
}

// NewHandler creates a Handler with an empty Dispatcher.
func NewHandler() *Handler {
	return &Handler{Dispatcher: &Dispatcher{}}
}

func (h *Handler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	svrLog.Tracef("Request received from %s, URI %s", req.RemoteAddr, req.RequestURI)

	if req.Method != http.MethodPost {
		http.Error(resp, "Method not allowed: "+req.Method, http.StatusMethodNotAllowed)
		return
	}

	// read request
	limit := h.RequestSizeLimit
	if limit == 0 {
		limit = requestSizeLimit
	}
	reqLimitReader := http.MaxBytesReader(resp, req.Body, limit)
	reqBuf, err := io.ReadAll(reqLimitReader)
	if err != nil {
		svrLog.Errorf("Reading of request failed from %s: %v", req.RemoteAddr, err)
		http.Error(resp, "Reading of request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	reqXML, err := toUTF8(reqBuf, req.Header.Get("Content-Type"))
	if err != nil {
		svrLog.Errorf("Decoding of request from %s failed: %v", req.RemoteAddr, err)
		http.Error(resp, "Decoding of request failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// decode request
	method, params, err := DecodeCall(reqXML)
	if err != nil {
		svrLog.Errorf("Decoding of request from %s failed: %v", req.RemoteAddr, err)
		http.Error(resp, "Decoding of request failed: "+err.Error(), http.StatusBadRequest)
		return
	}
	svrLog.Debugf("Call of method %s received from %s", method, req.RemoteAddr)

	// dispatch call
	var respXML string
	res, err := h.Dispatch(method, params)
	if err != nil {
		svrLog.Warningf("Sending error response to %s: %v", req.RemoteAddr, err)
		var fault *FaultError
		if errors.As(err, &fault) {
			respXML = EncodeFault(fault.Code, fault.Message)
		} else {
			respXML = EncodeFault(-1, err.Error())
		}
	} else {
		respXML = EncodeResponse(res)
	}
	if svrLog.TraceEnabled() {
		svrLog.Tracef("Response XML: %s", respXML)
	}

	// send response
	resp.Header().Set("Content-Type", "text/xml; charset=utf-8")
	resp.Header().Set("Content-Length", strconv.Itoa(len(respXML)))
	_, err = io.WriteString(resp, respXML)
	if err != nil {
		svrLog.Warningf("Sending of response for %s failed: %v", req.RemoteAddr, err)
		return
	}
}
