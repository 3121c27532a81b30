package odoo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mdzio/go-logging"
	"github.com/mdzio/go-odoo/xmlrpc"
)

// endpoints relative to the base URL
const (
	commonPath = "/xmlrpc/2/common"
	objectPath = "/xmlrpc/2/object"
)

var sesLog = logging.Get("odoo-session")

// AuthError is returned when the server does not return a user ID for the
// credentials.
type AuthError struct {
	Database string
	Username string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("Authentication of user %s on database %s failed", e.Username, e.Database)
}

// Session provides access to the record store of a server. The user ID
// (handle) returned by the authentication is cached until Reset is called.
// A Session is safe for concurrent use; concurrent first calls authenticate
// only once.
type Session struct {
	cfg    Config
	common xmlrpc.Caller
	object xmlrpc.Caller

	// serializes authentications
	authMutex sync.Mutex

	mutex  sync.RWMutex
	handle int64
}

// NewSession creates a Session for the XML-RPC endpoints of cfg.URL. No
// request is sent. An incomplete configuration is reported as *ConfigError.
func NewSession(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := strings.TrimRight(cfg.URL, "/")
	common := &xmlrpc.Client{Addr: base + commonPath, HTTPClient: cfg.HTTPClient, Limiter: cfg.Limiter}
	object := &xmlrpc.Client{Addr: base + objectPath, HTTPClient: cfg.HTTPClient, Limiter: cfg.Limiter}
	return &Session{cfg: cfg, common: common, object: object}, nil
}

// NewSessionWithCallers creates a Session which uses the specified callers for
// the authentication and the object endpoint. cfg.URL must still be set, but
// is not used.
func NewSessionWithCallers(cfg Config, common, object xmlrpc.Caller) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Session{cfg: cfg, common: common, object: object}, nil
}

// Connect authenticates the user, if no handle is cached yet, and returns
// the handle. Callers arriving during an authentication wait for its result
// instead of sending their own request. Handle and Authenticated do not wait.
func (s *Session) Connect(ctx context.Context) (int64, error) {
	if h := s.Handle(); h != 0 {
		return h, nil
	}
	s.authMutex.Lock()
	defer s.authMutex.Unlock()
	// authenticated while waiting?
	if h := s.Handle(); h != 0 {
		return h, nil
	}

	sesLog.Debugf("Authenticating user %s on database %s", s.cfg.Username, s.cfg.Database)
	v, err := s.common.Call(ctx, "authenticate", xmlrpc.Values{
		xmlrpc.NewString(s.cfg.Database),
		xmlrpc.NewString(s.cfg.Username),
		xmlrpc.NewString(s.cfg.Password),
		xmlrpc.NewStruct(),
	})
	if err != nil {
		return 0, err
	}
	// a failed authentication returns false
	if v == nil || v.Kind != xmlrpc.Int || v.Int == 0 {
		return 0, &AuthError{Database: s.cfg.Database, Username: s.cfg.Username}
	}
	s.mutex.Lock()
	s.handle = v.Int
	s.mutex.Unlock()
	sesLog.Debugf("User %s authenticated with ID %d", s.cfg.Username, v.Int)
	return v.Int, nil
}

// Handle returns the cached handle or 0.
func (s *Session) Handle() int64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.handle
}

// Authenticated returns true, if a handle is cached.
func (s *Session) Authenticated() bool {
	return s.Handle() != 0
}

// Reset discards the cached handle. The next operation authenticates again.
func (s *Session) Reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.handle = 0
}

// Version calls version on the authentication endpoint. No authentication
// is needed.
func (s *Session) Version(ctx context.Context) (*xmlrpc.Value, error) {
	sesLog.Debugf("Calling method version on %s", s.cfg.URL)
	return s.common.Call(ctx, "version", xmlrpc.Values{})
}

// Execute calls a method of a model with positional arguments.
func (s *Session) Execute(ctx context.Context, model, method string, args xmlrpc.Values) (*xmlrpc.Value, error) {
	return s.ExecuteKw(ctx, model, method, args)
}

// ExecuteKw calls a method of a model with positional arguments and keyword
// arguments. The keyword arguments struct is only sent, if kwargs are
// specified.
func (s *Session) ExecuteKw(ctx context.Context, model, method string, args xmlrpc.Values, kwargs ...*xmlrpc.Member) (*xmlrpc.Value, error) {
	handle, err := s.Connect(ctx)
	if err != nil {
		return nil, err
	}
	params := xmlrpc.Values{
		xmlrpc.NewString(s.cfg.Database),
		xmlrpc.NewInt64(handle),
		xmlrpc.NewString(s.cfg.Password),
		xmlrpc.NewString(model),
		xmlrpc.NewString(method),
		xmlrpc.NewArray(args...),
	}
	if len(kwargs) > 0 {
		params = append(params, xmlrpc.NewStruct(kwargs...))
	}
	sesLog.Debugf("Calling method %s on model %s", method, model)
	return s.object.Call(ctx, "execute_kw", params)
}
