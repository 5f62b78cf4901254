package hostnetwork

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	proto "github.com/tarmac-project/protobuf-go/sdk/http"
	wapc "github.com/wapc/wapc-guest-tinygo"
	"go.uber.org/zap"

	"github.com/storeops/networking"
	"github.com/storeops/networking/metrics"
	"github.com/storeops/networking/request"
)

const (
	capabilityName = "httpclient"
	fnCall         = "call"

	hostStatusOK       = int32(200)
	hostStatusPartial  = int32(206)
	hostStatusBadInput = int32(400)
	hostStatusMissing  = int32(404)
	hostStatusError    = int32(500)
)

var (
	// ErrBuildRequest wraps failures while building the HTTP request.
	ErrBuildRequest = errors.New("failed to build request")

	// ErrReadBody wraps failures while reading a request body stream.
	ErrReadBody = errors.New("failed to read request body")

	// ErrMarshalRequest wraps failures while encoding the request payload.
	ErrMarshalRequest = errors.New("failed to create request")

	// ErrUnmarshalResponse wraps failures while decoding the host response.
	ErrUnmarshalResponse = errors.New("failed to unmarshal response")

	// ErrDecodeResponse wraps failures while parsing a response body as JSON.
	ErrDecodeResponse = errors.New("failed to decode response body")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HostCall defines the waPC host function signature used for requests.
type HostCall func(string, string, string, []byte) ([]byte, error)

// StatusError is delivered when the server answers with a non-2xx status.
type StatusError struct {
	// Code is the HTTP status code.
	Code int
	// Body is the raw response body, which often carries an API error payload.
	Body []byte
}

// ResponseBody returns Body so callers can inspect the payload without
// depending on this package.
func (e *StatusError) ResponseBody() []byte {
	return e.Body
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d %s", e.Code, http.StatusText(e.Code))
}

// Config configures the network and its host integration.
//
// SDKConfig supplies the namespace used when making waPC host calls; when
// empty it defaults to networking.DefaultNamespace. Credentials, when set,
// sign every request that is not already request.Authenticated. HostCall
// allows tests to inject a custom host function; when nil, wapc.HostCall is
// used.
type Config struct {
	// SDKConfig provides the runtime namespace for host calls.
	SDKConfig networking.RuntimeConfig
	// Credentials sign outgoing requests.
	Credentials *request.Credentials
	// InsecureSkipVerify disables TLS verification when supported by the host.
	InsecureSkipVerify bool
	// HostCall overrides the waPC host function used for requests.
	HostCall HostCall
	// Logger receives request diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics records every dispatch when set.
	Metrics *metrics.Dispatch
}

// Network implements networking.Network using waPC host calls.
type Network struct {
	runtime     networking.RuntimeConfig
	credentials *request.Credentials
	insecure    bool
	hostCall    HostCall
	log         *zap.Logger
	metrics     *metrics.Dispatch
}

// Ensure Network always satisfies the networking.Network interface at compile time.
var _ networking.Network = (*Network)(nil)

// New creates a Network with the provided configuration.
func New(config Config) (*Network, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = networking.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Network{
		runtime:     runtime,
		credentials: config.Credentials,
		insecure:    config.InsecureSkipVerify,
		hostCall:    hostCall,
		log:         log.Named("hostnetwork"),
		metrics:     config.Metrics,
	}, nil
}

// ResponseData executes req and delivers the raw response body.
func (n *Network) ResponseData(req request.Request, completion func([]byte, error)) {
	body, err := n.do(req)
	if completion == nil {
		return
	}
	if err != nil {
		completion(nil, err)
		return
	}
	completion(body, nil)
}

// ResponseJSON executes req and delivers the response body parsed as JSON.
func (n *Network) ResponseJSON(req request.Request, completion func(any, error)) {
	body, err := n.do(req)
	if completion == nil {
		return
	}
	if err != nil {
		completion(nil, err)
		return
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		completion(nil, errors.Join(ErrDecodeResponse, err))
		return
	}
	completion(v, nil)
}

// authenticate wraps req with the configured credentials unless it already
// carries its own.
func (n *Network) authenticate(req request.Request) request.Request {
	if n.credentials == nil {
		return req
	}
	switch req.(type) {
	case request.Authenticated, *request.Authenticated:
		return req
	}
	return request.Authenticated{Credentials: *n.credentials, Request: req}
}

// do dispatches req and records the outcome.
func (n *Network) do(req request.Request) ([]byte, error) {
	done := n.metrics.Start()
	body, err := n.exchange(req)
	done(err)
	return body, err
}

// exchange performs the host call for req and returns the body of a 2xx response.
func (n *Network) exchange(req request.Request) ([]byte, error) {
	if req == nil {
		return nil, request.ErrNilRequest
	}

	httpReq, err := n.authenticate(req).URLRequest()
	if err != nil {
		return nil, errors.Join(ErrBuildRequest, err)
	}
	if httpReq == nil || httpReq.URL == nil {
		return nil, errors.Join(ErrBuildRequest, request.ErrInvalidURL)
	}

	var bodyBytes []byte
	if httpReq.Body != nil {
		defer func() { _ = httpReq.Body.Close() }()
		bodyBytes, err = io.ReadAll(httpReq.Body)
		if err != nil {
			return nil, errors.Join(ErrReadBody, err)
		}
	}

	pbReq := &proto.HTTPClient{
		Method:   httpReq.Method,
		Url:      httpReq.URL.String(),
		Insecure: n.insecure,
		Body:     bodyBytes,
		Headers:  make(map[string]*proto.Header, len(httpReq.Header)),
	}
	for key, values := range httpReq.Header {
		pbReq.Headers[key] = &proto.Header{Values: values}
	}

	b, err := pbReq.MarshalVT()
	if err != nil {
		return nil, errors.Join(ErrMarshalRequest, err)
	}

	n.log.Debug("dispatching request",
		zap.String("method", pbReq.Method),
		zap.String("path", request.Path(req)),
	)

	resp, err := n.hostCall(n.runtime.Namespace, capabilityName, fnCall, b)
	if err != nil {
		n.log.Warn("host call failed", zap.String("url", pbReq.Url), zap.Error(err))
		return nil, errors.Join(networking.ErrHostCall, err)
	}

	var r proto.HTTPClientResponse
	if unmarshalErr := r.UnmarshalVT(resp); unmarshalErr != nil {
		return nil, errors.Join(ErrUnmarshalResponse, unmarshalErr)
	}

	status := r.GetStatus()
	if status == nil {
		return nil, networking.ErrHostResponseInvalid
	}

	switch code := status.GetCode(); code {
	case hostStatusOK, hostStatusPartial:
		// success path continues
	case hostStatusBadInput, hostStatusMissing, hostStatusError:
		detail := fmt.Sprintf("host status %d", code)
		if msg := status.GetStatus(); msg != "" {
			detail = fmt.Sprintf("%s: %s", detail, msg)
		}
		return nil, errors.Join(networking.ErrHostError, errors.New(detail))
	default:
		return nil, errors.Join(
			networking.ErrHostResponseInvalid,
			fmt.Errorf("unexpected host status code %d", code),
		)
	}

	httpCode := int(r.GetCode())
	if httpCode < 200 || httpCode >= 300 {
		n.log.Debug("request rejected", zap.String("url", pbReq.Url), zap.Int("code", httpCode))
		return nil, &StatusError{Code: httpCode, Body: r.GetBody()}
	}

	return r.GetBody(), nil
}
