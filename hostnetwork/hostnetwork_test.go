package hostnetwork

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/http"

	"github.com/storeops/networking"
	"github.com/storeops/networking/hostmock"
	"github.com/storeops/networking/metrics"
	"github.com/storeops/networking/request"
)

// hostResponse builds a marshalled host reply.
func hostResponse(hostCode int32, httpCode int32, body string) []byte {
	resp := &proto.HTTPClientResponse{
		Status: &sdkproto.Status{Status: "Host OK", Code: hostCode},
		Code:   httpCode,
		Headers: map[string]*proto.Header{
			"Content-Type": {Values: []string{"application/json"}},
		},
		Body: []byte(body),
	}
	b, _ := resp.MarshalVT()
	return b
}

// newNetworkWith builds a Network routed to a hostmock serving handler.
func newNetworkWith(t *testing.T, handler hostmock.Handler, cfg Config) (*Network, *hostmock.Mock) {
	t.Helper()

	m := hostmock.New(hostmock.Config{
		ExpectedNamespace: networking.DefaultNamespace,
		Routes:            map[string]hostmock.Handler{hostmock.Route(capabilityName, fnCall): handler},
	})
	cfg.HostCall = m.HostCall
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return n, m
}

// reply returns a handler answering every call with the same payload.
func reply(b []byte) hostmock.Handler {
	return func([]byte) ([]byte, error) { return b, nil }
}

func TestNew(t *testing.T) {
	t.Parallel()

	customHostCall := func(string, string, string, []byte) ([]byte, error) {
		return nil, nil
	}

	tt := []struct {
		name        string
		namespace   string
		hostCall    HostCall
		wantNS      string
		wantHostPtr uintptr
	}{
		{
			name:      "custom namespace",
			namespace: "custom",
			wantNS:    "custom",
		},
		{
			name:        "default namespace with override",
			hostCall:    customHostCall,
			wantNS:      networking.DefaultNamespace,
			wantHostPtr: reflect.ValueOf(customHostCall).Pointer(),
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			n, err := New(Config{SDKConfig: networking.RuntimeConfig{Namespace: tc.namespace}, HostCall: tc.hostCall})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			if n.runtime.Namespace != tc.wantNS {
				t.Fatalf("namespace mismatch: want %q, got %q", tc.wantNS, n.runtime.Namespace)
			}
			if tc.wantHostPtr != 0 {
				if got := reflect.ValueOf(n.hostCall).Pointer(); got != tc.wantHostPtr {
					t.Fatalf("hostcall pointer mismatch: want %v, got %v", tc.wantHostPtr, got)
				}
			}
		})
	}
}

func TestWireEncoding(t *testing.T) {
	t.Parallel()

	var got proto.HTTPClient
	handler := func(p []byte) ([]byte, error) {
		if err := got.UnmarshalVT(p); err != nil {
			return nil, fmt.Errorf("could not unmarshal payload: %w", err)
		}
		return hostResponse(200, 200, `{}`), nil
	}

	n, m := newNetworkWith(t, handler, Config{
		Credentials:        &request.Credentials{Username: "shop", AuthToken: "secret"},
		InsecureSkipVerify: true,
	})

	req := request.Jetpack{
		WooAPIVersion: request.WooV3,
		Method:        http.MethodPost,
		SiteID:        55,
		Path:          "products/12",
		Parameters:    request.Parameters{"name": "Mug"},
	}

	var calls int
	n.ResponseData(req, func(_ []byte, err error) {
		calls++
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
	if calls != 1 {
		t.Fatalf("expected 1 completion, got %d", calls)
	}

	if got.GetMethod() != http.MethodPost {
		t.Fatalf("method mismatch: got %s", got.GetMethod())
	}
	if got.GetUrl() != "https://public-api.wordpress.com/rest/v1.1/jetpack-blogs/55/rest-api/" {
		t.Fatalf("url mismatch: got %s", got.GetUrl())
	}
	if !got.GetInsecure() {
		t.Fatal("expected insecure flag to be forwarded")
	}
	if auth := got.GetHeaders()["Authorization"].GetValues(); !cmp.Equal(auth, []string{"Bearer secret"}) {
		t.Fatalf("authorization mismatch: got %v", auth)
	}

	form, err := url.ParseQuery(string(got.GetBody()))
	if err != nil {
		t.Fatalf("body is not form encoded: %v", err)
	}
	want := url.Values{
		"json": {"true"},
		"path": {"/wc/v3/products/12&_method=post"},
		"body": {`{"name":"Mug"}`},
	}
	if diff := cmp.Diff(want, form); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}

	hostCalls := m.Calls()
	if len(hostCalls) != 1 || hostCalls[0].Namespace != networking.DefaultNamespace {
		t.Fatalf("unexpected host calls: %+v", hostCalls)
	}
}

func TestExistingCredentialsAreKept(t *testing.T) {
	t.Parallel()

	var got proto.HTTPClient
	handler := func(p []byte) ([]byte, error) {
		_ = got.UnmarshalVT(p)
		return hostResponse(200, 200, `{}`), nil
	}
	n, _ := newNetworkWith(t, handler, Config{Credentials: &request.Credentials{AuthToken: "network"}})

	req := request.Authenticated{
		Credentials: request.Credentials{AuthToken: "request"},
		Request:     request.Dotcom{WordPressAPIVersion: request.WordPressV1_1, Method: http.MethodGet, Path: "me"},
	}
	n.ResponseData(req, func([]byte, error) {})

	if auth := got.GetHeaders()["Authorization"].GetValues(); !cmp.Equal(auth, []string{"Bearer request"}) {
		t.Fatalf("authorization mismatch: got %v", auth)
	}
}

func TestResponses(t *testing.T) {
	t.Parallel()

	get := request.Plain{Method: http.MethodGet, URL: "https://example.com/wp-json/"}

	t.Run("JSON success", func(t *testing.T) {
		n, _ := newNetworkWith(t, reply(hostResponse(200, 200, `{"name":"Shop","ids":[1,2]}`)), Config{})

		var got any
		var gotErr error
		n.ResponseJSON(get, func(v any, err error) { got, gotErr = v, err })
		if gotErr != nil {
			t.Fatalf("unexpected error: %v", gotErr)
		}
		want := map[string]any{"name": "Shop", "ids": []any{float64(1), float64(2)}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Data success with partial host status", func(t *testing.T) {
		n, _ := newNetworkWith(t, reply(hostResponse(206, 200, "raw")), Config{})

		var got []byte
		n.ResponseData(get, func(b []byte, err error) {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got = b
		})
		if string(got) != "raw" {
			t.Fatalf("unexpected body %q", got)
		}
	})

	t.Run("JSON decode failure", func(t *testing.T) {
		n, _ := newNetworkWith(t, reply(hostResponse(200, 200, `not json`)), Config{})

		var gotErr error
		n.ResponseJSON(get, func(_ any, err error) { gotErr = err })
		if !errors.Is(gotErr, ErrDecodeResponse) {
			t.Fatalf("expected ErrDecodeResponse, got %v", gotErr)
		}
	})

	t.Run("Non-2xx HTTP status", func(t *testing.T) {
		n, _ := newNetworkWith(t, reply(hostResponse(200, 404, `{"error":"rest_no_route"}`)), Config{})

		var gotErr error
		n.ResponseData(get, func(_ []byte, err error) { gotErr = err })

		var statusErr *StatusError
		if !errors.As(gotErr, &statusErr) {
			t.Fatalf("expected *StatusError, got %v", gotErr)
		}
		if statusErr.Code != http.StatusNotFound || string(statusErr.Body) != `{"error":"rest_no_route"}` {
			t.Fatalf("unexpected status error %+v", statusErr)
		}
		if string(statusErr.ResponseBody()) != `{"error":"rest_no_route"}` {
			t.Fatalf("unexpected response body %q", statusErr.ResponseBody())
		}
	})
}

// noURL builds a request without a URL.
type noURL struct{}

func (noURL) URLRequest() (*http.Request, error) { return &http.Request{}, nil }

// nothing builds neither a request nor an error.
type nothing struct{}

func (nothing) URLRequest() (*http.Request, error) { return nil, nil }

func TestFailures(t *testing.T) {
	t.Parallel()

	get := request.Plain{Method: http.MethodGet, URL: "https://example.com/"}
	errBoom := errors.New("boom")

	tt := []struct {
		name    string
		handler hostmock.Handler
		req     request.Request
		wantErr error
	}{
		{"nil request", reply(nil), nil, request.ErrNilRequest},
		{"unbuildable request", reply(nil), request.Plain{Method: "BREW", URL: "https://example.com"}, ErrBuildRequest},
		{"request without URL", reply(nil), noURL{}, request.ErrInvalidURL},
		{"request without URL is a build error", reply(nil), noURL{}, ErrBuildRequest},
		{"nil built request", reply(nil), nothing{}, request.ErrInvalidURL},
		{"authenticated nil built request", reply(nil), request.Authenticated{Request: nothing{}}, request.ErrInvalidURL},
		{"host call error", func([]byte) ([]byte, error) { return nil, errBoom }, get, networking.ErrHostCall},
		{"host call error keeps cause", func([]byte) ([]byte, error) { return nil, errBoom }, get, errBoom},
		{"garbage response", reply([]byte{0xff, 0xff, 0xff}), get, ErrUnmarshalResponse},
		{"missing status", reply(nil), get, networking.ErrHostResponseInvalid},
		{"host bad input", reply(hostResponse(400, 0, "")), get, networking.ErrHostError},
		{"host missing", reply(hostResponse(404, 0, "")), get, networking.ErrHostError},
		{"host error", reply(hostResponse(500, 0, "")), get, networking.ErrHostError},
		{"unknown host status", reply(hostResponse(302, 0, "")), get, networking.ErrHostResponseInvalid},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			n, _ := newNetworkWith(t, tc.handler, Config{})

			var dataCalls, jsonCalls int
			n.ResponseData(tc.req, func(b []byte, err error) {
				dataCalls++
				if b != nil {
					t.Fatalf("expected nil body, got %q", b)
				}
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
			})
			n.ResponseJSON(tc.req, func(v any, err error) {
				jsonCalls++
				if v != nil {
					t.Fatalf("expected nil value, got %v", v)
				}
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected error %v, got %v", tc.wantErr, err)
				}
			})
			if dataCalls != 1 || jsonCalls != 1 {
				t.Fatalf("expected one completion each, got data=%d json=%d", dataCalls, jsonCalls)
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	metricsHost := hostmock.New(hostmock.Config{ExpectedNamespace: networking.DefaultNamespace})
	d, err := metrics.New(metrics.Config{HostCall: metricsHost.HostCall})
	if err != nil {
		t.Fatalf("metrics.New returned error: %v", err)
	}

	get := request.Plain{Method: http.MethodGet, URL: "https://example.com/"}
	tt := []struct {
		name      string
		handler   hostmock.Handler
		wantCalls []string
	}{
		{
			name:      "success",
			handler:   reply(hostResponse(200, 200, `{}`)),
			wantCalls: []string{"counter", "gauge", "gauge", "histogram"},
		},
		{
			name:      "failure",
			handler:   reply(hostResponse(200, 500, `{}`)),
			wantCalls: []string{"counter", "gauge", "gauge", "histogram", "counter"},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			before := len(metricsHost.Calls())
			n, _ := newNetworkWith(t, tc.handler, Config{Metrics: d})
			n.ResponseData(get, func([]byte, error) {})

			var got []string
			for _, c := range metricsHost.Calls()[before:] {
				got = append(got, c.Function)
			}
			if diff := cmp.Diff(tc.wantCalls, got); diff != "" {
				t.Errorf("unexpected metric calls (-want +got):\n%s", diff)
			}
		})
	}
}
