package metrics

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"

	"github.com/storeops/networking"
	"github.com/storeops/networking/hostmock"
)

func TestNew(t *testing.T) {
	t.Parallel()

	customHostCall := func(string, string, string, []byte) ([]byte, error) {
		return nil, nil
	}

	tt := []struct {
		name         string
		namespace    string
		prefix       string
		hostCall     HostCall
		wantNS       string
		wantRequests string
		wantHostPtr  uintptr
		wantErr      error
	}{
		{
			name:         "defaults",
			wantNS:       networking.DefaultNamespace,
			wantRequests: "storeops_network_requests_total",
		},
		{
			name:         "custom namespace and prefix with override",
			namespace:    "custom",
			prefix:       "woo",
			hostCall:     customHostCall,
			wantNS:       "custom",
			wantRequests: "woo_requests_total",
			wantHostPtr:  reflect.ValueOf(customHostCall).Pointer(),
		},
		{name: "whitespace prefix", prefix: " \t", wantErr: ErrInvalidMetricName},
		{name: "leading digit", prefix: "1abc", wantErr: ErrInvalidMetricName},
		{name: "dash", prefix: "store-ops", wantErr: ErrInvalidMetricName},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			d, err := New(Config{
				SDKConfig: networking.RuntimeConfig{Namespace: tc.namespace},
				Prefix:    tc.prefix,
				HostCall:  tc.hostCall,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("unexpected error: want %v got %v", tc.wantErr, err)
			}
			if err != nil {
				return
			}

			if d.namespace != tc.wantNS {
				t.Fatalf("namespace mismatch: want %q, got %q", tc.wantNS, d.namespace)
			}
			if d.requests != tc.wantRequests {
				t.Fatalf("requests metric mismatch: want %q, got %q", tc.wantRequests, d.requests)
			}
			if tc.wantHostPtr != 0 {
				if got := reflect.ValueOf(d.hostCall).Pointer(); got != tc.wantHostPtr {
					t.Fatalf("hostcall pointer mismatch: want %v, got %v", tc.wantHostPtr, got)
				}
			}
		})
	}
}

// emitted is a decoded metrics host call.
type emitted struct {
	Function string
	Name     string
	Action   string
	Value    float64
}

func decode(t *testing.T, calls []hostmock.Call) []emitted {
	t.Helper()

	out := make([]emitted, 0, len(calls))
	for _, c := range calls {
		if c.Capability != capabilityName {
			t.Fatalf("unexpected capability %q", c.Capability)
		}
		e := emitted{Function: c.Function}
		switch c.Function {
		case fnCounter:
			var m proto.MetricsCounter
			if err := m.UnmarshalVT(c.Payload); err != nil {
				t.Fatalf("decode counter: %v", err)
			}
			e.Name = m.GetName()
		case fnGauge:
			var m proto.MetricsGauge
			if err := m.UnmarshalVT(c.Payload); err != nil {
				t.Fatalf("decode gauge: %v", err)
			}
			e.Name, e.Action = m.GetName(), m.GetAction()
		case fnHistogram:
			var m proto.MetricsHistogram
			if err := m.UnmarshalVT(c.Payload); err != nil {
				t.Fatalf("decode histogram: %v", err)
			}
			e.Name, e.Value = m.GetName(), m.GetValue()
		default:
			t.Fatalf("unexpected function %q", c.Function)
		}
		out = append(out, e)
	}
	return out
}

// stepClock advances by step on every call.
func stepClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestStart(t *testing.T) {
	t.Parallel()

	tt := []struct {
		name string
		err  error
		want []emitted
	}{
		{
			name: "success",
			want: []emitted{
				{Function: fnCounter, Name: "test_requests_total"},
				{Function: fnGauge, Name: "test_in_flight", Action: actionInc},
				{Function: fnGauge, Name: "test_in_flight", Action: actionDec},
				{Function: fnHistogram, Name: "test_duration_seconds", Value: 1.5},
			},
		},
		{
			name: "failure",
			err:  errors.New("boom"),
			want: []emitted{
				{Function: fnCounter, Name: "test_requests_total"},
				{Function: fnGauge, Name: "test_in_flight", Action: actionInc},
				{Function: fnGauge, Name: "test_in_flight", Action: actionDec},
				{Function: fnHistogram, Name: "test_duration_seconds", Value: 1.5},
				{Function: fnCounter, Name: "test_failures_total"},
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mock := hostmock.New(hostmock.Config{ExpectedNamespace: "testing"})
			d, err := New(Config{
				SDKConfig: networking.RuntimeConfig{Namespace: "testing"},
				Prefix:    "test",
				HostCall:  mock.HostCall,
				Now:       stepClock(1500 * time.Millisecond),
			})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}

			d.Start()(tc.err)

			if diff := cmp.Diff(tc.want, decode(t, mock.Calls())); diff != "" {
				t.Errorf("unexpected metrics (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHostFailureIsSwallowed(t *testing.T) {
	t.Parallel()

	mock := hostmock.New(hostmock.Config{Fail: true, Error: errors.New("host failure should not panic")})
	d, err := New(Config{HostCall: mock.HostCall})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	d.Start()(nil)

	if got := len(mock.Calls()); got != 4 {
		t.Fatalf("expected 4 host calls, got %d", got)
	}
}

func TestNilDispatch(t *testing.T) {
	t.Parallel()

	var d *Dispatch
	d.Start()(errors.New("ignored"))
}
