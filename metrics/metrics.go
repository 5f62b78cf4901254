package metrics

import (
	"errors"
	"regexp"
	"time"

	proto "github.com/tarmac-project/protobuf-go/sdk/metrics"
	wapc "github.com/wapc/wapc-guest-tinygo"

	"github.com/storeops/networking"
)

const (
	capabilityName = "metrics"
	fnCounter      = "counter"
	fnGauge        = "gauge"
	fnHistogram    = "histogram"
	actionInc      = "inc"
	actionDec      = "dec"

	// DefaultPrefix names the metrics when Config.Prefix is empty.
	DefaultPrefix = "storeops_network"
)

var (
	// ErrInvalidMetricName indicates a prefix producing names the host rejects.
	ErrInvalidMetricName = errors.New("metric name is invalid")

	isMetricNameValid = regexp.MustCompile(`^[a-zA-Z_:][a-zA-Z0-9_:]*$`)
)

// HostCall defines the waPC host function signature used to emit metrics.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Dispatch reports to the host.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig networking.RuntimeConfig

	// Prefix is prepended to every metric name. Defaults to DefaultPrefix.
	Prefix string

	// HostCall overrides the waPC host function used for metrics operations.
	HostCall HostCall

	// Now overrides the clock used to time requests.
	Now func() time.Time
}

// Dispatch records the requests handled by a network.
type Dispatch struct {
	namespace string
	hostCall  HostCall
	now       func() time.Time

	requests string
	failures string
	inFlight string
	duration string
}

// New creates a Dispatch, validating the metric names derived from the prefix.
func New(config Config) (*Dispatch, error) {
	namespace := config.SDKConfig.Namespace
	if namespace == "" {
		namespace = networking.DefaultNamespace
	}

	prefix := config.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !isMetricNameValid.MatchString(prefix) {
		return nil, ErrInvalidMetricName
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Dispatch{
		namespace: namespace,
		hostCall:  hostCall,
		now:       now,
		requests:  prefix + "_requests_total",
		failures:  prefix + "_failures_total",
		inFlight:  prefix + "_in_flight",
		duration:  prefix + "_duration_seconds",
	}, nil
}

// Start marks the beginning of a request. The returned function must be
// called once with the request's outcome.
func (d *Dispatch) Start() func(err error) {
	if d == nil {
		return func(error) {}
	}

	started := d.now()
	d.counter(d.requests)
	d.gauge(actionInc)

	return func(err error) {
		d.gauge(actionDec)
		d.histogram(d.now().Sub(started).Seconds())
		if err != nil {
			d.counter(d.failures)
		}
	}
}

func (d *Dispatch) counter(name string) {
	payload, err := (&proto.MetricsCounter{Name: name}).MarshalVT()
	if err != nil {
		return
	}
	_, _ = d.hostCall(d.namespace, capabilityName, fnCounter, payload)
}

func (d *Dispatch) gauge(action string) {
	payload, err := (&proto.MetricsGauge{Name: d.inFlight, Action: action}).MarshalVT()
	if err != nil {
		return
	}
	_, _ = d.hostCall(d.namespace, capabilityName, fnGauge, payload)
}

func (d *Dispatch) histogram(value float64) {
	payload, err := (&proto.MetricsHistogram{Name: d.duration, Value: value}).MarshalVT()
	if err != nil {
		return
	}
	_, _ = d.hostCall(d.namespace, capabilityName, fnHistogram, payload)
}
