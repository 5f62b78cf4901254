package mockup

import (
	"sync"

	"go.uber.org/zap"

	"github.com/storeops/networking"
	"github.com/storeops/networking/fixtures"
	"github.com/storeops/networking/request"
)

// Config controls construction of a Network.
type Config struct {
	// Loader materializes fixtures. Defaults to fixtures.Default().
	Loader fixtures.Loader

	// Logger receives one debug entry per dispatch. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Network implements networking.Network with simulated responses and call
// recording. It never performs network I/O.
type Network struct {
	loader fixtures.Loader
	log    *zap.Logger

	// mu guards the maps and both request logs as one unit.
	mu sync.Mutex

	// responses maps URL suffixes to fixture names.
	responses map[string]string

	// errors maps URL suffixes to simulated failures.
	errors map[string]error

	jsonRequests []request.Request
	dataRequests []request.Request
}

// Compile-time check: ensure Network implements networking.Network.
var _ networking.Network = (*Network)(nil)

// New creates a Network with no simulated responses.
func New(config Config) *Network {
	loader := config.Loader
	if loader == nil {
		loader = fixtures.Default()
	}

	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Network{
		loader:    loader,
		log:       log.Named("mockup"),
		responses: make(map[string]string),
		errors:    make(map[string]error),
	}
}

// SimulateResponse answers requests whose path ends with suffix with the
// named fixture. Registering the same suffix again replaces the fixture.
func (n *Network) SimulateResponse(suffix, fixture string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.responses[suffix] = fixture
}

// SimulateError fails requests whose path ends with suffix with err.
// Registering the same suffix again replaces the error.
func (n *Network) SimulateError(suffix string, err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors[suffix] = err
}

// RemoveAllSimulatedResponses drops every simulated response and error.
func (n *Network) RemoveAllSimulatedResponses() {
	n.mu.Lock()
	defer n.mu.Unlock()
	clear(n.responses)
	clear(n.errors)
}

// Reset forgets the recorded requests. Simulated responses are kept.
func (n *Network) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.jsonRequests = nil
	n.dataRequests = nil
}

// RequestsForResponseJSON returns the requests passed to ResponseJSON, in call order.
func (n *Network) RequestsForResponseJSON() []request.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]request.Request(nil), n.jsonRequests...)
}

// RequestsForResponseData returns the requests passed to ResponseData, in call order.
func (n *Network) RequestsForResponseData() []request.Request {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]request.Request(nil), n.dataRequests...)
}

// resolution is the outcome of matching one request against the store.
type resolution struct {
	path    string
	pattern string
	err     error
	fixture string
	found   bool
}

// record appends req to the log and resolves it in a single critical section.
func (n *Network) record(log *[]request.Request, req request.Request) resolution {
	path := request.Path(req)

	n.mu.Lock()
	defer n.mu.Unlock()

	*log = append(*log, req)

	if pattern, err, ok := longestSuffix(n.errors, path); ok && err != nil {
		return resolution{path: path, pattern: pattern, err: err}
	}

	pattern, fixture, ok := longestSuffix(n.responses, path)
	return resolution{path: path, pattern: pattern, fixture: fixture, found: ok}
}

// ResponseJSON delivers the matching fixture parsed as JSON.
func (n *Network) ResponseJSON(req request.Request, completion func(any, error)) {
	res := n.record(&n.jsonRequests, req)
	if completion == nil {
		completion = func(any, error) {}
	}

	if res.err != nil {
		n.logOutcome("json", res, "simulated error")
		completion(nil, res.err)
		return
	}

	if res.found {
		if v, ok := n.loader.JSON(res.fixture); ok {
			n.logOutcome("json", res, "fixture")
			completion(v, nil)
			return
		}
	}

	n.logOutcome("json", res, "unmocked")
	completion(nil, networking.ErrUnknown)
}

// ResponseData delivers the raw contents of the matching fixture.
func (n *Network) ResponseData(req request.Request, completion func([]byte, error)) {
	res := n.record(&n.dataRequests, req)
	if completion == nil {
		completion = func([]byte, error) {}
	}

	if res.err != nil {
		n.logOutcome("data", res, "simulated error")
		completion(nil, res.err)
		return
	}

	if res.found {
		if b, ok := n.loader.Bytes(res.fixture); ok {
			n.logOutcome("data", res, "fixture")
			completion(b, nil)
			return
		}
	}

	n.logOutcome("data", res, "unmocked")
	completion(nil, networking.ErrUnknown)
}

func (n *Network) logOutcome(mode string, res resolution, outcome string) {
	n.log.Debug("dispatched request",
		zap.String("mode", mode),
		zap.String("path", res.path),
		zap.String("pattern", res.pattern),
		zap.String("fixture", res.fixture),
		zap.String("outcome", outcome),
		zap.NamedError("simulated", res.err),
	)
}

// ResponseBuilder configures the outcome for one URL suffix.
type ResponseBuilder struct {
	network *Network
	suffix  string
}

// On starts configuration of the outcome for requests ending with suffix.
func (n *Network) On(suffix string) *ResponseBuilder {
	return &ResponseBuilder{network: n, suffix: suffix}
}

// Return answers matching requests with the named fixture.
func (b *ResponseBuilder) Return(fixture string) *Network {
	b.network.SimulateResponse(b.suffix, fixture)
	return b.network
}

// ReturnError fails matching requests with err.
func (b *ResponseBuilder) ReturnError(err error) *Network {
	b.network.SimulateError(b.suffix, err)
	return b.network
}
