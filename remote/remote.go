package remote

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/storeops/networking"
	"github.com/storeops/networking/request"
)

// ErrMapping wraps failures while mapping a response into domain types.
var ErrMapping = errors.New("failed to map response")

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mapper turns a raw response body into T.
type Mapper[T any] interface {
	Map(data []byte) (T, error)
}

// MapperFunc adapts a function to Mapper.
type MapperFunc[T any] func(data []byte) (T, error)

// Map calls f(data).
func (f MapperFunc[T]) Map(data []byte) (T, error) { return f(data) }

// Remote is the base every endpoint group embeds.
type Remote struct {
	network networking.Network
}

// New creates a Remote issuing requests through network.
func New(network networking.Network) *Remote {
	return &Remote{network: network}
}

// EnqueueJSON executes req and delivers the parsed JSON body unmapped.
func (r *Remote) EnqueueJSON(req request.Request, completion func(any, error)) {
	r.network.ResponseJSON(req, completion)
}

// bodyError is implemented by transport errors that keep the response body,
// such as a non-2xx status.
type bodyError interface {
	ResponseBody() []byte
}

// Enqueue executes req through r and maps the body with mapper. API error
// payloads are delivered as *DotcomError, whether they arrive as data or in
// the body of a failed status. Mapping failures wrap ErrMapping.
func Enqueue[T any](r *Remote, req request.Request, mapper Mapper[T], completion func(T, error)) {
	r.network.ResponseData(req, func(data []byte, err error) {
		var zero T
		if err != nil {
			var withBody bodyError
			if errors.As(err, &withBody) {
				if apiErr := validate(withBody.ResponseBody()); apiErr != nil {
					completion(zero, apiErr)
					return
				}
			}
			completion(zero, err)
			return
		}

		if apiErr := validate(data); apiErr != nil {
			completion(zero, apiErr)
			return
		}

		v, err := mapper.Map(data)
		if err != nil {
			completion(zero, errors.Join(ErrMapping, err))
			return
		}
		completion(v, nil)
	})
}

// envelope is the wrapper Jetpack puts around tunnelled responses.
type envelope[T any] struct {
	Data T `json:"data"`
}

// unwrap decodes the data member of a Jetpack envelope.
func unwrap[T any](data []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return env.Data, err
	}
	return env.Data, nil
}
