package kv

import (
	"errors"
	"fmt"

	sdkproto "github.com/tarmac-project/protobuf-go/sdk"
	proto "github.com/tarmac-project/protobuf-go/sdk/kvstore"
	wapc "github.com/wapc/wapc-guest-tinygo"

	"github.com/storeops/networking"
)

const (
	capabilityName = "kvstore"
	fnGet          = "get"
	fnSet          = "set"
	fnDelete       = "delete"
	fnKeys         = "keys"
)

// KV is a key-value store.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Keys() ([]string, error)
	Close() error
}

var (
	// ErrInvalidKey indicates an empty key.
	ErrInvalidKey = errors.New("key is invalid")

	// ErrInvalidValue indicates a nil value passed to Set.
	ErrInvalidValue = errors.New("value is invalid")

	// ErrKeyNotFound indicates the key does not exist.
	ErrKeyNotFound = errors.New("key not found")
)

// HostCall defines the waPC host function signature used for kv operations.
type HostCall func(string, string, string, []byte) ([]byte, error)

// Config controls how a Client talks to the host.
type Config struct {
	// SDKConfig provides the runtime namespace used for host calls.
	SDKConfig networking.RuntimeConfig

	// HostCall overrides the waPC host function.
	HostCall HostCall
}

// Client is the host-backed KV.
type Client struct {
	runtime  networking.RuntimeConfig
	hostCall HostCall
}

// Ensure Client satisfies KV at compile time.
var _ KV = (*Client)(nil)

// New creates a Client, filling in the default namespace and host call.
func New(config Config) (*Client, error) {
	runtime := config.SDKConfig
	if runtime.Namespace == "" {
		runtime.Namespace = networking.DefaultNamespace
	}

	hostCall := config.HostCall
	if hostCall == nil {
		hostCall = wapc.HostCall
	}

	return &Client{runtime: runtime, hostCall: hostCall}, nil
}

// Close releases nothing; the host owns the store.
func (c *Client) Close() error {
	return nil
}

// Get returns the value stored under key.
func (c *Client) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}

	var resp proto.KVStoreGetResponse
	if err := c.call(fnGet, &proto.KVStoreGet{Key: key}, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.GetStatus()); err != nil {
		return nil, err
	}
	return resp.GetData(), nil
}

// Set stores value under key.
func (c *Client) Set(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	if value == nil {
		return ErrInvalidValue
	}

	var resp proto.KVStoreSetResponse
	if err := c.call(fnSet, &proto.KVStoreSet{Key: key, Data: value}, &resp); err != nil {
		return err
	}
	return checkStatus(resp.GetStatus())
}

// Delete removes key.
func (c *Client) Delete(key string) error {
	if key == "" {
		return ErrInvalidKey
	}

	var resp proto.KVStoreDeleteResponse
	if err := c.call(fnDelete, &proto.KVStoreDelete{Key: key}, &resp); err != nil {
		return err
	}
	return checkStatus(resp.GetStatus())
}

// Keys lists every key in the store.
func (c *Client) Keys() ([]string, error) {
	var resp proto.KVStoreKeysResponse
	if err := c.call(fnKeys, &proto.KVStoreKeys{ReturnProto: true}, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(resp.GetStatus()); err != nil {
		return nil, err
	}
	return resp.GetKeys(), nil
}

type marshaler interface {
	MarshalVT() ([]byte, error)
}

type unmarshaler interface {
	UnmarshalVT([]byte) error
}

// call marshals req, invokes fn on the host and decodes the reply into resp.
func (c *Client) call(fn string, req marshaler, resp unmarshaler) error {
	b, err := req.MarshalVT()
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", fn, err)
	}

	reply, err := c.hostCall(c.runtime.Namespace, capabilityName, fn, b)
	if err != nil {
		return errors.Join(networking.ErrHostCall, err)
	}

	if err := resp.UnmarshalVT(reply); err != nil {
		return errors.Join(networking.ErrHostResponseInvalid, err)
	}
	return nil
}

// checkStatus maps a host status onto package errors. The host reports
// success as 0 or 200.
func checkStatus(status *sdkproto.Status) error {
	if status == nil {
		return networking.ErrHostResponseInvalid
	}

	switch code := status.GetCode(); code {
	case 0, 200:
		return nil
	case 404:
		return ErrKeyNotFound
	default:
		return errors.Join(networking.ErrHostError, fmt.Errorf("host status %d: %s", code, status.GetStatus()))
	}
}
