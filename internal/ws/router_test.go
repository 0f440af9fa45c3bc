package ws

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouterDispatch(t *testing.T) {
	r := NewRouter()

	type greet struct {
		Name string `json:"name"`
	}
	var got greet
	Register(r, "greet", func(_ context.Context, _ *ConnContext, req greet) error {
		got = req
		return nil
	})

	err := r.dispatch(context.Background(), &ConnContext{ConnID: "c1"},
		Envelope{Event: "greet", Body: json.RawMessage(`{"name":"alice"}`)})
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Name)
}

func TestRouterDispatchEmptyBody(t *testing.T) {
	r := NewRouter()

	called := false
	Register(r, "ping", func(_ context.Context, _ *ConnContext, _ struct{}) error {
		called = true
		return nil
	})

	require.NoError(t, r.dispatch(context.Background(), &ConnContext{}, Envelope{Event: "ping"}))
	assert.True(t, called)
}

func TestRouterUnknownEvent(t *testing.T) {
	r := NewRouter()
	err := r.dispatch(context.Background(), &ConnContext{}, Envelope{Event: "nope"})
	require.EqualError(t, err, "unknown_event")
}

func TestRouterMalformedBody(t *testing.T) {
	r := NewRouter()

	type req struct {
		N int `json:"n"`
	}
	Register(r, "num", func(_ context.Context, _ *ConnContext, _ req) error { return nil })

	err := r.dispatch(context.Background(), &ConnContext{},
		Envelope{Event: "num", Body: json.RawMessage(`{"n":"not-a-number"}`)})
	require.Error(t, err)
}

func TestRegisterEmptyEventPanics(t *testing.T) {
	r := NewRouter()
	assert.Panics(t, func() {
		Register(r, "", func(_ context.Context, _ *ConnContext, _ struct{}) error { return nil })
	})
}
