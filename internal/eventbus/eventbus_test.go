package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type ping struct{ n int }
type pong struct{ s string }

func TestPublishByType(t *testing.T) {
	b := New()
	var pings []int
	var pongs []string
	Subscribe(b, func(_ context.Context, e ping) { pings = append(pings, e.n) })
	Subscribe(b, func(_ context.Context, e pong) { pongs = append(pongs, e.s) })

	Publish(context.Background(), b, ping{1})
	Publish(context.Background(), b, pong{"a"})
	Publish(context.Background(), b, ping{2})

	assert.Equal(t, []int{1, 2}, pings)
	assert.Equal(t, []string{"a"}, pongs)
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	var first, second int
	unsub := Subscribe(b, func(context.Context, ping) { first++ })
	Subscribe(b, func(context.Context, ping) { second++ })

	Publish(context.Background(), b, ping{})
	unsub()
	unsub()
	Publish(context.Background(), b, ping{})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestNilBusIsNoop(t *testing.T) {
	Publish(context.Background(), nil, ping{})
	Subscribe(nil, func(context.Context, ping) { t.Fatal("unexpected call") })()
}

func TestGlobalBus(t *testing.T) {
	prev := Default()
	defer Use(prev)

	Use(nil)
	Emit(context.Background(), ping{1})

	Use(New())
	var got []int
	unsub := On(func(_ context.Context, e ping) { got = append(got, e.n) })
	defer unsub()
	Emit(context.Background(), ping{7})

	assert.Equal(t, []int{7}, got)
}
