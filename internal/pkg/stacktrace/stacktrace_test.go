package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const dump = `goroutine 7 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/pkaramon/book-store-sub000/internal/pkg/goroutine.(*Manager).Go.func1.1()
	/src/bookstore/internal/pkg/goroutine/goroutine.go:83 +0x85
panic({0x1029a40?, 0x13b8f10?})
	/usr/local/go/src/runtime/panic.go:785 +0x132
github.com/pkaramon/book-store-sub000/internal/notification/inbound.(*MQHandler).UserRegistered(...)
	/src/bookstore/internal/notification/inbound/mq_handler.go:41 +0x1f
github.com/pkaramon/book-store-sub000/internal/notification/inbound.(*MQHandler).UserRegistered(...)
	/src/bookstore/internal/notification/inbound/mq_handler.go:41 +0x1f
github.com/nats-io/nats.go.(*Conn).waitForMsgs(0xc0001f2008)
	/root/go/pkg/mod/github.com/nats-io/nats.go@v1.48.0/nats.go:3212 +0x2a5
`

func TestInternalPaths(t *testing.T) {
	assert.Equal(t, []string{
		"internal/pkg/goroutine/goroutine.go:83",
		"internal/notification/inbound/mq_handler.go:41",
	}, InternalPaths([]byte(dump)))
}

func TestInternalPaths_Empty(t *testing.T) {
	assert.Empty(t, InternalPaths(nil))
	assert.Empty(t, InternalPaths([]byte("goroutine 1 [running]:\nmain.main()\n\t/usr/local/go/src/main.go:3 +0x1")))
}
