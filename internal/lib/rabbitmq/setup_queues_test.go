package rabbitmq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserEventQueues(t *testing.T) {
	queues := GetUserEventQueues()

	assert.NotEmpty(t, queues)
	for _, q := range queues {
		assert.NotEmpty(t, q.QueueName)
		assert.NotEmpty(t, q.RoutingKey)
	}
}
