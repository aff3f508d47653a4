package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2024, 3, 7, 18, 30, 0, 0, time.UTC)

	n := NewOrderNumber(now)
	assert.Len(t, n, 12)
	assert.True(t, strings.HasPrefix(n, "LB240307"), "got %s", n)
	for _, ch := range n[2:] {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestNewOrderNumber_SortableByDate(t *testing.T) {
	earlier := NewOrderNumber(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC))
	later := NewOrderNumber(time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC))
	assert.Less(t, earlier[:8], later[:8])
}
