package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(0), TotalPages(0, 10))
	assert.Equal(t, int64(1), TotalPages(1, 10))
	assert.Equal(t, int64(1), TotalPages(10, 10))
	assert.Equal(t, int64(2), TotalPages(11, 10))
	// 非法页大小不参与计算
	assert.Equal(t, int64(0), TotalPages(5, 0))
}
