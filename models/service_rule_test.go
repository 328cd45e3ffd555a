package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceRuleValid(t *testing.T) {
	assert.True(t, (&ServiceRule{ServiceName: "Ganti Oli", IntervalKm: 3000, WarningThresholdKm: 300}).Valid())
	assert.False(t, (&ServiceRule{ServiceName: "", IntervalKm: 3000}).Valid())
	assert.False(t, (&ServiceRule{ServiceName: "Ganti Oli", IntervalKm: 0}).Valid())
	assert.False(t, (&ServiceRule{ServiceName: "Ganti Oli", IntervalKm: -100}).Valid())
}

func TestServiceRuleThresholdDefault(t *testing.T) {
	assert.Equal(t, 300, (&ServiceRule{WarningThresholdKm: 300}).Threshold())
	assert.Equal(t, DefaultWarningThresholdKm, (&ServiceRule{}).Threshold())
}

func TestStatusRankOrdering(t *testing.T) {
	assert.Less(t, StatusRank(StatusPending), StatusRank(StatusUpcoming))
	assert.Less(t, StatusRank(StatusUpcoming), StatusRank(StatusOverdue))
	assert.Equal(t, -1, StatusRank(StatusCompleted))
	assert.Equal(t, -1, StatusRank(StatusSkipped))
}
