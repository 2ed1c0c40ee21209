package repository

import (
	"testing"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
)

func TestBuildConditions(t *testing.T) {
	qb := NewQueryBuilder()
	qb.AddCondition("status", "Pending")
	qb.AddCondition("priority", "")
	qb.AddCondition("camp_id", 3)
	qb.AddCondition("victim_id", 0)

	got := qb.BuildConditions(map[string]string{"camp_id": "r.camp_id"})

	assert.Equal(t, goqu.Ex{"status": "Pending", "r.camp_id": 3}, got)
}
