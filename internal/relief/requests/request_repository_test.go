package requests

import (
	"testing"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkFulfilledQueryGuardsPending(t *testing.T) {
	tx := goqu.NewTx("postgres", nil)

	sql, _, err := markFulfilledQuery(tx, 7, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)).ToSQL()

	require.NoError(t, err)
	assert.Contains(t, sql, `UPDATE "requests" SET`)
	assert.Contains(t, sql, `"status"='Fulfilled'`)
	assert.Contains(t, sql, `"request_id" = 7`)
	assert.Contains(t, sql, `"status" = 'Pending'`)
}

func TestPriorityOrderRanksHighFirst(t *testing.T) {
	sql, _, err := goqu.Dialect("postgres").From(requestsTable).Order(priorityOrder.Desc()).ToSQL()

	require.NoError(t, err)
	assert.Contains(t, sql, `ORDER BY CASE priority WHEN 'High' THEN 3 WHEN 'Medium' THEN 2 WHEN 'Low' THEN 1 ELSE 0 END DESC`)
}
