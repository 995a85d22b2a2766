package snapshotting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

func metric(id string, values map[string]domain.FieldValue) *domain.SnapshotMetric {
	return &domain.SnapshotMetric{AccountID: id, AccountName: "Conta " + id, Values: values}
}

func TestDiffMetrics(t *testing.T) {
	from := []*domain.SnapshotMetric{
		metric("A", map[string]domain.FieldValue{
			"spend":        domain.NumericValue(0.1),
			"revenue":      domain.UnparsedValue("Missing Permissions"),
			"account_name": domain.UnparsedValue("Conta A"),
		}),
		metric("GONE", map[string]domain.FieldValue{"spend": domain.NumericValue(10)}),
	}
	to := []*domain.SnapshotMetric{
		metric("A", map[string]domain.FieldValue{
			"spend":        domain.NumericValue(0.3),
			"revenue":      domain.NumericValue(900),
			"account_name": domain.UnparsedValue("Conta A"),
		}),
		metric("NEW", map[string]domain.FieldValue{"spend": domain.NumericValue(5)}),
	}

	deltas := DiffMetrics(from, to)

	require.Len(t, deltas, 3)

	a := deltas[0]
	assert.Equal(t, "A", a.AccountID)
	assert.False(t, a.Added)
	assert.NotContains(t, a.Fields, "account_name")
	require.NotNil(t, a.Fields["spend"].Delta)
	assert.Equal(t, 0.2, *a.Fields["spend"].Delta)
	assert.Nil(t, a.Fields["revenue"].From)
	assert.Equal(t, 900.0, *a.Fields["revenue"].To)
	assert.Nil(t, a.Fields["revenue"].Delta)

	added := deltas[1]
	assert.Equal(t, "NEW", added.AccountID)
	assert.True(t, added.Added)
	assert.Nil(t, added.Fields["spend"].From)
	assert.Nil(t, added.Fields["spend"].Delta)

	removed := deltas[2]
	assert.Equal(t, "GONE", removed.AccountID)
	assert.True(t, removed.Removed)
	assert.Equal(t, 10.0, *removed.Fields["spend"].From)
}
