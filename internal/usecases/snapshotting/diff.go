package snapshotting

import (
	"github.com/shopspring/decimal"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

// DiffMetrics cruza as contas dos dois snapshots pelo account_id. Contas do destino vêm
// primeiro, na ordem em que aparecem; removidas vêm no fim.
func DiffMetrics(from, to []*domain.SnapshotMetric) []*domain.AccountDelta {
	fromByID := make(map[string]*domain.SnapshotMetric, len(from))
	for _, m := range from {
		fromByID[m.AccountID] = m
	}

	seen := make(map[string]bool, len(to))
	deltas := make([]*domain.AccountDelta, 0, len(to))

	for _, current := range to {
		seen[current.AccountID] = true
		previous := fromByID[current.AccountID]

		delta := &domain.AccountDelta{
			AccountID:   current.AccountID,
			AccountName: current.AccountName,
			Added:       previous == nil,
			Fields:      diffFields(previous, current),
		}
		deltas = append(deltas, delta)
	}

	for _, previous := range from {
		if seen[previous.AccountID] {
			continue
		}
		deltas = append(deltas, &domain.AccountDelta{
			AccountID:   previous.AccountID,
			AccountName: previous.AccountName,
			Removed:     true,
			Fields:      diffFields(previous, nil),
		})
	}

	return deltas
}

// diffFields considera apenas campos numéricos em pelo menos um dos lados.
func diffFields(from, to *domain.SnapshotMetric) map[string]domain.FieldDelta {
	names := make(map[string]struct{})
	for _, m := range []*domain.SnapshotMetric{from, to} {
		if m == nil {
			continue
		}
		for name, v := range m.Values {
			if _, ok := v.Float(); ok {
				names[name] = struct{}{}
			}
		}
	}

	fields := make(map[string]domain.FieldDelta, len(names))
	for name := range names {
		delta := domain.FieldDelta{
			From: fieldValue(from, name),
			To:   fieldValue(to, name),
		}
		if delta.From != nil && delta.To != nil {
			d := decimal.NewFromFloat(*delta.To).Sub(decimal.NewFromFloat(*delta.From)).InexactFloat64()
			delta.Delta = &d
		}
		fields[name] = delta
	}

	return fields
}

func fieldValue(m *domain.SnapshotMetric, name string) *float64 {
	if m == nil {
		return nil
	}
	return m.Values[name].FloatPtr()
}
