package domain

import (
	"fmt"
	"time"
)

type SnapshotStatus string

const (
	SnapshotStatusPending    SnapshotStatus = "pending"
	SnapshotStatusInProgress SnapshotStatus = "in_progress"
	SnapshotStatusProcessing SnapshotStatus = "processing"
	SnapshotStatusCompleted  SnapshotStatus = "completed"
	SnapshotStatusFailed     SnapshotStatus = "failed"
)

var snapshotTransitions = map[SnapshotStatus][]SnapshotStatus{
	SnapshotStatusPending:    {SnapshotStatusInProgress, SnapshotStatusProcessing, SnapshotStatusFailed},
	SnapshotStatusInProgress: {SnapshotStatusInProgress, SnapshotStatusProcessing, SnapshotStatusCompleted, SnapshotStatusFailed},
	SnapshotStatusProcessing: {SnapshotStatusProcessing, SnapshotStatusCompleted, SnapshotStatusFailed},
}

func (s SnapshotStatus) IsValid() bool {
	switch s {
	case SnapshotStatusPending, SnapshotStatusInProgress, SnapshotStatusProcessing,
		SnapshotStatusCompleted, SnapshotStatusFailed:
		return true
	}
	return false
}

func (s SnapshotStatus) IsTerminal() bool {
	return s == SnapshotStatusCompleted || s == SnapshotStatusFailed
}

// CanTransitionTo indica se a mudança de status é permitida. Estados terminais não mudam.
func (s SnapshotStatus) CanTransitionTo(next SnapshotStatus) bool {
	for _, allowed := range snapshotTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type RefreshType string

const (
	RefreshTypeAdInsights   RefreshType = "ad_insights"
	RefreshTypeFinanceBatch RefreshType = "finance_batch"
	RefreshTypePodSheet     RefreshType = "pod_sheet"
)

// SnapshotScope identifica a unidade de idempotência junto com o dia do snapshot.
type SnapshotScope struct {
	ScopeID     string      `json:"scope_id"`
	RefreshType RefreshType `json:"refresh_type"`
	DatePreset  string      `json:"date_preset"`
}

func (s SnapshotScope) Key() string {
	return fmt.Sprintf("%s:%s:%s", s.ScopeID, s.RefreshType, s.DatePreset)
}

type Snapshot struct {
	ID           string         `json:"id"`
	ScopeID      string         `json:"scope_id"`
	RefreshType  RefreshType    `json:"refresh_type"`
	DatePreset   string         `json:"date_preset"`
	Status       SnapshotStatus `json:"status"`
	SnapshotDate time.Time      `json:"snapshot_date"`
	RecordCount  *int           `json:"record_count,omitempty"`
	ErrorMessage *string        `json:"error_message,omitempty"`
	Metadata     map[string]any `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (s *Snapshot) Scope() SnapshotScope {
	return SnapshotScope{ScopeID: s.ScopeID, RefreshType: s.RefreshType, DatePreset: s.DatePreset}
}

type SnapshotMetric struct {
	ID          int64                 `json:"id"`
	SnapshotID  string                `json:"snapshot_id"`
	AccountID   string                `json:"account_id"`
	AccountName string                `json:"account_name"`
	Pod         string                `json:"pod"`
	Spend       *float64              `json:"spend"`
	Revenue     *float64              `json:"revenue"`
	Values      map[string]FieldValue `json:"values"`
	IsError     bool                  `json:"is_error"`
	ErrorDetail *ErrorDetail          `json:"error_detail,omitempty"`
	IsTotal     bool                  `json:"is_total,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

type SaveMetricsResult struct {
	Saved int    `json:"saved"`
	Error string `json:"error,omitempty"`
}

type SnapshotWithMetrics struct {
	Snapshot *Snapshot         `json:"snapshot"`
	Metrics  []*SnapshotMetric `json:"metrics"`
}

type FieldDelta struct {
	From  *float64 `json:"from"`
	To    *float64 `json:"to"`
	Delta *float64 `json:"delta"`
}

type AccountDelta struct {
	AccountID   string                `json:"account_id"`
	AccountName string                `json:"account_name"`
	Added       bool                  `json:"added,omitempty"`
	Removed     bool                  `json:"removed,omitempty"`
	Fields      map[string]FieldDelta `json:"fields"`
}

type SnapshotDiff struct {
	From     *Snapshot       `json:"from"`
	To       *Snapshot       `json:"to"`
	Accounts []*AccountDelta `json:"accounts"`
}

// SnapshotFilter seleciona snapshots nas consultas de leitura. Campos vazios não filtram.
type SnapshotFilter struct {
	ScopeID     string         `json:"scope_id"`
	RefreshType RefreshType    `json:"refresh_type"`
	DatePreset  string         `json:"date_preset"`
	Status      SnapshotStatus `json:"status"`
}

// SnapshotStatusUpdate carrega uma mudança de status; ponteiros nil não alteram a coluna.
type SnapshotStatusUpdate struct {
	SnapshotID   string
	Status       SnapshotStatus
	RecordCount  *int
	ErrorMessage *string
	Metadata     map[string]any
	UpdatedAt    time.Time
}
