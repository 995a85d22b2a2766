package refreshing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/portfolio-refresh-api/internal/domain"
)

// Strategy define o tamanho dos lotes (0 = lote único) e as buscas simultâneas em cada lote.
type Strategy struct {
	BatchSize   int
	Concurrency int
}

type FetchFunc func(ctx context.Context, account *domain.Account) (domain.RawRow, error)

// FailureFunc converte uma falha de busca em linha; nunca deve falhar.
type FailureFunc func(account *domain.Account, err error) domain.RawRow

type ProgressReporter interface {
	BatchDone(batch, totalBatches, accounts int)
}

// Orchestrator executa as buscas por conta em lotes sequenciais com concorrência limitada.
// Uma falha de conta vira linha e nunca interrompe as demais.
type Orchestrator struct {
	strategy Strategy
	progress ProgressReporter
}

func NewOrchestrator(strategy Strategy, progress ProgressReporter) *Orchestrator {
	if strategy.Concurrency <= 0 {
		strategy.Concurrency = 1
	}
	return &Orchestrator{strategy: strategy, progress: progress}
}

// Gather só retorna depois que todas as contas têm resultado, na mesma ordem de entrada.
func (o *Orchestrator) Gather(ctx context.Context, accounts []*domain.Account, fetch FetchFunc, onFailure FailureFunc) []domain.RawRow {
	batches := Chunk(accounts, o.strategy.BatchSize)

	rows := make([]domain.RawRow, 0, len(accounts))
	for i, batch := range batches {
		rows = append(rows, o.runBatch(ctx, batch, fetch, onFailure)...)

		if o.progress != nil {
			o.progress.BatchDone(i+1, len(batches), len(batch))
		}
	}

	return rows
}

func (o *Orchestrator) runBatch(ctx context.Context, batch []*domain.Account, fetch FetchFunc, onFailure FailureFunc) []domain.RawRow {
	results := make([]domain.RawRow, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.strategy.Concurrency)

	for i, account := range batch {
		g.Go(func() error {
			results[i] = fetchIsolated(gctx, account, fetch, onFailure)
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func fetchIsolated(ctx context.Context, account *domain.Account, fetch FetchFunc, onFailure FailureFunc) (row domain.RawRow) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("panic ao buscar conta: %v", r)
			logrus.WithFields(logrus.Fields{
				"account_id": account.ID,
				"error":      err,
			}).Error("Busca de conta interrompida por panic")
			row = onFailure(account, err)
		}
	}()

	row, err := fetch(ctx, account)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id":  account.ID,
			"external_id": account.ExternalID,
			"error":       err.Error(),
		}).Warn("Falha ao buscar métricas da conta")
		return onFailure(account, err)
	}

	if row.AccountID == "" {
		row.AccountID = account.ID
	}
	return row
}

// Chunk divide as contas em lotes de tamanho fixo; size <= 0 devolve um único lote.
func Chunk(accounts []*domain.Account, size int) [][]*domain.Account {
	if len(accounts) == 0 {
		return nil
	}
	if size <= 0 || size >= len(accounts) {
		return [][]*domain.Account{accounts}
	}

	chunks := make([][]*domain.Account, 0, (len(accounts)+size-1)/size)
	for start := 0; start < len(accounts); start += size {
		end := min(start+size, len(accounts))
		chunks = append(chunks, accounts[start:end])
	}
	return chunks
}
