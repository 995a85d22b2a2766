package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/pkg/secret"
)

const (
	idLength   = 12
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id              VARCHAR(32) PRIMARY KEY,
		external_id     VARCHAR(64) NOT NULL,
		name            TEXT NOT NULL,
		nickname        TEXT,
		brand_name      TEXT NOT NULL DEFAULT '',
		cnpj            VARCHAR(18),
		pod             VARCHAR(100) NOT NULL DEFAULT '',
		monitored       BOOLEAN NOT NULL DEFAULT FALSE,
		origin          VARCHAR(32) NOT NULL,
		encrypted_token TEXT,
		status          VARCHAR(16) NOT NULL DEFAULT 'ACTIVE',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT accounts_external_origin_unique UNIQUE (external_id, origin)
	)`,
	`CREATE TABLE IF NOT EXISTS snapshots (
		id            VARCHAR(32) PRIMARY KEY,
		scope_id      VARCHAR(100) NOT NULL,
		refresh_type  VARCHAR(32) NOT NULL,
		date_preset   VARCHAR(32) NOT NULL,
		status        VARCHAR(16) NOT NULL,
		snapshot_date DATE NOT NULL,
		record_count  INTEGER,
		error_message TEXT,
		metadata      JSONB NOT NULL DEFAULT '{}'::jsonb,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS snapshot_metrics (
		id            BIGSERIAL PRIMARY KEY,
		snapshot_id   VARCHAR(32) NOT NULL REFERENCES snapshots(id) ON DELETE CASCADE,
		account_id    VARCHAR(100) NOT NULL,
		account_name  TEXT NOT NULL,
		pod           VARCHAR(100) NOT NULL DEFAULT '',
		spend         NUMERIC(18, 2),
		revenue       NUMERIC(18, 2),
		metric_values JSONB NOT NULL DEFAULT '{}'::jsonb,
		is_error      BOOLEAN NOT NULL DEFAULT FALSE,
		error_detail  JSONB,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS snapshot_metrics_snapshot_id_idx ON snapshot_metrics (snapshot_id)`,
	`CREATE INDEX IF NOT EXISTS snapshots_scope_recent_idx ON snapshots (scope_id, refresh_type, created_at DESC)`,
}

// AccountSeed é o formato do arquivo de importação de contas.
type AccountSeed struct {
	ExternalID string  `json:"external_id"`
	Name       string  `json:"name"`
	Nickname   *string `json:"nickname"`
	BrandName  string  `json:"brand_name"`
	CNPJ       *string `json:"cnpj"`
	Pod        string  `json:"pod"`
	Monitored  bool    `json:"monitored"`
	Origin     string  `json:"origin"`
	Token      string  `json:"token"`
}

type encrypter interface {
	Encrypt(plaintext string) (string, error)
}

func generateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, statement := range schemaStatements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("erro ao aplicar schema: %w", err)
		}
	}

	return ensureSnapshotDayConstraint(ctx, db)
}

// ensureSnapshotDayConstraint cria a unicidade (escopo, tipo, preset, dia) em bancos antigos.
func ensureSnapshotDayConstraint(ctx context.Context, db *sql.DB) error {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.table_constraints
			WHERE table_name = 'snapshots'
			AND constraint_name = 'snapshots_scope_day_unique'
		)`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("erro ao verificar constraint de snapshots: %w", err)
	}

	if exists {
		logrus.Info("Constraint snapshots_scope_day_unique já existe")
		return nil
	}

	_, err = db.ExecContext(ctx, `ALTER TABLE snapshots ADD CONSTRAINT snapshots_scope_day_unique UNIQUE (scope_id, refresh_type, date_preset, snapshot_date)`)
	if err != nil {
		return fmt.Errorf("erro ao criar constraint de snapshots: %w", err)
	}

	logrus.Info("Constraint snapshots_scope_day_unique criada")
	return nil
}

// importAccounts faz upsert das contas pelo par (external_id, origin), cifrando os tokens.
func importAccounts(ctx context.Context, db *sql.DB, cipher encrypter, seeds []AccountSeed) (int, error) {
	startTime := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("erro ao iniciar transação: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO accounts (id, external_id, name, nickname, brand_name, cnpj, pod, monitored, origin, encrypted_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (external_id, origin) DO UPDATE SET
			name = EXCLUDED.name,
			nickname = EXCLUDED.nickname,
			brand_name = EXCLUDED.brand_name,
			cnpj = EXCLUDED.cnpj,
			pod = EXCLUDED.pod,
			monitored = EXCLUDED.monitored,
			encrypted_token = COALESCE(EXCLUDED.encrypted_token, accounts.encrypted_token),
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("erro ao preparar insert de contas: %w", err)
	}
	defer stmt.Close()

	imported := 0
	for i, seed := range seeds {
		if seed.ExternalID == "" || seed.Origin == "" {
			logrus.Warnf("Conta %d ignorada: external_id e origin são obrigatórios", i+1)
			continue
		}

		id, err := generateID()
		if err != nil {
			return imported, fmt.Errorf("erro ao gerar id da conta: %w", err)
		}

		var token any
		if seed.Token != "" {
			encrypted, err := cipher.Encrypt(seed.Token)
			if err != nil {
				return imported, fmt.Errorf("erro ao cifrar token da conta %s: %w", seed.ExternalID, err)
			}
			token = encrypted
		}

		_, err = stmt.ExecContext(ctx, id, seed.ExternalID, seed.Name, seed.Nickname, seed.BrandName,
			seed.CNPJ, seed.Pod, seed.Monitored, seed.Origin, token)
		if err != nil {
			return imported, fmt.Errorf("erro ao inserir conta %s: %w", seed.ExternalID, err)
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("erro ao confirmar importação: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"imported": imported,
		"total":    len(seeds),
		"elapsed":  time.Since(startTime).String(),
	}).Info("Importação de contas concluída")

	return imported, nil
}

func readSeeds(path string) ([]AccountSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo de contas: %w", err)
	}

	var seeds []AccountSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("erro ao interpretar arquivo de contas: %w", err)
	}
	return seeds, nil
}

func main() {
	accountsFile := flag.String("accounts", "", "arquivo JSON com contas para importar")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logrus.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}

	if err := ensureSchema(ctx, db); err != nil {
		logrus.Fatalf("ERRO ao aplicar schema: %v", err)
	}
	logrus.Info("Schema aplicado com sucesso")

	if *accountsFile == "" {
		return
	}

	seeds, err := readSeeds(*accountsFile)
	if err != nil {
		logrus.Fatal(err)
	}

	cipher, err := secret.NewCipher(cfg.Secrets.EncryptionKey)
	if err != nil {
		logrus.Fatalf("ERRO ao iniciar cifra: %v", err)
	}

	if _, err := importAccounts(ctx, db, cipher, seeds); err != nil {
		logrus.Fatalf("ERRO ao importar contas: %v", err)
	}
}
