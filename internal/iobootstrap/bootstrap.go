// Package iobootstrap prepares the source database for extraction. It
// waits until PostGIS accepts connections and loads the gazetteer dump
// when the database is still empty.
package iobootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gazdb/internal/iodb"
	"github.com/gnames/gazdb/internal/iopipeline"
	"github.com/gnames/gazdb/pkg/config"
	"github.com/gnames/gazdb/pkg/db"
	"github.com/gnames/gazdb/pkg/lifecycle"
	"github.com/gnames/gn"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CheckTable is the table whose rows prove the dump was loaded.
const CheckTable = "stedsnavn"

// ConnectTimeout limits a single readiness attempt.
const ConnectTimeout = 5 * time.Second

type bootstrap struct {
	cfg      *config.Config
	op       db.Operator
	interval time.Duration
	timeout  time.Duration
	// connectTimeout limits one Connect call in WaitReady.
	connectTimeout time.Duration

	countRows func(ctx context.Context, schema string) (int64, error)
	run       func(ctx context.Context, name string, args, env []string) ([]byte, error)
}

// New creates a Bootstrapper for the database described by cfg.
func New(cfg *config.Config, op db.Operator) lifecycle.Bootstrapper {
	res := &bootstrap{
		cfg:            cfg,
		op:             op,
		interval:       time.Duration(cfg.Source.ReadyIntervalSec) * time.Second,
		timeout:        time.Duration(cfg.Pipeline.StepTimeoutSec) * time.Second,
		connectTimeout: ConnectTimeout,
		run:            runCommand,
	}
	res.countRows = res.gormCount
	return res
}

// WaitReady connects the operator, retrying until the configured number
// of attempts is used up. Each attempt gets its own connect timeout.
// On success the operator stays connected.
func (b *bootstrap) WaitReady(ctx context.Context) error {
	attempts := b.cfg.Source.ReadyAttempts
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.connect(ctx)
		if err == nil {
			slog.Info("Source database is ready", "attempt", i)
			return nil
		}
		slog.Debug("Source database not ready", "attempt", i, "error", err)
		gn.Message("  Waiting for PostgreSQL... (%d/%d)", i, attempts)

		if i == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return NotReadyError(b.cfg.Database.Host, i, ctx.Err())
		case <-time.After(b.interval):
		}
	}
	return NotReadyError(b.cfg.Database.Host, attempts, err)
}

func (b *bootstrap) connect(ctx context.Context) error {
	attemptCtx, cancel := context.WithTimeout(ctx, b.connectTimeout)
	defer cancel()
	return b.op.Connect(attemptCtx, &b.cfg.Database)
}

// LoadDump loads the gazetteer dump with psql unless the gazetteer
// schema already has rows. The load runs under the pipeline step
// timeout and is not retried.
func (b *bootstrap) LoadDump(ctx context.Context) (bool, error) {
	schema, err := b.op.FindSchema(ctx, b.cfg.Source.SchemaPattern)
	if err != nil {
		return false, err
	}
	if schema != "" {
		n, err := b.countRows(ctx, schema)
		if err != nil {
			slog.Warn("Cannot count loaded rows, loading dump",
				"schema", schema, "error", err)
		}
		if err == nil && n > 0 {
			gn.Info("PostGIS data already loaded (<em>%d</em> records)", n)
			slog.Info("Dump load skipped", "schema", schema, "rows", n)
			return false, nil
		}
	}

	dump := b.cfg.Source.DumpPath
	if _, err = os.Stat(dump); err != nil {
		return false, DumpNotFoundError(dump, err)
	}

	gn.Info("Loading PostGIS dump from <em>%s</em>...", dump)
	slog.Info("Loading dump", "path", dump, "timeout", b.timeout.String())
	timeStart := time.Now()

	stepCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	out, err := b.run(stepCtx, "psql", b.psqlArgs(dump), b.psqlEnv())
	if errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return false, iopipeline.TimeoutError("load dump", b.timeout)
	}
	if err != nil {
		return false, DumpLoadError(dump, tail(out, 500), err)
	}

	slog.Info("Dump loaded", "duration", time.Since(timeStart).String())
	gn.Info("PostGIS dump loaded successfully")
	return true, nil
}

func (b *bootstrap) psqlArgs(dump string) []string {
	d := b.cfg.Database
	return []string{
		"-q",
		"-h", d.Host,
		"-p", strconv.Itoa(d.Port),
		"-U", d.User,
		"-d", d.Database,
		"-f", dump,
	}
}

func (b *bootstrap) psqlEnv() []string {
	d := b.cfg.Database
	return append(os.Environ(),
		"PGPASSWORD="+d.Password,
		"PGSSLMODE="+d.SSLMode,
	)
}

// gormCount counts rows of the check table in schema through the
// operator's pool.
func (b *bootstrap) gormCount(ctx context.Context, schema string) (int64, error) {
	pool := b.op.Pool()
	if pool == nil {
		return 0, iodb.NotConnectedError()
	}
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return 0, err
	}

	var res int64
	err = gormDB.WithContext(ctx).
		Table(fmt.Sprintf("%s.%s", schema, CheckTable)).
		Count(&res).Error
	return res, err
}

func runCommand(
	ctx context.Context,
	name string,
	args, env []string,
) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env
	return cmd.CombinedOutput()
}

func tail(out []byte, n int) string {
	s := strings.TrimSpace(string(out))
	if len(s) > n {
		s = s[len(s)-n:]
	}
	return s
}
