package usecase

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/allisson/anonymizer/internal/anonymization/domain"
	"github.com/allisson/anonymizer/internal/anonymization/service"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// anonymizationUseCase implements AnonymizationUseCase.
type anonymizationUseCase struct {
	cipherFactory service.CipherFactory
	logger        *slog.Logger
}

// NewAnonymizationUseCase creates an AnonymizationUseCase. cipherFactory may be nil to
// run format-preserving mode on the shim alone.
func NewAnonymizationUseCase(cipherFactory service.CipherFactory, logger *slog.Logger) AnonymizationUseCase {
	return &anonymizationUseCase{
		cipherFactory: cipherFactory,
		logger:        logger,
	}
}

type targetColumn struct {
	name  string
	class domain.ColumnClassification
}

// Anonymize implements AnonymizationUseCase.
func (a *anonymizationUseCase) Anonymize(
	ctx context.Context,
	table records.Table,
	secret keysDomain.Secret,
	opts domain.Options,
) (*domain.Result, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	mode, _ := domain.ParseMode(string(opts.Mode))
	opts.Mode = mode

	if secret.IsZero() {
		return nil, domain.ErrSecretNotSet
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anonymizer, err := service.NewValueAnonymizer(secret, opts, a.cipherFactory)
	if err != nil {
		return nil, err
	}

	work := table
	if !opts.InPlace {
		work = table.Clone()
	}

	targets := resolveTargets(work, opts.Columns)
	n := work.Len()
	mappings := make([]domain.RecordMapping, n)

	if n > 0 && len(targets) > 0 {
		workers := min(opts.Workers, n)
		chunk := (n + workers - 1) / workers

		g, gctx := errgroup.WithContext(ctx)
		for start := 0; start < n; start += chunk {
			end := min(start+chunk, n)
			g.Go(func() error {
				for row := start; row < end; row++ {
					if err := gctx.Err(); err != nil {
						return err
					}
					mappings[row] = anonymizeRecord(work, row, targets, anonymizer)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	a.logger.Debug("records anonymized",
		slog.String("mode", mode.String()),
		slog.Int("records", n),
		slog.Int("columns", len(targets)),
		slog.Int("skipped_columns", len(opts.Columns)-len(targets)),
		slog.Bool("in_place", opts.InPlace),
	)

	return &domain.Result{Table: work, Mappings: mappings}, nil
}

// resolveTargets keeps the requested columns present in the table, in request order,
// without duplicates.
func resolveTargets(table records.Table, columns []string) []targetColumn {
	seen := make(map[string]struct{}, len(columns))
	targets := make([]targetColumn, 0, len(columns))
	for _, c := range columns {
		if _, dup := seen[c]; dup || !table.HasColumn(c) {
			continue
		}
		seen[c] = struct{}{}
		targets = append(targets, targetColumn{name: c, class: domain.ClassifyColumn(c)})
	}
	return targets
}

func anonymizeRecord(
	table records.Table,
	row int,
	targets []targetColumn,
	anonymizer service.ValueAnonymizer,
) domain.RecordMapping {
	entries := make([]domain.MappingEntry, 0, len(targets))
	for _, target := range targets {
		original, ok := table.Get(row, target.name)
		if !ok {
			continue
		}
		anonymized := anonymizer.AnonymizeValue(target.name, target.class, original)
		table.Set(row, target.name, anonymized)
		entries = append(entries, domain.MappingEntry{
			Column:     target.name,
			Original:   original,
			Anonymized: anonymized,
		})
	}
	return domain.RecordMapping{Entries: entries}
}
