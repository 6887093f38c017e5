package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	anonymizationDomain "github.com/allisson/anonymizer/internal/anonymization/domain"
	anonymizationUseCase "github.com/allisson/anonymizer/internal/anonymization/usecase"
	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	"github.com/allisson/anonymizer/internal/records"
)

// ErrOverwriteInput is returned when the output path is the input path and
// in-place operation was not allowed.
var ErrOverwriteInput = errors.New("output would overwrite input, pass --in-place-ok to allow it")

// AnonymizeFiles describes the files of one anonymize run.
type AnonymizeFiles struct {
	InputPath   string
	OutputPath  string
	MappingPath string
	// Format overrides the encoding inferred from the file extensions.
	Format string
	// InPlaceOK allows overwriting the input and anonymizing the loaded table in place.
	InPlaceOK bool
}

// RunAnonymize reads a record file, anonymizes opts.Columns and writes the result.
// When files.MappingPath is set the per-record mappings are written there as JSON.
func RunAnonymize(
	ctx context.Context,
	useCase anonymizationUseCase.AnonymizationUseCase,
	secret keysDomain.Secret,
	logger *slog.Logger,
	writer io.Writer,
	files AnonymizeFiles,
	opts anonymizationDomain.Options,
) error {
	if files.InputPath == "" || files.OutputPath == "" {
		return errors.New("--input and --output are required")
	}
	if samePath(files.InputPath, files.OutputPath) && !files.InPlaceOK {
		return ErrOverwriteInput
	}

	inputFormat, outputFormat, err := resolveFormats(files)
	if err != nil {
		return err
	}

	table, err := readTable(files.InputPath, inputFormat, logger)
	if err != nil {
		return err
	}

	logger.Info("anonymizing records",
		slog.String("input", files.InputPath),
		slog.Int("records", table.Len()),
		slog.Any("columns", opts.Columns),
		slog.String("mode", string(opts.Mode)),
	)

	opts.InPlace = files.InPlaceOK
	result, err := useCase.Anonymize(ctx, table, secret, opts)
	if err != nil {
		return fmt.Errorf("failed to anonymize records: %w", err)
	}

	if err := writeTable(files.OutputPath, outputFormat, result.Table, logger); err != nil {
		return err
	}

	if files.MappingPath != "" {
		if err := writeMappings(files.MappingPath, result.Mappings, logger); err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintf(writer, "Anonymized %d record(s)\n", result.Table.Len())
	_, _ = fmt.Fprintf(writer, "Output: %s\n", files.OutputPath)
	if files.MappingPath != "" {
		_, _ = fmt.Fprintf(writer, "Mappings: %s\n", files.MappingPath)
	}

	logger.Info("anonymization completed",
		slog.String("output", files.OutputPath),
		slog.Int("records", result.Table.Len()),
	)
	return nil
}

// resolveFormats returns the input and output encodings. An explicit format applies
// to both files; otherwise each is inferred from its extension, and an output path
// without a known extension reuses the input format.
func resolveFormats(files AnonymizeFiles) (records.Format, records.Format, error) {
	if files.Format != "" {
		format, err := records.ParseFormat(files.Format)
		if err != nil {
			return "", "", err
		}
		return format, format, nil
	}

	inputFormat, err := records.FormatFromPath(files.InputPath)
	if err != nil {
		return "", "", err
	}
	outputFormat, err := records.FormatFromPath(files.OutputPath)
	if err != nil {
		outputFormat = inputFormat
	}
	return inputFormat, outputFormat, nil
}

func readTable(path string, format records.Format, logger *slog.Logger) (*records.MemoryTable, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer closeFile(f, logger)

	table, err := records.Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return table, nil
}

func writeTable(path string, format records.Format, table records.Table, logger *slog.Logger) error {
	f, err := os.Create(path) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer closeFile(f, logger)

	if err := records.Write(f, format, table); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeMappings(path string, mappings []anonymizationDomain.RecordMapping, logger *slog.Logger) error {
	data, err := json.MarshalIndent(mappings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mappings: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // path comes from the operator
	if err != nil {
		return fmt.Errorf("failed to create mapping file: %w", err)
	}
	defer closeFile(f, logger)

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
