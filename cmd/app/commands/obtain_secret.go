package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	keysDomain "github.com/allisson/anonymizer/internal/keys/domain"
	keysUseCase "github.com/allisson/anonymizer/internal/keys/usecase"
)

// RunObtainSecret obtains the anonymization secret for mode and dataDir, creating the
// key file on first use. It prints the key file and the secret fingerprint, and the
// secret hex only when show is set.
func RunObtainSecret(
	ctx context.Context,
	provider keysUseCase.KeyProvider,
	logger *slog.Logger,
	writer io.Writer,
	mode string,
	dataDir string,
	show bool,
) error {
	keyMode, err := keysDomain.ParseMode(mode)
	if err != nil {
		return err
	}

	logger.Info("obtaining secret", slog.String("mode", mode), slog.String("data_dir", dataDir))

	secret, err := provider.ObtainSecret(ctx, mode, dataDir)
	if err != nil {
		return fmt.Errorf("failed to obtain secret: %w", err)
	}

	keyFile := keysDomain.LocalKeyFile
	if keyMode == keysDomain.ModeRemote {
		keyFile = keysDomain.RemoteKeyFile
	}

	_, _ = fmt.Fprintf(writer, "Mode: %s\n", keyMode)
	_, _ = fmt.Fprintf(writer, "Key file: %s\n", filepath.Join(dataDir, keyFile))
	_, _ = fmt.Fprintf(writer, "Fingerprint: %s\n", secret.Fingerprint())
	if show {
		_, _ = fmt.Fprintf(writer, "Secret: %s\n", secret.Hex())
	}

	logger.Info("secret obtained", slog.String("fingerprint", secret.Fingerprint()))
	return nil
}
