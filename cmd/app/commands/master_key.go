package commands

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/domain"
	cryptoService "github.com/Synnly/gestion-projet-m2-sub003/internal/crypto/service"
)

// RunCreateMasterKey generates a 32-byte master key and prints it as MASTER_KEY.
//
// When kmsKeyURI is set the key is encrypted with that KMS key first and the
// ciphertext is printed instead, alongside KMS_KEY_URI. The plaintext key is
// zeroed before returning.
func RunCreateMasterKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
) error {
	masterKey, err := cryptoDomain.GenerateMasterKey()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(masterKey)

	if kmsKeyURI == "" {
		logger.Warn("master key printed in plaintext, prefer --kms-key-uri outside development")
		_, _ = fmt.Fprintln(writer, "# Master key for envelope encryption. Send SIGHUP to a running server after changing it.")
		_, _ = fmt.Fprintf(writer, "MASTER_KEY=%q\n", cryptoDomain.EncodeMasterKey(masterKey))
		return nil
	}

	keeper, err := kmsService.OpenKeeper(ctx, kmsKeyURI)
	if err != nil {
		return fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, masterKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt master key with KMS: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "# KMS-wrapped master key for envelope encryption. Send SIGHUP to a running server after changing it.")
	_, _ = fmt.Fprintf(writer, "KMS_KEY_URI=%q\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "MASTER_KEY=%q\n", base64.StdEncoding.EncodeToString(ciphertext))
	return nil
}
