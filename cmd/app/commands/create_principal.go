package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	identityDomain "github.com/allisson/courier/internal/identity/domain"
	identityUseCase "github.com/allisson/courier/internal/identity/usecase"

	"github.com/allisson/courier/internal/app"
	"github.com/allisson/courier/internal/config"
)

// RunCreatePrincipalCommand loads configuration, assembles dependencies, and
// registers a new principal.
//
// Requirements: Database must be migrated and accessible.
func RunCreatePrincipalCommand(ctx context.Context, email, password, teamName, format string) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	logger := container.Logger()
	defer closeContainer(container, logger)

	principalUseCase, err := container.PrincipalUseCase()
	if err != nil {
		return fmt.Errorf("failed to initialize principal use case: %w", err)
	}

	return RunCreatePrincipal(ctx, principalUseCase, logger, email, password, teamName, format, DefaultIO())
}

// RunCreatePrincipal registers a new principal with a freshly generated
// keypair. Prompts for the password when none is provided. Outputs the
// principal ID and email in either text or JSON format.
func RunCreatePrincipal(
	ctx context.Context,
	principalUseCase identityUseCase.UseCase,
	logger *slog.Logger,
	email string,
	password string,
	teamName string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating new principal", slog.String("email", email))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to get password: %w", err)
		}
	}

	principal, err := principalUseCase.Register(ctx, identityUseCase.RegisterInput{
		Email:    email,
		Password: password,
		TeamName: teamName,
	})
	if err != nil {
		return fmt.Errorf("failed to create principal: %w", err)
	}

	if format == "json" {
		outputJSON(principal, io.Writer)
	} else {
		outputText(principal, io.Writer)
	}

	logger.Info("principal created successfully",
		slog.String("principal_id", principal.ID.String()),
		slog.String("email", principal.Email),
		slog.String("team_name", principal.TeamName),
	)

	return nil
}

// promptForPassword interactively prompts the user for a password.
func promptForPassword(io IOTuple) (string, error) {
	reader := bufio.NewReader(io.Reader)

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	password = strings.TrimSpace(password)
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	return password, nil
}

// outputText outputs the result in human-readable text format.
func outputText(principal *identityDomain.Principal, writer io.Writer) {
	_, _ = fmt.Fprintln(writer, "\nPrincipal created successfully!")
	_, _ = fmt.Fprintf(writer, "Principal ID: %s\n", principal.ID.String())
	_, _ = fmt.Fprintf(writer, "Email: %s\n", principal.Email)
	if principal.TeamName != "" {
		_, _ = fmt.Fprintf(writer, "Team: %s\n", principal.TeamName)
	}
}

// outputJSON outputs the result in JSON format for machine consumption.
func outputJSON(principal *identityDomain.Principal, writer io.Writer) {
	result := map[string]string{
		"principal_id": principal.ID.String(),
		"email":        principal.Email,
		"team_name":    principal.TeamName,
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
