// Command migration applies the document-ledger schema with golang-migrate.
// It reads DB_URL and walks the SQL files under ./migrations (override with
// MIGRATIONS_DIR).
package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			usage()
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

var errUsage = errors.New("usage")

func run(args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dbURL = applyPreparedBinaryOverride(dbURL)

	dir, err := migrationsDir()
	if err != nil {
		return err
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("close migration source: %v", srcErr)
		}
		if dbErr != nil {
			log.Printf("close migration db: %v", dbErr)
		}
	}()

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "up":
		return reportNoChange(m.Up(), "schema is up to date")
	case "down":
		steps := 1
		if len(args) > 1 {
			steps, err = strconv.Atoi(strings.TrimSpace(args[1]))
			if err != nil || steps <= 0 {
				return fmt.Errorf("down steps must be a positive integer, got %q", args[1])
			}
		}
		return reportNoChange(m.Steps(-steps), "nothing to roll back")
	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
		return nil
	case "force":
		target, err := targetVersion(args[1:])
		if err != nil {
			return err
		}
		if err := m.Force(int(target)); err != nil {
			return fmt.Errorf("force version %d: %w", target, err)
		}
		log.Printf("forced version to %d", target)
		return nil
	case "goto", "migrate":
		target, err := targetVersion(args[1:])
		if err != nil {
			return err
		}
		return reportNoChange(m.Migrate(uint(target)), "already at target version")
	default:
		return errUsage
	}
}

func reportNoChange(err error, msg string) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Print(msg)
		return nil
	}
	return err
}

func targetVersion(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	target, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return target, nil
}

func migrationsDir() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")),
		"./migrations",
		"/app/migrations",
	}
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./migrations, /app/migrations)")
}

// applyPreparedBinaryOverride mirrors the API server's DB_DISABLE_PREPARED_BINARY_RESULT
// handling so both binaries agree on connection parameters.
func applyPreparedBinaryOverride(raw string) string {
	switch strings.TrimSpace(strings.ToLower(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT"))) {
	case "1", "true", "t", "yes", "y", "on":
	default:
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil {
		return raw
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", prog)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", prog)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", prog)
	fmt.Fprintf(os.Stderr, "  %s version\n", prog)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", prog)
	fmt.Fprintf(os.Stderr, "  %s goto 1\n", prog)
}
