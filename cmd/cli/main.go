package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/juho05/log"

	"github.com/dylanat/site/config"
	"github.com/dylanat/site/repos/connect"
	"github.com/dylanat/site/services"
)

const usage = `USAGE site-cli <command>
COMMANDS
		- sessions           list active admin sessions
		- revoke-sessions    sign out everywhere
		- purge-expired      delete expired sessions from the store
`

func run(args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}
	if config.SessionStore() == config.SessionStoreMemory {
		return fmt.Errorf("the in-memory session store cannot be inspected from another process")
	}

	db, err := connect.FromConfig()
	if err != nil {
		return fmt.Errorf("connect to session store: %w", err)
	}
	defer db.Close()

	repo := db.NewSessionRepository()
	sessionManager := services.NewSessionManager(repo, config.CookieSecure())
	ctx := context.Background()

	switch args[0] {
	case "sessions":
		sessions, err := services.ListSessions(ctx, sessionManager)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No active sessions.")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%s\texpires %s\n", s.Principal, s.Expires.UTC().Format(time.RFC3339))
		}
	case "revoke-sessions":
		n, err := services.RevokeSessions(ctx, sessionManager)
		if err != nil {
			return err
		}
		fmt.Printf("Revoked %d sessions.\n", n)
	case "purge-expired":
		n, err := repo.DeleteExpired(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d expired sessions.\n", n)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return nil
}

func main() {
	godotenv.Load()

	log.SetSeverity(config.LogLevel())
	log.SetOutput(config.LogFile())

	err := run(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}
