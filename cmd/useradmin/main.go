// Command useradmin creates login accounts in the primary store. There is
// no registration endpoint on the server; users are provisioned with this
// tool instead.
//
// Usage:
//
//	useradmin -d <database DSN> -u <username>
//
// The password is read from the terminal without echo.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/term"

	"github.com/msavelyev/notedesk/internal/server/models"
	"github.com/msavelyev/notedesk/internal/server/repositories/users"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

func main() {
	dsn := flag.String("d", "", "database DSN")
	username := flag.String("u", "", "username to create")
	flag.Parse()

	if *dsn == "" || *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(context.Background(), *dsn, *username); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, dsn, username string) error {
	password, err := getPassword()
	if err != nil {
		return fmt.Errorf("password read error: %w", err)
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("db open error: %w", err)
	}
	defer db.Close()

	repo := users.NewPostgresRepository(db)

	user, err := repo.Create(ctx, &models.User{UserName: username, Password: password})
	if err != nil {
		return fmt.Errorf("user create error: %w", err)
	}

	fmt.Printf("created user %s id=%s\n", user.UserName, user.ID)
	return nil
}

// getPassword reads the password from the terminal without echo.
func getPassword() (string, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
