// Command forumctl is the operator tool for the forum store. It creates
// users and issues access tokens, which the HTTP API does not expose.
//
// Usage:
//
//	forumctl [-config config.yaml] user add -username u -password p -fullname "Full Name"
//	forumctl [-config config.yaml] token -username u -password p
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sakif/forum-api/internal/auth"
	"github.com/sakif/forum-api/internal/config"
	"github.com/sakif/forum-api/internal/logger"
	"github.com/sakif/forum-api/internal/server"
	"github.com/sakif/forum-api/internal/service"
)

var errUsage = errors.New("usage: forumctl [-config path] (user add -username u -password p -fullname f | token -username u -password p)")

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "forumctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	global := flag.NewFlagSet("forumctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "config.yaml", "path to the YAML config file (optional)")
	if err := global.Parse(args); err != nil {
		return err
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(stderr, cfg.Log.Level, cfg.Log.Format)
	users, closeStore, err := newUserService(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	switch {
	case rest[0] == "user" && len(rest) > 1 && rest[1] == "add":
		return userAdd(ctx, users, rest[2:], stdout, stderr)
	case rest[0] == "token":
		return token(ctx, users, rest[1:], stdout, stderr)
	default:
		return errUsage
	}
}

func newUserService(cfg *config.Config, log *slog.Logger) (*service.UserService, func(), error) {
	store, err := server.OpenStore(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.AccessTokenKey, cfg.Auth.AccessTokenAge)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	users := service.NewUserService(store, tokens, auth.NewPasswordService(), log)
	return users, func() { store.Close() }, nil
}

func userAdd(ctx context.Context, users *service.UserService, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("user add", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "username ([A-Za-z0-9_], at most 50 characters)")
	password := fs.String("password", "", "password")
	fullname := fs.String("fullname", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := users.Register(ctx, *username, *password, *fullname)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, user.ID)
	return nil
}

func token(ctx context.Context, users *service.UserService, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	tok, err := users.IssueToken(ctx, *username, *password)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, tok)
	return nil
}
