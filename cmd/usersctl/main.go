// Command usersctl runs user API operations from the command line.
//
// Usage:
//
//	usersctl [flags] <command> [args]
//
// Commands: list, paged, get ID, active, search USERNAME, domain DOMAIN,
// recent, count, create, update ID, delete ID, advanced [key=value ...].
// update, delete and advanced need -backend mybatis.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/usermgmt/usermgmt/internal/config"
	"github.com/usermgmt/usermgmt/internal/userapi"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	baseURL string
	backend string
	timeout time.Duration
	format  string
	file    string
	verbose bool

	page   int
	size   int
	sortBy string

	username string
	email    string
	fullName string
	active   string
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Environment and .env provide the defaults; flags win.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "load config:", err)
		return exitUsage
	}

	var opts options
	fs := flag.NewFlagSet("usersctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.baseURL, "base-url", cfg.APIBaseURL, "User API base URL")
	fs.StringVar(&opts.backend, "backend", cfg.Backend, "Backend: jpa or mybatis")
	fs.DurationVar(&opts.timeout, "timeout", cfg.APITimeout, "Request timeout")
	fs.StringVar(&opts.format, "format", "plain", "Output format: plain or json")
	fs.StringVar(&opts.file, "f", "", "JSON or YAML file with the user payload or search criteria")
	fs.BoolVar(&opts.verbose, "v", false, "Log every API call to stderr")
	fs.IntVar(&opts.page, "page", userapi.DefaultPage, "Page number for paged")
	fs.IntVar(&opts.size, "size", userapi.DefaultSize, "Page size for paged")
	fs.StringVar(&opts.sortBy, "sort", userapi.DefaultSortBy, "Sort field for paged")
	fs.StringVar(&opts.username, "username", "", "Username for create and update")
	fs.StringVar(&opts.email, "email", "", "Email for create and update")
	fs.StringVar(&opts.fullName, "full-name", "", "Full name for create and update")
	fs.StringVar(&opts.active, "active", "", "Active flag for create and update: true or false")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: usersctl [flags] <command> [args]")
		fmt.Fprintln(stderr, "commands: list paged get active search domain recent count create update delete advanced")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}
	if opts.format != "plain" && opts.format != "json" {
		fmt.Fprintf(stderr, "invalid -format %q: want plain or json\n", opts.format)
		return exitUsage
	}

	backend, ok := userapi.BackendByName(opts.backend)
	if !ok {
		fmt.Fprintf(stderr, "invalid -backend %q: want jpa or mybatis\n", opts.backend)
		return exitUsage
	}

	var observer userapi.Observer = userapi.NopObserver{}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if opts.verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		observer = userapi.NewLogObserver(logger)
	}

	client, err := userapi.New(userapi.Config{
		BaseURL:  opts.baseURL,
		Timeout:  opts.timeout,
		Observer: observer,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	result, err := dispatch(ctx, client.Users(backend), fs.Arg(0), fs.Args()[1:], opts)
	if err != nil {
		var usage usageError
		if errors.As(err, &usage) {
			fmt.Fprintln(stderr, err)
			return exitUsage
		}
		fmt.Fprintln(stderr, "error:", err)
		return exitError
	}

	if err := printResult(stdout, opts.format, result); err != nil {
		fmt.Fprintln(stderr, "write output:", err)
		return exitError
	}
	return exitOK
}

// usageError marks a mistake in the command line rather than a failed call.
type usageError struct{ msg string }

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func dispatch(ctx context.Context, users *userapi.Users, cmd string, args []string, opts options) (any, error) {
	switch cmd {
	case "list":
		return users.ListAll(ctx)
	case "paged":
		return users.ListPaged(ctx, userapi.PageRequest{Page: opts.page, Size: opts.size, SortBy: opts.sortBy})
	case "get":
		id, err := idArg(cmd, args)
		if err != nil {
			return nil, err
		}
		return users.Get(ctx, id)
	case "active":
		return users.ListActive(ctx)
	case "search":
		term, err := stringArg(cmd, "USERNAME", args)
		if err != nil {
			return nil, err
		}
		return users.SearchByUsername(ctx, term)
	case "domain":
		domain, err := stringArg(cmd, "DOMAIN", args)
		if err != nil {
			return nil, err
		}
		return users.ListByDomain(ctx, domain)
	case "recent":
		return users.ListRecent(ctx)
	case "count":
		return users.CountActive(ctx)
	case "create":
		user, err := userPayload(opts)
		if err != nil {
			return nil, err
		}
		return users.Create(ctx, user)
	case "update":
		id, err := idArg(cmd, args)
		if err != nil {
			return nil, err
		}
		user, err := userPayload(opts)
		if err != nil {
			return nil, err
		}
		return users.Update(ctx, id, user)
	case "delete":
		id, err := idArg(cmd, args)
		if err != nil {
			return nil, err
		}
		return users.Delete(ctx, id)
	case "advanced":
		criteria, err := searchCriteria(opts.file, args)
		if err != nil {
			return nil, err
		}
		return users.AdvancedSearch(ctx, criteria)
	default:
		return nil, usagef("unknown command %q", cmd)
	}
}

func idArg(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usagef("usage: usersctl %s ID", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, usagef("invalid ID %q", args[0])
	}
	return id, nil
}

func stringArg(cmd, name string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", usagef("usage: usersctl %s %s", cmd, name)
	}
	return args[0], nil
}
