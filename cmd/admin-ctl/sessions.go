package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
)

// sessionKeyPrefix must match the session store's default key prefix
// used by the HTTP runtime.
const sessionKeyPrefix = "nftheater:session:"

type listSessionsOptions struct {
	Timeout time.Duration
	UserID  string
	Limit   int
}

type clearSessionsOptions struct {
	Timeout time.Duration
	UserID  string
	All     bool
	DryRun  bool
	Yes     bool
}

type sessionEntry struct {
	ID       string
	UserID   string
	Email    string
	Role     domainauth.Role
	Remember bool
	TTL      time.Duration
}

func runListSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseListSessionsFlags(args)
	if err != nil {
		return err
	}

	return withRedis(cmdCtx, opts.Timeout, func(ctx context.Context, client redis.UniversalClient) error {
		entries, total, scanErr := collectSessions(ctx, client, opts.UserID, opts.Limit)
		if scanErr != nil {
			return scanErr
		}
		return printSessionTable(entries, total)
	})
}

func runClearSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearSessionsFlags(args)
	if err != nil {
		return err
	}

	if confirmErr := confirmAction(sessionClearConfirmOptions{opts}, "revoke sessions"); confirmErr != nil {
		return confirmErr
	}

	return withRedis(cmdCtx, opts.Timeout, func(ctx context.Context, client redis.UniversalClient) error {
		entries, _, scanErr := collectSessions(ctx, client, opts.UserID, 0)
		if scanErr != nil {
			return scanErr
		}

		if opts.DryRun {
			if err := writef(os.Stdout, "Dry run: %d session(s) would be revoked.\n", len(entries)); err != nil {
				return fmt.Errorf("print dry-run summary: %w", err)
			}
			return nil
		}

		deleted := 0
		for _, entry := range entries {
			if delErr := client.Del(ctx, sessionKeyPrefix+entry.ID).Err(); delErr != nil {
				return fmt.Errorf("delete session %s: %w", entry.ID, delErr)
			}
			deleted++
		}

		cmdCtx.Logger.Info("sessions revoked", "count", deleted, "user_id", opts.UserID)
		return nil
	})
}

// collectSessions scans the session keyspace, decoding each entry. A zero
// limit means unbounded. Keys holding payloads that no longer unmarshal are
// listed with only their raw ID so operators can still revoke them.
func collectSessions(
	ctx context.Context,
	client redis.UniversalClient,
	userID string,
	limit int,
) ([]sessionEntry, int, error) {
	var entries []sessionEntry
	total := 0

	iter := client.Scan(ctx, 0, sessionKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		entry := sessionEntry{ID: strings.TrimPrefix(key, sessionKeyPrefix)}

		raw, err := client.Get(ctx, key).Result()
		if err == nil {
			var sess domainauth.Session
			if unmarshalErr := json.Unmarshal([]byte(raw), &sess); unmarshalErr == nil {
				entry.UserID = sess.UserID
				entry.Email = sess.Email
				entry.Role = sess.Role
				entry.Remember = sess.RememberMe
			}
		} else if !errors.Is(err, redis.Nil) {
			return nil, 0, fmt.Errorf("read session %s: %w", key, err)
		}

		if userID != "" && entry.UserID != userID {
			continue
		}

		if ttl, ttlErr := client.TTL(ctx, key).Result(); ttlErr == nil {
			entry.TTL = ttl
		}

		total++
		if limit <= 0 || len(entries) < limit {
			entries = append(entries, entry)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan sessions: %w", err)
	}

	return entries, total, nil
}

func printSessionTable(entries []sessionEntry, total int) error {
	if total == 0 {
		return writeln(os.Stdout, "No active sessions found.")
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "SESSION\tUSER\tEMAIL\tROLE\tREMEMBER\tTTL"); err != nil {
		return fmt.Errorf("write session table header: %w", err)
	}
	for _, entry := range entries {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%t\t%s\n",
			truncateID(entry.ID),
			entry.UserID,
			entry.Email,
			entry.Role,
			entry.Remember,
			entry.TTL.Round(time.Second),
		); err != nil {
			return fmt.Errorf("write session table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush session table: %w", err)
	}
	if total > len(entries) {
		return writef(os.Stdout, "\n%d session(s), showing %d\n", total, len(entries))
	}
	return writef(os.Stdout, "\n%d session(s)\n", total)
}

func truncateID(id string) string {
	const max = 12
	if len(id) <= max {
		return id
	}
	return id[:max] + "..."
}

func withRedis(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, redis.UniversalClient) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, client, err := connectInfraWithOptions(&connectInfraOptions{
		Logger:    cmdCtx.Logger,
		Config:    &cmdCtx.Config,
		WantRedis: true,
	})
	if err != nil {
		return err
	}
	if client == nil {
		return errors.New("redis is not configured")
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", cerr)
		}
	}()

	return f(ctx, client)
}

func parseListSessionsFlags(args []string) (listSessionsOptions, error) {
	fs := flag.NewFlagSet("list-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listSessionsOptions{Timeout: 2 * time.Minute}
	fs.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Maximum duration to wait for the scan to complete")
	fs.StringVar(&opts.UserID, "uid", "", "Show only sessions belonging to this user")
	fs.IntVar(&opts.Limit, "limit", 100, "Maximum number of sessions to display (0 for all)")

	if err := fs.Parse(args); err != nil {
		return listSessionsOptions{}, err
	}
	if opts.Timeout <= 0 {
		return listSessionsOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseClearSessionsFlags(args []string) (clearSessionsOptions, error) {
	fs := flag.NewFlagSet("clear-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := clearSessionsOptions{Timeout: 2 * time.Minute}
	fs.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Maximum duration to wait for the operation to complete")
	fs.StringVar(&opts.UserID, "uid", "", "Revoke only sessions belonging to this user")
	fs.BoolVar(&opts.All, "all", false, "Revoke every session")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Report what would be revoked without deleting anything")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return clearSessionsOptions{}, err
	}
	if opts.Timeout <= 0 {
		return clearSessionsOptions{}, errors.New("--timeout must be greater than zero")
	}
	if opts.UserID == "" && !opts.All {
		return clearSessionsOptions{}, errors.New("pass --uid to target a user, or --all to revoke every session")
	}
	if opts.UserID != "" && opts.All {
		return clearSessionsOptions{}, errors.New("--uid and --all are mutually exclusive")
	}
	return opts, nil
}

type sessionClearConfirmOptions struct {
	opts clearSessionsOptions
}

func (s sessionClearConfirmOptions) IsDryRun() bool { return s.opts.DryRun }
func (s sessionClearConfirmOptions) IsYes() bool    { return s.opts.Yes }
func (s sessionClearConfirmOptions) GetWarning() string {
	return "WARNING: this will sign out every user with an active session."
}
func (s sessionClearConfirmOptions) GetTarget() string {
	if s.opts.All {
		return ""
	}
	return fmt.Sprintf("user %q", s.opts.UserID)
}
