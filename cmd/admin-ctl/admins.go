package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nftheater/admin-api/internal/data"
	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/domain/model"
)

type createAdminOptions struct {
	Timeout    time.Duration
	UID        string
	Email      string
	Name       string
	Account    string
	Role       string
	Privileges []string
}

type listAdminsOptions struct {
	Timeout      time.Duration
	Limit        int
	Offset       int
	Role         string
	OnlyActive   bool
	OnlyInactive bool
}

type deactivateAdminOptions struct {
	Timeout time.Duration
	UID     string
	Yes     bool
}

func runCreateAdmin(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateAdminFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewAdminRepo(db)

		created, createErr := repo.Create(ctx, &model.CreateAdminUserRequest{
			UID:        opts.UID,
			Email:      opts.Email,
			AdminName:  opts.Name,
			Account:    opts.Account,
			Role:       opts.Role,
			Privileges: opts.Privileges,
		})
		if createErr != nil {
			if errors.Is(createErr, data.ErrAdminUserExists) {
				return fmt.Errorf("administrator with uid %q or email %q already exists", opts.UID, opts.Email)
			}
			return fmt.Errorf("create administrator: %w", createErr)
		}

		cmdCtx.Logger.Info("administrator created",
			"id", created.ID, "uid", created.UID, "email", created.Email, "role", created.Role)
		return nil
	})
}

func runListAdmins(cmdCtx *commandContext, args []string) error {
	opts, err := parseListAdminsFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewAdminRepo(db)

		listOpts := model.AdminUsersListOptions{
			Limit:  opts.Limit,
			Offset: opts.Offset,
		}
		if opts.Role != "" {
			role := opts.Role
			listOpts.Role = &role
		}
		switch {
		case opts.OnlyActive:
			active := true
			listOpts.IsActive = &active
		case opts.OnlyInactive:
			inactive := false
			listOpts.IsActive = &inactive
		}

		admins, listErr := repo.ListWithOptions(ctx, listOpts)
		if listErr != nil {
			return fmt.Errorf("list administrators: %w", listErr)
		}

		return printAdminTable(os.Stdout, admins)
	})
}

func runDeactivateAdmin(cmdCtx *commandContext, args []string) error {
	opts, err := parseDeactivateAdminFlags(args)
	if err != nil {
		return err
	}

	confirm := adminDeactivateConfirmOptions{yes: opts.Yes, uid: opts.UID}
	if confirmErr := confirmAction(confirm, "deactivate administrator"); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		repo := data.NewAdminRepo(db)

		deactivated, deactivateErr := repo.Deactivate(ctx, opts.UID)
		if deactivateErr != nil {
			return fmt.Errorf("deactivate administrator: %w", deactivateErr)
		}
		if !deactivated {
			return fmt.Errorf("no active administrator found with uid %q", opts.UID)
		}

		cmdCtx.Logger.Info("administrator deactivated", "uid", opts.UID)
		return nil
	})
}

func printAdminTable(w *os.File, admins []*model.AdminUser) error {
	if len(admins) == 0 {
		return writeln(w, "No administrators found.")
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if err := writeln(tw, "UID\tEMAIL\tNAME\tROLE\tPRIVILEGES\tACTIVE\tCREATED"); err != nil {
		return fmt.Errorf("write admin table header: %w", err)
	}
	for _, admin := range admins {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\t%t\t%s\n",
			admin.UID,
			admin.Email,
			admin.AdminName,
			admin.Role,
			strings.Join(admin.Privileges, ","),
			admin.IsActive,
			admin.CreatedAt.Format(time.RFC3339),
		); err != nil {
			return fmt.Errorf("write admin table row: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush admin table: %w", err)
	}
	return writef(w, "\n%d administrator(s)\n", len(admins))
}

func parseCreateAdminFlags(args []string) (createAdminOptions, error) {
	fs := flag.NewFlagSet("create-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := createAdminOptions{Timeout: defaultCommandTimeout}
	var privileges string
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command to complete")
	fs.StringVar(&opts.UID, "uid", "", "Identity provider uid for the administrator (required)")
	fs.StringVar(&opts.Email, "email", "", "Email address (required)")
	fs.StringVar(&opts.Name, "name", "", "Display name (required)")
	fs.StringVar(&opts.Account, "account", "", "Account label shown in the dashboard")
	fs.StringVar(&opts.Role, "role", "", "Role, e.g. SUPER_ADMIN or NETFLIX_AUTHOR (required)")
	fs.StringVar(&privileges, "privileges", "", "Comma-separated privileges (ALL, NETFLIX, YOUTUBE)")

	if err := fs.Parse(args); err != nil {
		return createAdminOptions{}, err
	}

	opts.UID = strings.TrimSpace(opts.UID)
	opts.Email = strings.TrimSpace(opts.Email)
	opts.Name = strings.TrimSpace(opts.Name)
	opts.Role = strings.ToUpper(strings.TrimSpace(opts.Role))

	if opts.UID == "" {
		return createAdminOptions{}, errors.New("--uid is required")
	}
	if opts.Email == "" {
		return createAdminOptions{}, errors.New("--email is required")
	}
	if opts.Name == "" {
		return createAdminOptions{}, errors.New("--name is required")
	}
	if opts.Role == "" {
		return createAdminOptions{}, errors.New("--role is required")
	}
	if !domainauth.Role(opts.Role).IsKnown() {
		return createAdminOptions{}, fmt.Errorf("unknown role %q", opts.Role)
	}

	for _, p := range strings.Split(privileges, ",") {
		if trimmed := strings.ToUpper(strings.TrimSpace(p)); trimmed != "" {
			opts.Privileges = append(opts.Privileges, trimmed)
		}
	}

	return opts, nil
}

func parseListAdminsFlags(args []string) (listAdminsOptions, error) {
	fs := flag.NewFlagSet("list-admins", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := listAdminsOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command to complete")
	fs.IntVar(&opts.Limit, "limit", 50, "Maximum number of rows to return")
	fs.IntVar(&opts.Offset, "offset", 0, "Number of rows to skip")
	fs.StringVar(&opts.Role, "role", "", "Filter by role")
	fs.BoolVar(&opts.OnlyActive, "active", false, "Show only active administrators")
	fs.BoolVar(&opts.OnlyInactive, "inactive", false, "Show only deactivated administrators")

	if err := fs.Parse(args); err != nil {
		return listAdminsOptions{}, err
	}

	if opts.OnlyActive && opts.OnlyInactive {
		return listAdminsOptions{}, errors.New("--active and --inactive are mutually exclusive")
	}
	opts.Role = strings.ToUpper(strings.TrimSpace(opts.Role))
	if opts.Role != "" && !domainauth.Role(opts.Role).IsKnown() {
		return listAdminsOptions{}, fmt.Errorf("unknown role %q", opts.Role)
	}

	return opts, nil
}

func parseDeactivateAdminFlags(args []string) (deactivateAdminOptions, error) {
	fs := flag.NewFlagSet("deactivate-admin", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	opts := deactivateAdminOptions{Timeout: defaultCommandTimeout}
	fs.DurationVar(&opts.Timeout, "timeout", defaultCommandTimeout, "Maximum duration to wait for the command to complete")
	fs.StringVar(&opts.UID, "uid", "", "Administrator uid (required)")
	fs.BoolVar(&opts.Yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return deactivateAdminOptions{}, err
	}

	opts.UID = strings.TrimSpace(opts.UID)
	if opts.UID == "" {
		return deactivateAdminOptions{}, errors.New("--uid is required")
	}

	return opts, nil
}

type adminDeactivateConfirmOptions struct {
	yes bool
	uid string
}

func (a adminDeactivateConfirmOptions) IsDryRun() bool { return false }
func (a adminDeactivateConfirmOptions) IsYes() bool    { return a.yes }
func (a adminDeactivateConfirmOptions) GetWarning() string {
	return "WARNING: the administrator will no longer be able to sign in."
}
func (a adminDeactivateConfirmOptions) GetTarget() string {
	return fmt.Sprintf("administrator %q", a.uid)
}
