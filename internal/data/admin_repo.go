package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/nftheater/admin-api/internal/data/database"
	"github.com/nftheater/admin-api/internal/data/pgxutil"
	"github.com/nftheater/admin-api/internal/domain/model"
	apperrors "github.com/nftheater/admin-api/internal/errors"
)

var (
	// ErrAdminUserNotFound is returned when an administrator is not found.
	ErrAdminUserNotFound = errors.New("admin user not found")
	// ErrAdminUserExists is returned when creating an administrator with a duplicate uid or email.
	ErrAdminUserExists = errors.New("admin user already exists")
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)

// AdminRepo provides database operations for administrator accounts.
type AdminRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAdminRepo creates a new AdminRepo with real time provider.
func NewAdminRepo(db *sql.DB) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAdminRepoWithTimeProvider creates a new AdminRepo with a custom time provider (useful for tests).
func NewAdminRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AdminRepo {
	return &AdminRepo{DB: db, timeProvider: tp}
}

// Create inserts a new administrator.
func (r *AdminRepo) Create(ctx context.Context, req *model.CreateAdminUserRequest) (*model.AdminUser, error) {
	if req == nil {
		return nil, errors.New("create admin user request is required")
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	privileges := req.Privileges
	if privileges == nil {
		privileges = []string{}
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO admin_users (
				uid, email, admin_name, account, role, privileges, is_active, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, TRUE, $7
			) RETURNING id, uid, email, admin_name, account, role, privileges, is_active, created_at, updated_at
		`,
			strings.TrimSpace(req.UID),
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.AdminName),
			strings.TrimSpace(req.Account),
			strings.ToUpper(strings.TrimSpace(req.Role)),
			privileges,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByUID retrieves an administrator by identity provider UID.
func (r *AdminRepo) GetByUID(ctx context.Context, uid string) (*model.AdminUser, error) {
	return r.getByQuery(ctx, adminGetByUIDQuery, "failed to get admin user by uid", uid)
}

// GetByEmail retrieves an administrator by email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	return r.getByQuery(
		ctx,
		adminGetByEmailQuery,
		"failed to get admin user by email",
		strings.ToLower(strings.TrimSpace(email)),
	)
}

// List retrieves administrators with pagination.
func (r *AdminRepo) List(ctx context.Context, limit, offset int) ([]*model.AdminUser, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, adminListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list admin users: %w", err)
	}

	res := make([]*model.AdminUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// ListWithOptions retrieves administrators with optional filters and sorting.
func (r *AdminRepo) ListWithOptions(
	ctx context.Context,
	opts model.AdminUsersListOptions,
) ([]*model.AdminUser, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := r.buildAdminQueryOptions(opts, limit, offset)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.AdminUser
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list admin users with options: %w", err)
	}
	res := make([]*model.AdminUser, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an administrator.
func (r *AdminRepo) Update(
	ctx context.Context,
	uid string,
	req model.UpdateAdminUserRequest,
) (*model.AdminUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.AdminUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, adminGetByUIDQuery, uid)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
			return e
		}
		args = append(args, uid)
		query := "UPDATE admin_users SET " + setClause + " WHERE uid = $" + strconv.Itoa(
			len(args),
		) + " RETURNING id, uid, email, admin_name, account, role, privileges, is_active, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// Deactivate marks an administrator inactive without deleting the row.
// Deactivated administrators fail profile lookup and cannot sign in.
func (r *AdminRepo) Deactivate(ctx context.Context, uid string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx,
			`UPDATE admin_users SET is_active = FALSE, updated_at = $1 WHERE uid = $2 AND is_active`,
			r.timeProvider.Now().UTC(), uid)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to deactivate admin user: %w", err)
	}
	return rows > 0, nil
}

// Delete removes an administrator row by UID.
func (r *AdminRepo) Delete(ctx context.Context, uid string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM admin_users WHERE uid = $1`, uid)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete admin user: %w", err)
	}
	return rows > 0, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an administrator.
func (r *AdminRepo) buildUpdateClause(req model.UpdateAdminUserRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 7)
	nextIdx := func() int { return len(args) + 1 }

	if req.AdminName != nil {
		setParts = append(setParts, fmt.Sprintf("admin_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.AdminName))
	}
	if req.Account != nil {
		setParts = append(setParts, fmt.Sprintf("account = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Account))
	}
	if req.Role != nil {
		setParts = append(setParts, fmt.Sprintf("role = $%d", nextIdx()))
		args = append(args, strings.ToUpper(strings.TrimSpace(*req.Role)))
	}
	if req.Privileges != nil {
		setParts = append(setParts, fmt.Sprintf("privileges = $%d", nextIdx()))
		args = append(args, *req.Privileges)
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", nextIdx()))
		args = append(args, *req.IsActive)
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	adminGetByUIDQuery = `
		SELECT id, uid, email, admin_name, account, role, privileges, is_active, created_at, updated_at
		FROM admin_users
		WHERE uid = $1`

	adminGetByEmailQuery = `
		SELECT id, uid, email, admin_name, account, role, privileges, is_active, created_at, updated_at
		FROM admin_users
		WHERE email = $1`

	adminListQuery = `
		SELECT id, uid, email, admin_name, account, role, privileges, is_active, created_at, updated_at
		FROM admin_users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// adminColumns returns the standard column list for admin user queries.
func adminColumns() []string {
	return []string{
		"id",
		"uid",
		"email",
		"admin_name",
		"account",
		"role",
		"privileges",
		"is_active",
		"created_at",
		"updated_at",
	}
}

// buildAdminQueryOptions builds query options for administrator listing with filters and sorting.
func (r *AdminRepo) buildAdminQueryOptions(
	opts model.AdminUsersListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(adminColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("admin_name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Role != nil && strings.TrimSpace(*opts.Role) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("role", database.Equal, strings.ToUpper(strings.TrimSpace(*opts.Role))),
		))
	}
	if opts.IsActive != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("is_active", database.Equal, *opts.IsActive),
		))
	}

	sortCol, sortDir := validateAdminSortOptions(opts.Sort, opts.Dir)
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("admin_users", queryOpts...)
}

// validateAdminSortOptions validates and returns safe sort column and direction.
func validateAdminSortOptions(sort, dir string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		allowedSorts := map[string]string{
			"admin_name": "admin_name",
			"email":      "email",
			"created_at": "created_at",
		}
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}

// getByQuery executes a query and returns a single administrator.
func (r *AdminRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.AdminUser, error) {
	var user model.AdminUser
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AdminUser])
		return err
	})
	if err != nil {
		if apperrors.IsNotFound(apperrors.MapDBError(err)) {
			return nil, ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

// mapWriteErr translates classified database errors into the repository
// sentinels the service layer matches on.
func (r *AdminRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	mapped := apperrors.MapDBError(err)
	if apperrors.IsConflict(mapped) {
		return ErrAdminUserExists
	}
	if includeNotFound && apperrors.IsNotFound(mapped) {
		return ErrAdminUserNotFound
	}
	return err
}
