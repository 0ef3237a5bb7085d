package db

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the query layer over the board database. All methods map
// one-to-one onto single SQL statements; callers translate pgx.ErrNoRows
// into their own sentinel errors.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a store backed by the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type BoardRole string

const (
	BoardRoleOwner  BoardRole = "owner"
	BoardRoleEditor BoardRole = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Board struct {
	ID        string
	Name      string
	OwnerID   string
	Width     int
	Height    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoardMember struct {
	BoardID     string
	UserID      string
	Role        BoardRole
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	BoardID   string
	Version   int32
	Document  json.RawMessage
	CreatedAt time.Time
}

// --- Users ---

type CreateUserParams struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
}

func (s *Store) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		arg.ID, arg.Email, arg.Password, arg.DisplayName)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)

	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

// --- Boards ---

type CreateBoardParams struct {
	ID      string
	Name    string
	OwnerID string
	Width   int
	Height  int
}

func (s *Store) CreateBoard(ctx context.Context, arg CreateBoardParams) (Board, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO boards (id, name, owner_id, width, height)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, owner_id, width, height, created_at, updated_at`,
		arg.ID, arg.Name, arg.OwnerID, arg.Width, arg.Height)

	return scanBoard(row)
}

func (s *Store) GetBoard(ctx context.Context, id string) (Board, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, width, height, created_at, updated_at
		FROM boards WHERE id = $1`, id)

	return scanBoard(row)
}

func (s *Store) ListBoardsForUser(ctx context.Context, userID string) ([]Board, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.name, b.owner_id, b.width, b.height, b.created_at, b.updated_at
		FROM boards b
		JOIN board_members m ON m.board_id = b.id
		WHERE m.user_id = $1
		ORDER BY b.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	return err
}

func (s *Store) TouchBoard(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE boards SET updated_at = now() WHERE id = $1`, id)
	return err
}

// --- Members ---

type AddBoardMemberParams struct {
	BoardID string
	UserID  string
	Role    BoardRole
}

func (s *Store) AddBoardMember(ctx context.Context, arg AddBoardMemberParams) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO board_members (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING`,
		arg.BoardID, arg.UserID, arg.Role)
	return err
}

type GetBoardMemberParams struct {
	BoardID string
	UserID  string
}

func (s *Store) GetBoardMember(ctx context.Context, arg GetBoardMemberParams) (BoardMember, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT m.board_id, m.user_id, m.role, u.display_name, u.email
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1 AND m.user_id = $2`,
		arg.BoardID, arg.UserID)

	var m BoardMember
	err := row.Scan(&m.BoardID, &m.UserID, &m.Role, &m.DisplayName, &m.Email)
	return m, err
}

func (s *Store) ListBoardMembers(ctx context.Context, boardID string) ([]BoardMember, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.board_id, m.user_id, m.role, u.display_name, u.email
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1
		ORDER BY u.display_name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []BoardMember
	for rows.Next() {
		var m BoardMember
		if err := rows.Scan(&m.BoardID, &m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

type RemoveBoardMemberParams struct {
	BoardID string
	UserID  string
}

func (s *Store) RemoveBoardMember(ctx context.Context, arg RemoveBoardMemberParams) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`,
		arg.BoardID, arg.UserID)
	return err
}

// --- Snapshots ---

type CreateSnapshotParams struct {
	ID       string
	BoardID  string
	Version  int32
	Document json.RawMessage
}

func (s *Store) CreateSnapshot(ctx context.Context, arg CreateSnapshotParams) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO snapshots (id, board_id, version, document)
		VALUES ($1, $2, $3, $4)
		RETURNING id, board_id, version, document, created_at`,
		arg.ID, arg.BoardID, arg.Version, arg.Document)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.BoardID, &snap.Version, &snap.Document, &snap.CreatedAt)
	return snap, err
}

func (s *Store) GetLatestSnapshot(ctx context.Context, boardID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, board_id, version, document, created_at
		FROM snapshots
		WHERE board_id = $1
		ORDER BY version DESC
		LIMIT 1`, boardID)

	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.BoardID, &snap.Version, &snap.Document, &snap.CreatedAt)
	return snap, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (Board, error) {
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.Width, &b.Height, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
