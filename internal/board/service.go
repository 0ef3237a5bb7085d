package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inkbrush/inkbrush/backend-go/internal/db"
	"github.com/inkbrush/inkbrush/backend-go/internal/document"
	"github.com/inkbrush/inkbrush/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("forbidden")
	ErrNotMember = errors.New("not a board member")
)

type Service struct {
	store *db.Store
}

func NewService(store *db.Store) *Service {
	return &Service{store: store}
}

type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Board, error) {
	boardID := typeid.NewBoardID()

	dbBoard, err := s.store.CreateBoard(ctx, db.CreateBoardParams{
		ID:      boardID,
		Name:    name,
		OwnerID: ownerID,
		Width:   1280,
		Height:  720,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	// Add owner as member
	err = s.store.AddBoardMember(ctx, db.AddBoardMemberParams{
		BoardID: boardID,
		UserID:  ownerID,
		Role:    db.BoardRoleOwner,
	})
	if err != nil {
		return nil, fmt.Errorf("add owner as member: %w", err)
	}

	// Seed empty document snapshot
	emptyDoc := document.NewEmptyDocument(boardID, name)
	emptyDoc.Board.CreatedAt = dbBoard.CreatedAt.UTC().Format(time.RFC3339)
	emptyDoc.Board.UpdatedAt = emptyDoc.Board.CreatedAt
	docJSON, err := json.Marshal(emptyDoc)
	if err != nil {
		return nil, fmt.Errorf("marshal empty document: %w", err)
	}

	_, err = s.store.CreateSnapshot(ctx, db.CreateSnapshotParams{
		ID:       typeid.NewSnapshotID(),
		BoardID:  boardID,
		Version:  1,
		Document: docJSON,
	})
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Get(ctx context.Context, boardID, userID string) (*Board, error) {
	if err := s.checkMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Board, error) {
	dbBoards, err := s.store.ListBoardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	boards := make([]Board, len(dbBoards))
	for i, b := range dbBoards {
		boards[i] = *dbBoardToBoard(b)
	}

	return boards, nil
}

func (s *Service) Delete(ctx context.Context, boardID, userID string) error {
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != userID {
		return ErrForbidden
	}

	return s.store.DeleteBoard(ctx, boardID)
}

func (s *Service) InviteByEmail(ctx context.Context, boardID, ownerID, inviteeEmail string) error {
	// Verify the requester is the owner
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != ownerID {
		return ErrForbidden
	}

	invitee, err := s.store.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.store.AddBoardMember(ctx, db.AddBoardMemberParams{
		BoardID: boardID,
		UserID:  invitee.ID,
		Role:    db.BoardRoleEditor,
	})
}

func (s *Service) ListMembers(ctx context.Context, boardID, userID string) ([]Member, error) {
	if err := s.checkMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	dbMembers, err := s.store.ListBoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(dbMembers))
	for i, m := range dbMembers {
		members[i] = Member{
			UserID:      m.UserID,
			Role:        string(m.Role),
			DisplayName: m.DisplayName,
			Email:       m.Email,
		}
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, boardID, ownerID, targetUserID string) error {
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != ownerID {
		return ErrForbidden
	}

	if targetUserID == ownerID {
		return errors.New("cannot remove board owner")
	}

	return s.store.RemoveBoardMember(ctx, db.RemoveBoardMemberParams{
		BoardID: boardID,
		UserID:  targetUserID,
	})
}

func (s *Service) GetLatestSnapshot(ctx context.Context, boardID, userID string) (json.RawMessage, error) {
	if err := s.checkMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Document, nil
}

func (s *Service) checkMembership(ctx context.Context, boardID, userID string) error {
	_, err := s.store.GetBoardMember(ctx, db.GetBoardMemberParams{
		BoardID: boardID,
		UserID:  userID,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func dbBoardToBoard(b db.Board) *Board {
	return &Board{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		Width:     b.Width,
		Height:    b.Height,
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: b.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
