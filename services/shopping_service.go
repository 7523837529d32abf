package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estradaLeveAPI/internal/shopping"
)

// ShoppingService manages the shopping list. List items never touch points.
type ShoppingService struct {
	db *pgxpool.Pool
}

func NewShoppingService(db *pgxpool.Pool) *ShoppingService {
	return &ShoppingService{db: db}
}

func (s *ShoppingService) List(ctx context.Context, clerkID string) ([]*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, label, checked, created_at
		FROM shopping_items
		WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shopping items: %w", err)
	}
	defer rows.Close()

	var items []*shopping.Item
	for rows.Next() {
		item := &shopping.Item{}
		err := rows.Scan(&item.ID, &item.UserID, &item.Label, &item.Checked, &item.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (s *ShoppingService) Add(ctx context.Context, clerkID string, label string) (*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	item := &shopping.Item{}
	err = s.db.QueryRow(ctx, `
		INSERT INTO shopping_items (user_id, label, checked)
		VALUES ($1, $2, FALSE)
		RETURNING id, user_id, label, checked, created_at
	`, userID, label).Scan(&item.ID, &item.UserID, &item.Label, &item.Checked, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to add shopping item: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) Toggle(ctx context.Context, clerkID string, itemID uuid.UUID) (*shopping.Item, error) {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	item := &shopping.Item{}
	err = s.db.QueryRow(ctx, `
		UPDATE shopping_items
		SET checked = NOT checked
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, label, checked, created_at
	`, itemID, userID).Scan(&item.ID, &item.UserID, &item.Label, &item.Checked, &item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("shopping item not found: %w", err)
	}

	return item, nil
}

func (s *ShoppingService) Delete(ctx context.Context, clerkID string, itemID uuid.UUID) error {
	var userID uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM users WHERE clerk_id = $1`, clerkID).Scan(&userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		DELETE FROM shopping_items WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("shopping item not found")
	}

	return nil
}
