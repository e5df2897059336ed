package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-storefront/internal/model"
)

// ReceiptRepo persists receipts in the receipts table:
//
//	CREATE TABLE receipts (
//	  id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
//	  order_id VARCHAR(64) NOT NULL UNIQUE,
//	  user_id VARCHAR(64) NOT NULL,
//	  email VARCHAR(255) NOT NULL DEFAULT '',
//	  movie_id VARCHAR(64) NOT NULL,
//	  movie_title VARCHAR(255) NOT NULL DEFAULT '',
//	  show_time_id VARCHAR(64) NOT NULL,
//	  starts_at VARCHAR(40) NOT NULL DEFAULT '',
//	  seats VARCHAR(1024) NOT NULL,
//	  products JSON NOT NULL,
//	  total BIGINT NOT NULL,
//	  placed_at DATETIME NOT NULL,
//	  INDEX idx_receipts_user (user_id, placed_at)
//	);
type ReceiptRepo struct{ DB *sql.DB }

func NewReceiptRepo(db *sql.DB) *ReceiptRepo { return &ReceiptRepo{DB: db} }

const receiptColumns = "id, order_id, user_id, email, movie_id, movie_title, show_time_id, starts_at, seats, products, total, placed_at"

// Insert stores r.  Redelivered events for an order already journaled are
// ignored.
func (r *ReceiptRepo) Insert(ctx context.Context, rc model.Receipt) error {
	products, err := json.Marshal(nonNilLines(rc.Products))
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO receipts (order_id, user_id, email, movie_id, movie_title, show_time_id, starts_at, seats, products, total, placed_at)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE order_id = order_id`,
		rc.OrderID, rc.UserID, rc.Email, rc.MovieID, rc.MovieTitle, rc.ShowTimeID, rc.StartsAt,
		strings.Join(rc.Seats, ","), products, rc.Total, rc.PlacedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// ListByUser returns the receipts of userID, newest first.
func (r *ReceiptRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.Receipt, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE user_id=? ORDER BY placed_at DESC, id DESC LIMIT ?",
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	out := []model.Receipt{}
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

// GetByOrderID returns the receipt of one order.
func (r *ReceiptRepo) GetByOrderID(ctx context.Context, orderID string) (model.Receipt, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+receiptColumns+" FROM receipts WHERE order_id=? LIMIT 1", orderID)
	rc, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Receipt{}, ErrReceiptNotFound
	}
	return rc, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(s scanner) (model.Receipt, error) {
	var (
		rc       model.Receipt
		seats    string
		products []byte
	)
	err := s.Scan(&rc.ID, &rc.OrderID, &rc.UserID, &rc.Email, &rc.MovieID, &rc.MovieTitle,
		&rc.ShowTimeID, &rc.StartsAt, &seats, &products, &rc.Total, &rc.PlacedAt)
	if err != nil {
		return model.Receipt{}, err
	}
	rc.Seats = []string{}
	if seats != "" {
		rc.Seats = strings.Split(seats, ",")
	}
	rc.Products = []model.ProductLine{}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &rc.Products); err != nil {
			return model.Receipt{}, fmt.Errorf("decode products of %s: %w", rc.OrderID, err)
		}
	}
	return rc, nil
}

func nonNilLines(l []model.ProductLine) []model.ProductLine {
	if l == nil {
		return []model.ProductLine{}
	}
	return l
}
