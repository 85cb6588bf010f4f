package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MaxParcels upper bound for total_parcels
const MaxParcels = 120

// TransactionInput validated create/update payload
type TransactionInput struct {
	Description  string
	Amount       decimal.Decimal
	Type         string
	Category     string
	Date         models.Date
	IsParceled   bool
	TotalParcels int
	IsFixed      bool
	Paid         bool
}

// Validate checks required fields and the fixed/parceled exclusion
func (in *TransactionInput) Validate() error {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)

	if in.Description == "" || in.Type == "" || in.Category == "" || in.Date.IsZero() {
		return Validationf("description, amount, type, category and date are required")
	}
	if !in.Amount.IsPositive() {
		return Validationf("amount must be greater than zero")
	}
	if !models.ValidType(in.Type) {
		return Validationf("type must be income or expense")
	}
	if in.IsFixed && in.IsParceled {
		return Validationf("a transaction cannot be both fixed and parceled")
	}
	if in.TotalParcels < 0 || in.TotalParcels > MaxParcels {
		return Validationf("total_parcels must be between 0 and %d", MaxParcels)
	}
	return nil
}

// ListFilter default listing filter; Month only applies together with Year
type ListFilter struct {
	Month int
	Year  int
	Type  string
}

// TransactionService create/update/delete rules for plain, parceled and fixed transactions.
// Every multi-row write runs in a single database transaction.
type TransactionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewTransactionService creates the engine
func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{db: db, now: time.Now}
}

// WithClock replaces the time source
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

// Create inserts a plain row, a parceled family or a fixed family and returns the id
// of the parent/origin row.
func (s *TransactionService) Create(ctx context.Context, userID uint, in TransactionInput) (uint, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	var id uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		switch {
		case in.IsParceled && in.TotalParcels > 1:
			parent := parcelAnchor(userID, in)
			if err := tx.Create(&parent).Error; err != nil {
				return fmt.Errorf("insert parcel anchor: %w", err)
			}
			children := buildParcelRows(parent, in, s.now())
			if err := tx.Create(&children).Error; err != nil {
				return fmt.Errorf("insert parcels: %w", err)
			}
			id = parent.ID

		case in.IsFixed:
			origin := singleRow(userID, in, s.now())
			if err := tx.Create(&origin).Error; err != nil {
				return fmt.Errorf("insert fixed origin: %w", err)
			}
			followUps := buildFixedFollowUps(origin)
			if err := tx.Create(&followUps).Error; err != nil {
				return fmt.Errorf("insert fixed follow-ups: %w", err)
			}
			id = origin.ID

		default:
			row := singleRow(userID, in, s.now())
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("insert transaction: %w", err)
			}
			id = row.ID
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get loads one owned row
func (s *TransactionService) Get(ctx context.Context, userID, id uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns the default listing: no parcel children and no parcel anchors, newest first
func (s *TransactionService) List(ctx context.Context, userID uint, f ListFilter) ([]models.TransactionView, error) {
	q := withCategoryColor(s.db.WithContext(ctx)).
		Where("transactions.user_id = ?", userID).
		Where("transactions.is_parceled = ? AND transactions.total_parcels <= ?", false, 1)

	if f.Type != "" {
		q = q.Where("transactions.type = ?", f.Type)
	}
	if f.Month > 0 && f.Year > 0 {
		start, end := models.FirstOfMonth(f.Year, f.Month)
		q = q.Where("transactions.date >= ? AND transactions.date < ?", start, end)
	}

	rows := make([]models.TransactionView, 0)
	if err := q.Order("transactions.date DESC, transactions.created_at DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update rewrites a row. Members of a fixed family are updated together and keep their dates.
// A plain row that becomes fixed gets its follow-ups generated.
func (s *TransactionService) Update(ctx context.Context, userID, id uint, in TransactionInput) error {
	in.IsParceled = false
	if err := in.Validate(); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := s.now()
		if existing.IsFixed {
			anchor := existing.FixedAnchor()
			updates := map[string]interface{}{
				"description": in.Description,
				"amount":      in.Amount,
				"type":        in.Type,
				"category":    in.Category,
				"paid":        in.Paid,
				"paid_at":     familyPaidAt(in.Paid, now),
			}
			return tx.Model(&models.Transaction{}).
				Where("user_id = ? AND (parent_transaction_id = ? OR id = ?)", userID, anchor, anchor).
				Updates(updates).Error
		}

		if in.IsFixed && (existing.IsParceled || existing.IsParceledAnchor()) {
			return Validationf("a transaction cannot be both fixed and parceled")
		}

		updates := map[string]interface{}{
			"description": in.Description,
			"amount":      in.Amount,
			"type":        in.Type,
			"category":    in.Category,
			"date":        in.Date,
			"paid":        in.Paid,
			"paid_at":     rowPaidAt(existing.PaidAt, in.Paid, now),
			"is_fixed":    in.IsFixed,
		}
		if err := tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(updates).Error; err != nil {
			return err
		}

		if in.IsFixed {
			origin := existing
			origin.Description = in.Description
			origin.Amount = in.Amount
			origin.Type = in.Type
			origin.Category = in.Category
			origin.Date = in.Date
			followUps := buildFixedFollowUps(origin)
			if err := tx.Create(&followUps).Error; err != nil {
				return fmt.Errorf("insert fixed follow-ups: %w", err)
			}
		}
		return nil
	})
}

// Delete removes a row with its family. Missing ids are not an error.
func (s *TransactionService) Delete(ctx context.Context, userID, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		err := tx.Where("id = ? AND user_id = ?", id, userID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			switch {
			case existing.IsFixed:
				anchor := existing.FixedAnchor()
				if err := tx.Where("user_id = ? AND (parent_transaction_id = ? OR id = ?)", userID, anchor, anchor).
					Delete(&models.Transaction{}).Error; err != nil {
					return fmt.Errorf("delete fixed family: %w", err)
				}

			case !existing.IsParceled:
				if err := tx.Where("user_id = ? AND parent_transaction_id = ?", userID, existing.ID).
					Delete(&models.Transaction{}).Error; err != nil {
					return fmt.Errorf("delete parcels: %w", err)
				}

			case existing.ParentTransactionID != nil:
				parentID := *existing.ParentTransactionID
				var siblings int64
				if err := tx.Model(&models.Transaction{}).
					Where("user_id = ? AND parent_transaction_id = ? AND id <> ?", userID, parentID, existing.ID).
					Count(&siblings).Error; err != nil {
					return err
				}
				if siblings == 0 {
					if err := tx.Where("id = ? AND user_id = ?", parentID, userID).
						Delete(&models.Transaction{}).Error; err != nil {
						return fmt.Errorf("delete parcel anchor: %w", err)
					}
				}
			}
		}

		return tx.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Transaction{}).Error
	})
}

// SetPaid toggles paid on exactly one row, stamping or clearing paid_at
func (s *TransactionService) SetPaid(ctx context.Context, userID, id uint, paid bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Transaction
		if err := tx.Select("id").Where("id = ? AND user_id = ?", id, userID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var paidAt *time.Time
		if paid {
			now := s.now()
			paidAt = &now
		}
		return tx.Model(&models.Transaction{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{"paid": paid, "paid_at": paidAt}).Error
	})
}

// ClearAll wipes the user's transactions, categories and limbo debts
func (s *TransactionService) ClearAll(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.Transaction{}, &models.Category{}, &models.LimboDebt{}} {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func withCategoryColor(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Transaction{}).
		Select("transactions.*, categories.color AS category_color").
		Joins("LEFT JOIN categories ON categories.name = transactions.category AND categories.user_id = transactions.user_id")
}

func parcelAnchor(userID uint, in TransactionInput) models.Transaction {
	return models.Transaction{
		UserID:       userID,
		Description:  in.Description,
		Amount:       in.Amount,
		Type:         in.Type,
		Category:     in.Category,
		Date:         in.Date,
		TotalParcels: in.TotalParcels,
	}
}

func singleRow(userID uint, in TransactionInput, now time.Time) models.Transaction {
	one := 1
	return models.Transaction{
		UserID:        userID,
		Description:   in.Description,
		Amount:        in.Amount,
		Type:          in.Type,
		Category:      in.Category,
		Date:          in.Date,
		TotalParcels:  1,
		CurrentParcel: &one,
		IsFixed:       in.IsFixed,
		Paid:          in.Paid,
		PaidAt:        paidAtFor(in.Paid, now),
	}
}

// buildParcelRows splits the anchor amount into TotalParcels monthly children.
// Each child is amount/N rounded to cents; the remainder is not redistributed.
func buildParcelRows(parent models.Transaction, in TransactionInput, now time.Time) []models.Transaction {
	n := parent.TotalParcels
	share := parent.Amount.DivRound(decimal.NewFromInt(int64(n)), 2)
	parentID := parent.ID

	rows := make([]models.Transaction, 0, n)
	for i := 1; i <= n; i++ {
		current := i
		rows = append(rows, models.Transaction{
			UserID:              parent.UserID,
			Description:         fmt.Sprintf("%s (%d/%d)", parent.Description, i, n),
			Amount:              share,
			Type:                parent.Type,
			Category:            parent.Category,
			Date:                parent.Date.AddMonths(i - 1),
			IsParceled:          true,
			TotalParcels:        n,
			CurrentParcel:       &current,
			ParentTransactionID: &parentID,
			IsFixed:             in.IsFixed,
			Paid:                in.Paid,
			PaidAt:              paidAtFor(in.Paid, now),
		})
	}
	return rows
}

// buildFixedFollowUps generates the unpaid monthly rows that follow a fixed origin
func buildFixedFollowUps(origin models.Transaction) []models.Transaction {
	originID := origin.ID
	rows := make([]models.Transaction, 0, models.FixedFollowUps)
	for i := 1; i <= models.FixedFollowUps; i++ {
		one := 1
		rows = append(rows, models.Transaction{
			UserID:              origin.UserID,
			Description:         origin.Description,
			Amount:              origin.Amount,
			Type:                origin.Type,
			Category:            origin.Category,
			Date:                origin.Date.AddMonths(i),
			TotalParcels:        1,
			CurrentParcel:       &one,
			ParentTransactionID: &originID,
			IsFixed:             true,
		})
	}
	return rows
}

func paidAtFor(paid bool, now time.Time) *time.Time {
	if !paid {
		return nil
	}
	return &now
}

// rowPaidAt keeps an existing payment timestamp when the row stays paid
func rowPaidAt(current *time.Time, paid bool, now time.Time) *time.Time {
	if !paid {
		return nil
	}
	if current != nil {
		return current
	}
	return &now
}

// familyPaidAt is the fixed-family form of rowPaidAt, evaluated per row by the database
func familyPaidAt(paid bool, now time.Time) interface{} {
	if !paid {
		return nil
	}
	return gorm.Expr("COALESCE(paid_at, ?)", now)
}
