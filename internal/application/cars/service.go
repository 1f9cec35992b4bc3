// Package cars implements car record storage rules: creation, partial
// updates with profit re-derivation, substring search, and cascading delete.
package cars

import (
	"context"
	"errors"
	"strings"

	"github.com/inesh111/pj-motors/internal/application/carevents"
	"github.com/inesh111/pj-motors/internal/models"
	"github.com/inesh111/pj-motors/internal/pkg/apperr"

	"gorm.io/gorm"
)

// FileRemover removes the uploaded files belonging to a car. Failures are the
// remover's problem; car deletion proceeds regardless.
type FileRemover interface {
	RemoveCarFiles(carID uint)
}

type Service struct {
	DB     *gorm.DB
	Files  FileRemover
	Events *carevents.Service
}

// CreateCarInput carries the fields accepted on creation.
type CreateCarInput struct {
	ChassisCode           string
	Make                  string
	Model                 string
	Variant               *string
	Year                  *int
	Colour                *string
	Grade                 *string
	Status                string
	TotalPurchasePriceAUD float64
	SalePrice             *float64
}

func (s *Service) Create(ctx context.Context, in CreateCarInput) (*models.Car, error) {
	if strings.TrimSpace(in.ChassisCode) == "" || strings.TrimSpace(in.Make) == "" || strings.TrimSpace(in.Model) == "" {
		return nil, apperr.New(apperr.Validation, "chassisCode, make, model, totalPurchasePriceAUD are required")
	}

	status := in.Status
	if status == "" {
		status = models.StatusJapan
	}

	car := &models.Car{
		ChassisCode:           in.ChassisCode,
		Make:                  in.Make,
		Model:                 in.Model,
		Variant:               in.Variant,
		Year:                  in.Year,
		Colour:                in.Colour,
		Grade:                 in.Grade,
		Status:                status,
		TotalPurchasePriceAUD: in.TotalPurchasePriceAUD,
		SalePrice:             in.SalePrice,
		Profit:                Profit(in.TotalPurchasePriceAUD, in.SalePrice),
	}

	if err := s.DB.WithContext(ctx).Create(car).Error; err != nil {
		if isDuplicate(err) {
			return nil, apperr.New(apperr.Conflict, "A car with this chassis code already exists")
		}
		return nil, err
	}

	s.recordEvent(ctx, car.ID, models.EventCarCreated, map[string]interface{}{
		"chassisCode": car.ChassisCode,
		"make":        car.Make,
		"model":       car.Model,
		"status":      car.Status,
	})
	return car, nil
}

// Get returns a car with its documents.
func (s *Service) Get(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := s.DB.WithContext(ctx).Preload("Documents").First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Car not found")
		}
		return nil, err
	}
	return &car, nil
}

// List returns cars newest first, optionally filtered to those whose chassis
// code contains search (case-insensitive).
func (s *Service) List(ctx context.Context, search string) ([]models.Car, error) {
	q := s.DB.WithContext(ctx).Order("created_at DESC, id DESC")
	if search != "" {
		q = q.Where("LOWER(chassis_code) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var cars []models.Car
	if err := q.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

// UpdatePatch is a partial update. Nil pointers are untouched fields; the Set
// flags distinguish "set to null" from "not provided" for nullable fields.
type UpdatePatch struct {
	Make                  *string
	Model                 *string
	Variant               *string
	VariantSet            bool
	Year                  *int
	YearSet               bool
	Colour                *string
	ColourSet             bool
	Grade                 *string
	GradeSet              bool
	Status                *string
	TotalPurchasePriceAUD *float64
	SalePrice             *float64
	SalePriceSet          bool
}

func (s *Service) Update(ctx context.Context, id uint, patch UpdatePatch) (*models.Car, error) {
	var existing models.Car
	if err := s.DB.WithContext(ctx).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "Car not found")
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Make != nil {
		updates["make"] = *patch.Make
	}
	if patch.Model != nil {
		updates["model"] = *patch.Model
	}
	if patch.VariantSet {
		updates["variant"] = patch.Variant
	}
	if patch.YearSet {
		updates["year"] = patch.Year
	}
	if patch.ColourSet {
		updates["colour"] = patch.Colour
	}
	if patch.GradeSet {
		updates["grade"] = patch.Grade
	}
	if patch.Status != nil {
		updates["status"] = *patch.Status
	}
	if patch.TotalPurchasePriceAUD != nil {
		updates["total_purchase_price_aud"] = *patch.TotalPurchasePriceAUD
	}
	if patch.SalePriceSet {
		updates["sale_price"] = patch.SalePrice
	}

	// Profit is derived, never settable: re-derive whenever either price moves,
	// falling back to the stored value of the untouched price.
	if patch.TotalPurchasePriceAUD != nil || patch.SalePriceSet {
		purchase := existing.TotalPurchasePriceAUD
		if patch.TotalPurchasePriceAUD != nil {
			purchase = *patch.TotalPurchasePriceAUD
		}
		sale := existing.SalePrice
		if patch.SalePriceSet {
			sale = patch.SalePrice
		}
		updates["profit"] = Profit(purchase, sale)
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	var updated models.Car
	if err := s.DB.WithContext(ctx).First(&updated, id).Error; err != nil {
		return nil, err
	}

	s.recordEvent(ctx, id, models.EventCarUpdated, updates)
	return &updated, nil
}

// Delete removes the car, its document rows, and their backing files.
// File removal is best-effort: a stale file on disk is acceptable, a
// half-deleted record is not.
func (s *Service) Delete(ctx context.Context, id uint) error {
	var car models.Car
	if err := s.DB.WithContext(ctx).First(&car, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.New(apperr.NotFound, "Car not found")
		}
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.CarDocument{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Car{}, id).Error
	})
	if err != nil {
		return err
	}

	if s.Files != nil {
		s.Files.RemoveCarFiles(id)
	}
	s.recordEvent(ctx, id, models.EventCarDeleted, map[string]interface{}{
		"chassisCode": car.ChassisCode,
	})
	return nil
}

func (s *Service) recordEvent(ctx context.Context, carID uint, eventType string, data interface{}) {
	if s.Events == nil {
		return
	}
	s.Events.Record(ctx, carID, eventType, data)
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
