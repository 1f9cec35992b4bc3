// Package carevents records and serves the append-only audit trail of car
// mutations.
package carevents

import (
	"context"
	"encoding/json"

	"github.com/inesh111/pj-motors/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Record appends an event row. Failures are logged and swallowed: the audit
// trail must never block the mutation it describes.
func (s *Service) Record(ctx context.Context, carID uint, eventType string, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Warn().Err(err).Uint("car_id", carID).Str("event_type", eventType).Msg("carevents: marshal payload failed")
		payload = []byte("{}")
	}
	event := &models.CarEvent{
		CarID:     carID,
		EventType: eventType,
		EventData: payload,
	}
	if err := s.DB.WithContext(ctx).Create(event).Error; err != nil {
		log.Warn().Err(err).Uint("car_id", carID).Str("event_type", eventType).Msg("carevents: record failed")
	}
}

// ListForCar returns a car's events, oldest first.
func (s *Service) ListForCar(ctx context.Context, carID uint) ([]models.CarEvent, error) {
	var events []models.CarEvent
	if err := s.DB.WithContext(ctx).Where("car_id = ?", carID).Order("created_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
