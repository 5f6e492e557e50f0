package update_room

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// UpdateRoomRequest HTTP request model (полная замена полей комнаты).
// isActive не передан - активность не меняется.
type UpdateRoomRequest struct {
	Name         string          `json:"name" validate:"required,max=200"`
	Description  string          `json:"description"`
	Capacity     int             `json:"capacity" validate:"gte=1"`
	PricePerHour decimal.Decimal `json:"pricePerHour"`
	IsActive     *bool           `json:"isActive,omitempty"`
	FeatureIDs   []int64         `json:"featureIds" validate:"dive,gt=0"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateRoomRequest) ToServiceRequest() *models.RoomRequest {
	return &models.RoomRequest{
		Name:         r.Name,
		Description:  r.Description,
		Capacity:     r.Capacity,
		PricePerHour: r.PricePerHour,
		IsActive:     r.IsActive,
		FeatureIDs:   r.FeatureIDs,
	}
}
