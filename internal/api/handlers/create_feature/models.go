package create_feature

import "github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"

// CreateFeatureRequest HTTP request model
type CreateFeatureRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=50"` // имя иконки, например "wifi"
}

func (r *CreateFeatureRequest) ToServiceRequest() *models.FeatureRequest {
	return &models.FeatureRequest{Name: r.Name, Icon: r.Icon}
}
