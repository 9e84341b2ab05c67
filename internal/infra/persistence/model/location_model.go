package model

import (
	"time"

	"friendlocator/internal/domain/entity"

	"google.golang.org/genproto/googleapis/type/latlng"
)

// LocationModel mirrors a document in the 'locations' collection. The document id is
// the user id. GeoPoint duplicates latitude and longitude as a native geo point so
// console and geo queries work on it.
type LocationModel struct {
	UserID    string         `firestore:"user_id"`
	Latitude  float64        `firestore:"latitude"`
	Longitude float64        `firestore:"longitude"`
	Accuracy  float64        `firestore:"accuracy"`
	Altitude  float64        `firestore:"altitude"`
	Speed     float64        `firestore:"speed"`
	Bearing   float64        `firestore:"bearing"`
	GeoPoint  *latlng.LatLng `firestore:"geo_point"`
	UpdatedAt time.Time      `firestore:"updated_at"`
}

func ToLocationDomain(id string, m *LocationModel) *entity.UserLocation {
	userID := m.UserID
	if userID == "" {
		userID = id
	}

	return &entity.UserLocation{
		ID:        id,
		UserID:    userID,
		Latitude:  m.Latitude,
		Longitude: m.Longitude,
		Accuracy:  m.Accuracy,
		Altitude:  m.Altitude,
		Speed:     m.Speed,
		Bearing:   m.Bearing,
		UpdatedAt: m.UpdatedAt,
	}
}

func FromLocationDomain(l *entity.UserLocation) *LocationModel {
	return &LocationModel{
		UserID:    l.UserID,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Accuracy:  l.Accuracy,
		Altitude:  l.Altitude,
		Speed:     l.Speed,
		Bearing:   l.Bearing,
		GeoPoint:  &latlng.LatLng{Latitude: l.Latitude, Longitude: l.Longitude},
		UpdatedAt: l.UpdatedAt,
	}
}
