package models

// ShopRating is derived state, recomputed from published reviews only. It is
// embedded on the shop document for fast reads and never hand-edited.
type ShopRating struct {
	Average      float64     `bson:"average" json:"average"` // 0..5, one decimal
	Count        int         `bson:"count" json:"count"`
	Distribution map[int]int `bson:"distribution,omitempty" json:"distribution,omitempty"` // star -> count
}

// Service is an entry in a shop's catalog.
type Service struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
}

// Shop is the business entity. Only the fields the booking engine touches are
// modeled here; profile management lives elsewhere.
type Shop struct {
	ID       string     `bson:"id" json:"id"`
	Name     string     `bson:"name" json:"name"`
	Services []Service  `bson:"services" json:"services"`
	Rating   ShopRating `bson:"rating" json:"rating"`
}

// ServiceByID resolves a catalog entry, or nil if absent.
func (s *Shop) ServiceByID(serviceID string) *Service {
	for i := range s.Services {
		if s.Services[i].ID == serviceID {
			return &s.Services[i]
		}
	}
	return nil
}
