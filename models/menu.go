package models

// MenuItem is a row from menu_items table. The order engine reads menu
// items but never writes them; catalog changes go through the admin
// endpoints only.
type MenuItem struct {
	ID           int64  `json:"id"`
	RestaurantID int64  `json:"restaurantId"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category"`
	Price        Money  `json:"price"`
	Image        string `json:"image,omitempty"`
	Available    bool   `json:"isAvailable"`
	Popular      bool   `json:"isPopular"`
}

// Restaurant is a row from restaurants table.
type Restaurant struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`
	Image       string  `json:"image,omitempty"`
	Active      bool    `json:"isActive"`
}
