package domain

type Country struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	ISOCode string `json:"iso_code"`
}

type City struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	AirportCode  string `json:"airport_code"`
	ProvinceID   int64  `json:"province_id"`
	ProvinceName string `json:"province_name"`
	CountryID    int64  `json:"country_id"`
	CountryName  string `json:"country_name"`
}

type Airline struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code"`
	Info   string `json:"info,omitempty"`
	Active bool   `json:"active"`
}

type SeatCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
