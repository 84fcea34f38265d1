package models

import "time"

// Killmail is one record of the zkillboard feed
type Killmail struct {
	KillID   int64 `json:"killID"`
	Killmail struct {
		KillmailID    int64     `json:"killmail_id"`
		KillmailTime  time.Time `json:"killmail_time"`
		SolarSystemID int       `json:"solar_system_id"`
		Victim        struct {
			Items []struct {
				Flag       int `json:"flag"`
				ItemTypeID int `json:"item_type_id"`
			} `json:"items"`
			ShipTypeID int `json:"ship_type_id"`
		} `json:"victim"`
	} `json:"killmail"`
	Zkb struct {
		FittedValue float64 `json:"fittedValue"`
		Hash        string  `json:"hash"`
		Href        string  `json:"href"`
		LocationID  int64   `json:"locationID"`
	} `json:"zkb"`
}

// StoredFit is a fit as persisted after ingest
type StoredFit struct {
	Killmail int64
	Ship     int
	Cost     int64
	Items    []RawItem
	// QueryItems is the sorted set of type ids the fit can be filtered by.
	QueryItems []int
	CreatedAt  time.Time
}
