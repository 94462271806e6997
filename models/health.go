package models

type HealthGetResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
