package repository

import "agrieye/entities"

type CatalogRepository interface {
	// Upsert inserts rows or refreshes the attributes of an existing
	// (disease, name) pair.
	Upsert(rows []entities.CatalogTreatment) error
	ListByDisease(disease string) ([]entities.CatalogTreatment, error)
	Diseases() ([]string, error)
	DeleteDisease(disease string) (int64, error)
}
