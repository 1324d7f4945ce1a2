package storage

import (
	"errors"

	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/apperr"
	"github.com/JOYBOYash/Medic-All-Web-Portal-sub001/internal/models"
	"gorm.io/gorm"
)

// ListPatientsForDoctor returns the doctor's patient records, most
// recently updated first.
func (s *Service) ListPatientsForDoctor(doctorID string) ([]models.Patient, error) {
	var patients []models.Patient
	err := s.DB.Where("doctor_id = ?", doctorID).
		Order("updated_at DESC").
		Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (s *Service) GetPatientByID(id string) (*models.Patient, error) {
	var patient models.Patient
	err := s.DB.First(&patient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &patient, nil
}
