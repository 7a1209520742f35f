// Package seed loads the demo hospitals and doctors.
package seed

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

//go:embed data.json
var defaultData []byte

type Data struct {
	Hospitals []HospitalSeed `json:"hospitals"`
	Doctors   []DoctorSeed   `json:"doctors"`
}

type HospitalSeed struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Location    string   `json:"location"`
	About       string   `json:"about"`
	BannerImage string   `json:"bannerImage"`
	Services    []string `json:"services"`
}

type DoctorSeed struct {
	Name         string `json:"name"`
	Specialty    string `json:"specialty"`
	ProfileImage string `json:"profileImage"`
	HospitalName string `json:"hospitalName"`
}

// Result counts what a run changed.
type Result struct {
	HospitalsCreated int
	HospitalsUpdated int
	DoctorsCreated   int
	DoctorsUpdated   int
	DoctorsSkipped   int
}

// DefaultData returns the embedded demo data set.
func DefaultData() (*Data, error) {
	var data Data
	if err := json.Unmarshal(defaultData, &data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	return &data, nil
}

// WeekdaySchedule enables Monday to Friday from 09:00 to 17:00.
func WeekdaySchedule() entity.WeeklySchedule {
	schedule := entity.DefaultWeeklySchedule()
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday"} {
		schedule.SetDay(day, entity.DaySchedule{IsAvailable: true, StartTime: "09:00", EndTime: "17:00"})
	}
	return schedule
}

type Seeder struct {
	db           *gorm.DB
	log          *logrus.Logger
	hospitalRepo repository.HospitalRepository
	doctorRepo   repository.DoctorRepository
}

func NewSeeder(db *gorm.DB, log *logrus.Logger, hospitalRepo repository.HospitalRepository, doctorRepo repository.DoctorRepository) *Seeder {
	return &Seeder{
		db:           db,
		log:          log,
		hospitalRepo: hospitalRepo,
		doctorRepo:   doctorRepo,
	}
}

// Run upserts hospitals and doctors by name in a single transaction.
// Re-running it converges to the same rows.
func (s *Seeder) Run(ctx context.Context, data *Data) (*Result, error) {
	result := &Result{}

	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospitalIDs := make(map[string]*entity.Hospital, len(data.Hospitals))
	for _, h := range data.Hospitals {
		hospital, err := s.hospitalRepo.FindByName(tx, h.Name)
		if err != nil {
			return nil, fmt.Errorf("find hospital %q: %w", h.Name, err)
		}

		if hospital == nil {
			hospital = &entity.Hospital{Name: h.Name}
			applyHospital(hospital, h)
			if err := s.hospitalRepo.Create(tx, hospital); err != nil {
				return nil, fmt.Errorf("create hospital %q: %w", h.Name, err)
			}
			result.HospitalsCreated++
		} else {
			applyHospital(hospital, h)
			if err := s.hospitalRepo.Update(tx, hospital); err != nil {
				return nil, fmt.Errorf("update hospital %q: %w", h.Name, err)
			}
			result.HospitalsUpdated++
		}
		hospitalIDs[h.Name] = hospital
	}

	for _, d := range data.Doctors {
		hospital, ok := hospitalIDs[d.HospitalName]
		if !ok {
			found, err := s.hospitalRepo.FindByName(tx, d.HospitalName)
			if err != nil {
				return nil, fmt.Errorf("find hospital %q: %w", d.HospitalName, err)
			}
			if found == nil {
				s.log.WithFields(logrus.Fields{
					"doctor":   d.Name,
					"hospital": d.HospitalName,
				}).Warn("Skipping doctor, hospital not found")
				result.DoctorsSkipped++
				continue
			}
			hospital = found
			hospitalIDs[d.HospitalName] = found
		}

		doctor, err := s.doctorRepo.FindByHospitalAndName(tx, hospital.ID, d.Name)
		if err != nil {
			return nil, fmt.Errorf("find doctor %q: %w", d.Name, err)
		}

		if doctor == nil {
			doctor = &entity.Doctor{
				HospitalID:   hospital.ID,
				Name:         d.Name,
				Specialty:    d.Specialty,
				ProfileImage: d.ProfileImage,
				Schedule:     WeekdaySchedule(),
			}
			if err := s.doctorRepo.Create(tx, doctor); err != nil {
				return nil, fmt.Errorf("create doctor %q: %w", d.Name, err)
			}
			result.DoctorsCreated++
			continue
		}

		doctor.Specialty = d.Specialty
		doctor.ProfileImage = d.ProfileImage
		doctor.Schedule = WeekdaySchedule()
		if err := s.doctorRepo.Update(tx, doctor); err != nil {
			return nil, fmt.Errorf("update doctor %q: %w", d.Name, err)
		}
		result.DoctorsUpdated++
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("commit seed: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"hospitals_created": result.HospitalsCreated,
		"hospitals_updated": result.HospitalsUpdated,
		"doctors_created":   result.DoctorsCreated,
		"doctors_updated":   result.DoctorsUpdated,
		"doctors_skipped":   result.DoctorsSkipped,
	}).Info("Seed completed")

	return result, nil
}

func applyHospital(hospital *entity.Hospital, h HospitalSeed) {
	hospital.Address = h.Address
	hospital.Location = h.Location
	hospital.About = h.About
	hospital.BannerImage = h.BannerImage
	hospital.Services = entity.StringList(h.Services)
}
