package usecase

import (
	"context"
	"errors"
	"time"

	"digique-backend/internal/converter"
	"digique-backend/internal/delivery/dto"
	"digique-backend/internal/domain/entity"
	"digique-backend/internal/domain/repository"
	"digique-backend/internal/service"
	"digique-backend/pkg/timeslot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var ErrHospitalNotFound = errors.New("hospital not found")

const upcomingAppointmentsLimit = 3

type HospitalUsecase interface {
	List(ctx context.Context, location string) ([]dto.HospitalResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error)

	// Administrator operations, scoped to the caller's managed hospital.
	OverviewSummary(ctx context.Context, hospitalID uuid.UUID) (*dto.OverviewSummaryResponse, error)
	UpdateProfile(ctx context.Context, actor service.AuditActor, req *dto.UpdateHospitalProfileRequest) (*dto.HospitalResponse, error)
}

type hospitalUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	hospitalRepo    repository.HospitalRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewHospitalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	hospitalRepo repository.HospitalRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService service.AuditService,
) HospitalUsecase {
	return &hospitalUsecase{
		db:              db,
		log:             log,
		hospitalRepo:    hospitalRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

func (u *hospitalUsecase) List(ctx context.Context, location string) ([]dto.HospitalResponse, error) {
	hospitals, err := u.hospitalRepo.FindAll(u.db.WithContext(ctx), location)
	if err != nil {
		u.log.Warnf("Failed to find hospitals: %+v", err)
		return nil, err
	}

	return converter.HospitalsToResponses(hospitals), nil
}

func (u *hospitalUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.HospitalResponse, error) {
	hospital, err := u.hospitalRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	return converter.HospitalToResponse(hospital), nil
}

// OverviewSummary gathers the dashboard counters concurrently. Days and
// weeks are UTC calendar days and Monday-based weeks.
func (u *hospitalUsecase) OverviewSummary(ctx context.Context, hospitalID uuid.UUID) (*dto.OverviewSummaryResponse, error) {
	now := u.now().UTC()
	dayStart, dayEnd := timeslot.DayRange(now)
	weekStart, weekEnd := timeslot.WeekRange(now)
	scheduled := entity.AppointmentStatusScheduled

	var (
		summary  dto.OverviewSummaryResponse
		hospital *entity.Hospital
		upcoming []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		hospital, err = u.hospitalRepo.FindByID(u.db.WithContext(gctx), hospitalID)
		return err
	})
	g.Go(func() error {
		var err error
		summary.TodayAppointmentsCount, err = u.appointmentRepo.Count(u.db.WithContext(gctx), entity.AppointmentFilter{
			HospitalID: &hospitalID,
			Status:     &scheduled,
			From:       &dayStart,
			To:         &dayEnd,
		})
		return err
	})
	g.Go(func() error {
		var err error
		summary.WeekAppointmentsCount, err = u.appointmentRepo.Count(u.db.WithContext(gctx), entity.AppointmentFilter{
			HospitalID: &hospitalID,
			Status:     &scheduled,
			From:       &weekStart,
			To:         &weekEnd,
		})
		return err
	})
	g.Go(func() error {
		var err error
		summary.TotalDoctors, err = u.doctorRepo.CountByHospital(u.db.WithContext(gctx), hospitalID)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = u.appointmentRepo.FindAll(u.db.WithContext(gctx), entity.AppointmentFilter{
			HospitalID: &hospitalID,
			Status:     &scheduled,
			From:       &dayStart,
			Limit:      upcomingAppointmentsLimit,
		})
		return err
	})

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to build overview summary for hospital %s: %+v", hospitalID, err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	summary.ProfileStatus = hospital.ProfileStatus()
	summary.UpcomingAppointments = make([]dto.UpcomingAppointmentResponse, len(upcoming))
	for i := range upcoming {
		summary.UpcomingAppointments[i] = converter.AppointmentToUpcoming(&upcoming[i])
	}

	return &summary, nil
}

func (u *hospitalUsecase) UpdateProfile(ctx context.Context, actor service.AuditActor, req *dto.UpdateHospitalProfileRequest) (*dto.HospitalResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hospital, err := u.hospitalRepo.FindByID(tx, actor.HospitalID)
	if err != nil {
		u.log.Warnf("Failed to find hospital by ID: %+v", err)
		return nil, err
	}
	if hospital == nil {
		return nil, ErrHospitalNotFound
	}

	before := converter.HospitalToResponse(hospital)

	if req.Name != nil {
		hospital.Name = *req.Name
	}
	if req.Address != nil {
		hospital.Address = *req.Address
	}
	if req.Location != nil {
		hospital.Location = *req.Location
	}
	if req.About != nil {
		hospital.About = *req.About
	}
	if req.BannerImage != nil {
		hospital.BannerImage = *req.BannerImage
	}
	if req.Services != nil {
		hospital.Services = entity.StringList(req.Services)
	}

	if err := u.hospitalRepo.Update(tx, hospital); err != nil {
		u.log.Warnf("Failed to update hospital: %+v", err)
		return nil, err
	}

	after := converter.HospitalToResponse(hospital)
	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionHospitalProfileUpdate, entity.AuditEntityHospital, hospital.ID.String(), before, after); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}
