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
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotOwned     = errors.New("appointment does not belong to you")
	ErrAppointmentChanged      = errors.New("appointment was modified by another request")
	ErrInvalidDate             = errors.New("invalid date, use YYYY-MM-DD")
	ErrInvalidTime             = errors.New("invalid time, use HH:MM")
	ErrInvalidStatus           = errors.New("invalid appointment status")
	ErrPastDate                = errors.New("appointment date cannot be in the past")
	ErrSlotUnavailable         = errors.New("selected time slot is not available")
	ErrSlotTaken               = errors.New("selected time slot has already been booked")
	ErrInvalidStatusTransition = entity.ErrInvalidStatusTransition
)

// Name of the partial unique index that allows one Scheduled appointment
// per doctor, date and time.
const appointmentSlotConstraint = "uq_appointments_doctor_slot"

type AppointmentUsecase interface {
	// Patient operations
	Create(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	ListMine(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error)
	UpdateByPatient(ctx context.Context, patientID, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)

	// Hospital administrator operations
	ListForHospital(ctx context.Context, hospitalID uuid.UUID, query *dto.HospitalAppointmentQuery) ([]dto.AppointmentResponse, error)
	UpdateStatusByAdmin(ctx context.Context, actor service.AuditActor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorRepo          repository.DoctorRepository
	availabilityService service.AvailabilityService
	slotLocker          service.SlotLocker
	auditService        service.AuditService
	now                 func() time.Time
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	availabilityService service.AvailabilityService,
	slotLocker service.SlotLocker,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		doctorRepo:          doctorRepo,
		availabilityService: availabilityService,
		slotLocker:          slotLocker,
		auditService:        auditService,
		now:                 time.Now,
	}
}

// Create books a free slot for the patient. The slot is re-checked under the
// slot lock and the unique index rejects whichever writer loses a race.
func (u *appointmentUsecase) Create(ctx context.Context, patientID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	doctorID, err := uuid.Parse(req.DoctorID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by ID: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	date, clock, err := u.parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	release, err := u.claimSlot(ctx, doctor.ID, date, clock)
	if err != nil {
		return nil, err
	}
	defer release()

	appointment := &entity.Appointment{
		PatientID:  patientID,
		DoctorID:   doctor.ID,
		HospitalID: doctor.HospitalID,
		Date:       date,
		Time:       clock,
		Status:     entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		if isDuplicateKeyError(err, appointmentSlotConstraint) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"doctor_id":      doctor.ID,
		"date":           timeslot.FormatDate(date),
		"time":           clock,
	}).Info("Appointment booked")

	return u.reload(db, appointment), nil
}

func (u *appointmentUsecase) ListMine(ctx context.Context, patientID uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), entity.AppointmentFilter{PatientID: &patientID})
	if err != nil {
		u.log.Warnf("Failed to find patient appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// UpdateByPatient lets the owner reschedule a Scheduled appointment or
// cancel it. Cancelling an already cancelled appointment is a no-op, and a
// cancellation takes precedence over a reschedule sent in the same request.
func (u *appointmentUsecase) UpdateByPatient(ctx context.Context, patientID, appointmentID uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.OwnedBy(patientID) {
		return nil, ErrAppointmentNotOwned
	}

	next := appointment.Status
	if req.Status != nil {
		next, err = entity.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, ErrInvalidStatus
		}
		// Patients may only cancel
		if next != appointment.Status && next != entity.AppointmentStatusCancelled {
			return nil, ErrInvalidStatusTransition
		}
		if err := appointment.CanTransitionTo(next); err != nil {
			return nil, err
		}
	}

	if next != appointment.Status {
		rows, err := u.appointmentRepo.UpdateStatus(db, appointment.ID, appointment.Status, next)
		if err != nil {
			u.log.Warnf("Failed to cancel appointment: %+v", err)
			return nil, err
		}
		if rows == 0 {
			return nil, ErrAppointmentChanged
		}
		appointment.Status = next
		return u.reload(db, appointment), nil
	}

	if req.Date == nil && req.Time == nil {
		return u.reload(db, appointment), nil
	}

	dateInput := timeslot.FormatDate(appointment.Date)
	if req.Date != nil {
		dateInput = *req.Date
	}
	timeInput := appointment.Time
	if req.Time != nil {
		timeInput = *req.Time
	}

	date, clock, err := u.parseSlot(dateInput, timeInput)
	if err != nil {
		return nil, err
	}
	if appointment.SameSlot(date, clock) {
		return u.reload(db, appointment), nil
	}
	if !appointment.IsScheduled() {
		return nil, ErrInvalidStatusTransition
	}

	release, err := u.claimSlot(ctx, appointment.DoctorID, date, clock)
	if err != nil {
		return nil, err
	}
	defer release()

	rows, err := u.appointmentRepo.Reschedule(db, appointment.ID, date, clock)
	if err != nil {
		if isDuplicateKeyError(err, appointmentSlotConstraint) {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentChanged
	}

	appointment.Date = date
	appointment.Time = clock
	return u.reload(db, appointment), nil
}

func (u *appointmentUsecase) ListForHospital(ctx context.Context, hospitalID uuid.UUID, query *dto.HospitalAppointmentQuery) ([]dto.AppointmentResponse, error) {
	filter := entity.AppointmentFilter{HospitalID: &hospitalID}

	if query != nil {
		if query.Date != "" {
			day, err := timeslot.ParseDate(query.Date)
			if err != nil {
				return nil, ErrInvalidDate
			}
			from, to := timeslot.DayRange(day)
			filter.From, filter.To = &from, &to
		}
		if query.DoctorID != "" {
			doctorID, err := uuid.Parse(query.DoctorID)
			if err != nil {
				return nil, ErrDoctorNotFound
			}
			filter.DoctorID = &doctorID
		}
		if query.Status != "" {
			status, err := entity.ParseAppointmentStatus(query.Status)
			if err != nil {
				return nil, ErrInvalidStatus
			}
			filter.Status = &status
		}
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find hospital appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

// UpdateStatusByAdmin completes or cancels an appointment of the caller's
// hospital and records the change in the audit log.
func (u *appointmentUsecase) UpdateStatusByAdmin(ctx context.Context, actor service.AuditActor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	next, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil || next == entity.AppointmentStatusScheduled {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment by ID: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.HospitalID != actor.HospitalID {
		return nil, ErrAppointmentNotOwned
	}
	if err := appointment.CanTransitionTo(next); err != nil {
		return nil, err
	}
	if next == appointment.Status {
		return converter.AppointmentToResponse(appointment), nil
	}

	previous := appointment.Status
	rows, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, previous, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentChanged
	}
	appointment.Status = next

	if err := u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentStatus, entity.AuditEntityAppointment, appointment.ID.String(),
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": next},
	); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// parseSlot validates a requested date and time. Dates before today (UTC)
// are rejected.
func (u *appointmentUsecase) parseSlot(dateInput, timeInput string) (time.Time, string, error) {
	date, err := timeslot.ParseDate(dateInput)
	if err != nil {
		return time.Time{}, "", ErrInvalidDate
	}
	if date.Before(timeslot.StartOfDay(u.now())) {
		return time.Time{}, "", ErrPastDate
	}

	clock, err := timeslot.Normalize(timeInput)
	if err != nil {
		return time.Time{}, "", ErrInvalidTime
	}

	return date, clock, nil
}

// claimSlot takes the slot lock and re-checks availability. When the lock
// store is unreachable booking continues and the unique index is the only
// guard.
func (u *appointmentUsecase) claimSlot(ctx context.Context, doctorID uuid.UUID, date time.Time, clock string) (func(), error) {
	release, err := u.slotLocker.Acquire(ctx, doctorID, date, clock)
	switch {
	case errors.Is(err, service.ErrSlotLocked):
		return nil, ErrSlotUnavailable
	case err != nil:
		u.log.Warnf("Slot lock unavailable, relying on unique index: %+v", err)
		release = func() {}
	}

	available, err := u.availabilityService.IsSlotAvailable(ctx, doctorID, date, clock)
	if err != nil {
		release()
		return nil, err
	}
	if !available {
		release()
		return nil, ErrSlotUnavailable
	}

	return release, nil
}

// reload fetches the appointment with its relations, falling back to the
// in-memory copy if the read fails.
func (u *appointmentUsecase) reload(db *gorm.DB, appointment *entity.Appointment) *dto.AppointmentResponse {
	loaded, err := u.appointmentRepo.FindByID(db, appointment.ID)
	if err != nil || loaded == nil {
		if err != nil {
			u.log.Warnf("Failed to reload appointment %s: %+v", appointment.ID, err)
		}
		return converter.AppointmentToResponse(appointment)
	}
	return converter.AppointmentToResponse(loaded)
}
