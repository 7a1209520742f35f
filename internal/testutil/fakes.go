package testutil

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"digique-backend/internal/domain/entity"
	"digique-backend/internal/service"
	"digique-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SlotConstraint mirrors the partial unique index on appointments.
const SlotConstraint = "uq_appointments_doctor_slot"

// ErrStore is a generic storage failure for error-path tests.
var ErrStore = errors.New("store unavailable")

// -- Users --

type UserRepo struct {
	mu    sync.Mutex
	Users map[uuid.UUID]*entity.User
}

func NewUserRepo(users ...*entity.User) *UserRepo {
	r := &UserRepo{Users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.Users[u.ID] = u
	}
	return r
}

func (r *UserRepo) Create(_ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if strings.EqualFold(u.Email, user.Email) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"}
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.Users[user.ID] = &copied
	return nil
}

func (r *UserRepo) FindByEmail(_ *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepo) Update(_ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.Users[user.ID] = &copied
	return nil
}

func (r *UserRepo) UpdatePassword(_ *gorm.DB, id uuid.UUID, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Password = hashedPassword
	return nil
}

// -- Hospitals --

type HospitalRepo struct {
	mu        sync.Mutex
	Hospitals map[uuid.UUID]*entity.Hospital
}

func NewHospitalRepo(hospitals ...*entity.Hospital) *HospitalRepo {
	r := &HospitalRepo{Hospitals: make(map[uuid.UUID]*entity.Hospital)}
	for _, h := range hospitals {
		r.Hospitals[h.ID] = h
	}
	return r
}

func (r *HospitalRepo) Create(_ *gorm.DB, hospital *entity.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	copied := *hospital
	r.Hospitals[hospital.ID] = &copied
	return nil
}

func (r *HospitalRepo) FindAll(_ *gorm.DB, location string) ([]entity.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Hospital
	for _, h := range r.Hospitals {
		if location == "" || strings.Contains(strings.ToLower(h.Location), strings.ToLower(location)) {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *HospitalRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.Hospitals[id]
	if !ok {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *HospitalRepo) FindByName(_ *gorm.DB, name string) (*entity.Hospital, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.Hospitals {
		if h.Name == name {
			copied := *h
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *HospitalRepo) Update(_ *gorm.DB, hospital *entity.Hospital) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *hospital
	r.Hospitals[hospital.ID] = &copied
	return nil
}

// -- Doctors --

type DoctorRepo struct {
	mu              sync.Mutex
	Doctors         map[uuid.UUID]*entity.Doctor
	Err             error
	CreateErr       error
	ScheduleUpdates int
}

func NewDoctorRepo(doctors ...*entity.Doctor) *DoctorRepo {
	r := &DoctorRepo{Doctors: make(map[uuid.UUID]*entity.Doctor)}
	for _, d := range doctors {
		r.Doctors[d.ID] = d
	}
	return r
}

func (r *DoctorRepo) Create(_ *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	copied := *doctor
	r.Doctors[doctor.ID] = &copied
	return nil
}

func (r *DoctorRepo) FindAll(_ *gorm.DB, hospitalID *uuid.UUID) ([]entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Doctor
	for _, d := range r.Doctors {
		if hospitalID == nil || d.HospitalID == *hospitalID {
			out = append(out, *d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *DoctorRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.Doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *d
	return &copied, nil
}

func (r *DoctorRepo) FindByHospitalAndName(_ *gorm.DB, hospitalID uuid.UUID, name string) (*entity.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.Doctors {
		if d.HospitalID == hospitalID && d.Name == name {
			copied := *d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *DoctorRepo) FindSchedule(_ *gorm.DB, doctorID uuid.UUID) (*entity.WeeklySchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	d, ok := r.Doctors[doctorID]
	if !ok {
		return nil, nil
	}
	schedule := d.Schedule
	return &schedule, nil
}

func (r *DoctorRepo) CountByHospital(_ *gorm.DB, hospitalID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, d := range r.Doctors {
		if d.HospitalID == hospitalID {
			n++
		}
	}
	return n, nil
}

func (r *DoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.Doctors[doctor.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Name = doctor.Name
	d.Specialty = doctor.Specialty
	d.ProfileImage = doctor.ProfileImage
	return nil
}

func (r *DoctorRepo) UpdateSchedule(_ *gorm.DB, id uuid.UUID, schedule entity.WeeklySchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.Doctors[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	d.Schedule = schedule
	r.ScheduleUpdates++
	return nil
}

func (r *DoctorRepo) Delete(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Doctors, id)
	return nil
}

// -- Appointments --

// AppointmentRepo enforces the one-Scheduled-per-slot rule the way the
// database index does, returning a unique violation to the loser.
type AppointmentRepo struct {
	mu           sync.Mutex
	Appointments map[uuid.UUID]*entity.Appointment
	CreateErr    error
}

func NewAppointmentRepo(appointments ...*entity.Appointment) *AppointmentRepo {
	r := &AppointmentRepo{Appointments: make(map[uuid.UUID]*entity.Appointment)}
	for _, a := range appointments {
		r.Appointments[a.ID] = a
	}
	return r
}

func (r *AppointmentRepo) slotTakenLocked(except uuid.UUID, doctorID uuid.UUID, date time.Time, clock string) bool {
	for _, a := range r.Appointments {
		if a.ID != except && a.DoctorID == doctorID && a.IsScheduled() && a.SameSlot(date, clock) {
			return true
		}
	}
	return false
}

func (r *AppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CreateErr != nil {
		return r.CreateErr
	}
	if appointment.IsScheduled() && r.slotTakenLocked(uuid.Nil, appointment.DoctorID, appointment.Date, appointment.Time) {
		return &pgconn.PgError{Code: "23505", ConstraintName: SlotConstraint}
	}
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	now := time.Now()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now
	copied := *appointment
	r.Appointments[appointment.ID] = &copied
	return nil
}

func (r *AppointmentRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *AppointmentRepo) FindBookedTimes(_ *gorm.DB, doctorID uuid.UUID, from, to time.Time) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var times []string
	for _, a := range r.Appointments {
		if a.DoctorID == doctorID && a.IsScheduled() && !a.Date.Before(from) && a.Date.Before(to) {
			times = append(times, a.Time)
		}
	}
	return times, nil
}

func (r *AppointmentRepo) matches(a *entity.Appointment, f entity.AppointmentFilter) bool {
	switch {
	case f.HospitalID != nil && a.HospitalID != *f.HospitalID:
		return false
	case f.PatientID != nil && a.PatientID != *f.PatientID:
		return false
	case f.DoctorID != nil && a.DoctorID != *f.DoctorID:
		return false
	case f.Status != nil && a.Status != *f.Status:
		return false
	case f.From != nil && a.Date.Before(*f.From):
		return false
	case f.To != nil && !a.Date.Before(*f.To):
		return false
	}
	return true
}

func (r *AppointmentRepo) FindAll(_ *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.Appointments {
		if r.matches(a, filter) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *AppointmentRepo) Count(db *gorm.DB, filter entity.AppointmentFilter) (int64, error) {
	filter.Limit = 0
	all, err := r.FindAll(db, filter)
	return int64(len(all)), err
}

func (r *AppointmentRepo) Reschedule(_ *gorm.DB, id uuid.UUID, date time.Time, clock string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Appointments[id]
	if !ok || !a.IsScheduled() {
		return 0, nil
	}
	if r.slotTakenLocked(id, a.DoctorID, date, clock) {
		return 0, &pgconn.PgError{Code: "23505", ConstraintName: SlotConstraint}
	}
	a.Date = date
	a.Time = clock
	a.UpdatedAt = time.Now()
	return 1, nil
}

func (r *AppointmentRepo) UpdateStatus(_ *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.Appointments[id]
	if !ok || a.Status != from {
		return 0, nil
	}
	a.Status = to
	a.UpdatedAt = time.Now()
	return 1, nil
}

// -- Feedback --

type FeedbackRepo struct {
	mu       sync.Mutex
	Feedback map[uuid.UUID]*entity.Feedback
}

func NewFeedbackRepo(items ...*entity.Feedback) *FeedbackRepo {
	r := &FeedbackRepo{Feedback: make(map[uuid.UUID]*entity.Feedback)}
	for _, f := range items {
		r.Feedback[f.ID] = f
	}
	return r
}

func (r *FeedbackRepo) Create(_ *gorm.DB, feedback *entity.Feedback) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if feedback.ID == uuid.Nil {
		feedback.ID = uuid.New()
	}
	copied := *feedback
	r.Feedback[feedback.ID] = &copied
	return nil
}

func (r *FeedbackRepo) FindByID(_ *gorm.DB, id uuid.UUID) (*entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.Feedback[id]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (r *FeedbackRepo) FindByHospital(_ *gorm.DB, hospitalID uuid.UUID) ([]entity.Feedback, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Feedback
	for _, f := range r.Feedback {
		if f.HospitalID != nil && *f.HospitalID == hospitalID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (r *FeedbackRepo) UpdateStatus(_ *gorm.DB, id uuid.UUID, status entity.FeedbackStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.Feedback[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	f.Status = status
	return nil
}

// -- Update history --

type HistoryRepo struct {
	mu      sync.Mutex
	Entries []entity.UpdateHistory
}

func (r *HistoryRepo) CreateBatch(_ *gorm.DB, entries []entity.UpdateHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Entries = append(r.Entries, entries...)
	return nil
}

func (r *HistoryRepo) FindByUser(_ *gorm.DB, userID uuid.UUID) ([]entity.UpdateHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.UpdateHistory
	for i := len(r.Entries) - 1; i >= 0; i-- {
		if r.Entries[i].UserID == userID {
			out = append(out, r.Entries[i])
		}
	}
	return out, nil
}

// -- Audit log --

type AuditRepo struct {
	mu   sync.Mutex
	Logs []entity.AuditLog
}

func (r *AuditRepo) Create(_ *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.Logs) + 1)
	r.Logs = append(r.Logs, *log)
	return nil
}

func (r *AuditRepo) FindByHospital(_ *gorm.DB, hospitalID uuid.UUID, limit, offset int) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []entity.AuditLog
	for i := len(r.Logs) - 1; i >= 0; i-- {
		if l := r.Logs[i]; l.HospitalID != nil && *l.HospitalID == hospitalID {
			matched = append(matched, l)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return []entity.AuditLog{}, total, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], total, nil
}

// Actions lists recorded audit actions in insertion order.
func (r *AuditRepo) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	actions := make([]string, 0, len(r.Logs))
	for _, l := range r.Logs {
		actions = append(actions, l.Action)
	}
	return actions
}

// -- Redis-backed services --

// TokenStore is an in-memory whitelist.
type TokenStore struct {
	mu     sync.Mutex
	Tokens map[string]struct{}
}

func NewTokenStore() *TokenStore {
	return &TokenStore{Tokens: make(map[string]struct{})}
}

func key(tokenType jwt.TokenType, userID uuid.UUID, tokenID string) string {
	return fmt.Sprintf("%s:%s:%s", tokenType, userID, tokenID)
}

func (s *TokenStore) Store(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Tokens[key(tokenType, userID, tokenID)] = struct{}{}
	return nil
}

func (s *TokenStore) Exists(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.Tokens[key(tokenType, userID, tokenID)]
	return ok, nil
}

func (s *TokenStore) Revoke(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Tokens, key(tokenType, userID, tokenID))
	return nil
}

func (s *TokenStore) Consume(_ context.Context, tokenType jwt.TokenType, userID uuid.UUID, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(tokenType, userID, tokenID)
	if _, ok := s.Tokens[k]; !ok {
		return false, nil
	}
	delete(s.Tokens, k)
	return true, nil
}

func (s *TokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.Tokens {
		if strings.Contains(k, ":"+userID.String()+":") {
			delete(s.Tokens, k)
		}
	}
	return nil
}

// SlotLocker is an in-memory SET NX. Err, when set, simulates an
// unreachable lock store.
type SlotLocker struct {
	mu   sync.Mutex
	held map[string]bool
	Err  error
}

func NewSlotLocker() *SlotLocker {
	return &SlotLocker{held: make(map[string]bool)}
}

func (l *SlotLocker) Acquire(_ context.Context, doctorID uuid.UUID, date time.Time, clock string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	k := service.SlotLockKey(doctorID, date, clock)
	if l.held[k] {
		return nil, service.ErrSlotLocked
	}
	l.held[k] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, k)
	}, nil
}

// Hold marks a slot as locked by someone else.
func (l *SlotLocker) Hold(doctorID uuid.UUID, date time.Time, clock string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[service.SlotLockKey(doctorID, date, clock)] = true
}
