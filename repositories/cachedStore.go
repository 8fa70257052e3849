package repositories

import (
	"DentalSimple/cache"
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	PatientCacheExpiry     = 7 * 24 * time.Hour
	AppointmentCacheExpiry = 24 * time.Hour
	cacheTimeout           = 5 * time.Second
)

var _ RecordStore = (*CachedRecordStore)(nil)

// CachedRecordStore is a cache-aside decorator over a RecordStore. Reads are
// served from the cache when present; every write invalidates the owner's
// affected keys before returning.
type CachedRecordStore struct {
	next  RecordStore
	cache cache.Cache
}

func NewCachedRecordStore(next RecordStore, c cache.Cache) *CachedRecordStore {
	return &CachedRecordStore{next: next, cache: c}
}

func patientCacheKey(ownerID, id string) string {
	return fmt.Sprintf("patient_cache:%s:%s", ownerID, id)
}

func patientsCacheKey(ownerID string, order PatientOrder) string {
	return fmt.Sprintf("patients_cache:%s:%s", ownerID, order)
}

func visitsCacheKey(ownerID, patientID string) string {
	return fmt.Sprintf("visits_cache:%s:%s", ownerID, patientID)
}

func appointmentsCacheKey(ownerID string, filter AppointmentFilter) string {
	return fmt.Sprintf("appointments_cache:%s:%s:%s", ownerID, filter.From, filter.To)
}

// lookup decodes a cached value into dst. A miss or a cache failure reports false.
func (r *CachedRecordStore) lookup(ctx context.Context, key string, dst interface{}) bool {
	ctx, cancel := context.WithTimeout(ctx, cacheTimeout)
	defer cancel()

	cached, err := r.cache.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read from cache")
		return false
	}
	if cached == "" {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dst); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to decode cached value")
		return false
	}
	return true
}

func (r *CachedRecordStore) store(ctx context.Context, key string, value interface{}, expiry time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to encode value for cache")
		return
	}
	if err := r.cache.Set(ctx, key, string(data), expiry); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to write to cache")
	}
}

func (r *CachedRecordStore) invalidate(ctx context.Context, keys []string, patterns ...string) error {
	for _, key := range keys {
		if err := r.cache.Delete(ctx, key); err != nil {
			return utils.Persistence("invalidate cache key "+key, err)
		}
	}
	for _, pattern := range patterns {
		if err := r.cache.DeleteAll(ctx, pattern); err != nil {
			return utils.Persistence("invalidate cache keys "+pattern, err)
		}
	}
	return nil
}

func (r *CachedRecordStore) InsertPatient(ctx context.Context, patient *models.Patient) error {
	if err := r.next.InsertPatient(ctx, patient); err != nil {
		return err
	}
	return r.invalidate(ctx, nil, fmt.Sprintf("patients_cache:%s:*", patient.OwnerID))
}

func (r *CachedRecordStore) UpdatePatient(ctx context.Context, ownerID, id string, patch models.PatientPatch) (*models.Patient, error) {
	patient, err := r.next.UpdatePatient(ctx, ownerID, id, patch)
	if err != nil {
		return nil, err
	}
	err = r.invalidate(ctx,
		[]string{patientCacheKey(ownerID, id)},
		fmt.Sprintf("patients_cache:%s:*", ownerID),
		fmt.Sprintf("appointments_cache:%s:*", ownerID),
	)
	if err != nil {
		return nil, err
	}
	return patient, nil
}

func (r *CachedRecordStore) GetPatient(ctx context.Context, ownerID, id string) (*models.Patient, error) {
	key := patientCacheKey(ownerID, id)
	var patient models.Patient
	if r.lookup(ctx, key, &patient) {
		return &patient, nil
	}

	found, err := r.next.GetPatient(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, found, PatientCacheExpiry)
	return found, nil
}

func (r *CachedRecordStore) ListPatients(ctx context.Context, ownerID string, order PatientOrder) ([]models.Patient, error) {
	key := patientsCacheKey(ownerID, order)
	var patients []models.Patient
	if r.lookup(ctx, key, &patients) {
		return patients, nil
	}

	patients, err := r.next.ListPatients(ctx, ownerID, order)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, patients, PatientCacheExpiry)
	return patients, nil
}

func (r *CachedRecordStore) CountPatients(ctx context.Context, ownerID string) (int64, error) {
	return r.next.CountPatients(ctx, ownerID)
}

func (r *CachedRecordStore) InsertVisit(ctx context.Context, visit *models.Visit) error {
	if err := r.next.InsertVisit(ctx, visit); err != nil {
		return err
	}
	return r.invalidate(ctx, []string{visitsCacheKey(visit.OwnerID, visit.PatientID)})
}

func (r *CachedRecordStore) ListVisits(ctx context.Context, ownerID, patientID string) ([]models.Visit, error) {
	key := visitsCacheKey(ownerID, patientID)
	var visits []models.Visit
	if r.lookup(ctx, key, &visits) {
		return visits, nil
	}

	visits, err := r.next.ListVisits(ctx, ownerID, patientID)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, visits, PatientCacheExpiry)
	return visits, nil
}

func (r *CachedRecordStore) InsertAppointment(ctx context.Context, appointment *models.Appointment) error {
	if err := r.next.InsertAppointment(ctx, appointment); err != nil {
		return err
	}
	return r.invalidate(ctx, nil, fmt.Sprintf("appointments_cache:%s:*", appointment.OwnerID))
}

func (r *CachedRecordStore) ListAppointments(ctx context.Context, ownerID string, filter AppointmentFilter) ([]models.Appointment, error) {
	key := appointmentsCacheKey(ownerID, filter)
	var appointments []models.Appointment
	if r.lookup(ctx, key, &appointments) {
		return appointments, nil
	}

	appointments, err := r.next.ListAppointments(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}
	r.store(ctx, key, appointments, AppointmentCacheExpiry)
	return appointments, nil
}
