package repositories

import (
	"DentalSimple/cache"
	"DentalSimple/database"
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendFactory func(t *testing.T) Backend

type cachedBackend struct {
	*CachedRecordStore
	UserStore
	SessionStore
}

func newSQLBackend(t *testing.T) Backend {
	t.Helper()
	db, err := database.InitDB(context.Background(), "sqlite", filepath.Join(t.TempDir(), "records.db"), false)
	require.NoError(t, err)
	return NewSQLStore(db)
}

func newLocalBackend(t *testing.T) Backend {
	t.Helper()
	store, err := OpenLocalStore(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newCachedBackend(t *testing.T) Backend {
	t.Helper()
	sql := newSQLBackend(t)
	return cachedBackend{
		CachedRecordStore: NewCachedRecordStore(sql, cache.NewMemoryCache(time.Minute)),
		UserStore:         sql,
		SessionStore:      sql,
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, store Backend)) {
	backends := map[string]backendFactory{
		"sql":    newSQLBackend,
		"local":  newLocalBackend,
		"cached": newCachedBackend,
	}
	for name, factory := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func strPtr(s string) *string { return &s }

func newPatient(owner, name string, created time.Time) *models.Patient {
	return &models.Patient{
		ID:        utils.NewRecordID("pat", created),
		OwnerID:   owner,
		Name:      name,
		Phone:     "555-0100",
		CreatedAt: created.UTC(),
	}
}

func TestPatients_CreateListGet(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

		first := newPatient("owner-a", "Zoe", base)
		second := newPatient("owner-a", "Adam", base.Add(time.Minute))
		require.NoError(t, store.InsertPatient(ctx, first))
		require.NoError(t, store.InsertPatient(ctx, second))

		newest, err := store.ListPatients(ctx, "owner-a", OrderByNewest)
		require.NoError(t, err)
		require.Len(t, newest, 2)
		assert.Equal(t, second.ID, newest[0].ID)
		assert.Equal(t, first.ID, newest[1].ID)

		byName, err := store.ListPatients(ctx, "owner-a", OrderByName)
		require.NoError(t, err)
		require.Len(t, byName, 2)
		assert.Equal(t, "Adam", byName[0].Name)
		assert.Equal(t, "Zoe", byName[1].Name)

		got, err := store.GetPatient(ctx, "owner-a", first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Zoe", got.Name)
		assert.Nil(t, got.Email)

		count, err := store.CountPatients(ctx, "owner-a")
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestPatients_OwnerIsolation(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		patient := newPatient("owner-a", "Ana", time.Now())
		require.NoError(t, store.InsertPatient(ctx, patient))

		others, err := store.ListPatients(ctx, "owner-b", OrderByNewest)
		require.NoError(t, err)
		assert.Empty(t, others)

		_, err = store.GetPatient(ctx, "owner-b", patient.ID)
		assert.ErrorIs(t, err, utils.ErrNotFound)

		_, err = store.UpdatePatient(ctx, "owner-b", patient.ID, models.PatientPatch{Name: strPtr("Mallory")})
		assert.ErrorIs(t, err, utils.ErrNotFound)

		count, err := store.CountPatients(ctx, "owner-b")
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestPatients_Update(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		patient := newPatient("owner-a", "Ana", time.Now())
		patient.Email = strPtr("ana@example.com")
		patient.Allergies = strPtr("penicillin")
		require.NoError(t, store.InsertPatient(ctx, patient))

		// Warm any cache before editing.
		_, err := store.ListPatients(ctx, "owner-a", OrderByNewest)
		require.NoError(t, err)

		updated, err := store.UpdatePatient(ctx, "owner-a", patient.ID, models.PatientPatch{
			Phone:     strPtr("555-0199"),
			Allergies: strPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana", updated.Name)
		assert.Equal(t, "555-0199", updated.Phone)
		assert.Nil(t, updated.Allergies)
		require.NotNil(t, updated.Email)

		got, err := store.GetPatient(ctx, "owner-a", patient.ID)
		require.NoError(t, err)
		assert.Equal(t, "555-0199", got.Phone)
		assert.Nil(t, got.Allergies)

		listed, err := store.ListPatients(ctx, "owner-a", OrderByNewest)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "555-0199", listed[0].Phone)

		_, err = store.UpdatePatient(ctx, "owner-a", "pat_missing", models.PatientPatch{})
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})
}

func TestVisits_ScopedAndOrdered(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		now := time.Now()
		cost := 80.5

		// Read before writing so a cache would hold the empty history.
		empty, err := store.ListVisits(ctx, "owner-a", "pat_1")
		require.NoError(t, err)
		assert.Empty(t, empty)

		visits := []models.Visit{
			{ID: utils.NewRecordID("vis", now), OwnerID: "owner-a", PatientID: "pat_1", Date: "2024-01-10", Treatment: "Cleaning"},
			{ID: utils.NewRecordID("vis", now), OwnerID: "owner-a", PatientID: "pat_1", Date: "2024-03-02", Treatment: "Filling", Cost: &cost},
			{ID: utils.NewRecordID("vis", now), OwnerID: "owner-a", PatientID: "pat_2", Date: "2024-02-01", Treatment: "Extraction"},
			{ID: utils.NewRecordID("vis", now), OwnerID: "owner-b", PatientID: "pat_1", Date: "2024-02-01", Treatment: "Crown"},
		}
		for i := range visits {
			require.NoError(t, store.InsertVisit(ctx, &visits[i]))
		}

		got, err := store.ListVisits(ctx, "owner-a", "pat_1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "2024-03-02", got[0].Date)
		assert.Equal(t, "2024-01-10", got[1].Date)
		require.NotNil(t, got[0].Cost)
		assert.Equal(t, 80.5, *got[0].Cost)
		assert.Nil(t, got[1].Cost)
	})
}

func TestAppointments_RangeOrderAndNames(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		now := time.Now()
		patient := newPatient("owner-a", "Ana", now)
		require.NoError(t, store.InsertPatient(ctx, patient))

		march := AppointmentFilter{From: "2024-03-01", To: "2024-03-31"}
		_, err := store.ListAppointments(ctx, "owner-a", march)
		require.NoError(t, err)

		appointments := []models.Appointment{
			{ID: utils.NewRecordID("apt", now), OwnerID: "owner-a", PatientID: patient.ID, Date: "2024-03-05", Time: "15:00"},
			{ID: utils.NewRecordID("apt", now), OwnerID: "owner-a", PatientID: patient.ID, Date: "2024-03-31", Time: "09:30", Reason: strPtr("Checkup")},
			{ID: utils.NewRecordID("apt", now), OwnerID: "owner-a", PatientID: "pat_gone", Date: "2024-03-01", Time: "11:00"},
			{ID: utils.NewRecordID("apt", now), OwnerID: "owner-a", PatientID: patient.ID, Date: "2024-04-01", Time: "08:00"},
			{ID: utils.NewRecordID("apt", now), OwnerID: "owner-b", PatientID: patient.ID, Date: "2024-03-10", Time: "10:00"},
		}
		for i := range appointments {
			require.NoError(t, store.InsertAppointment(ctx, &appointments[i]))
		}

		got, err := store.ListAppointments(ctx, "owner-a", march)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "09:30", got[0].Time)
		assert.Equal(t, "Ana", got[0].PatientName)
		assert.Equal(t, "11:00", got[1].Time)
		assert.Equal(t, "", got[1].PatientName)
		assert.Equal(t, "15:00", got[2].Time)

		all, err := store.ListAppointments(ctx, "owner-a", AppointmentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 4)

		day, err := store.ListAppointments(ctx, "owner-a", AppointmentFilter{From: "2024-04-01", To: "2024-04-01"})
		require.NoError(t, err)
		require.Len(t, day, 1)
		assert.Equal(t, "08:00", day[0].Time)
	})
}

func TestAppointments_NamesFollowPatientEdits(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		now := time.Now()
		patient := newPatient("owner-a", "Ana", now)
		require.NoError(t, store.InsertPatient(ctx, patient))
		require.NoError(t, store.InsertAppointment(ctx, &models.Appointment{
			ID: utils.NewRecordID("apt", now), OwnerID: "owner-a", PatientID: patient.ID, Date: "2024-05-01", Time: "10:00",
		}))

		before, err := store.ListAppointments(ctx, "owner-a", AppointmentFilter{})
		require.NoError(t, err)
		require.Len(t, before, 1)
		assert.Equal(t, "Ana", before[0].PatientName)

		_, err = store.UpdatePatient(ctx, "owner-a", patient.ID, models.PatientPatch{Name: strPtr("Ana Maria")})
		require.NoError(t, err)

		after, err := store.ListAppointments(ctx, "owner-a", AppointmentFilter{})
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.Equal(t, "Ana Maria", after[0].PatientName)
	})
}

func TestUsers_UniqueByEmail(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()
		user := &models.User{ID: "local_1", Email: "clinic@example.com", ClinicName: "Smile", CreatedAt: time.Now().UTC()}
		require.NoError(t, store.CreateUser(ctx, user))

		dup := &models.User{ID: "local_2", Email: "clinic@example.com", ClinicName: "Other", CreatedAt: time.Now().UTC()}
		assert.ErrorIs(t, store.CreateUser(ctx, dup), utils.ErrAlreadyRegistered)

		found, err := store.FindUserByEmail(ctx, "clinic@example.com")
		require.NoError(t, err)
		assert.Equal(t, "local_1", found.ID)
		assert.Equal(t, "Smile", found.ClinicName)

		_, err = store.FindUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})
}

func TestSession_SaveLoadClear(t *testing.T) {
	forEachBackend(t, func(t *testing.T, store Backend) {
		ctx := context.Background()

		token, err := store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)

		require.NoError(t, store.SaveSession(ctx, "first"))
		require.NoError(t, store.SaveSession(ctx, "second"))
		token, err = store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Equal(t, "second", token)

		require.NoError(t, store.ClearSession(ctx))
		token, err = store.LoadSession(ctx)
		require.NoError(t, err)
		assert.Empty(t, token)
	})
}

func TestLocalStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	store, err := OpenLocalStore(path)
	require.NoError(t, err)
	patient := newPatient("owner-a", "Ana", time.Now())
	require.NoError(t, store.InsertPatient(ctx, patient))
	require.NoError(t, store.SaveSession(ctx, "sealed"))
	require.NoError(t, store.Close())

	reopened, err := OpenLocalStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetPatient(ctx, "owner-a", patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	token, err := reopened.LoadSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sealed", token)
}

func TestAppointmentFilter_Contains(t *testing.T) {
	f := AppointmentFilter{From: "2024-03-01", To: "2024-03-31"}
	assert.True(t, f.Contains("2024-03-01"))
	assert.True(t, f.Contains("2024-03-31"))
	assert.False(t, f.Contains("2024-02-29"))
	assert.False(t, f.Contains("2024-04-01"))
	assert.True(t, AppointmentFilter{}.Contains("1999-01-01"))
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (string, error) {
	return "", errors.New("cache down")
}

func (brokenCache) Set(context.Context, string, string, time.Duration) error {
	return errors.New("cache down")
}

func (brokenCache) Delete(context.Context, string) error {
	return errors.New("cache down")
}

func (brokenCache) DeleteAll(context.Context, string) error {
	return errors.New("cache down")
}

func TestCachedRecordStore_CacheFailures(t *testing.T) {
	ctx := context.Background()
	backend := newSQLBackend(t)
	store := NewCachedRecordStore(backend, brokenCache{})

	patient := newPatient("owner-a", "Ana", time.Now())
	require.NoError(t, backend.InsertPatient(ctx, patient))

	got, err := store.GetPatient(ctx, "owner-a", patient.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)

	listed, err := store.ListPatients(ctx, "owner-a", OrderByNewest)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	err = store.InsertPatient(ctx, newPatient("owner-a", "Bruno", time.Now()))
	assert.ErrorIs(t, err, utils.ErrPersistence)
}

func TestCachedRecordStore_ServesFromCache(t *testing.T) {
	ctx := context.Background()
	backend := newSQLBackend(t)
	memory := cache.NewMemoryCache(time.Minute)
	store := NewCachedRecordStore(backend, memory)

	patient := newPatient("owner-a", "Ana", time.Now())
	require.NoError(t, store.InsertPatient(ctx, patient))

	_, err := store.ListPatients(ctx, "owner-a", OrderByNewest)
	require.NoError(t, err)
	cached, err := memory.Get(ctx, patientsCacheKey("owner-a", OrderByNewest))
	require.NoError(t, err)
	assert.Contains(t, cached, patient.ID)

	// Writes through the decorator drop the owner's list keys.
	require.NoError(t, store.InsertPatient(ctx, newPatient("owner-a", "Bruno", time.Now().Add(time.Second))))
	cached, err = memory.Get(ctx, patientsCacheKey("owner-a", OrderByNewest))
	require.NoError(t, err)
	assert.Empty(t, cached)
}
