package repositories

import (
	"DentalSimple/database"
	"DentalSimple/models"
	"DentalSimple/utils"
	"context"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog/log"
	bolt "go.etcd.io/bbolt"
)

// Top-level buckets of the local store. Patients, visits and appointments
// are kept in one child bucket per owner.
const (
	usersBucket        = "users"
	patientsBucket     = "patients"
	visitsBucket       = "visits"
	appointmentsBucket = "appointments"
	sessionBucket      = "session"

	sessionKey = "dental_user"
)

var localBuckets = []string{usersBucket, patientsBucket, visitsBucket, appointmentsBucket, sessionBucket}

var _ Backend = (*LocalStore)(nil)

// LocalStore is the device-local backend, backed by a bbolt file.
type LocalStore struct {
	db *bolt.DB
}

// OpenLocalStore opens the bbolt file at path, creating it when needed.
func OpenLocalStore(path string) (*LocalStore, error) {
	db, err := database.OpenBolt(path, localBuckets...)
	if err != nil {
		return nil, err
	}
	created, err := database.BoltCreated(db)
	if err != nil {
		db.Close()
		return nil, utils.Persistence("read local store metadata", err)
	}
	log.Info().Str("path", path).Time("created", created).Msg("local store opened")
	return &LocalStore{db: db}, nil
}

func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) put(op, bucket, ownerID, id string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return utils.Persistence(op, err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		owner, err := tx.Bucket([]byte(bucket)).CreateBucketIfNotExists([]byte(ownerID))
		if err != nil {
			return err
		}
		return owner.Put([]byte(id), data)
	})
	return utils.Persistence(op, err)
}

// ownerBucket returns nil when the owner has no records of this kind yet.
func ownerBucket(tx *bolt.Tx, bucket, ownerID string) *bolt.Bucket {
	return tx.Bucket([]byte(bucket)).Bucket([]byte(ownerID))
}

func (s *LocalStore) InsertPatient(ctx context.Context, patient *models.Patient) error {
	return s.put("create patient", patientsBucket, patient.OwnerID, patient.ID, patient)
}

func (s *LocalStore) GetPatient(ctx context.Context, ownerID, id string) (*models.Patient, error) {
	var patient *models.Patient
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		patient, err = getPatient(tx, ownerID, id)
		return err
	})
	if err != nil {
		return nil, utils.Persistence("get patient", err)
	}
	if patient == nil {
		return nil, utils.NotFound("patient", id)
	}
	return patient, nil
}

func getPatient(tx *bolt.Tx, ownerID, id string) (*models.Patient, error) {
	b := ownerBucket(tx, patientsBucket, ownerID)
	if b == nil {
		return nil, nil
	}
	data := b.Get([]byte(id))
	if data == nil {
		return nil, nil
	}
	var patient models.Patient
	if err := json.Unmarshal(data, &patient); err != nil {
		return nil, err
	}
	return &patient, nil
}

func (s *LocalStore) UpdatePatient(ctx context.Context, ownerID, id string, patch models.PatientPatch) (*models.Patient, error) {
	var patient *models.Patient
	err := s.db.Update(func(tx *bolt.Tx) error {
		var err error
		patient, err = getPatient(tx, ownerID, id)
		if err != nil || patient == nil {
			return err
		}
		patch.Apply(patient)
		data, err := json.Marshal(patient)
		if err != nil {
			return err
		}
		return ownerBucket(tx, patientsBucket, ownerID).Put([]byte(id), data)
	})
	if err != nil {
		return nil, utils.Persistence("update patient", err)
	}
	if patient == nil {
		return nil, utils.NotFound("patient", id)
	}
	return patient, nil
}

func (s *LocalStore) ListPatients(ctx context.Context, ownerID string, order PatientOrder) ([]models.Patient, error) {
	patients := []models.Patient{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := ownerBucket(tx, patientsBucket, ownerID)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var patient models.Patient
			if err := json.Unmarshal(v, &patient); err != nil {
				return err
			}
			patients = append(patients, patient)
			return nil
		})
	})
	if err != nil {
		return nil, utils.Persistence("list patients", err)
	}

	sort.Slice(patients, func(i, j int) bool {
		a, b := patients[i], patients[j]
		if order == OrderByName {
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return patients, nil
}

func (s *LocalStore) CountPatients(ctx context.Context, ownerID string) (int64, error) {
	var count int64
	err := s.db.View(func(tx *bolt.Tx) error {
		if b := ownerBucket(tx, patientsBucket, ownerID); b != nil {
			count = int64(b.Stats().KeyN)
		}
		return nil
	})
	if err != nil {
		return 0, utils.Persistence("count patients", err)
	}
	return count, nil
}

func (s *LocalStore) InsertVisit(ctx context.Context, visit *models.Visit) error {
	return s.put("create visit", visitsBucket, visit.OwnerID, visit.ID, visit)
}

func (s *LocalStore) ListVisits(ctx context.Context, ownerID, patientID string) ([]models.Visit, error) {
	visits := []models.Visit{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := ownerBucket(tx, visitsBucket, ownerID)
		if b == nil {
			return nil
		}
		return b.ForEach(func(_, v []byte) error {
			var visit models.Visit
			if err := json.Unmarshal(v, &visit); err != nil {
				return err
			}
			if visit.PatientID == patientID {
				visits = append(visits, visit)
			}
			return nil
		})
	})
	if err != nil {
		return nil, utils.Persistence("list visits", err)
	}

	sort.Slice(visits, func(i, j int) bool {
		if visits[i].Date != visits[j].Date {
			return visits[i].Date > visits[j].Date
		}
		return visits[i].ID > visits[j].ID
	})
	return visits, nil
}

func (s *LocalStore) InsertAppointment(ctx context.Context, appointment *models.Appointment) error {
	stored := *appointment
	stored.PatientName = ""
	return s.put("create appointment", appointmentsBucket, appointment.OwnerID, appointment.ID, &stored)
}

func (s *LocalStore) ListAppointments(ctx context.Context, ownerID string, filter AppointmentFilter) ([]models.Appointment, error) {
	appointments := []models.Appointment{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := ownerBucket(tx, appointmentsBucket, ownerID)
		if b == nil {
			return nil
		}
		names := map[string]string{}
		return b.ForEach(func(_, v []byte) error {
			var appointment models.Appointment
			if err := json.Unmarshal(v, &appointment); err != nil {
				return err
			}
			if !filter.Contains(appointment.Date) {
				return nil
			}
			name, ok := names[appointment.PatientID]
			if !ok {
				patient, err := getPatient(tx, ownerID, appointment.PatientID)
				if err != nil {
					return err
				}
				if patient != nil {
					name = patient.Name
				}
				names[appointment.PatientID] = name
			}
			appointment.PatientName = name
			appointments = append(appointments, appointment)
			return nil
		})
	})
	if err != nil {
		return nil, utils.Persistence("list appointments", err)
	}

	sort.Slice(appointments, func(i, j int) bool {
		a, b := appointments[i], appointments[j]
		if a.Time != b.Time {
			return a.Time < b.Time
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.ID < b.ID
	})
	return appointments, nil
}

func (s *LocalStore) CreateUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return utils.Persistence("create user", err)
	}
	exists := false
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(usersBucket))
		if b.Get([]byte(user.Email)) != nil {
			exists = true
			return nil
		}
		return b.Put([]byte(user.Email), data)
	})
	if err != nil {
		return utils.Persistence("create user", err)
	}
	if exists {
		return utils.ErrAlreadyRegistered
	}
	return nil
}

func (s *LocalStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user *models.User
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket([]byte(usersBucket)).Get([]byte(email))
		if data == nil {
			return nil
		}
		user = &models.User{}
		return json.Unmarshal(data, user)
	})
	if err != nil {
		return nil, utils.Persistence("get user", err)
	}
	if user == nil {
		return nil, utils.NotFound("user", email)
	}
	return user, nil
}

func (s *LocalStore) LoadSession(ctx context.Context) (string, error) {
	var token string
	err := s.db.View(func(tx *bolt.Tx) error {
		token = string(tx.Bucket([]byte(sessionBucket)).Get([]byte(sessionKey)))
		return nil
	})
	if err != nil {
		return "", utils.Persistence("load session", err)
	}
	return token, nil
}

func (s *LocalStore) SaveSession(ctx context.Context, token string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Put([]byte(sessionKey), []byte(token))
	})
	return utils.Persistence("save session", err)
}

func (s *LocalStore) ClearSession(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(sessionBucket)).Delete([]byte(sessionKey))
	})
	return utils.Persistence("clear session", err)
}
