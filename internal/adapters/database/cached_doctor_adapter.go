package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/clinicbook/clinicbook/internal/domain/entities"
	"github.com/clinicbook/clinicbook/internal/domain/providers"
	"github.com/clinicbook/clinicbook/internal/domain/repositories"
)

// CachedDoctorAdapter wraps DoctorAdapter with caching
type CachedDoctorAdapter struct {
	adapter repositories.DoctorRepository
	cache   providers.CacheProvider
}

// NewCachedDoctorAdapter creates a new cached doctor adapter
func NewCachedDoctorAdapter(adapter repositories.DoctorRepository, cache providers.CacheProvider) repositories.DoctorRepository {
	return &CachedDoctorAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	doctorByIDTTL     = 300 // 5 minutes for single doctor
	doctorsListTTL    = 120 // 2 minutes for the search listing
	specialtiesTTL    = 600 // 10 minutes for the specialty picker
	doctorsListKey    = "doctors:list"
	specialtiesKey    = "doctors:specialties"
	doctorCacheKeyFmt = "doctor:%s"
)

func doctorCacheKey(id string) string {
	return fmt.Sprintf(doctorCacheKeyFmt, id)
}

// GetByID retrieves a doctor by ID with caching
func (a *CachedDoctorAdapter) GetByID(ctx context.Context, id string) (*entities.Doctor, error) {
	cacheKey := doctorCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var doctor entities.Doctor
		if err := json.Unmarshal(cached, &doctor); err == nil {
			return &doctor, nil
		}
		log.Printf("Failed to unmarshal cached doctor %s: %v", id, err)
	}

	doctor, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctor); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, doctorByIDTTL); err != nil {
				log.Printf("Failed to cache doctor %s: %v", id, err)
			}
		}
	}()

	return doctor, nil
}

// GetByUserID resolves the doctor profile of a doctor user. Not cached;
// it runs once per login.
func (a *CachedDoctorAdapter) GetByUserID(ctx context.Context, userID string) (*entities.Doctor, error) {
	return a.adapter.GetByUserID(ctx, userID)
}

// List retrieves all doctors with caching
func (a *CachedDoctorAdapter) List(ctx context.Context) ([]*entities.Doctor, error) {
	if cached, err := a.cache.Get(ctx, doctorsListKey); err == nil {
		var doctors []*entities.Doctor
		if err := json.Unmarshal(cached, &doctors); err == nil {
			return doctors, nil
		}
		log.Printf("Failed to unmarshal cached doctor list: %v", err)
	}

	doctors, err := a.adapter.List(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(doctors); err == nil {
			if err := a.cache.Set(bgCtx, doctorsListKey, data, doctorsListTTL); err != nil {
				log.Printf("Failed to cache doctor list: %v", err)
			}
		}
	}()

	return doctors, nil
}

// Specialties lists the distinct specialties with caching
func (a *CachedDoctorAdapter) Specialties(ctx context.Context) ([]string, error) {
	if cached, err := a.cache.Get(ctx, specialtiesKey); err == nil {
		var specialties []string
		if err := json.Unmarshal(cached, &specialties); err == nil {
			return specialties, nil
		}
		log.Printf("Failed to unmarshal cached specialties: %v", err)
	}

	specialties, err := a.adapter.Specialties(ctx)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(specialties); err == nil {
			if err := a.cache.Set(bgCtx, specialtiesKey, data, specialtiesTTL); err != nil {
				log.Printf("Failed to cache specialties: %v", err)
			}
		}
	}()

	return specialties, nil
}

// Create creates a doctor and invalidates list caches
func (a *CachedDoctorAdapter) Create(ctx context.Context, doctor *entities.Doctor) error {
	if err := a.adapter.Create(ctx, doctor); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	return nil
}

// CreateWithUser creates a doctor with its user account and invalidates
// list caches
func (a *CachedDoctorAdapter) CreateWithUser(ctx context.Context, user *entities.User, doctor *entities.Doctor) error {
	if err := a.adapter.CreateWithUser(ctx, user, doctor); err != nil {
		return err
	}
	a.invalidateLists(ctx)
	return nil
}

// Update updates a doctor and invalidates its caches
func (a *CachedDoctorAdapter) Update(ctx context.Context, doctor *entities.Doctor) error {
	if err := a.adapter.Update(ctx, doctor); err != nil {
		return err
	}
	a.invalidate(ctx, doctor.ID)
	return nil
}

// Delete deletes a doctor and invalidates its caches
func (a *CachedDoctorAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

func (a *CachedDoctorAdapter) invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, doctorCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate doctor cache %s: %v", id, err)
	}
	a.invalidateLists(ctx)
}

func (a *CachedDoctorAdapter) invalidateLists(ctx context.Context) {
	for _, key := range []string{doctorsListKey, specialtiesKey} {
		if err := a.cache.Delete(ctx, key); err != nil {
			log.Printf("Failed to invalidate cache key %s: %v", key, err)
		}
	}
}
