package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/FractalFish/recruitment-portal/internal/models"
	pgrepo "github.com/FractalFish/recruitment-portal/internal/repositories/postgres"
	"github.com/FractalFish/recruitment-portal/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// ── person ────────────────────────────────────────────────────────────────

type fakePersonRepo struct {
	byID   map[uint]*models.Person
	nextID uint
}

func newFakePersonRepo(persons ...*models.Person) *fakePersonRepo {
	f := &fakePersonRepo{byID: map[uint]*models.Person{}, nextID: 1}
	for _, p := range persons {
		if p.PersonID == 0 {
			p.PersonID = f.nextID
		}
		if p.PersonID >= f.nextID {
			f.nextID = p.PersonID + 1
		}
		f.byID[p.PersonID] = p
	}
	return f
}

func (f *fakePersonRepo) Create(_ context.Context, p *models.Person) error {
	p.PersonID = f.nextID
	f.nextID++
	f.byID[p.PersonID] = p
	return nil
}

func (f *fakePersonRepo) FindByID(_ context.Context, id uint) (*models.Person, error) {
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakePersonRepo) FindByUsername(_ context.Context, username string) (*models.Person, error) {
	for _, p := range f.byID {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakePersonRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := f.FindByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakePersonRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// ── role ──────────────────────────────────────────────────────────────────

type fakeRoleRepo struct {
	byName map[string]*models.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{byName: map[string]*models.Role{
		models.RoleApplicant: {RoleID: 1, Name: models.RoleApplicant},
		models.RoleRecruiter: {RoleID: 2, Name: models.RoleRecruiter},
	}}
}

func (f *fakeRoleRepo) FindByName(_ context.Context, name string) (*models.Role, error) {
	if r, ok := f.byName[name]; ok {
		return r, nil
	}
	return nil, utils.ErrNotFound
}

// ── competence catalog ────────────────────────────────────────────────────

type fakeCompetenceRepo struct {
	catalog  []models.Competence
	allCalls int
}

func newFakeCompetenceRepo() *fakeCompetenceRepo {
	return &fakeCompetenceRepo{catalog: []models.Competence{
		{CompetenceID: 1, Name: "ticket sales"},
		{CompetenceID: 2, Name: "lotteries"},
		{CompetenceID: 3, Name: "roller coaster operation"},
	}}
}

func (f *fakeCompetenceRepo) All(_ context.Context) ([]models.Competence, error) {
	f.allCalls++
	return f.catalog, nil
}

func (f *fakeCompetenceRepo) FindByID(_ context.Context, id uint) (*models.Competence, error) {
	for i := range f.catalog {
		if f.catalog[i].CompetenceID == id {
			return &f.catalog[i], nil
		}
	}
	return nil, utils.ErrNotFound
}

// ── competence profiles ───────────────────────────────────────────────────

type fakeProfileRepo struct {
	rows    []models.CompetenceProfile
	nextID  uint
	deletes int
	creates int
}

func (f *fakeProfileRepo) ListByPersonID(_ context.Context, personID uint) ([]models.CompetenceProfile, error) {
	out := make([]models.CompetenceProfile, 0)
	for _, r := range f.rows {
		if r.PersonID == personID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeProfileRepo) DeleteByPersonID(_ context.Context, personID uint) error {
	f.deletes++
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.PersonID != personID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeProfileRepo) Create(_ context.Context, p *models.CompetenceProfile) error {
	f.creates++
	f.nextID++
	p.CompetenceProfileID = f.nextID
	f.rows = append(f.rows, *p)
	return nil
}

// ── availabilities ────────────────────────────────────────────────────────

type fakeAvailabilityRepo struct {
	rows    []models.Availability
	nextID  uint
	deletes int
	creates int
}

func (f *fakeAvailabilityRepo) ListByPersonID(_ context.Context, personID uint) ([]models.Availability, error) {
	out := make([]models.Availability, 0)
	for _, r := range f.rows {
		if r.PersonID == personID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAvailabilityRepo) DeleteByPersonID(_ context.Context, personID uint) error {
	f.deletes++
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.PersonID != personID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

func (f *fakeAvailabilityRepo) Create(_ context.Context, a *models.Availability) error {
	f.creates++
	f.nextID++
	a.AvailabilityID = f.nextID
	f.rows = append(f.rows, *a)
	return nil
}

// ── applications ──────────────────────────────────────────────────────────

// fakeApplicationRepo mirrors the store's compare-and-swap semantics: the
// version increments on every successful write, and an enforced check fails
// with ErrVersionConflict when it no longer matches.
type fakeApplicationRepo struct {
	apps   map[uint]*models.Application
	nextID uint

	listRows  []models.Application
	listTotal int64
}

func newFakeApplicationRepo(apps ...*models.Application) *fakeApplicationRepo {
	f := &fakeApplicationRepo{apps: map[uint]*models.Application{}, nextID: 1}
	for _, a := range apps {
		if a.ApplicationID == 0 {
			a.ApplicationID = f.nextID
		}
		if a.ApplicationID >= f.nextID {
			f.nextID = a.ApplicationID + 1
		}
		f.apps[a.ApplicationID] = a
	}
	return f
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id uint) (*models.Application, error) {
	if a, ok := f.apps[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, utils.ErrNotFound
}

func (f *fakeApplicationRepo) FindByPersonID(_ context.Context, personID uint) (*models.Application, error) {
	for _, a := range f.apps {
		if a.PersonID == personID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeApplicationRepo) ExistsByPersonID(ctx context.Context, personID uint) (bool, error) {
	_, err := f.FindByPersonID(ctx, personID)
	return err == nil, nil
}

func (f *fakeApplicationRepo) FindOrCreateByPersonID(ctx context.Context, personID uint) (*models.Application, error) {
	if a, err := f.FindByPersonID(ctx, personID); err == nil {
		return a, nil
	}
	now := time.Now().UTC()
	a := &models.Application{
		ApplicationID: f.nextID,
		PersonID:      personID,
		Status:        models.StatusUnhandled,
		CreatedAt:     now,
		UpdatedAt:     now,
		Version:       0,
		HistoryLog:    datatypes.JSON("[]"),
	}
	f.nextID++
	f.apps[a.ApplicationID] = a
	cp := *a
	return &cp, nil
}

func (f *fakeApplicationRepo) List(_ context.Context, _ *models.ApplicationStatus, _, _ int) ([]models.Application, int64, error) {
	return f.listRows, f.listTotal, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id uint, newStatus models.ApplicationStatus, check pgrepo.VersionCheck) (*models.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	if expected, enforced := check.Expected(); enforced && expected != a.Version {
		return nil, utils.ErrVersionConflict
	}
	a.Status = newStatus
	a.Version++
	a.UpdatedAt = time.Now().UTC()
	cp := *a
	return &cp, nil
}

// ── transactions ──────────────────────────────────────────────────────────

type fakeTx struct {
	store *pgrepo.Store
}

func (f *fakeTx) Transaction(_ context.Context, fn func(*pgrepo.Store) error) error {
	return fn(f.store)
}

// ── cache ─────────────────────────────────────────────────────────────────

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{data: map[string][]byte{}} }

func (f *fakeCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	b, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (f *fakeCache) SetJSON(_ context.Context, key string, val any, _ time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}
