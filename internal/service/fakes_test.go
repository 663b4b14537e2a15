package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/amity-app/amity-service/internal/domain"
	"github.com/amity-app/amity-service/internal/events"
	"github.com/amity-app/amity-service/internal/repository"
)

// In-memory repository fakes for exercising services without a database.

type fakeIdentityRepo struct {
	mu         sync.Mutex
	identities map[string]*domain.Identity
	profiles   *fakeProfileRepo
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{identities: make(map[string]*domain.Identity)}
}

func (r *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	identity.ID = uuid.NewString()
	identity.CreatedAt = time.Now()
	identity.UpdatedAt = identity.CreatedAt
	clone := *identity
	r.identities[identity.ID] = &clone
	return nil
}

func (r *fakeIdentityRepo) Update(_ context.Context, identity *domain.Identity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[identity.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.FirstName = identity.FirstName
	stored.LastName = identity.LastName
	stored.PhoneNumber = identity.PhoneNumber
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeIdentityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.identities {
		if stored.Email == email {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeIdentityRepo) SetSecurityCode(_ context.Context, id, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.SecurityCode = &code
	return nil
}

func (r *fakeIdentityRepo) SetPasswordHash(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.PasswordHash = hash
	return nil
}

func (r *fakeIdentityRepo) SetActive(_ context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.identities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Active = active
	return nil
}

func (r *fakeIdentityRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.Identity, error) {
	if r.profiles == nil {
		return nil, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Identity
	for _, stored := range r.identities {
		if r.profiles.hasRole(stored.ID, role) {
			result = append(result, *stored)
		}
	}
	return result, nil
}

func (r *fakeIdentityRepo) seed(identity domain.Identity) *domain.Identity {
	r.mu.Lock()
	defer r.mu.Unlock()
	if identity.ID == "" {
		identity.ID = uuid.NewString()
	}
	clone := identity
	r.identities[identity.ID] = &clone
	return &clone
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*domain.Profile)}
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now()
	clone := *profile
	r.profiles[profile.ID] = &clone
	return nil
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeProfileRepo) hasRole(identityID string, role domain.Role) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.profiles {
		if stored.IdentityID == identityID && stored.Role == role {
			return true
		}
	}
	return false
}

func (r *fakeProfileRepo) ListByIdentity(_ context.Context, identityID string) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Profile
	for _, role := range domain.AllRoles {
		for _, stored := range r.profiles {
			if stored.IdentityID == identityID && stored.Role == role {
				result = append(result, *stored)
			}
		}
	}
	return result, nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*domain.CredentialToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*domain.CredentialToken)}
}

func (r *fakeTokenRepo) GetOrCreate(_ context.Context, identityID string, kind domain.TokenKind) (*domain.CredentialToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.IdentityID == identityID && stored.Kind == kind {
			clone := *stored
			return &clone, nil
		}
	}
	token := &domain.CredentialToken{
		ID:         uuid.NewString(),
		IdentityID: identityID,
		Kind:       kind,
		Value:      uuid.NewString(),
		CreatedAt:  time.Now(),
	}
	r.tokens[token.ID] = token
	clone := *token
	return &clone, nil
}

func (r *fakeTokenRepo) GetByValue(_ context.Context, value string) (*domain.CredentialToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.tokens {
		if stored.Value == value {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeTokenRepo) DeleteAllForIdentity(_ context.Context, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.tokens {
		if stored.IdentityID == identityID {
			delete(r.tokens, id)
		}
	}
	return nil
}

func (r *fakeTokenRepo) countForIdentity(identityID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, stored := range r.tokens {
		if stored.IdentityID == identityID {
			count++
		}
	}
	return count
}

type fakeResource struct {
	name        string
	communityID string
	contact     *string
}

type fakeBindingRepo struct {
	mu          sync.Mutex
	communities map[string]*fakeResource
	buildings   map[string]*fakeResource
}

func newFakeBindingRepo() *fakeBindingRepo {
	return &fakeBindingRepo{
		communities: make(map[string]*fakeResource),
		buildings:   make(map[string]*fakeResource),
	}
}

func (r *fakeBindingRepo) UnassignedCommunities(_ context.Context) ([]domain.ResourceRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ResourceRef
	for id, resource := range r.communities {
		if resource.contact == nil {
			result = append(result, domain.ResourceRef{ID: id, Name: resource.name})
		}
	}
	return result, nil
}

func (r *fakeBindingRepo) UnassignedBuildings(_ context.Context, communityID *string) ([]domain.ResourceRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.ResourceRef
	for id, resource := range r.buildings {
		if resource.contact != nil {
			continue
		}
		if communityID != nil && resource.communityID != *communityID {
			continue
		}
		result = append(result, domain.ResourceRef{ID: id, Name: resource.name})
	}
	return result, nil
}

func (r *fakeBindingRepo) BindCommunityContact(_ context.Context, communityID, identityID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.communities[communityID]
	if !ok {
		return false, nil
	}
	resource.contact = &identityID
	return true, nil
}

func (r *fakeBindingRepo) BindBuildingContact(_ context.Context, buildingID, identityID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.buildings[buildingID]
	if !ok {
		return false, nil
	}
	resource.contact = &identityID
	return true, nil
}

func (r *fakeBindingRepo) UnbindAll(_ context.Context, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, resource := range r.communities {
		if resource.contact != nil && *resource.contact == identityID {
			resource.contact = nil
		}
	}
	for _, resource := range r.buildings {
		if resource.contact != nil && *resource.contact == identityID {
			resource.contact = nil
		}
	}
	return nil
}

type fakeCommunityRepo struct {
	mu          sync.Mutex
	communities map[string]*domain.Community
	searchTerms []string
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{communities: make(map[string]*domain.Community)}
}

func (r *fakeCommunityRepo) Create(_ context.Context, community *domain.Community) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	community.ID = uuid.NewString()
	community.CreatedAt = time.Now()
	community.UpdatedAt = community.CreatedAt
	clone := *community
	r.communities[community.ID] = &clone
	return nil
}

func (r *fakeCommunityRepo) Update(_ context.Context, community *domain.Community) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.communities[community.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *community
	clone.UpdatedAt = time.Now()
	r.communities[community.ID] = &clone
	return nil
}

func (r *fakeCommunityRepo) GetByID(_ context.Context, id string) (*domain.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.communities[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeCommunityRepo) SetSafetyStatus(_ context.Context, id string, status bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.communities[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.SafetyStatus = status
	return nil
}

func (r *fakeCommunityRepo) List(_ context.Context, filter repository.CommunityFilter) ([]domain.Community, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Community
	for _, stored := range r.communities {
		if filter.ContactPerson != nil {
			if stored.ContactPerson == nil || *stored.ContactPerson != *filter.ContactPerson {
				continue
			}
		}
		if filter.SafetyStatus != nil && stored.SafetyStatus != *filter.SafetyStatus {
			continue
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *fakeCommunityRepo) SearchTerms(_ context.Context) ([]string, error) {
	return r.searchTerms, nil
}

func (r *fakeCommunityRepo) seed(community domain.Community) *domain.Community {
	r.mu.Lock()
	defer r.mu.Unlock()
	if community.ID == "" {
		community.ID = uuid.NewString()
	}
	clone := community
	r.communities[community.ID] = &clone
	return &clone
}

type fakeBuildingRepo struct {
	mu        sync.Mutex
	buildings map[string]*domain.Building
}

func newFakeBuildingRepo() *fakeBuildingRepo {
	return &fakeBuildingRepo{buildings: make(map[string]*domain.Building)}
}

func (r *fakeBuildingRepo) Create(_ context.Context, building *domain.Building) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	building.ID = uuid.NewString()
	building.CreatedAt = time.Now()
	building.UpdatedAt = building.CreatedAt
	clone := *building
	r.buildings[building.ID] = &clone
	return nil
}

func (r *fakeBuildingRepo) Update(_ context.Context, building *domain.Building) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.buildings[building.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *building
	clone.UpdatedAt = time.Now()
	r.buildings[building.ID] = &clone
	return nil
}

func (r *fakeBuildingRepo) GetByID(_ context.Context, id string) (*domain.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.buildings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *stored
	return &clone, nil
}

func (r *fakeBuildingRepo) SetSafetyStatus(_ context.Context, id string, status bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.buildings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.SafetyStatus = status
	return nil
}

func (r *fakeBuildingRepo) List(_ context.Context, filter repository.BuildingFilter) ([]domain.Building, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Building
	for _, stored := range r.buildings {
		if filter.CommunityID != nil && stored.CommunityID != *filter.CommunityID {
			continue
		}
		if filter.ContactPerson != nil {
			if stored.ContactPerson == nil || *stored.ContactPerson != *filter.ContactPerson {
				continue
			}
		}
		result = append(result, *stored)
	}
	return result, nil
}

func (r *fakeBuildingRepo) seed(building domain.Building) *domain.Building {
	r.mu.Lock()
	defer r.mu.Unlock()
	if building.ID == "" {
		building.ID = uuid.NewString()
	}
	clone := building
	r.buildings[building.ID] = &clone
	return &clone
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}

func (d *recordingDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, event := range d.published {
		if event.Type == eventType {
			result = append(result, event)
		}
	}
	return result
}
