package usecase

import (
	"context"
	"io"
	"time"

	"github.com/bookerhq/booker-backend/internal/core/domain"
	"github.com/bookerhq/booker-backend/internal/repository"
)

// Map-backed repository stubs shared across the usecase tests.

type userRepoStub struct {
	users     map[string]domain.User
	createErr error
	existsErr error
}

func newUserRepoStub() *userRepoStub {
	return &userRepoStub{users: make(map[string]domain.User)}
}

func (m *userRepoStub) Create(_ context.Context, user domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *userRepoStub) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := m.users[id]; ok {
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoStub) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *userRepoStub) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *userRepoStub) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	return users, nil
}

func (m *userRepoStub) UpdateProfile(_ context.Context, id, firstName, lastName string) error {
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.FirstName = firstName
	user.LastName = lastName
	m.users[id] = user
	return nil
}

func (m *userRepoStub) UpdateProfileImage(_ context.Context, id string, imageURL *string) error {
	user, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.ProfileImageURL = imageURL
	m.users[id] = user
	return nil
}

func (m *userRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type roleRepoStub struct {
	roles     map[string]domain.Role
	createErr error
	existsErr error
}

func newRoleRepoStub() *roleRepoStub {
	return &roleRepoStub{roles: make(map[string]domain.Role)}
}

func (m *roleRepoStub) Create(_ context.Context, role domain.Role) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, existing := range m.roles {
		if existing.Name == role.Name {
			return repository.ErrDuplicate
		}
	}
	m.roles[role.ID] = role
	return nil
}

func (m *roleRepoStub) GetByID(_ context.Context, id string) (*domain.Role, error) {
	if role, ok := m.roles[id]; ok {
		return &role, nil
	}
	return nil, repository.ErrNotFound
}

func (m *roleRepoStub) GetByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	for _, role := range m.roles {
		if role.Name == name {
			r := role
			return &r, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *roleRepoStub) ExistsByName(_ context.Context, name domain.RoleName) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, role := range m.roles {
		if role.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *roleRepoStub) List(_ context.Context) ([]domain.Role, error) {
	roles := make([]domain.Role, 0, len(m.roles))
	for _, role := range m.roles {
		roles = append(roles, role)
	}
	return roles, nil
}

func (m *roleRepoStub) Update(_ context.Context, role domain.Role) error {
	current, ok := m.roles[role.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Name = role.Name
	m.roles[role.ID] = current
	return nil
}

func (m *roleRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.roles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

type blacklistRepoStub struct {
	records   map[string]domain.InvalidatedToken
	insertErr error
	deleteErr error
	inserts   int
}

func newBlacklistRepoStub() *blacklistRepoStub {
	return &blacklistRepoStub{records: make(map[string]domain.InvalidatedToken)}
}

func (m *blacklistRepoStub) Insert(_ context.Context, record domain.InvalidatedToken) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserts++
	if _, ok := m.records[record.Token]; ok {
		return nil
	}
	m.records[record.Token] = record
	return nil
}

func (m *blacklistRepoStub) Exists(_ context.Context, token string) (bool, error) {
	_, ok := m.records[token]
	return ok, nil
}

func (m *blacklistRepoStub) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	if m.deleteErr != nil {
		return 0, m.deleteErr
	}
	var deleted int64
	for token, record := range m.records {
		if record.ExpiresAt.Before(cutoff) {
			delete(m.records, token)
			deleted++
		}
	}
	return deleted, nil
}

type ownerLookupStub struct {
	owners map[string]string
	err    error
}

func (m *ownerLookupStub) GetOwnerID(_ context.Context, id string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	owner, ok := m.owners[id]
	if !ok {
		return "", repository.ErrNotFound
	}
	return owner, nil
}

type appointmentRepoStub struct {
	appointments map[string]domain.Appointment
	createErr    error
}

func newAppointmentRepoStub() *appointmentRepoStub {
	return &appointmentRepoStub{appointments: make(map[string]domain.Appointment)}
}

func (m *appointmentRepoStub) Create(_ context.Context, appointment domain.Appointment) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.appointments[appointment.ID] = appointment
	return nil
}

func (m *appointmentRepoStub) GetByID(_ context.Context, id string) (*domain.Appointment, error) {
	if appointment, ok := m.appointments[id]; ok {
		return &appointment, nil
	}
	return nil, repository.ErrNotFound
}

func (m *appointmentRepoStub) GetOwnerID(_ context.Context, id string) (string, error) {
	if appointment, ok := m.appointments[id]; ok {
		return appointment.CustomerID, nil
	}
	return "", repository.ErrNotFound
}

func (m *appointmentRepoStub) ListByCustomer(_ context.Context, customerID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appointment := range m.appointments {
		if appointment.CustomerID == customerID {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (m *appointmentRepoStub) ListByProfessional(_ context.Context, professionalID string) ([]domain.Appointment, error) {
	var out []domain.Appointment
	for _, appointment := range m.appointments {
		if appointment.ProfessionalID == professionalID {
			out = append(out, appointment)
		}
	}
	return out, nil
}

func (m *appointmentRepoStub) UpdateStatus(_ context.Context, id string, status domain.AppointmentStatus) error {
	appointment, ok := m.appointments[id]
	if !ok {
		return repository.ErrNotFound
	}
	appointment.Status = status
	m.appointments[id] = appointment
	return nil
}

func (m *appointmentRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.appointments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.appointments, id)
	return nil
}

type serviceRepoStub struct {
	services map[string]domain.Service
}

func newServiceRepoStub() *serviceRepoStub {
	return &serviceRepoStub{services: make(map[string]domain.Service)}
}

func (m *serviceRepoStub) Create(_ context.Context, service domain.Service) error {
	m.services[service.ID] = service
	return nil
}

func (m *serviceRepoStub) GetByID(_ context.Context, id string) (*domain.Service, error) {
	if service, ok := m.services[id]; ok {
		return &service, nil
	}
	return nil, repository.ErrNotFound
}

func (m *serviceRepoStub) GetOwnerID(_ context.Context, id string) (string, error) {
	if service, ok := m.services[id]; ok {
		return service.ProfessionalID, nil
	}
	return "", repository.ErrNotFound
}

func (m *serviceRepoStub) List(_ context.Context, activeOnly bool) ([]domain.Service, error) {
	var out []domain.Service
	for _, service := range m.services {
		if activeOnly && !service.Active {
			continue
		}
		out = append(out, service)
	}
	return out, nil
}

func (m *serviceRepoStub) Update(_ context.Context, service domain.Service) error {
	if _, ok := m.services[service.ID]; !ok {
		return repository.ErrNotFound
	}
	m.services[service.ID] = service
	return nil
}

func (m *serviceRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.services[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.services, id)
	return nil
}

type eventPublisherStub struct {
	registered []domain.UserRegisteredEvent
	loggedIn   []domain.UserLoggedInEvent
	revoked    []domain.TokenRevokedEvent
	booked     []domain.AppointmentBookedEvent
	err        error
}

func (m *eventPublisherStub) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	if m.err != nil {
		return m.err
	}
	m.registered = append(m.registered, event)
	return nil
}

func (m *eventPublisherStub) PublishUserLoggedIn(_ context.Context, event domain.UserLoggedInEvent) error {
	if m.err != nil {
		return m.err
	}
	m.loggedIn = append(m.loggedIn, event)
	return nil
}

func (m *eventPublisherStub) PublishTokenRevoked(_ context.Context, event domain.TokenRevokedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.revoked = append(m.revoked, event)
	return nil
}

func (m *eventPublisherStub) PublishAppointmentBooked(_ context.Context, event domain.AppointmentBookedEvent) error {
	if m.err != nil {
		return m.err
	}
	m.booked = append(m.booked, event)
	return nil
}

type notificationStub struct {
	welcomes      []string
	confirmations []string
	err           error
}

func (m *notificationStub) SendWelcome(_ context.Context, email, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.welcomes = append(m.welcomes, email)
	return nil
}

func (m *notificationStub) SendAppointmentConfirmation(_ context.Context, email, _, _, _ string, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, email)
	return nil
}

type reviewRepoStub struct {
	reviews map[string]domain.Review
}

func newReviewRepoStub() *reviewRepoStub {
	return &reviewRepoStub{reviews: make(map[string]domain.Review)}
}

func (m *reviewRepoStub) Create(_ context.Context, review domain.Review) error {
	m.reviews[review.ID] = review
	return nil
}

func (m *reviewRepoStub) GetByID(_ context.Context, id string) (*domain.Review, error) {
	if review, ok := m.reviews[id]; ok {
		return &review, nil
	}
	return nil, repository.ErrNotFound
}

func (m *reviewRepoStub) GetOwnerID(_ context.Context, id string) (string, error) {
	if review, ok := m.reviews[id]; ok {
		return review.CustomerID, nil
	}
	return "", repository.ErrNotFound
}

func (m *reviewRepoStub) ListByProfessional(_ context.Context, professionalID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, review := range m.reviews {
		if review.ProfessionalID == professionalID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (m *reviewRepoStub) Update(_ context.Context, id string, rating int, comment *string) error {
	review, ok := m.reviews[id]
	if !ok {
		return repository.ErrNotFound
	}
	review.Rating = rating
	review.Comment = comment
	m.reviews[id] = review
	return nil
}

func (m *reviewRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

type paymentRepoStub struct {
	payments map[string]domain.Payment
}

func newPaymentRepoStub() *paymentRepoStub {
	return &paymentRepoStub{payments: make(map[string]domain.Payment)}
}

func (m *paymentRepoStub) Create(_ context.Context, payment domain.Payment) error {
	m.payments[payment.ID] = payment
	return nil
}

func (m *paymentRepoStub) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	if payment, ok := m.payments[id]; ok {
		return &payment, nil
	}
	return nil, repository.ErrNotFound
}

func (m *paymentRepoStub) ListByCustomer(_ context.Context, customerID string) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, payment := range m.payments {
		if payment.CustomerID == customerID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (m *paymentRepoStub) Delete(_ context.Context, id string) error {
	if _, ok := m.payments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.payments, id)
	return nil
}

type objectStorageStub struct {
	objects map[string][]byte
	baseURL string
	putErr  error
	removed []string
}

func newObjectStorageStub() *objectStorageStub {
	return &objectStorageStub{objects: make(map[string][]byte), baseURL: "/static"}
}

func (m *objectStorageStub) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	if m.putErr != nil {
		return "", m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return m.baseURL + "/" + key, nil
}

func (m *objectStorageStub) Remove(_ context.Context, key string) error {
	m.removed = append(m.removed, key)
	delete(m.objects, key)
	return nil
}
