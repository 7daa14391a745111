package service

import (
	"context"
	"sync"
	"time"

	"github.com/solomonczyk/autoservice/internal/entity"
)

// In-memory реализации репозиториев для тестов сервисного слоя

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]*entity.Appointment

	createErr         error
	updateStatusCalls int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]*entity.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	appointment.ID = r.nextID
	appointment.CreatedAt = time.Now()
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return nil, entity.ErrAppointmentNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.appointments[appointment.ID]; !ok {
		return entity.ErrAppointmentNotFound
	}
	stored := *appointment
	r.appointments[appointment.ID] = &stored
	return nil
}

func (r *fakeAppointmentRepo) UpdateStatus(_ context.Context, id int64, status entity.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.appointments[id]
	if !ok {
		return entity.ErrAppointmentNotFound
	}
	r.updateStatusCalls++
	stored.Status = status
	return nil
}

func (r *fakeAppointmentRepo) ListByShop(_ context.Context, shopID int64, from, to time.Time) ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.Appointment, 0)
	for _, stored := range r.appointments {
		start := stored.StartTime.Time
		if stored.ShopID == shopID && !start.Before(from) && start.Before(to) {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) ListByClient(_ context.Context, clientID int64) ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.Appointment, 0)
	for _, stored := range r.appointments {
		if stored.ClientID == clientID {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) ListOverlapping(_ context.Context, shopID int64, from, to time.Time, excludeID int64) ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.Appointment, 0)
	for _, stored := range r.appointments {
		start := stored.StartTime.Time
		if stored.ShopID != shopID || !stored.Status.Blocks() {
			continue
		}
		if excludeID > 0 && stored.ID == excludeID {
			continue
		}
		if !start.Before(from) && start.Before(to) {
			copied := *stored
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) ListReminders(_ context.Context, _, _ time.Time) ([]*entity.AppointmentReminder, error) {
	return nil, nil
}

type fakeClientRepo struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]*entity.Client

	// phoneMissOnce заставляет первый GetByPhone промахнуться: имитация
	// гонки, когда параллельная вставка успевает между чтением и записью
	phoneMissOnce bool
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[int64]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.clients {
		if stored.Phone == client.Phone {
			return entity.ErrClientExists
		}
	}
	r.nextID++
	client.ID = r.nextID
	stored := *client
	r.clients[client.ID] = &stored
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id int64) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.clients[id]
	if !ok {
		return nil, entity.ErrClientNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeClientRepo) GetByPhone(_ context.Context, phone string) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phoneMissOnce {
		r.phoneMissOnce = false
		return nil, entity.ErrClientNotFound
	}
	for _, stored := range r.clients {
		if stored.Phone == phone {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, entity.ErrClientNotFound
}

func (r *fakeClientRepo) GetByTelegramID(_ context.Context, telegramID int64) (*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, stored := range r.clients {
		if stored.TelegramID != nil && *stored.TelegramID == telegramID {
			copied := *stored
			return &copied, nil
		}
	}
	return nil, entity.ErrClientNotFound
}

func (r *fakeClientRepo) UpdateTelegramID(_ context.Context, clientID, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.clients[clientID]
	if !ok {
		return entity.ErrClientNotFound
	}
	stored.TelegramID = &telegramID
	return nil
}

func (r *fakeClientRepo) GetAll(_ context.Context) ([]*entity.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.Client, 0, len(r.clients))
	for _, stored := range r.clients {
		copied := *stored
		result = append(result, &copied)
	}
	return result, nil
}

type fakeServiceRepo struct {
	mu       sync.Mutex
	services map[int64]*entity.Service

	// услуги, на которые ссылаются записи: их удаление отклоняется,
	// как это делает защита в постгресовом репозитории
	inUse map[int64]bool
}

func newFakeServiceRepo(services ...*entity.Service) *fakeServiceRepo {
	r := &fakeServiceRepo{
		services: make(map[int64]*entity.Service),
		inUse:    make(map[int64]bool),
	}
	for _, svc := range services {
		r.services[svc.ID] = svc
	}
	return r
}

func (r *fakeServiceRepo) Create(_ context.Context, service *entity.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	service.ID = int64(len(r.services) + 1)
	r.services[service.ID] = service
	return nil
}

func (r *fakeServiceRepo) GetByID(_ context.Context, id int64) (*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	svc, ok := r.services[id]
	if !ok {
		return nil, entity.ErrServiceNotFound
	}
	return svc, nil
}

func (r *fakeServiceRepo) GetAll(_ context.Context) ([]*entity.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*entity.Service, 0, len(r.services))
	for _, svc := range r.services {
		result = append(result, svc)
	}
	return result, nil
}

func (r *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.services[id]; !ok {
		return entity.ErrServiceNotFound
	}
	if r.inUse[id] {
		return entity.ErrServiceInUse
	}
	delete(r.services, id)
	return nil
}

type fakeShopRepo struct {
	shops map[int64]*entity.Shop
}

func newFakeShopRepo(shops ...*entity.Shop) *fakeShopRepo {
	r := &fakeShopRepo{shops: make(map[int64]*entity.Shop)}
	for _, shop := range shops {
		r.shops[shop.ID] = shop
	}
	return r
}

func (r *fakeShopRepo) GetByID(_ context.Context, id int64) (*entity.Shop, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, entity.ErrShopNotFound
	}
	return shop, nil
}

func (r *fakeShopRepo) GetAll(_ context.Context) ([]*entity.Shop, error) {
	result := make([]*entity.Shop, 0, len(r.shops))
	for _, shop := range r.shops {
		result = append(result, shop)
	}
	return result, nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, user := range users {
		r.users[user.Username] = user
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, entity.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// fakePublisher собирает опубликованные события изменений
type fakePublisher struct {
	mu     sync.Mutex
	events []entity.ChangeEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event entity.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *fakePublisher) published() []entity.ChangeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]entity.ChangeEvent, len(p.events))
	copy(result, p.events)
	return result
}

// fakeNotifier собирает отправленные сообщения
type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	chatIDs  []int64
}

func (n *fakeNotifier) SendMessage(chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.chatIDs = append(n.chatIDs, chatID)
	n.messages = append(n.messages, text)
	return nil
}

func (n *fakeNotifier) sentCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

// stubLocker имитирует координатор блокировок с фиксированным ответом
type stubLocker struct {
	granted bool
	err     error
}

func (l *stubLocker) TryAcquire(_ context.Context, _ string, _ time.Duration) (bool, error) {
	return l.granted, l.err
}

func (l *stubLocker) Release(_ context.Context, _ string) error {
	return nil
}
