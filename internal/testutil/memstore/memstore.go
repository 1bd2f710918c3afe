// Package memstore implementa los puertos de repositorio en memoria para tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/finanzas-api/internal/domain"
	"github.com/jhoicas/finanzas-api/internal/domain/entity"
	"github.com/jhoicas/finanzas-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*Store)(nil)
	_ repository.BudgetRepository       = (*Budgets)(nil)
	_ repository.ExpenseRepository      = (*Expenses)(nil)
	_ repository.SpendingRepository     = (*Expenses)(nil)
	_ repository.GoalRepository         = (*Goals)(nil)
	_ repository.DebtRepository         = (*Debts)(nil)
	_ repository.NotificationRepository = (*Notifications)(nil)
	_ repository.OTPRepository          = (*OTPs)(nil)
)

// Store agrupa todos los repositorios en memoria. Store mismo implementa UserRepository.
type Store struct {
	mu    sync.Mutex
	users map[string]*entity.User

	Budgets       *Budgets
	Expenses      *Expenses
	Goals         *Goals
	Debts         *Debts
	Notifications *Notifications
	OTPs          *OTPs
}

// New construye un Store vacío.
func New() *Store {
	return &Store{
		users:         make(map[string]*entity.User),
		Budgets:       &Budgets{items: make(map[string]*entity.Budget)},
		Expenses:      &Expenses{items: make(map[string]*entity.Expense)},
		Goals:         &Goals{items: make(map[string]*entity.Goal)},
		Debts:         &Debts{items: make(map[string]*entity.Debt)},
		Notifications: &Notifications{},
		OTPs:          &OTPs{items: make(map[string]entity.OTPRecord)},
	}
}

// RunSpending ejecuta fn con los repositorios en memoria. No hay rollback: los tests
// que necesitan atomicidad usan un runner propio.
func (s *Store) RunSpending(_ context.Context, fn func(
	expenseRepo repository.ExpenseRepository,
	spendingRepo repository.SpendingRepository,
	budgetRepo repository.BudgetRepository,
	notificationRepo repository.NotificationRepository,
) error) error {
	return fn(s.Expenses, s.Expenses, s.Budgets, s.Notifications)
}

// ── Users ─────────────────────────────────────────────────────────────────────

func (s *Store) Create(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetByID(id string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *Store) GetByEmail(email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *Store) Update(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) List(limit, offset int) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })
	return page(all, limit, offset), nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

// ── Budgets ───────────────────────────────────────────────────────────────────

// Budgets BudgetRepository en memoria.
type Budgets struct {
	mu    sync.Mutex
	items map[string]*entity.Budget // userID|month
}

func (r *Budgets) Upsert(_ context.Context, b *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := b.UserID + "|" + b.Month
	if prev, ok := r.items[key]; ok {
		b.ID = prev.ID
		b.CreatedAt = prev.CreatedAt
	}
	cp := *b
	cp.Items = append([]entity.BudgetItem(nil), b.Items...)
	r.items[key] = &cp
	return nil
}

func (r *Budgets) GetByMonth(_ context.Context, userID, month string) (*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.items[userID+"|"+month]; ok {
		cp := *b
		cp.Items = append([]entity.BudgetItem(nil), b.Items...)
		return &cp, nil
	}
	return nil, nil
}

func (r *Budgets) ListByUser(_ context.Context, userID string, limit int) ([]*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Budget
	for _, b := range r.items {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return page(out, limit, 0), nil
}

// ── Expenses ──────────────────────────────────────────────────────────────────

// Expenses ExpenseRepository y SpendingRepository en memoria.
type Expenses struct {
	mu    sync.Mutex
	items map[string]*entity.Expense
}

func (r *Expenses) Create(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.items[e.ID] = &cp
	return nil
}

func (r *Expenses) GetByID(_ context.Context, userID, id string) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; ok && e.UserID == userID {
		cp := *e
		return &cp, nil
	}
	return nil, nil
}

func (r *Expenses) ListByPeriod(_ context.Context, userID string, from, to time.Time, limit, offset int) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Expense
	for _, e := range r.items {
		if e.UserID == userID && !e.SpentAt.Before(from) && e.SpentAt.Before(to) {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SpentAt.After(out[j].SpentAt) })
	return page(out, limit, offset), nil
}

func (r *Expenses) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.items[id]; !ok || e.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *Expenses) SumByCategory(_ context.Context, userID string, from, to time.Time) ([]repository.CategorySpend, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byCat := make(map[string]*repository.CategorySpend)
	for _, e := range r.items {
		if e.UserID != userID || e.SpentAt.Before(from) || !e.SpentAt.Before(to) {
			continue
		}
		cs, ok := byCat[e.Category]
		if !ok {
			cs = &repository.CategorySpend{Category: e.Category, Total: decimal.Zero}
			byCat[e.Category] = cs
		}
		cs.Total = cs.Total.Add(e.Amount)
		cs.Count++
	}
	out := make([]repository.CategorySpend, 0, len(byCat))
	for _, cs := range byCat {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *Expenses) SumForCategory(ctx context.Context, userID, category string, from, to time.Time) (decimal.Decimal, error) {
	all, _ := r.SumByCategory(ctx, userID, from, to)
	for _, cs := range all {
		if cs.Category == category {
			return cs.Total, nil
		}
	}
	return decimal.Zero, nil
}

// ── Goals ─────────────────────────────────────────────────────────────────────

// Goals GoalRepository en memoria.
type Goals struct {
	mu    sync.Mutex
	items map[string]*entity.Goal
}

func (r *Goals) Create(_ context.Context, g *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *g
	r.items[g.ID] = &cp
	return nil
}

func (r *Goals) GetByID(_ context.Context, userID, id string) (*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.items[id]; ok && g.UserID == userID {
		cp := *g
		return &cp, nil
	}
	return nil, nil
}

func (r *Goals) ListByUser(_ context.Context, userID string) ([]*entity.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Goal
	for _, g := range r.items {
		if g.UserID == userID {
			cp := *g
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Goals) Update(_ context.Context, g *entity.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[g.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *g
	r.items[g.ID] = &cp
	return nil
}

func (r *Goals) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if g, ok := r.items[id]; !ok || g.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ── Debts ─────────────────────────────────────────────────────────────────────

// Debts DebtRepository en memoria.
type Debts struct {
	mu    sync.Mutex
	items map[string]*entity.Debt
}

func (r *Debts) Create(_ context.Context, d *entity.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *Debts) GetByID(_ context.Context, userID, id string) (*entity.Debt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.items[id]; ok && d.UserID == userID {
		cp := *d
		return &cp, nil
	}
	return nil, nil
}

func (r *Debts) ListByUser(_ context.Context, userID string) ([]*entity.Debt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Debt
	for _, d := range r.items {
		if d.UserID == userID {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *Debts) Update(_ context.Context, d *entity.Debt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.items[d.ID] = &cp
	return nil
}

func (r *Debts) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.items[id]; !ok || d.UserID != userID {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// ── Notifications ─────────────────────────────────────────────────────────────

// Notifications NotificationRepository en memoria (orden de inserción).
type Notifications struct {
	mu    sync.Mutex
	items []*entity.Notification
}

func (r *Notifications) Create(_ context.Context, n *entity.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *n
	r.items = append(r.items, &cp)
	return nil
}

func (r *Notifications) ListByUser(_ context.Context, userID string, unreadOnly bool, limit int) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for i := len(r.items) - 1; i >= 0; i-- {
		n := r.items[i]
		if n.UserID != userID || (unreadOnly && n.Read) {
			continue
		}
		cp := *n
		out = append(out, &cp)
	}
	return page(out, limit, 0), nil
}

func (r *Notifications) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *Notifications) MarkAllRead(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, it := range r.items {
		if it.UserID == userID && !it.Read {
			it.Read = true
			n++
		}
	}
	return n, nil
}

// ── OTPs ──────────────────────────────────────────────────────────────────────

// OTPs OTPRepository en memoria (ignora el TTL; las reglas de vigencia viven en el use case).
type OTPs struct {
	mu      sync.Mutex
	items   map[string]entity.OTPRecord
	locks   map[string]time.Time
	LastTTL time.Duration
}

func (r *OTPs) Get(_ context.Context, email string) (*entity.OTPRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rec, ok := r.items[email]; ok {
		rec.SentAt = append([]time.Time(nil), rec.SentAt...)
		return &rec, nil
	}
	return nil, nil
}

func (r *OTPs) Save(_ context.Context, rec *entity.OTPRecord, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rec
	cp.SentAt = append([]time.Time(nil), rec.SentAt...)
	r.items[rec.Email] = cp
	r.LastTTL = ttl
	return nil
}

func (r *OTPs) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, email)
	return nil
}

func (r *OTPs) Lock(_ context.Context, email string, ttl time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	if until, ok := r.locks[email]; ok && now.Before(until) {
		return false, nil
	}
	if r.locks == nil {
		r.locks = make(map[string]time.Time)
	}
	r.locks[email] = now.Add(ttl)
	return true, nil
}

func (r *OTPs) Unlock(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.locks, email)
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
