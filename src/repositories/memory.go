package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"cryptoapp/src/models"

	"github.com/google/uuid"
)

// In-memory stores with the same contracts as the Postgres ones. Nothing survives a restart.

type MemoryTransactionRepository struct {
	mutex  sync.RWMutex
	nextID int64
	rows   []models.Transaction
}

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{}
}

func (r *MemoryTransactionRepository) Create(_ context.Context, t *models.Transaction) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.nextID++
	t.ID = r.nextID
	r.rows = append(r.rows, *t)
	return nil
}

func (r *MemoryTransactionRepository) GetByPortfolioAndCrypto(_ context.Context, portfolioID int64, cryptoID string) ([]models.Transaction, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := []models.Transaction{}
	for _, t := range r.rows {
		if t.PortfolioID == portfolioID && t.CryptoID == cryptoID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *MemoryTransactionRepository) GetByPortfolioID(_ context.Context, portfolioID int64) ([]models.Transaction, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := []models.Transaction{}
	for _, t := range r.rows {
		if t.PortfolioID == portfolioID {
			out = append(out, t)
		}
	}
	return out, nil
}

// DeleteByPortfolioID mirrors the ON DELETE CASCADE of the SQL schema.
func (r *MemoryTransactionRepository) DeleteByPortfolioID(portfolioID int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	kept := r.rows[:0]
	for _, t := range r.rows {
		if t.PortfolioID != portfolioID {
			kept = append(kept, t)
		}
	}
	r.rows = kept
}

type MemoryHoldingRepository struct {
	mutex    sync.RWMutex
	holdings map[models.HoldingKey]models.Holding
	// Reads and Writes count store round trips.
	Reads  int
	Writes int
}

func NewMemoryHoldingRepository() *MemoryHoldingRepository {
	return &MemoryHoldingRepository{holdings: make(map[models.HoldingKey]models.Holding)}
}

func (r *MemoryHoldingRepository) Get(_ context.Context, key models.HoldingKey) (*models.Holding, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Reads++
	h, ok := r.holdings[key]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (r *MemoryHoldingRepository) Upsert(_ context.Context, h *models.Holding) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Writes++
	if existing, ok := r.holdings[h.Key()]; ok {
		h.CreatedAt = existing.CreatedAt
	}
	r.holdings[h.Key()] = *h
	return nil
}

func (r *MemoryHoldingRepository) Delete(_ context.Context, key models.HoldingKey) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.Writes++
	delete(r.holdings, key)
	return nil
}

func (r *MemoryHoldingRepository) GetByPortfolioID(_ context.Context, portfolioID int64) ([]models.Holding, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := []models.Holding{}
	for key, h := range r.holdings {
		if key.PortfolioID == portfolioID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CryptoID < out[j].CryptoID })
	return out, nil
}

func (r *MemoryHoldingRepository) DeleteByPortfolioID(portfolioID int64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for key := range r.holdings {
		if key.PortfolioID == portfolioID {
			delete(r.holdings, key)
		}
	}
}

// MemoryPortfolioRepository cascades deletes into the ledger and holding stores it was given.
type MemoryPortfolioRepository struct {
	mutex        sync.RWMutex
	nextID       int64
	portfolios   map[int64]models.Portfolio
	transactions *MemoryTransactionRepository
	holdings     *MemoryHoldingRepository
}

func NewMemoryPortfolioRepository(transactions *MemoryTransactionRepository, holdings *MemoryHoldingRepository) *MemoryPortfolioRepository {
	return &MemoryPortfolioRepository{
		portfolios:   make(map[int64]models.Portfolio),
		transactions: transactions,
		holdings:     holdings,
	}
}

func (r *MemoryPortfolioRepository) Create(_ context.Context, p *models.Portfolio) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, existing := range r.portfolios {
		if existing.UserID == p.UserID && existing.Name == p.Name {
			return ErrDuplicate
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.portfolios[p.ID] = *p
	return nil
}

func (r *MemoryPortfolioRepository) GetByIDAndUser(_ context.Context, id int64, userID uuid.UUID) (*models.Portfolio, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	p, ok := r.portfolios[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return &p, nil
}

func (r *MemoryPortfolioRepository) GetByUser(_ context.Context, userID uuid.UUID) ([]models.Portfolio, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := []models.Portfolio{}
	for _, p := range r.portfolios {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MemoryPortfolioRepository) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID, excludeID int64) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, p := range r.portfolios {
		if p.UserID == userID && p.Name == name && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryPortfolioRepository) Update(_ context.Context, p *models.Portfolio) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if _, ok := r.portfolios[p.ID]; ok {
		r.portfolios[p.ID] = *p
	}
	return nil
}

func (r *MemoryPortfolioRepository) Delete(_ context.Context, id int64) error {
	r.mutex.Lock()
	delete(r.portfolios, id)
	r.mutex.Unlock()

	if r.transactions != nil {
		r.transactions.DeleteByPortfolioID(id)
	}
	if r.holdings != nil {
		r.holdings.DeleteByPortfolioID(id)
	}
	return nil
}

func (r *MemoryPortfolioRepository) GetAllIDs(_ context.Context) ([]int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	ids := make([]int64, 0, len(r.portfolios))
	for id := range r.portfolios {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

type MemoryUserRepository struct {
	mutex sync.RWMutex
	users map[uuid.UUID]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]models.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, u *models.User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Username, u.Username) {
			return ErrDuplicate
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Username, username) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	u, err := r.GetByUsername(ctx, username)
	return u != nil, err
}

func (r *MemoryUserRepository) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	if u, ok := r.users[id]; ok {
		u.Password = passwordHash
		r.users[id] = u
	}
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.users, id)
	return nil
}

type MemoryResetCodeRepository struct {
	mutex sync.RWMutex
	codes map[uuid.UUID]models.ResetPasswordCode
}

func NewMemoryResetCodeRepository() *MemoryResetCodeRepository {
	return &MemoryResetCodeRepository{codes: make(map[uuid.UUID]models.ResetPasswordCode)}
}

func (r *MemoryResetCodeRepository) Get(_ context.Context, userID uuid.UUID) (*models.ResetPasswordCode, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	c, ok := r.codes[userID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *MemoryResetCodeRepository) Upsert(_ context.Context, code *models.ResetPasswordCode) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.codes[code.UserID] = *code
	return nil
}

func (r *MemoryResetCodeRepository) Delete(_ context.Context, userID uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	delete(r.codes, userID)
	return nil
}
