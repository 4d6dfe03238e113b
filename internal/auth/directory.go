package auth

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type account struct {
	user         User
	passwordHash []byte
}

// Directory is the mock backend's in-memory user registry.
type Directory struct {
	mu       sync.RWMutex
	accounts map[int64]*account
	byEmail  map[string]int64
	nextID   int64
	cost     int
	now      func() time.Time
}

func NewDirectory() *Directory {
	return NewDirectoryWithCost(bcrypt.DefaultCost)
}

// NewDirectoryWithCost sets the bcrypt cost used for new passwords.
func NewDirectoryWithCost(cost int) *Directory {
	return &Directory{
		accounts: make(map[int64]*account),
		byEmail:  make(map[string]int64),
		cost:     cost,
		now:      time.Now,
	}
}

// Register creates a USER account. Emails are matched case-insensitively.
func (d *Directory) Register(ctx context.Context, name, email, password string) (User, error) {
	return d.create(name, email, password, RoleUser)
}

// Seed creates an account with an explicit role, for demo users.
func (d *Directory) Seed(name, email, password string, role Role) (User, error) {
	return d.create(name, email, password, role)
}

func (d *Directory) create(name, email, password string, role Role) (User, error) {
	key := normalizeEmail(email)
	if key == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), d.cost)
	if err != nil {
		return User{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, taken := d.byEmail[key]; taken {
		return User{}, ErrEmailTaken
	}

	d.nextID++
	u := User{
		ID:        d.nextID,
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Role:      role,
		CreatedAt: d.now().UTC(),
	}
	d.accounts[u.ID] = &account{user: u, passwordHash: hash}
	d.byEmail[key] = u.ID
	return u, nil
}

func (d *Directory) Authenticate(ctx context.Context, email, password string) (User, error) {
	d.mu.RLock()
	id, ok := d.byEmail[normalizeEmail(email)]
	var acc account
	if ok {
		acc = *d.accounts[id]
	}
	d.mu.RUnlock()

	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return acc.user, nil
}

func (d *Directory) Get(ctx context.Context, id int64) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	acc, ok := d.accounts[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return acc.user, nil
}

// UpdateProfile changes name and email. Empty fields are left as they are.
func (d *Directory) UpdateProfile(ctx context.Context, id int64, name, email string) (User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	acc, ok := d.accounts[id]
	if !ok {
		return User{}, ErrUserNotFound
	}

	if key := normalizeEmail(email); key != "" && key != normalizeEmail(acc.user.Email) {
		if _, taken := d.byEmail[key]; taken {
			return User{}, ErrEmailTaken
		}
		delete(d.byEmail, normalizeEmail(acc.user.Email))
		d.byEmail[key] = id
		acc.user.Email = strings.TrimSpace(email)
	}
	if n := strings.TrimSpace(name); n != "" {
		acc.user.Name = n
	}
	return acc.user, nil
}

func (d *Directory) List(ctx context.Context) ([]User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]User, 0, len(d.accounts))
	for _, acc := range d.accounts {
		out = append(out, acc.user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
