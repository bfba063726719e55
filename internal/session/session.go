// Package session хранит токен пользователя между запусками CLI.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/senyabanana/job-bids/internal/ui"
)

// LoginPath - экран входа.
const LoginPath = "/login"

// ErrNotSignedIn - в сессии нет пользователя.
var ErrNotSignedIn = errors.New("not signed in")

type state struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Store - файл с текущей сессией.
type Store struct {
	mu    sync.RWMutex
	path  string
	state state
}

// Open читает сессию из path. Отсутствующий файл означает пустую сессию.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("parse session %s: %w", path, err)
	}
	return s, nil
}

// Token возвращает токен сессии.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// Email возвращает почту вошедшего пользователя.
func (s *Store) Email() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Email == "" {
		return "", ErrNotSignedIn
	}
	return s.state.Email, nil
}

// Save записывает новую сессию.
func (s *Store) Save(email, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{Email: email, Token: token}

	data, err := json.Marshal(s.state)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session %s: %w", s.path, err)
	}
	return nil
}

// SignOut сбрасывает сессию и удаляет файл.
func (s *Store) SignOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session %s: %w", s.path, err)
	}
	return nil
}

// Guard выполняет выход и переход на экран входа при потере авторизации.
type Guard struct {
	Store     *Store
	Navigator ui.Navigator
	Logger    *log.Logger
}

// OnUnauthorized реализует client.UnauthorizedHandler.
func (g *Guard) OnUnauthorized() {
	if err := g.Store.SignOut(); err != nil {
		g.Logger.Println(err)
	}
	if g.Navigator != nil {
		g.Navigator.NavigateTo(LoginPath)
	}
}
