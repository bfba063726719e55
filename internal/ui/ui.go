// Package ui содержит побочные эффекты представления: уведомления и переходы между экранами.
package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Notifier показывает пользователю короткие уведомления.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Navigator переводит пользователя на другой экран.
type Navigator interface {
	NavigateTo(path string)
}

// Console печатает уведомления в терминал.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsole создает уведомления поверх out.
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Success печатает сообщение об успехе.
func (c *Console) Success(message string) {
	c.print(color.New(color.FgGreen).Sprint("✓"), message)
}

// Error печатает сообщение об ошибке.
func (c *Console) Error(message string) {
	c.print(color.New(color.FgRed).Sprint("✗"), message)
}

func (c *Console) print(icon, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "%s %s\n", icon, message)
}

// Routes сопоставляет путь экрана с действием, которое его показывает.
type Routes map[string]func()

// NavigateTo выполняет действие для пути, если оно зарегистрировано.
func (r Routes) NavigateTo(path string) {
	if show, ok := r[path]; ok && show != nil {
		show()
	}
}
