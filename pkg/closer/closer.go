// Package closer обеспечивает упорядоченное закрытие ресурсов приложения.
package closer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Func — сигнатура функции закрытия ресурса.
type Func func(ctx context.Context) error

// Closer закрывает зарегистрированные ресурсы в порядке LIFO.
// При отмене контекста оставшиеся ресурсы закрываются принудительно
// с собственным таймаутом forcedTimeout.
type Closer struct {
	mu            sync.Mutex
	once          sync.Once
	funcs         []Func
	forcedTimeout time.Duration
}

func NewCloser(forcedTimeout time.Duration) *Closer {
	const defaultForcedTimeout = 2 * time.Second

	if forcedTimeout == 0 {
		forcedTimeout = defaultForcedTimeout
	}

	return &Closer{forcedTimeout: forcedTimeout}
}

// Add регистрирует функцию закрытия ресурса.
func (c *Closer) Add(f Func) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.funcs = append(c.funcs, f)
}

// Close запускает закрытие всех зарегистрированных функций. Повторные
// вызовы игнорируются.
func (c *Closer) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		funcs := c.funcs
		c.mu.Unlock()

		var errs []string
		for i := len(funcs) - 1; i >= 0; i-- {
			done := make(chan error, 1)
			f := funcs[i]

			go func() {
				done <- f(ctx)
			}()

			select {
			case fErr := <-done:
				if fErr != nil {
					errs = append(errs, fErr.Error())
				}
			case <-ctx.Done():
				// Контекст истёк — закрываем остаток принудительно и параллельно.
				errs = append(errs, c.forcedClose(funcs[:i+1])...)
				err = fmt.Errorf(
					"shutdown interrupted after %d/%d funcs:\n%s",
					len(funcs)-1-i, len(funcs), strings.Join(errs, "\n"),
				)
				return
			}
		}

		if len(errs) > 0 {
			err = fmt.Errorf("shutdown finished with error(s):\n%s", strings.Join(errs, "\n"))
		}
	})

	return err
}

func (c *Closer) forcedClose(funcs []Func) []string {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []string
	)

	ctx, cancel := context.WithTimeout(context.Background(), c.forcedTimeout)
	defer cancel()

	for _, f := range funcs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := f(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("[FORCED] %v", err))
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	return errs
}
