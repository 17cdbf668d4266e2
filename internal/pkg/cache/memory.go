package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCleanupInterval é o intervalo padrão da limpeza de chaves expiradas.
const DefaultCleanupInterval = time.Minute

// MemoryClient é uma implementação em memória de Client.
// Usada em testes e como fallback quando o Redis está indisponível na inicialização.
type MemoryClient struct {
	// mu serializa Incr com as escritas; o go-cache não tem incremento sobre strings.
	mu    sync.Mutex
	items *gocache.Cache
}

// NewMemoryClient cria um cache em memória vazio com a limpeza padrão.
func NewMemoryClient() *MemoryClient {
	return NewMemoryClientWithCleanup(DefaultCleanupInterval)
}

// NewMemoryClientWithCleanup cria um cache em memória cujas chaves expiradas
// são removidas a cada interval, mesmo que nunca sejam lidas.
func NewMemoryClientWithCleanup(interval time.Duration) *MemoryClient {
	return &MemoryClient{items: gocache.New(gocache.NoExpiration, interval)}
}

// ItemCount devolve o número de chaves guardadas, incluindo as expiradas
// que a limpeza ainda não removeu.
func (c *MemoryClient) ItemCount() int {
	return c.items.ItemCount()
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return v.(string), nil
}

func (c *MemoryClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		str = fmt.Sprint(v)
	}

	if expiration <= 0 {
		expiration = gocache.NoExpiration
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Set(key, str, expiration)
	return nil
}

// Incr segue o INCR do Redis: chave ausente começa em zero e a expiração existente é mantida.
func (c *MemoryClient) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ttl := gocache.NoExpiration
	var n int64
	if v, expiresAt, ok := c.items.GetWithExpiration(key); ok {
		parsed, err := strconv.ParseInt(v.(string), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("valor não numérico em %s: %w", key, err)
		}
		n = parsed
		if !expiresAt.IsZero() {
			ttl = time.Until(expiresAt)
			if ttl <= 0 {
				// expirou entre a leitura e a escrita
				ttl = gocache.NoExpiration
				n = 0
			}
		}
	}
	n++
	c.items.Set(key, strconv.FormatInt(n, 10), ttl)
	return n, nil
}

func (c *MemoryClient) Exists(_ context.Context, key string) (bool, error) {
	_, ok := c.items.Get(key)
	return ok, nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items.Delete(key)
	return nil
}

func (c *MemoryClient) Ping(context.Context) error { return nil }
