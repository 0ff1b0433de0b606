package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/kamaltrader/luxecraft/internal/models"
)

type memoryCache struct {
	gen     uint64
	entries map[string][]models.Product
	hits    int
}

func (m *memoryCache) Generation(context.Context) (uint64, error) { return m.gen, nil }

func (m *memoryCache) GetProducts(_ context.Context, gen uint64, key string) ([]models.Product, bool) {
	products, ok := m.entries[entryKey(gen, key)]
	if ok {
		m.hits++
	}
	return products, ok
}

func (m *memoryCache) SetProducts(_ context.Context, gen uint64, key string, products []models.Product) {
	m.entries[entryKey(gen, key)] = products
}

func (m *memoryCache) Invalidate(context.Context) {
	m.gen++
	m.entries = map[string][]models.Product{}
}

func TestProductsLoadsOnceThenHits(t *testing.T) {
	mem := &memoryCache{entries: map[string][]models.Product{}}
	loads := 0
	load := func(context.Context) ([]models.Product, error) {
		loads++
		return []models.Product{{ID: 1, Name: "Belt"}}, nil
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		products, err := Products(ctx, mem, ListKey("", ""), load)
		if err != nil {
			t.Fatalf("products: %v", err)
		}
		if len(products) != 1 || products[0].Name != "Belt" {
			t.Fatalf("unexpected products %+v", products)
		}
	}
	if loads != 1 || mem.hits != 2 {
		t.Fatalf("expected 1 load and 2 hits, got %d loads and %d hits", loads, mem.hits)
	}

	mem.Invalidate(ctx)
	if _, err := Products(ctx, mem, ListKey("", ""), load); err != nil {
		t.Fatalf("products: %v", err)
	}
	if loads != 2 {
		t.Fatalf("expected reload after invalidate, got %d loads", loads)
	}
}

func TestProductsInvalidatedDuringLoadIsNotServedLater(t *testing.T) {
	mem := &memoryCache{entries: map[string][]models.Product{}}
	ctx := context.Background()

	stale := func(ctx context.Context) ([]models.Product, error) {
		// A product mutation lands while the listing query is in flight.
		mem.Invalidate(ctx)
		return []models.Product{{ID: 1, Name: "Belt"}}, nil
	}
	if _, err := Products(ctx, mem, "all", stale); err != nil {
		t.Fatalf("products: %v", err)
	}

	loads := 0
	fresh := func(context.Context) ([]models.Product, error) {
		loads++
		return []models.Product{{ID: 1, Name: "Belt II"}}, nil
	}
	products, err := Products(ctx, mem, "all", fresh)
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if loads != 1 || len(products) != 1 || products[0].Name != "Belt II" {
		t.Fatalf("expected a fresh load after invalidation, got %d loads and %+v", loads, products)
	}
}

type brokenGeneration struct {
	Noop
	sets int
}

func (b *brokenGeneration) Generation(context.Context) (uint64, error) {
	return 0, errors.New("redis down")
}

func (b *brokenGeneration) SetProducts(context.Context, uint64, string, []models.Product) { b.sets++ }

func TestProductsBypassesCacheWhenGenerationFails(t *testing.T) {
	broken := &brokenGeneration{}
	products, err := Products(context.Background(), broken, "all", func(context.Context) ([]models.Product, error) {
		return []models.Product{{ID: 1}}, nil
	})
	if err != nil || len(products) != 1 {
		t.Fatalf("expected loaded products, got %+v, %v", products, err)
	}
	if broken.sets != 0 {
		t.Fatalf("expected no cache fill, got %d", broken.sets)
	}
}

func TestEntryKeyIncludesGeneration(t *testing.T) {
	if got := entryKey(3, "q:wallet"); got != "luxecraft:products:3:q:wallet" {
		t.Fatalf("unexpected entry key %q", got)
	}
}

func TestProductsDoesNotCacheErrors(t *testing.T) {
	mem := &memoryCache{entries: map[string][]models.Product{}}
	boom := errors.New("db down")
	_, err := Products(context.Background(), mem, "all", func(context.Context) ([]models.Product, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if len(mem.entries) != 0 {
		t.Fatalf("expected nothing cached, got %v", mem.entries)
	}
}

func TestNoopAndNilCacheAlwaysLoad(t *testing.T) {
	loads := 0
	load := func(context.Context) ([]models.Product, error) {
		loads++
		return nil, nil
	}
	ctx := context.Background()
	_, _ = Products(ctx, Noop{}, "all", load)
	_, _ = Products(ctx, Noop{}, "all", load)
	_, _ = Products(ctx, nil, "all", load)
	if loads != 3 {
		t.Fatalf("expected 3 loads, got %d", loads)
	}
}

func TestListKey(t *testing.T) {
	cases := map[[2]string]string{
		{"", ""}:                "all",
		{"wallet", ""}:          "q:wallet",
		{"wallet", "Belts"}:     "category:Belts",
		{"", "Custom Products"}: "category:Custom Products",
	}
	for in, want := range cases {
		if got := ListKey(in[0], in[1]); got != want {
			t.Fatalf("ListKey(%q, %q) = %q, want %q", in[0], in[1], got, want)
		}
	}
}

func TestNewRedisRequiresAddress(t *testing.T) {
	if _, err := NewRedis(context.Background(), RedisOptions{}); err == nil {
		t.Fatalf("expected error without address")
	}
}
