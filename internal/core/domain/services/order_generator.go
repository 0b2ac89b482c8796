package services

import (
	"fmt"
	"strings"
	"time"

	"dashboard/internal/core/domain/model/kernel"
	"dashboard/internal/core/domain/model/order"
	"dashboard/internal/pkg/random"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	seedWindowDays = 30
	currencyUSD    = "USD"
)

var (
	firstNames = []string{
		"Ava", "Liam", "Noah", "Mia", "Sophia", "Ethan",
		"Lucas", "Isla", "Zoe", "Aria", "Levi", "Elena",
	}
	lastNames = []string{
		"Walker", "Patel", "Garcia", "Khan", "Yamamoto", "Santos",
		"Novak", "Kim", "Nielsen", "Okoro", "Miller", "Silva",
	}
	products = []string{
		"Quartz Watch", "Travel Backpack", "Noise Cancelling Headphones", "Ceramic Mug Set",
		"Wireless Charger", "Running Shoes", "Canvas Jacket", "Portable Speaker",
		"Desk Lamp", "Yoga Mat", "Sunglasses", "Leather Notebook",
	}
	// cities and countries are paired by index.
	cities = []string{
		"Berlin", "Lisbon", "Toronto", "Singapore", "Austin",
		"Oslo", "Helsinki", "Kyoto", "Dublin", "Stockholm",
	}
	countries = []string{
		"Germany", "Portugal", "Canada", "Singapore", "USA",
		"Norway", "Finland", "Japan", "Ireland", "Sweden",
	}
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// OrderGenerator synthesizes realistic-looking orders.
//
// Example usage:
//
//	gen := services.NewOrderGenerator(random.New(42), loop)
//	seed, err := gen.Seed(80)           // ORD-0001 .. ORD-0080
//	next, err := gen.NewOrder(81)       // pending, created now
//	status := gen.NextStatus(order.Pending) // processing or cancelled
type OrderGenerator struct {
	src   random.Source
	clock Clock
	newID func() string
}

// NewOrderGenerator creates a generator. Item identifiers are random UUIDs.
func NewOrderGenerator(src random.Source, clock Clock) *OrderGenerator {
	return &OrderGenerator{src: src, clock: clock, newID: uuid.NewString}
}

// Seed builds count orders numbered from ORD-0001 with random statuses,
// created within the last 30 days and updated 1 to 5 hours after creation.
func (g *OrderGenerator) Seed(count int) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, count)
	now := g.clock.Now()

	for n := 1; n <= count; n++ {
		createdAt := random.DateWithinDays(g.src, now, seedWindowDays)
		updatedAt := createdAt.Add(time.Duration(random.IntBetween(g.src, 1, 5)) * time.Hour)

		o, err := g.build(n, random.Sample(g.src, order.All()), createdAt, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("seed order %d: %w", n, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// NewOrder builds a pending order numbered n, created and updated now.
func (g *OrderGenerator) NewOrder(n int) (*order.Order, error) {
	now := g.clock.Now()
	return g.build(n, order.Pending, now, now)
}

// NextStatus picks a plausible successor of current. Final statuses map to
// themselves.
func (g *OrderGenerator) NextStatus(current order.Status) order.Status {
	next := current.NextStatuses()
	if len(next) == 0 {
		return current
	}
	return random.Sample(g.src, next)
}

func (g *OrderGenerator) build(n int, status order.Status, createdAt, updatedAt time.Time) (*order.Order, error) {
	id, err := kernel.NewOrderID(n)
	if err != nil {
		return nil, err
	}

	items, err := g.items()
	if err != nil {
		return nil, err
	}

	customerName := random.Sample(g.src, firstNames) + " " + random.Sample(g.src, lastNames)

	return order.NewOrder(order.Params{
		ID:              id,
		CustomerName:    customerName,
		CustomerEmail:   emailFor(customerName),
		Status:          status,
		Items:           items,
		Currency:        currencyUSD,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		ShippingAddress: g.address(),
	})
}

func (g *OrderGenerator) items() ([]order.Item, error) {
	count := random.IntBetween(g.src, 1, 4)
	items := make([]order.Item, 0, count)

	for range count {
		quantity := random.IntBetween(g.src, 1, 3)
		price := decimal.NewFromFloat(random.FloatBetween(g.src, 12, 180, 2)).Round(2)

		item, err := order.NewItem(g.newID(), random.Sample(g.src, products), quantity, price)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (g *OrderGenerator) address() kernel.Address {
	cityIndex := random.IntBetween(g.src, 0, len(cities)-1)
	street := fmt.Sprintf("%d %s Street", random.IntBetween(g.src, 12, 240), random.Sample(g.src, lastNames))
	postalCode := fmt.Sprintf("%d", random.IntBetween(g.src, 10000, 99999))
	return kernel.NewAddress(street, cities[cityIndex], countries[cityIndex], postalCode)
}

// emailFor turns "Mia Novak" into "mia.novak@mail.com".
func emailFor(customerName string) string {
	return strings.Join(strings.Fields(strings.ToLower(customerName)), ".") + "@mail.com"
}
