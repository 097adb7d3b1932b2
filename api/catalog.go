package api

import (
	"fmt"
	"image/color"
	"sync"
)

// CatalogEntry is a menu item plus the kitchen-side data the API never exposes.
type CatalogEntry struct {
	Item               MenuItem
	PreparationMinutes int
	Color              color.RGBA
}

type Catalog struct {
	mu         sync.RWMutex
	categories []string
	entries    map[int]CatalogEntry
	order      []int
}

func NewCatalog(entries ...CatalogEntry) *Catalog {
	c := &Catalog{entries: make(map[int]CatalogEntry)}
	for _, e := range entries {
		c.Add(e)
	}
	return c
}

// Add inserts or replaces an entry. Categories keep first-seen order.
func (c *Catalog) Add(e CatalogEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e.Item.ImageURL == "" {
		e.Item.ImageURL = ImagePath(e.Item.ID)
	}

	if _, ok := c.entries[e.Item.ID]; !ok {
		c.order = append(c.order, e.Item.ID)
	}
	c.entries[e.Item.ID] = e

	for _, name := range c.categories {
		if name == e.Item.Category {
			return
		}
	}
	c.categories = append(c.categories, e.Item.Category)
}

func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return append([]string{}, c.categories...)
}

func (c *Catalog) Items(category string) ([]MenuItem, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := []MenuItem{}
	for _, id := range c.order {
		if e := c.entries[id]; e.Item.Category == category {
			items = append(items, e.Item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}

	return items, nil
}

func (c *Catalog) Entry(id int) (CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	return e, ok
}

// PreparationTime estimates minutes for a set of items: the slowest item plus
// one minute for every other item on the ticket.
func (c *Catalog) PreparationTime(ids []int) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyOrder
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	longest := 0
	for _, id := range ids {
		e, ok := c.entries[id]
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrUnknownMenuItem, id)
		}
		if e.PreparationMinutes > longest {
			longest = e.PreparationMinutes
		}
	}

	return longest + len(ids) - 1, nil
}

func ImagePath(id int) string {
	return fmt.Sprintf("/images/%d.png", id)
}

func DefaultCatalog() *Catalog {
	return NewCatalog(
		CatalogEntry{Item: MenuItem{ID: 1, Name: "Spaghetti and Meatballs", Description: "Seasoned meatballs on top of freshly-made spaghetti. Served with a robust tomato sauce.", Price: 9.00, Category: "entrees"}, PreparationMinutes: 12, Color: color.RGBA{0xc0, 0x39, 0x2b, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 2, Name: "Margherita Pizza", Description: "Tomato sauce, fresh mozzarella, basil, and extra-virgin olive oil.", Price: 10.00, Category: "entrees"}, PreparationMinutes: 15, Color: color.RGBA{0xe6, 0x7e, 0x22, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 3, Name: "Grilled Steelhead Trout Sandwich", Description: "Pacific steelhead trout with lettuce, tomato, and red onion.", Price: 9.00, Category: "sandwiches"}, PreparationMinutes: 8, Color: color.RGBA{0xd3, 0x54, 0x00, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 4, Name: "Pesto Club", Description: "Roast turkey, green leaf lettuce, ripe tomato, and pesto.", Price: 8.00, Category: "sandwiches"}, PreparationMinutes: 6, Color: color.RGBA{0x27, 0xae, 0x60, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 5, Name: "Chicken Noodle Soup", Description: "Delicious chicken simmered alongside yellow onions, carrots, celery, and bay leaves.", Price: 3.00, Category: "soups"}, PreparationMinutes: 3, Color: color.RGBA{0xf1, 0xc4, 0x0f, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 6, Name: "Italian Salad", Description: "Glorious greens dressed with oil, vinegar, and spices.", Price: 5.00, Category: "salads"}, PreparationMinutes: 4, Color: color.RGBA{0x2e, 0xcc, 0x71, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 7, Name: "Lemonade", Description: "Freshly squeezed lemons with cane sugar.", Price: 2.50, Category: "drinks"}, PreparationMinutes: 1, Color: color.RGBA{0xf9, 0xe7, 0x9f, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 8, Name: "Iced Tea", Description: "Black tea brewed daily.", Price: 2.00, Category: "drinks"}, PreparationMinutes: 1, Color: color.RGBA{0x8e, 0x44, 0x24, 0xff}},
		CatalogEntry{Item: MenuItem{ID: 9, Name: "French Fries", Description: "Crispy, golden, lightly salted.", Price: 3.50, Category: "sides"}, PreparationMinutes: 5, Color: color.RGBA{0xf3, 0x9c, 0x12, 0xff}},
	)
}
