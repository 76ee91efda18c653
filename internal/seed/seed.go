package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type product struct {
	name        string
	description string
	price       int64
	imageURL    string
	category    string
	stock       int
	rating      float64
}

var demoProducts = []product{
	{"Cappuccino", "Double shot with silky steamed milk", 249, "https://images.cafe/cappuccino.jpg", "Coffee", 100, 4.6},
	{"Cold Brew", "Slow-steeped for 18 hours", 299, "https://images.cafe/coldbrew.jpg", "Coffee", 80, 4.4},
	{"Masala Chai", "House blend with fresh ginger", 149, "https://images.cafe/chai.jpg", "Tea", 120, 4.7},
	{"Red Velvet Cake", "Cream cheese frosting, baked daily", 599, "https://images.cafe/redvelvet.jpg", "Cakes", 25, 4.8},
	{"Chocolate Truffle", "Dark chocolate ganache layers", 649, "https://images.cafe/truffle.jpg", "Cakes", 20, 4.9},
	{"Veg Club Sandwich", "Triple decker with grilled veggies", 329, "https://images.cafe/club.jpg", "Snacks", 40, 4.2},
	{"Butter Croissant", "Flaky, baked every morning", 179, "https://images.cafe/croissant.jpg", "Snacks", 60, 4.5},
}

var demoCouriers = []struct {
	name  string
	phone string
}{
	{"Ravi Kumar", "+911234500001"},
	{"Sunita Devi", "+911234500002"},
}

// Apply loads the demo catalog, couriers and a default admin account.
// Idempotent: existing rows are left alone.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	for _, p := range demoProducts {
		if _, err := pool.Exec(ctx, `
INSERT INTO products (name, description, price, image_url, category, stock, rating)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE name = $1)
`, p.name, p.description, p.price, p.imageURL, p.category, p.stock, p.rating); err != nil {
			return fmt.Errorf("seed product %q: %w", p.name, err)
		}
	}

	for _, d := range demoCouriers {
		if _, err := pool.Exec(ctx, `
INSERT INTO delivery_persons (name, phone)
SELECT $1, $2
WHERE NOT EXISTS (SELECT 1 FROM delivery_persons WHERE phone = $2)
`, d.name, d.phone); err != nil {
			return fmt.Errorf("seed delivery person %q: %w", d.name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := pool.Exec(ctx, `
INSERT INTO users (username, name, password_hash, is_admin)
SELECT 'admin', 'Store Admin', $1, TRUE
WHERE NOT EXISTS (SELECT 1 FROM users WHERE username = 'admin')
`, string(hash)); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	return nil
}
