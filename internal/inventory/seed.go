package inventory

import "context"

// Catalog is the starter inventory, inserted only when the products
// table is empty.
var Catalog = []Product{
	{Name: "Amul Taaza Toned Milk", Brand: "Amul", Category: "Dairy", Price: 66, Stock: 120, Unit: "1L"},
	{Name: "Mother Dairy Full Cream Milk", Brand: "Mother Dairy", Category: "Dairy", Price: 74, Stock: 90, Unit: "1L"},
	{Name: "Britannia Whole Wheat Bread", Brand: "Britannia", Category: "Bakery", Price: 45, Stock: 150, Unit: "400g"},
	{Name: "Aashirvaad Atta", Brand: "ITC", Category: "Grocery", Price: 315, Stock: 60, Unit: "5kg"},
	{Name: "Fortune Sunflower Oil", Brand: "Fortune", Category: "Oil", Price: 140, Stock: 80, Unit: "1L"},
	{Name: "Tata Salt", Brand: "Tata", Category: "Grocery", Price: 28, Stock: 200, Unit: "1kg"},
	{Name: "Parle-G Gold Biscuits", Brand: "Parle", Category: "Snacks", Price: 35, Stock: 300, Unit: "250g"},
	{Name: "Lays Magic Masala", Brand: "PepsiCo", Category: "Snacks", Price: 20, Stock: 250, Unit: "52g"},
	{Name: "Maggie 2-Minute Noodles", Brand: "Nestle", Category: "Noodles", Price: 14, Stock: 400, Unit: "70g"},
	{Name: "Colgate Strong Teeth", Brand: "Colgate", Category: "Personal Care", Price: 115, Stock: 90, Unit: "200g"},
	{Name: "Dove Shampoo", Brand: "Dove", Category: "Personal Care", Price: 245, Stock: 70, Unit: "340ml"},
	{Name: "Good Day Cashew Cookies", Brand: "Britannia", Category: "Snacks", Price: 35, Stock: 180, Unit: "250g"},
	{Name: "Kellogg's Corn Flakes", Brand: "Kellogg's", Category: "Breakfast", Price: 199, Stock: 85, Unit: "475g"},
	{Name: "Nescafe Classic", Brand: "Nestle", Category: "Beverages", Price: 335, Stock: 60, Unit: "100g"},
	{Name: "Red Label Tea", Brand: "Brooke Bond", Category: "Beverages", Price: 160, Stock: 80, Unit: "500g"},
	{Name: "Onion", Brand: "Fresh", Category: "Vegetables", Price: 40, Stock: 500, Unit: "1kg"},
	{Name: "Tomato", Brand: "Fresh", Category: "Vegetables", Price: 30, Stock: 450, Unit: "1kg"},
	{Name: "Potato", Brand: "Fresh", Category: "Vegetables", Price: 25, Stock: 600, Unit: "1kg"},
	{Name: "Banana", Brand: "Fresh", Category: "Fruits", Price: 60, Stock: 220, Unit: "1 dozen"},
	{Name: "Apple", Brand: "Fresh", Category: "Fruits", Price: 160, Stock: 180, Unit: "1kg"},
}

func (r *Repo) SeedCatalog(ctx context.Context) error {
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, p := range Catalog {
		if _, err := r.DB.Exec(ctx, `
			INSERT INTO products(name, brand, category, price, stock, unit, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (name) DO NOTHING`,
			p.Name, p.Brand, p.Category, p.Price, p.Stock, p.Unit, p.Image); err != nil {
			return err
		}
	}
	return nil
}
