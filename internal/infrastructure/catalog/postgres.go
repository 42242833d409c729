package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/jeanlozanor/simple-backend/internal/domain"
)

// Postgres implements domain.CatalogRepository on PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a connection, waits for the database to accept pings and
// creates the schema if it does not exist yet.
func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("catalog: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: ping failed after retries: %w", err)
	}

	p := &Postgres{db: db}
	if err := p.migrate(); err != nil {
		return nil, fmt.Errorf("catalog: migrate: %w", err)
	}
	return p, nil
}

func (p *Postgres) migrate() error {
	_, err := p.db.Exec(`
		CREATE TABLE IF NOT EXISTS stores (
			id              SERIAL PRIMARY KEY,
			name            VARCHAR(200) NOT NULL,
			code            VARCHAR(100) NOT NULL UNIQUE,
			address         VARCHAR(300),
			district        VARCHAR(100),
			city            VARCHAR(100) DEFAULT 'Lima',
			latitude        DOUBLE PRECISION NOT NULL,
			longitude       DOUBLE PRECISION NOT NULL,
			payment_methods VARCHAR(200)
		);

		CREATE TABLE IF NOT EXISTS products (
			id          SERIAL PRIMARY KEY,
			name        VARCHAR(255) NOT NULL,
			brand       VARCHAR(100),
			category    VARCHAR(100),
			description TEXT,
			image_url   VARCHAR(500)
		);

		CREATE TABLE IF NOT EXISTS inventory_items (
			id           SERIAL PRIMARY KEY,
			store_id     INTEGER NOT NULL REFERENCES stores(id),
			product_id   INTEGER NOT NULL REFERENCES products(id),
			price        NUMERIC(10,2) NOT NULL,
			currency     VARCHAR(10) NOT NULL DEFAULT 'PEN',
			stock        INTEGER,
			last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_products_name     ON products(name);
		CREATE INDEX IF NOT EXISTS idx_inventory_store   ON inventory_items(store_id);
		CREATE INDEX IF NOT EXISTS idx_inventory_product ON inventory_items(product_id);
	`)
	return err
}

// Close releases the underlying connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

// CreateStore inserts a store and fills its ID.
func (p *Postgres) CreateStore(ctx context.Context, store *domain.Store) error {
	return p.db.QueryRowContext(ctx, `
		INSERT INTO stores (name, code, address, district, city, latitude, longitude, payment_methods)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, NULLIF($8, ''))
		RETURNING id`,
		store.Name, store.Code, store.Address, store.District, store.City,
		store.Latitude, store.Longitude, strings.Join(store.PaymentMethods, ","),
	).Scan(&store.ID)
}

// ListStores returns all stores.
func (p *Postgres) ListStores(ctx context.Context) ([]domain.Store, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, code,
		       COALESCE(address, ''), COALESCE(district, ''), COALESCE(city, ''),
		       latitude, longitude, COALESCE(payment_methods, '')
		FROM stores ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var s domain.Store
		var methods string
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Address, &s.District, &s.City,
			&s.Latitude, &s.Longitude, &methods); err != nil {
			return nil, err
		}
		s.PaymentMethods = splitMethods(methods)
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// CreateProduct inserts a product and fills its ID.
func (p *Postgres) CreateProduct(ctx context.Context, product *domain.Product) error {
	return p.db.QueryRowContext(ctx, `
		INSERT INTO products (name, brand, category, description, image_url)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''))
		RETURNING id`,
		product.Name, product.Brand, product.Category, product.Description, product.ImageURL,
	).Scan(&product.ID)
}

// ListProducts returns all products.
func (p *Postgres) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(brand, ''), COALESCE(category, ''),
		       COALESCE(description, ''), COALESCE(image_url, '')
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var pr domain.Product
		if err := rows.Scan(&pr.ID, &pr.Name, &pr.Brand, &pr.Category, &pr.Description, &pr.ImageURL); err != nil {
			return nil, err
		}
		products = append(products, pr)
	}
	return products, rows.Err()
}

// CreateInventoryItem inserts an inventory row after verifying both foreign
// references exist, so the API can answer 400 instead of a bare constraint
// violation.
func (p *Postgres) CreateInventoryItem(ctx context.Context, item *domain.InventoryItem) error {
	var exists bool
	if err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)`, item.StoreID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrStoreNotFound
	}
	if err := p.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, item.ProductID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	currency := item.Currency
	if currency == "" {
		currency = "PEN"
	}

	return p.db.QueryRowContext(ctx, `
		INSERT INTO inventory_items (store_id, product_id, price, currency, stock)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		item.StoreID, item.ProductID, item.Price, currency, item.Stock,
	).Scan(&item.ID)
}

// ListInventoryItems returns all inventory rows.
func (p *Postgres) ListInventoryItems(ctx context.Context) ([]domain.InventoryItem, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, store_id, product_id, price, currency, stock FROM inventory_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.InventoryItem
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.StoreID, &item.ProductID, &item.Price, &item.Currency, &item.Stock); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SearchInventory joins inventory with product and store, applying the query
// pattern and the optional filters in SQL.
func (p *Postgres) SearchInventory(ctx context.Context, query string, filters *domain.SearchFilters) ([]domain.CatalogEntry, error) {
	q := strings.Builder{}
	q.WriteString(`
		SELECT pr.id, pr.name, COALESCE(pr.brand, ''), COALESCE(pr.category, ''),
		       COALESCE(pr.description, ''), COALESCE(pr.image_url, ''),
		       st.id, st.name, st.code, COALESCE(st.address, ''), COALESCE(st.district, ''),
		       COALESCE(st.city, ''), st.latitude, st.longitude, COALESCE(st.payment_methods, ''),
		       it.price, it.currency
		FROM inventory_items it
		JOIN products pr ON it.product_id = pr.id
		JOIN stores   st ON it.store_id   = st.id
		WHERE 1=1`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if query != "" {
		pattern := "%" + query + "%"
		n := arg(pattern)
		q.WriteString(fmt.Sprintf(" AND (pr.name ILIKE %s OR pr.brand ILIKE %s OR pr.category ILIKE %s)", n, n, n))
	}
	if filters != nil {
		if filters.Category != "" {
			q.WriteString(" AND pr.category = " + arg(filters.Category))
		}
		if filters.Brand != "" {
			q.WriteString(" AND pr.brand = " + arg(filters.Brand))
		}
		if filters.MaxPrice != nil {
			q.WriteString(" AND it.price <= " + arg(*filters.MaxPrice))
		}
		if filters.PaymentMethod != "" {
			q.WriteString(" AND st.payment_methods ILIKE " + arg("%"+filters.PaymentMethod+"%"))
		}
	}

	rows, err := p.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		var methods string
		if err := rows.Scan(
			&e.Product.ID, &e.Product.Name, &e.Product.Brand, &e.Product.Category,
			&e.Product.Description, &e.Product.ImageURL,
			&e.Store.ID, &e.Store.Name, &e.Store.Code, &e.Store.Address, &e.Store.District,
			&e.Store.City, &e.Store.Latitude, &e.Store.Longitude, &methods,
			&e.Price, &e.Currency,
		); err != nil {
			return nil, err
		}
		e.Store.PaymentMethods = splitMethods(methods)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func splitMethods(joined string) []string {
	if joined == "" {
		return nil
	}
	return strings.Split(joined, ",")
}
