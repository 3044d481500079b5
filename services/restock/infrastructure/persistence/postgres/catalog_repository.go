package postgres

import (
	"context"
	"fmt"

	"github.com/ghuser/restockhub/pkg/database"
	"github.com/ghuser/restockhub/services/restock/domain/models"
)

// ProductRepository implements repositories.ProductReader against PostgreSQL.
// The catalog is read-only from this bounded context; products are written by
// the inventory sync outside this service.
type ProductRepository struct {
	db *database.Database
}

// NewProductRepository returns a ProductRepository backed by the given pool.
func NewProductRepository(db *database.Database) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByUserID retrieves the user's products, ordered by name.
func (r *ProductRepository) FindByUserID(ctx context.Context, userID string) ([]models.Product, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name
		FROM restock_products
		WHERE user_id = $1
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

// SupplierRepository implements repositories.SupplierReader against PostgreSQL.
type SupplierRepository struct {
	db *database.Database
}

// NewSupplierRepository returns a SupplierRepository backed by the given pool.
func NewSupplierRepository(db *database.Database) *SupplierRepository {
	return &SupplierRepository{db: db}
}

// FindByUserID retrieves the user's suppliers, ordered by name.
func (r *SupplierRepository) FindByUserID(ctx context.Context, userID string) ([]models.Supplier, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT id, name, email
		FROM restock_suppliers
		WHERE user_id = $1
		ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []models.Supplier
	for rows.Next() {
		var s models.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate suppliers: %w", err)
	}
	return suppliers, nil
}
